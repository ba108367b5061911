package tui

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/studyscout/internal/controller"
	"github.com/csheth/studyscout/internal/session"
)

type jobStatus string

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Action      session.Action
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultMsg struct {
	Snapshot jobSnapshot
	Result   controller.Result
}

type jobBus struct {
	counter int64
}

func newJobBus() *jobBus {
	return &jobBus{}
}

func (b *jobBus) nextID(action session.Action) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", action, idx)
}

// Start runs job off the update loop. The first message announces the job;
// the second carries the result for controller.Complete.
func (b *jobBus) Start(job *controller.Job) tea.Cmd {
	id := b.nextID(job.Action)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Action: job.Action, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		res := job.Run(context.Background())
		snapshot := jobSnapshot{
			ID:          id,
			Action:      job.Action,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		if res.Err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = res.Err.Error()
		} else {
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		log.Printf("[jobs] %s %s (duration=%s, err=%v)", job.Action, snapshot.Status, snapshot.Duration, res.Err)
		return jobResultMsg{Snapshot: snapshot, Result: res}
	}

	return tea.Sequence(startCmd, runCmd)
}
