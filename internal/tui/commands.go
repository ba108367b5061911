package tui

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/studyscout/internal/backend"
	"github.com/csheth/studyscout/internal/controller"
)

// The model is the controller's Surface. Every call arrives from inside
// Update, so side effects that must happen later are queued as commands.

func (m *model) Notify(n controller.Notification) {
	m.toastSeq++
	id := m.toastSeq
	m.toasts = append(m.toasts, toast{ID: id, Level: n.Level, Message: n.Message, PostedAt: m.config.Now()})
	if len(m.toasts) > maxVisibleToasts {
		m.toasts = m.toasts[len(m.toasts)-maxVisibleToasts:]
	}
	m.pending = append(m.pending, toastExpiryCmd(id, m.config.ToastDuration))
}

func (m *model) ClearInput(field controller.Field) {
	switch field {
	case controller.FieldDocument:
		m.documentInput.Reset()
	case controller.FieldText:
		m.textInput.Reset()
	case controller.FieldQuestion:
		m.questionInput.Reset()
	case controller.FieldAPIKey:
		m.apiKeyInput.Reset()
	}
}

func (m *model) Reveal(region controller.Region) {
	switch region {
	case controller.RegionSummary:
		m.pending = append(m.pending, m.setFocus(focusSummary))
		m.summaryView.GotoTop()
	case controller.RegionFlashcards:
		m.pending = append(m.pending, m.setFocus(focusFlashcards))
	case controller.RegionChat:
		m.chatFollow = true
	case controller.RegionExtracted:
		// the Upload pane shows the note as soon as one exists
	}
}

func (m *model) Reload(after time.Duration) {
	log.Printf("[tui] reloading session in %s", after)
	m.pending = append(m.pending, reloadCmd(m.ctrl.Store().ID(), after))
}

func (m *model) Navigate(page backend.NativePage) {
	sessionID := m.ctrl.Store().ID()
	m.pending = append(m.pending, func() tea.Msg {
		return navigateMsg{sessionID: sessionID, page: page}
	})
}

func toastExpiryCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func reloadCmd(sessionID string, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return reloadMsg{sessionID: sessionID}
	})
}
