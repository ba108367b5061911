package controller

import (
	"context"
	"log"
	"time"

	"github.com/csheth/studyscout/internal/backend"
	"github.com/csheth/studyscout/internal/document"
	"github.com/csheth/studyscout/internal/session"
	"github.com/csheth/studyscout/internal/view"
)

const (
	defaultRequestTimeout = 2 * time.Minute
	defaultReloadDelay    = 2000 * time.Millisecond
)

// Level grades a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notification is a user-visible message.
type Notification struct {
	Level   Level
	Message string
}

// Field names an input the controller may clear after a successful submit.
type Field int

const (
	FieldDocument Field = iota
	FieldText
	FieldQuestion
	FieldAPIKey
)

// Region names a display region that can be revealed or scrolled into view.
type Region int

const (
	RegionExtracted Region = iota
	RegionSummary
	RegionFlashcards
	RegionChat
)

// Surface is the display the controllers drive. Every method is called on the
// goroutine that owns the store.
type Surface interface {
	Notify(Notification)
	ClearInput(Field)
	Reveal(Region)
	// Reload discards the whole session after the delay.
	Reload(after time.Duration)
	// Navigate replaces the session with the page a native submission returned.
	Navigate(page backend.NativePage)
}

// Config wires a Controller.
type Config struct {
	Client         backend.Client
	Surface        Surface
	RequestTimeout time.Duration
	ReloadDelay    time.Duration
	// Now stamps transcript turns; defaults to time.Now.
	Now func() time.Time
	// OpenDocument validates upload paths; defaults to document.Open.
	OpenDocument func(path string) (backend.Document, error)
}

// Controller owns one session and maps user events onto it.
type Controller struct {
	store          *session.Store
	client         backend.Client
	surface        Surface
	chat           *view.ChatRenderer
	now            func() time.Time
	openDocument   func(string) (backend.Document, error)
	requestTimeout time.Duration
	reloadDelay    time.Duration
}

// New returns a controller bound to a fresh session.
func New(cfg Config) *Controller {
	c := &Controller{
		store:          session.New(),
		client:         cfg.Client,
		surface:        cfg.Surface,
		now:            cfg.Now,
		openDocument:   cfg.OpenDocument,
		requestTimeout: cfg.RequestTimeout,
		reloadDelay:    cfg.ReloadDelay,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.openDocument == nil {
		c.openDocument = openLocalDocument
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = defaultRequestTimeout
	}
	if c.reloadDelay <= 0 {
		c.reloadDelay = defaultReloadDelay
	}
	c.chat = view.NewChatRenderer(func() { c.surface.Reveal(RegionChat) })
	return c
}

func openLocalDocument(path string) (backend.Document, error) {
	f, err := document.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Store exposes the session for read-only projections.
func (c *Controller) Store() *session.Store { return c.store }

// Chat returns the rendered transcript nodes.
func (c *Controller) Chat() []view.ChatNode { return c.chat.Nodes() }

// Page projects the session into its view model.
func (c *Controller) Page() view.Page { return view.Build(c.store) }

// Job is one outstanding backend round trip. Run is safe to call from any
// goroutine because it never touches the session.
type Job struct {
	Action    session.Action
	SessionID string
	Token     uint64

	timeout time.Duration
	run     func(ctx context.Context) (any, error)
	apply   func(c *Controller, payload any, err error)
}

// Result is a finished job waiting to be applied with Complete.
type Result struct {
	Action    session.Action
	SessionID string
	Token     uint64
	Payload   any
	Err       error

	apply func(c *Controller, payload any, err error)
}

// Run performs the round trip under the job's timeout.
func (j *Job) Run(parent context.Context) Result {
	ctx, cancel := context.WithTimeout(parent, j.timeout)
	defer cancel()
	payload, err := j.run(ctx)
	return Result{
		Action:    j.Action,
		SessionID: j.SessionID,
		Token:     j.Token,
		Payload:   payload,
		Err:       err,
		apply:     j.apply,
	}
}

// Complete applies a finished job. Results from a previous session or with a
// superseded token are dropped and Complete reports false.
func (c *Controller) Complete(res Result) bool {
	if res.SessionID != c.store.ID() {
		log.Printf("[controller] dropping %s result from session %s", res.Action, res.SessionID)
		return false
	}
	if !c.store.Finish(res.Action, res.Token) {
		log.Printf("[controller] dropping stale %s result (token=%d)", res.Action, res.Token)
		return false
	}
	if res.apply != nil {
		res.apply(c, res.Payload, res.Err)
	}
	return true
}

// Run dispatches ev and, when it needs the backend, performs and applies the
// round trip synchronously.
func (c *Controller) Run(ctx context.Context, ev Event) error {
	job, err := c.Dispatch(ev)
	if err != nil || job == nil {
		return err
	}
	res := job.Run(ctx)
	c.Complete(res)
	return res.Err
}

// startJob claims the in-flight slot for action and builds the job.
func (c *Controller) startJob(action session.Action, run func(context.Context) (any, error), apply func(*Controller, any, error)) (*Job, error) {
	token, ok := c.store.Begin(action)
	if !ok {
		c.notify(LevelInfo, inFlightMessage(action))
		return nil, ErrInFlight
	}
	return &Job{
		Action:    action,
		SessionID: c.store.ID(),
		Token:     token,
		timeout:   c.requestTimeout,
		run:       run,
		apply:     apply,
	}, nil
}

func (c *Controller) notify(level Level, message string) {
	c.surface.Notify(Notification{Level: level, Message: message})
}

func (c *Controller) appendTurn(role session.Role, message string) {
	turn := c.store.AppendTurn(role, message, c.now())
	c.chat.Append(turn)
}
