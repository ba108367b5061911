package tui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/studyscout/internal/backend"
	"github.com/csheth/studyscout/internal/controller"
)

const defaultToastDuration = 5 * time.Second

// Config wires runtime options into the TUI program.
type Config struct {
	Client         backend.Client
	BaseURL        string
	RequestTimeout time.Duration
	ReloadDelay    time.Duration
	ToastDuration  time.Duration
	// OpenDocument overrides local file validation; nil uses document.Open.
	OpenDocument func(path string) (backend.Document, error)
	Now          func() time.Time
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.ToastDuration <= 0 {
		config.ToastDuration = defaultToastDuration
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	documentInput := textinput.New()
	documentInput.Placeholder = documentPlaceholder
	documentInput.CharLimit = 512
	documentInput.Width = 70

	textInput := textarea.New()
	textInput.Placeholder = textPlaceholder
	textInput.ShowLineNumbers = false
	textInput.CharLimit = 0
	textInput.SetWidth(70)
	textInput.SetHeight(6)

	questionInput := textinput.New()
	questionInput.Placeholder = questionPlaceholder
	questionInput.CharLimit = 500
	questionInput.Width = 70

	apiKeyInput := textinput.New()
	apiKeyInput.Placeholder = apiKeyPlaceholder
	apiKeyInput.EchoMode = textinput.EchoPassword
	apiKeyInput.EchoCharacter = '•'
	apiKeyInput.CharLimit = 200
	apiKeyInput.Width = 50

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	summaryView := viewport.New(80, 12)
	summaryView.MouseWheelEnabled = true
	chatView := viewport.New(80, 10)
	chatView.MouseWheelEnabled = true

	m := &model{
		config:        config,
		keys:          newKeyMap(),
		bus:           newJobBus(),
		layout:        newPageLayout(),
		documentInput: documentInput,
		textInput:     textInput,
		questionInput: questionInput,
		apiKeyInput:   apiKeyInput,
		spinner:       spin,
		summaryView:   summaryView,
		chatView:      chatView,
	}
	m.mount()
	return m
}

type model struct {
	config Config
	ctrl   *controller.Controller
	keys   keyMap
	bus    *jobBus
	layout pageLayout
	focus  focus

	documentInput textinput.Model
	textInput     textarea.Model
	questionInput textinput.Model
	apiKeyInput   textinput.Model
	spinner       spinner.Model
	summaryView   viewport.Model
	chatView      viewport.Model

	useContext  bool
	helpVisible bool
	chatFollow  bool
	toasts      []toast
	toastSeq    int
	jobs        map[string]jobSnapshot
	nativePage  *backend.NativePage

	// pending collects commands requested through the Surface while a
	// controller call is running; Update flushes them.
	pending []tea.Cmd
}

type toastExpiredMsg struct {
	id int
}

type reloadMsg struct {
	sessionID string
}

type navigateMsg struct {
	sessionID string
	page      backend.NativePage
}

// mount discards the current session and starts a fresh one, the way a page
// reload would.
func (m *model) mount() {
	m.ctrl = controller.New(controller.Config{
		Client:         m.config.Client,
		Surface:        m,
		RequestTimeout: m.config.RequestTimeout,
		ReloadDelay:    m.config.ReloadDelay,
		Now:            m.config.Now,
		OpenDocument:   m.config.OpenDocument,
	})
	m.documentInput.Reset()
	m.textInput.Reset()
	m.questionInput.Reset()
	m.apiKeyInput.Reset()
	m.summaryView.SetContent("")
	m.summaryView.GotoTop()
	m.chatView.SetContent("")
	m.chatView.GotoTop()
	m.useContext = true
	m.chatFollow = false
	m.toasts = nil
	m.jobs = map[string]jobSnapshot{}
	m.nativePage = nil
	m.setFocus(focusDocument)
	log.Printf("[tui] mounted session %s", m.ctrl.Store().ID())
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, textarea.Blink)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncViewports()
	pending := m.flushPending()
	if len(pending) == 0 {
		return m, cmd
	}
	return m, tea.Batch(append([]tea.Cmd{cmd}, pending...)...)
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.ctrl.Store().Busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return cmd
		}
		return nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		switch m.focus {
		case focusSummary:
			m.summaryView, cmd = m.summaryView.Update(msg)
		case focusChat:
			m.chatView, cmd = m.chatView.Update(msg)
		}
		return cmd
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return nil
	case jobSignalMsg:
		m.jobs[msg.Snapshot.ID] = msg.Snapshot
		return nil
	case jobResultMsg:
		delete(m.jobs, msg.Snapshot.ID)
		if !m.ctrl.Complete(msg.Result) {
			log.Printf("[tui] result for %s ignored", msg.Snapshot.ID)
		}
		return nil
	case toastExpiredMsg:
		m.dismissToast(msg.id)
		return nil
	case reloadMsg:
		if msg.sessionID != m.ctrl.Store().ID() {
			return nil
		}
		m.mount()
		return nil
	case navigateMsg:
		if msg.sessionID != m.ctrl.Store().ID() {
			return nil
		}
		m.openNativePage(msg.page)
		return nil
	}
	return nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.NextPane):
		return m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.PrevPane):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.SubmitDocument):
		return m.dispatch(controller.SubmitDocument{Path: m.documentInput.Value()})
	case key.Matches(msg, m.keys.SubmitText):
		return m.dispatch(controller.SubmitText{Text: m.textInput.Value()})
	case key.Matches(msg, m.keys.ToggleContext):
		m.useContext = !m.useContext
		return nil
	}

	if m.focus.acceptsText() {
		if key.Matches(msg, m.keys.Submit) && m.focus != focusText {
			return m.submitFocused()
		}
		return m.updateFocusedInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Summary):
		return m.dispatch(controller.GenerateSummary{})
	case key.Matches(msg, m.keys.Flashcards):
		return m.dispatch(controller.GenerateFlashcards{})
	case key.Matches(msg, m.keys.Submit):
		if m.focus == focusSummary {
			return m.dispatch(controller.GenerateSummary{})
		}
		return m.dispatch(controller.GenerateFlashcards{})
	case key.Matches(msg, m.keys.PrevCard):
		return m.dispatch(controller.PreviousCard{})
	case key.Matches(msg, m.keys.NextCard):
		return m.dispatch(controller.NextCard{})
	case key.Matches(msg, m.keys.ToggleAnswer):
		return m.dispatch(controller.ToggleAnswer{})
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return nil
	}

	if m.focus == focusSummary {
		var cmd tea.Cmd
		m.summaryView, cmd = m.summaryView.Update(msg)
		return cmd
	}
	return nil
}

func (m *model) submitFocused() tea.Cmd {
	switch m.focus {
	case focusDocument:
		return m.dispatch(controller.SubmitDocument{Path: m.documentInput.Value()})
	case focusChat:
		return m.dispatch(controller.AskQuestion{Question: m.questionInput.Value(), UseContext: m.useContext})
	case focusSettings:
		return m.dispatch(controller.UpdateAPIKey{Key: m.apiKeyInput.Value()})
	default:
		return nil
	}
}

func (m *model) updateFocusedInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusDocument:
		m.documentInput, cmd = m.documentInput.Update(msg)
	case focusText:
		m.textInput, cmd = m.textInput.Update(msg)
	case focusChat:
		if msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown {
			m.chatView, cmd = m.chatView.Update(msg)
			return cmd
		}
		m.questionInput, cmd = m.questionInput.Update(msg)
	case focusSettings:
		m.apiKeyInput, cmd = m.apiKeyInput.Update(msg)
	}
	return cmd
}

// dispatch hands ev to the controller and starts the returned job, if any.
func (m *model) dispatch(ev controller.Event) tea.Cmd {
	wasBusy := m.ctrl.Store().Busy()
	job, err := m.ctrl.Dispatch(ev)
	if err != nil {
		log.Printf("[tui] %T not dispatched: %v", ev, err)
		return nil
	}
	if job == nil {
		return nil
	}
	cmds := []tea.Cmd{m.bus.Start(job)}
	if !wasBusy {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.documentInput.Blur()
	m.textInput.Blur()
	m.questionInput.Blur()
	m.apiKeyInput.Blur()
	switch f {
	case focusDocument:
		return m.documentInput.Focus()
	case focusText:
		return m.textInput.Focus()
	case focusChat:
		return m.questionInput.Focus()
	case focusSettings:
		return m.apiKeyInput.Focus()
	}
	return nil
}

func (m *model) resize(width, height int) {
	m.layout.Update(width, height)
	m.summaryView.Width = m.layout.viewportWidth
	m.summaryView.Height = m.layout.viewportHeight
	m.chatView.Width = m.layout.viewportWidth
	m.chatView.Height = m.layout.chatHeight
	m.documentInput.Width = m.layout.inputWidth
	m.questionInput.Width = m.layout.inputWidth
	m.textInput.SetWidth(m.layout.inputWidth)
	m.textInput.SetHeight(m.layout.textHeight)
}

// openNativePage replaces the session with the page a direct upload returned.
// When the page carried an extracted note the new session starts with it.
func (m *model) openNativePage(page backend.NativePage) {
	m.mount()
	m.nativePage = &page
	if page.Note != nil {
		m.ctrl.Store().ReplaceNote(page.Note.NoteID, page.Note.Text)
		m.Notify(controller.Notification{Level: controller.LevelInfo, Message: "Upload processed. Your content is ready."})
		return
	}
	m.Notify(controller.Notification{Level: controller.LevelError, Message: "The server returned a page without extracted content."})
}

func (m *model) dismissToast(id int) {
	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

func (m *model) flushPending() []tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	pending := m.pending
	m.pending = nil
	return pending
}
