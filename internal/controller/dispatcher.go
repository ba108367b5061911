package controller

import "fmt"

// Event is a discrete user action.
type Event interface {
	isEvent()
}

type (
	// SubmitDocument uploads the file at Path.
	SubmitDocument struct{ Path string }
	// SubmitText uploads pasted text.
	SubmitText struct{ Text string }
	// GenerateSummary summarizes the current note.
	GenerateSummary struct{}
	// GenerateFlashcards builds a deck from the current note.
	GenerateFlashcards struct{}
	// NextCard pages forward through the deck.
	NextCard struct{}
	// PreviousCard pages back through the deck.
	PreviousCard struct{}
	// ToggleAnswer shows or hides the current card's answer.
	ToggleAnswer struct{}
	// AskQuestion sends a question, with the note as context when UseContext is set.
	AskQuestion struct {
		Question   string
		UseContext bool
	}
	// UpdateAPIKey replaces the backend credential.
	UpdateAPIKey struct{ Key string }
)

func (SubmitDocument) isEvent()     {}
func (SubmitText) isEvent()         {}
func (GenerateSummary) isEvent()    {}
func (GenerateFlashcards) isEvent() {}
func (NextCard) isEvent()           {}
func (PreviousCard) isEvent()       {}
func (ToggleAnswer) isEvent()       {}
func (AskQuestion) isEvent()        {}
func (UpdateAPIKey) isEvent()       {}

// Dispatch routes ev to its handler. Handlers that need the backend return a
// Job to run off the UI goroutine; purely local events return a nil Job.
// Rejected events have already been reported through the Surface.
func (c *Controller) Dispatch(ev Event) (*Job, error) {
	switch ev := ev.(type) {
	case SubmitDocument:
		return c.submitDocument(ev.Path)
	case SubmitText:
		return c.submitText(ev.Text)
	case GenerateSummary:
		return c.generateSummary()
	case GenerateFlashcards:
		return c.generateFlashcards()
	case NextCard:
		c.store.Deck().Next()
		return nil, nil
	case PreviousCard:
		c.store.Deck().Previous()
		return nil, nil
	case ToggleAnswer:
		c.store.Deck().ToggleAnswer()
		return nil, nil
	case AskQuestion:
		return c.askQuestion(ev.Question, ev.UseContext)
	case UpdateAPIKey:
		return c.updateAPIKey(ev.Key)
	default:
		return nil, fmt.Errorf("unsupported event %T", ev)
	}
}

func (c *Controller) reject(message string) error {
	c.notify(LevelError, message)
	return &ValidationError{Message: message}
}
