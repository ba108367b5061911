package tui

import (
	"time"

	"github.com/csheth/studyscout/internal/controller"
)

// focus is one stop on the tab ring. The Upload pane owns two stops.
type focus int

const (
	focusDocument focus = iota
	focusText
	focusSummary
	focusFlashcards
	focusChat
	focusSettings
	focusCount
)

type pane int

const (
	paneUpload pane = iota
	paneSummary
	paneFlashcards
	paneChat
	paneSettings
)

var paneSequence = []pane{paneUpload, paneSummary, paneFlashcards, paneChat, paneSettings}

func (f focus) pane() pane {
	switch f {
	case focusDocument, focusText:
		return paneUpload
	case focusSummary:
		return paneSummary
	case focusFlashcards:
		return paneFlashcards
	case focusChat:
		return paneChat
	default:
		return paneSettings
	}
}

// acceptsText reports whether the focused stop owns a text input, in which
// case single-letter shortcuts are typed instead of triggered.
func (f focus) acceptsText() bool {
	switch f {
	case focusDocument, focusText, focusChat, focusSettings:
		return true
	default:
		return false
	}
}

func paneTitle(p pane) string {
	switch p {
	case paneUpload:
		return "Upload"
	case paneSummary:
		return "Summary"
	case paneFlashcards:
		return "Flashcards"
	case paneChat:
		return "Chat"
	default:
		return "Settings"
	}
}

const heroTitle = "StudyScout"

const heroTagline = "Turn lecture notes into summaries, flashcards and answers."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	extractedPreviewLimit     = 600
	nativeBodyPreviewLimit    = 240
	maxVisibleToasts          = 3
)

const (
	documentPlaceholder = "Path to a PDF, e.g. ~/lectures/week1.pdf"
	textPlaceholder     = "Paste lecture notes here…"
	questionPlaceholder = "Ask a question about your notes…"
	apiKeyPlaceholder   = "New API key"
)

type toast struct {
	ID       int
	Level    controller.Level
	Message  string
	PostedAt time.Time
}
