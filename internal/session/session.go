package session

import (
	"time"

	"github.com/google/uuid"
)

// Note is the content every downstream action works on.
type Note struct {
	ID   string
	Text string
}

// Role identifies who produced a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the chat transcript.
type Turn struct {
	Role      Role
	Message   string
	Timestamp time.Time
}

// UploadMode governs how the next document upload is carried out.
type UploadMode int

const (
	// UploadProgrammatic streams the document from the client.
	UploadProgrammatic UploadMode = iota
	// UploadDirect hands the document to a native full-page submission.
	UploadDirect
)

func (m UploadMode) String() string {
	if m == UploadDirect {
		return "direct"
	}
	return "programmatic"
}

// Action names a user-triggered operation that owns at most one outstanding request.
type Action string

const (
	ActionUpload     Action = "upload"
	ActionSummary    Action = "summary"
	ActionFlashcards Action = "flashcards"
	ActionQuestion   Action = "question"
	ActionCredential Action = "credential"
)

// Store is the single source of truth for one session. It is not safe for
// concurrent use; the UI loop owns it.
type Store struct {
	id           string
	note         Note
	noteRevision int
	uploaded     bool
	summary      string
	deck         Deck
	transcript   []Turn
	uploadMode   UploadMode

	tokenSeq uint64
	flights  map[Action]uint64
}

// New returns an empty session with a fresh identifier.
func New() *Store {
	return &Store{
		id:      uuid.NewString(),
		flights: map[Action]uint64{},
	}
}

// ID identifies the session; it changes on every reload.
func (s *Store) ID() string { return s.id }

func (s *Store) Note() Note { return s.note }

// HasNote reports whether content-dependent actions may run.
func (s *Store) HasNote() bool { return s.note.Text != "" }

// HasUpload reports whether any upload has succeeded in this session, even
// one that extracted no text.
func (s *Store) HasUpload() bool { return s.uploaded }

// NoteRevision increments on every successful upload.
func (s *Store) NoteRevision() int { return s.noteRevision }

// ReplaceNote overwrites the current note wholesale.
func (s *Store) ReplaceNote(id, text string) {
	s.note = Note{ID: id, Text: text}
	s.noteRevision++
	s.uploaded = true
}

func (s *Store) Summary() string { return s.summary }

func (s *Store) SetSummary(summary string) { s.summary = summary }

// Deck returns the live deck so paging can move its cursor.
func (s *Store) Deck() *Deck { return &s.deck }

// ReplaceDeck swaps in a new deck with the cursor at the first card.
func (s *Store) ReplaceDeck(cards []Flashcard) {
	s.deck = NewDeck(cards)
}

// Transcript returns a copy of the chat history in append order.
func (s *Store) Transcript() []Turn {
	return append([]Turn(nil), s.transcript...)
}

func (s *Store) TranscriptLen() int { return len(s.transcript) }

// AppendTurn adds a turn to the end of the transcript and returns it.
func (s *Store) AppendTurn(role Role, message string, at time.Time) Turn {
	turn := Turn{Role: role, Message: message, Timestamp: at}
	s.transcript = append(s.transcript, turn)
	return turn
}

func (s *Store) UploadMode() UploadMode { return s.uploadMode }

// SwitchToDirect moves the session to direct submission. There is no way back.
func (s *Store) SwitchToDirect() { s.uploadMode = UploadDirect }

// Begin claims the in-flight slot for action. It reports false while a
// previous request for the same action is outstanding.
func (s *Store) Begin(action Action) (uint64, bool) {
	if _, busy := s.flights[action]; busy {
		return 0, false
	}
	s.tokenSeq++
	s.flights[action] = s.tokenSeq
	return s.tokenSeq, true
}

// Finish releases the slot if token is still the current one for action.
// A false result marks the completion as stale.
func (s *Store) Finish(action Action, token uint64) bool {
	current, ok := s.flights[action]
	if !ok || current != token {
		return false
	}
	delete(s.flights, action)
	return true
}

func (s *Store) InFlight(action Action) bool {
	_, busy := s.flights[action]
	return busy
}

// Busy reports whether any request is outstanding.
func (s *Store) Busy() bool { return len(s.flights) > 0 }
