package controller

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/csheth/studyscout/internal/backend"
	"github.com/csheth/studyscout/internal/session"
)

type fakeDocument struct{ name string }

func (d fakeDocument) Name() string        { return d.name }
func (d fakeDocument) ContentType() string { return "application/pdf" }
func (d fakeDocument) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("%PDF")), nil
}

type fakeBackend struct {
	uploadResult backend.UploadResult
	uploadErr    error
	nativePage   backend.NativePage
	summary      string
	cards        []session.Flashcard
	answer       string
	err          error

	uploads       int
	nativeUploads int
	textUploads   int
	summaryText   string
	question      string
	context       *string
	apiKey        string
}

func (f *fakeBackend) UploadDocument(ctx context.Context, doc backend.Document) (backend.UploadResult, error) {
	f.uploads++
	return f.uploadResult, f.uploadErr
}

func (f *fakeBackend) SubmitDocumentForm(ctx context.Context, doc backend.Document) (backend.NativePage, error) {
	f.nativeUploads++
	return f.nativePage, f.err
}

func (f *fakeBackend) UploadText(ctx context.Context, text string) (backend.UploadResult, error) {
	f.textUploads++
	return f.uploadResult, f.uploadErr
}

func (f *fakeBackend) GenerateSummary(ctx context.Context, text string) (string, error) {
	f.summaryText = text
	return f.summary, f.err
}

func (f *fakeBackend) GenerateFlashcards(ctx context.Context, text string) ([]session.Flashcard, error) {
	return f.cards, f.err
}

func (f *fakeBackend) AskQuestion(ctx context.Context, question string, context *string) (string, error) {
	f.question = question
	f.context = context
	return f.answer, f.err
}

func (f *fakeBackend) UpdateAPIKey(ctx context.Context, apiKey string) error {
	f.apiKey = apiKey
	return f.err
}

type recordingSurface struct {
	notes    []Notification
	cleared  []Field
	revealed []Region
	reloads  []time.Duration
	pages    []backend.NativePage
}

func (s *recordingSurface) Notify(n Notification)            { s.notes = append(s.notes, n) }
func (s *recordingSurface) ClearInput(f Field)               { s.cleared = append(s.cleared, f) }
func (s *recordingSurface) Reveal(r Region)                  { s.revealed = append(s.revealed, r) }
func (s *recordingSurface) Reload(after time.Duration)       { s.reloads = append(s.reloads, after) }
func (s *recordingSurface) Navigate(page backend.NativePage) { s.pages = append(s.pages, page) }

func (s *recordingSurface) lastMessage() string {
	if len(s.notes) == 0 {
		return ""
	}
	return s.notes[len(s.notes)-1].Message
}

func newTestController(t *testing.T, fb *fakeBackend) (*Controller, *recordingSurface) {
	t.Helper()
	surface := &recordingSurface{}
	c := New(Config{
		Client:  fb,
		Surface: surface,
		Now:     func() time.Time { return time.Date(2024, 1, 2, 10, 4, 0, 0, time.UTC) },
		OpenDocument: func(path string) (backend.Document, error) {
			if path == "" {
				return nil, errors.New("no document")
			}
			return fakeDocument{name: path}, nil
		},
	})
	return c, surface
}

func withNote(t *testing.T, c *Controller, fb *fakeBackend, text string) {
	t.Helper()
	saved := fb.uploadResult
	fb.uploadResult = backend.UploadResult{NoteID: "note-1", Text: text}
	if err := c.Run(context.Background(), SubmitText{Text: text}); err != nil {
		t.Fatalf("seed upload: %v", err)
	}
	fb.uploadResult = saved
}

func TestUploadSuccessReplacesNoteAndEnablesActions(t *testing.T) {
	fb := &fakeBackend{uploadResult: backend.UploadResult{NoteID: "n1", Text: "Cells divide."}}
	c, surface := newTestController(t, fb)
	if c.Page().Controls.SummaryEnabled {
		t.Fatal("content actions must start disabled")
	}

	if err := c.Run(context.Background(), SubmitDocument{Path: "bio.pdf"}); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if got := c.Store().Note(); got != (session.Note{ID: "n1", Text: "Cells divide."}) {
		t.Fatalf("note mismatch: %#v", got)
	}
	controls := c.Page().Controls
	if !controls.SummaryEnabled || !controls.FlashcardsEnabled || !controls.AskEnabled {
		t.Fatalf("actions not enabled: %#v", controls)
	}
	if len(surface.cleared) != 1 || surface.cleared[0] != FieldDocument {
		t.Fatalf("document input should clear, got %v", surface.cleared)
	}
	if fb.uploads != 1 || fb.nativeUploads != 0 {
		t.Fatalf("expected one programmatic upload, got %d/%d", fb.uploads, fb.nativeUploads)
	}
}

func TestEmptyTextUploadEnablesActions(t *testing.T) {
	fb := &fakeBackend{uploadResult: backend.UploadResult{NoteID: "scan-1", Text: ""}}
	c, surface := newTestController(t, fb)

	if err := c.Run(context.Background(), SubmitDocument{Path: "scan.pdf"}); err != nil {
		t.Fatalf("upload: %v", err)
	}
	page := c.Page()
	if !page.Controls.SummaryEnabled || !page.Controls.FlashcardsEnabled || !page.Controls.AskEnabled {
		t.Fatalf("actions not enabled: %#v", page.Controls)
	}
	if !page.ShowExtracted {
		t.Fatal("extracted region should be revealed")
	}

	err := c.Run(context.Background(), GenerateSummary{})
	var validation *ValidationError
	if !errors.As(err, &validation) || surface.lastMessage() != msgNeedSummaryNote {
		t.Fatalf("summary of empty text should fail fast, got %v (%q)", err, surface.lastMessage())
	}
	if fb.summaryText != "" {
		t.Fatalf("no summary request expected, got %q", fb.summaryText)
	}
}

func TestUploadFailureKeepsPriorNote(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{name: "server detail", err: &backend.APIError{Status: 500, Detail: "Extraction failed"}, message: "Extraction failed"},
		{name: "server without detail", err: &backend.APIError{Status: 500}, message: "Failed to upload PDF"},
		{name: "transport", err: backend.ErrTransport, message: "An error occurred while uploading the PDF. Please try the alternative upload method below."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb := &fakeBackend{}
			c, surface := newTestController(t, fb)
			withNote(t, c, fb, "original")
			before := c.Store().Note()

			fb.uploadErr = tc.err
			if err := c.Run(context.Background(), SubmitDocument{Path: "x.pdf"}); err == nil {
				t.Fatal("expected upload error")
			}
			if c.Store().Note() != before {
				t.Fatalf("note changed on failure: %#v", c.Store().Note())
			}
			if surface.lastMessage() != tc.message {
				t.Fatalf("message mismatch: got %q want %q", surface.lastMessage(), tc.message)
			}
			if c.Store().UploadMode() != session.UploadProgrammatic {
				t.Fatal("ordinary failures must not switch modes")
			}
		})
	}
}

func TestNoFileProvidedSwitchesToDirectForGood(t *testing.T) {
	fb := &fakeBackend{uploadErr: &backend.APIError{Status: 400, Detail: "No file provided"}}
	c, surface := newTestController(t, fb)

	_ = c.Run(context.Background(), SubmitDocument{Path: "a.pdf"})
	if c.Store().UploadMode() != session.UploadDirect {
		t.Fatal("expected direct mode after no-file failure")
	}
	if surface.lastMessage() != msgUploadFallback {
		t.Fatalf("expected guidance message, got %q", surface.lastMessage())
	}
	if c.Store().HasNote() {
		t.Fatal("failed upload must not set a note")
	}

	fb.uploadErr = nil
	withNote(t, c, fb, "typed notes")
	fb.summary = "ok"
	if err := c.Run(context.Background(), GenerateSummary{}); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if c.Store().UploadMode() != session.UploadDirect {
		t.Fatal("direct mode must survive later successful actions")
	}

	fb.nativePage = backend.NativePage{Status: 200}
	if err := c.Run(context.Background(), SubmitDocument{Path: "b.pdf"}); err != nil {
		t.Fatalf("native submit: %v", err)
	}
	if fb.uploads != 1 || fb.nativeUploads != 1 {
		t.Fatalf("direct mode must stop programmatic uploads: %d programmatic, %d native", fb.uploads, fb.nativeUploads)
	}
	if len(surface.pages) != 1 {
		t.Fatalf("native submission should navigate, got %d pages", len(surface.pages))
	}
}

func TestTextUploadHasNoFallbackSwitch(t *testing.T) {
	fb := &fakeBackend{uploadErr: &backend.APIError{Status: 400, Detail: "No file provided"}}
	c, surface := newTestController(t, fb)
	_ = c.Run(context.Background(), SubmitText{Text: "hello"})
	if c.Store().UploadMode() != session.UploadProgrammatic {
		t.Fatal("text uploads never switch modes")
	}
	if surface.lastMessage() != "No file provided" {
		t.Fatalf("unexpected message %q", surface.lastMessage())
	}
}

func TestValidationIssuesNoRequest(t *testing.T) {
	fb := &fakeBackend{}
	c, surface := newTestController(t, fb)
	cases := []struct {
		ev      Event
		message string
	}{
		{SubmitDocument{Path: ""}, msgSelectDocument},
		{SubmitText{Text: "   \n"}, msgEnterText},
		{GenerateSummary{}, msgNeedSummaryNote},
		{GenerateFlashcards{}, msgNeedCardsNote},
		{AskQuestion{Question: "  "}, msgEnterQuestion},
		{AskQuestion{Question: "Why?"}, msgNeedQuestionNote},
		{UpdateAPIKey{Key: " "}, msgEnterAPIKey},
	}
	for _, tc := range cases {
		job, err := c.Dispatch(tc.ev)
		var verr *ValidationError
		if job != nil || !errors.As(err, &verr) {
			t.Fatalf("%T: expected validation error, got job=%v err=%v", tc.ev, job, err)
		}
		if surface.lastMessage() != tc.message {
			t.Fatalf("%T: message mismatch: got %q want %q", tc.ev, surface.lastMessage(), tc.message)
		}
	}
	if fb.uploads+fb.textUploads != 0 || fb.summaryText != "" || fb.question != "" || fb.apiKey != "" {
		t.Fatal("validation failures must not reach the backend")
	}
	if c.Store().TranscriptLen() != 0 {
		t.Fatal("rejected questions must not be appended")
	}
}

func TestSummarySendsNoteTextAndReplacesOutput(t *testing.T) {
	fb := &fakeBackend{}
	c, surface := newTestController(t, fb)
	withNote(t, c, fb, "Hello\n\nWorld")

	fb.summary = "First"
	if err := c.Run(context.Background(), GenerateSummary{}); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if fb.summaryText != "Hello\n\nWorld" {
		t.Fatalf("summary request text mismatch: %q", fb.summaryText)
	}
	fb.summary = "Second"
	_ = c.Run(context.Background(), GenerateSummary{})
	if c.Store().Summary() != "Second" {
		t.Fatalf("regeneration should replace output, got %q", c.Store().Summary())
	}
	if len(c.Page().Summary) != 1 {
		t.Fatalf("summary view not built: %#v", c.Page().Summary)
	}
	if surface.revealed[len(surface.revealed)-1] != RegionSummary {
		t.Fatal("summary region should be revealed")
	}
}

func TestFlashcardsReplaceDeckAndResetCursor(t *testing.T) {
	fb := &fakeBackend{cards: []session.Flashcard{{Question: "Q1", Answer: "A1"}, {Question: "Q2", Answer: "A2"}}}
	c, _ := newTestController(t, fb)
	withNote(t, c, fb, "notes")

	if err := c.Run(context.Background(), GenerateFlashcards{}); err != nil {
		t.Fatalf("flashcards: %v", err)
	}
	page := c.Page()
	if !page.HasCard || page.Card.Pagination != "Card 1 of 2" || page.Card.PrevEnabled || !page.Card.NextEnabled {
		t.Fatalf("unexpected initial card view: %#v", page.Card)
	}

	_ = c.Run(context.Background(), NextCard{})
	_ = c.Run(context.Background(), NextCard{})
	if c.Store().Deck().Cursor() != 1 {
		t.Fatalf("cursor should stop at the last card, got %d", c.Store().Deck().Cursor())
	}
	_ = c.Run(context.Background(), ToggleAnswer{})
	if !c.Page().Card.AnswerVisible {
		t.Fatal("toggle should reveal the answer")
	}

	fb.cards = []session.Flashcard{{Question: "Q9", Answer: "A9"}}
	_ = c.Run(context.Background(), GenerateFlashcards{})
	if c.Store().Deck().Cursor() != 0 || c.Store().Deck().Len() != 1 || c.Page().Card.AnswerVisible {
		t.Fatalf("new deck should replace the old one at cursor 0: %#v", c.Page().Card)
	}

	_ = c.Run(context.Background(), PreviousCard{})
	if c.Store().Deck().Cursor() != 0 {
		t.Fatal("previous at cursor 0 is a no-op")
	}
}

func TestFlashcardFailureKeepsDeck(t *testing.T) {
	fb := &fakeBackend{cards: []session.Flashcard{{Question: "Q1", Answer: "A1"}}}
	c, surface := newTestController(t, fb)
	withNote(t, c, fb, "notes")
	_ = c.Run(context.Background(), GenerateFlashcards{})

	fb.err = &backend.APIError{Status: 500, Detail: "Model overloaded"}
	_ = c.Run(context.Background(), GenerateFlashcards{})
	if c.Store().Deck().Len() != 1 {
		t.Fatal("failed generation must keep the previous deck")
	}
	if surface.lastMessage() != "Model overloaded" {
		t.Fatalf("unexpected message %q", surface.lastMessage())
	}
}

func TestQuestionContextToggle(t *testing.T) {
	fb := &fakeBackend{answer: "Because."}
	c, _ := newTestController(t, fb)
	withNote(t, c, fb, "Lecture notes")

	_ = c.Run(context.Background(), AskQuestion{Question: "Why?", UseContext: true})
	if fb.context == nil || *fb.context != "Lecture notes" {
		t.Fatalf("context should be the note text, got %v", fb.context)
	}
	_ = c.Run(context.Background(), AskQuestion{Question: "Why not?", UseContext: false})
	if fb.context != nil {
		t.Fatalf("context should be null when the toggle is off, got %q", *fb.context)
	}
}

func TestQuestionTranscriptIsAppendOnly(t *testing.T) {
	fb := &fakeBackend{answer: "Line one\n\nLine two"}
	c, surface := newTestController(t, fb)
	withNote(t, c, fb, "notes")

	job, err := c.Dispatch(AskQuestion{Question: "  First?  "})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if c.Store().TranscriptLen() != 1 {
		t.Fatal("user turn should be appended before the response")
	}
	c.Complete(job.Run(context.Background()))
	if c.Store().TranscriptLen() != 2 {
		t.Fatalf("assistant turn missing, got %d turns", c.Store().TranscriptLen())
	}

	fb.err = backend.ErrTransport
	_ = c.Run(context.Background(), AskQuestion{Question: "Second?"})
	turns := c.Store().Transcript()
	if len(turns) != 3 {
		t.Fatalf("failed answer keeps the user turn only, got %d turns", len(turns))
	}
	if turns[0].Message != "First?" || turns[1].Role != session.RoleAssistant || turns[2].Message != "Second?" {
		t.Fatalf("transcript reordered or rewritten: %#v", turns)
	}
	if surface.lastMessage() != "An error occurred while answering the question." {
		t.Fatalf("unexpected message %q", surface.lastMessage())
	}
	nodes := c.Chat()
	if len(nodes) != 3 || nodes[1].Label != "AI Assistant" || len(nodes[1].Blocks) != 3 {
		t.Fatalf("chat nodes not rendered: %#v", nodes)
	}
	chatScrolls := 0
	for _, r := range surface.revealed {
		if r == RegionChat {
			chatScrolls++
		}
	}
	if chatScrolls != 3 {
		t.Fatalf("chat should scroll after every append, got %d", chatScrolls)
	}
	cleared := 0
	for _, f := range surface.cleared {
		if f == FieldQuestion {
			cleared++
		}
	}
	if cleared != 1 {
		t.Fatalf("question input clears only on success, got %d", cleared)
	}
}

func TestInFlightGuardRejectsDuplicates(t *testing.T) {
	fb := &fakeBackend{summary: "s"}
	c, surface := newTestController(t, fb)
	withNote(t, c, fb, "notes")

	first, err := c.Dispatch(GenerateSummary{})
	if err != nil {
		t.Fatalf("first dispatch: %v", err)
	}
	if !c.Page().Controls.SummaryBusy {
		t.Fatal("summary should be marked busy")
	}
	if _, err := c.Dispatch(GenerateSummary{}); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}
	if surface.notes[len(surface.notes)-1].Level != LevelInfo {
		t.Fatal("duplicate trigger should produce an info notification")
	}
	if !c.Complete(first.Run(context.Background())) {
		t.Fatal("first result should apply")
	}
	if _, err := c.Dispatch(GenerateSummary{}); err != nil {
		t.Fatalf("slot should be free again: %v", err)
	}
}

func TestQuestionInFlightDoesNotAppendTurn(t *testing.T) {
	fb := &fakeBackend{answer: "a"}
	c, _ := newTestController(t, fb)
	withNote(t, c, fb, "notes")
	if _, err := c.Dispatch(AskQuestion{Question: "one"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if _, err := c.Dispatch(AskQuestion{Question: "two"}); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}
	if c.Store().TranscriptLen() != 1 {
		t.Fatalf("rejected question must not be appended, got %d", c.Store().TranscriptLen())
	}
}

func TestResultsFromOtherSessionsAreDropped(t *testing.T) {
	fb := &fakeBackend{summary: "late"}
	c, _ := newTestController(t, fb)
	withNote(t, c, fb, "notes")
	job, _ := c.Dispatch(GenerateSummary{})
	res := job.Run(context.Background())
	res.SessionID = "previous-session"
	if c.Complete(res) {
		t.Fatal("result from another session should be dropped")
	}
	if c.Store().Summary() != "" {
		t.Fatal("dropped result must not mutate state")
	}
}

func TestSummaryForSupersededNoteIsDropped(t *testing.T) {
	fb := &fakeBackend{summary: "old summary"}
	c, surface := newTestController(t, fb)
	withNote(t, c, fb, "first note")
	job, _ := c.Dispatch(GenerateSummary{})
	withNote(t, c, fb, "second note")

	c.Complete(job.Run(context.Background()))
	if c.Store().Summary() != "" {
		t.Fatal("summary for a replaced note should not be shown")
	}
	if surface.lastMessage() != msgStaleSummary {
		t.Fatalf("unexpected message %q", surface.lastMessage())
	}
}

func TestAPIKeyUpdateReloadsAfterDelay(t *testing.T) {
	fb := &fakeBackend{}
	c, surface := newTestController(t, fb)

	if err := c.Run(context.Background(), UpdateAPIKey{Key: "  sk-new  "}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if fb.apiKey != "sk-new" {
		t.Fatalf("key should be trimmed, got %q", fb.apiKey)
	}
	if surface.lastMessage() != msgKeyUpdated || surface.notes[len(surface.notes)-1].Level != LevelSuccess {
		t.Fatalf("expected confirmation, got %#v", surface.notes)
	}
	if len(surface.cleared) != 1 || surface.cleared[0] != FieldAPIKey {
		t.Fatalf("key input should clear, got %v", surface.cleared)
	}
	if len(surface.reloads) != 1 || surface.reloads[0] != 2000*time.Millisecond {
		t.Fatalf("expected one reload after 2000ms, got %v", surface.reloads)
	}
}

func TestAPIKeyFailureDoesNotReload(t *testing.T) {
	fb := &fakeBackend{err: &backend.APIError{Status: 401, Detail: "Invalid API key"}}
	c, surface := newTestController(t, fb)
	_ = c.Run(context.Background(), UpdateAPIKey{Key: "bad"})
	if len(surface.reloads) != 0 {
		t.Fatal("failed update must not reload")
	}
	if surface.lastMessage() != "Invalid API key" {
		t.Fatalf("unexpected message %q", surface.lastMessage())
	}

	fb.err = &backend.APIError{Status: 500}
	_ = c.Run(context.Background(), UpdateAPIKey{Key: "bad"})
	if surface.lastMessage() != "Failed to update API key" {
		t.Fatalf("unexpected fallback %q", surface.lastMessage())
	}
}
