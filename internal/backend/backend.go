package backend

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/csheth/studyscout/internal/session"
)

const defaultHTTPTimeout = 2 * time.Minute

// Config describes how to reach the study-assistant backend.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout bounds each request when HTTPClient is nil.
	Timeout time.Duration
}

// Document is a file the user picked for upload.
type Document interface {
	Name() string
	ContentType() string
	Open() (io.ReadCloser, error)
}

// UploadResult is the note the backend extracted from an upload.
type UploadResult struct {
	NoteID string `json:"note_id"`
	Text   string `json:"text"`
}

// NativePage is what a native form submission navigated to.
type NativePage struct {
	Status int
	// Note is set when the page body decoded as an upload result.
	Note *UploadResult
	Body string
}

// Client exposes the backend endpoints consumed by the study session.
type Client interface {
	UploadDocument(ctx context.Context, doc Document) (UploadResult, error)
	SubmitDocumentForm(ctx context.Context, doc Document) (NativePage, error)
	UploadText(ctx context.Context, text string) (UploadResult, error)
	GenerateSummary(ctx context.Context, text string) (string, error)
	GenerateFlashcards(ctx context.Context, text string) ([]session.Flashcard, error)
	AskQuestion(ctx context.Context, question string, context *string) (string, error)
	UpdateAPIKey(ctx context.Context, apiKey string) error
}

// New returns an HTTP client rooted at cfg.BaseURL.
func New(cfg Config) Client {
	return &httpClient{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		client: pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	// Generation endpoints call an LLM; rely on the caller's context for shorter deadlines.
	return &http.Client{Timeout: timeout}
}
