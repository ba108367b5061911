package controller

import (
	"errors"
	"fmt"

	"github.com/csheth/studyscout/internal/backend"
	"github.com/csheth/studyscout/internal/session"
)

// ErrInFlight is returned when a trigger fires while its previous request is
// still outstanding.
var ErrInFlight = errors.New("request already in flight")

// ValidationError is a client-side input failure; no request was issued.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

const (
	msgSelectDocument   = "Please select a PDF file to upload."
	msgEnterText        = "Please enter some text content."
	msgNeedSummaryNote  = "Please upload content first before generating a summary."
	msgNeedCardsNote    = "Please upload content first before generating flashcards."
	msgNeedQuestionNote = "Please upload content first before asking a question."
	msgEnterQuestion    = "Please enter a question."
	msgEnterAPIKey      = "Please enter an API key."

	msgUploadFallback = "There was an issue with the upload. Try using the alternative upload method below."
	msgUploadReady    = "Content ready. Generate a summary or flashcards, or ask a question."
	msgDirectSent     = "Document submitted with the alternative upload method."
	msgNoFlashcards   = "No flashcards were generated for this content."
	msgStaleSummary   = "Content changed while the summary was generating. Generate it again."
	msgStaleCards     = "Content changed while flashcards were generating. Generate them again."
	msgKeyUpdated     = "API key updated successfully. Refreshing page..."
)

// failure holds the two fallbacks each action uses: one for server errors
// without a detail and one for transport failures.
type failure struct {
	server    string
	transport string
}

var failures = map[session.Action]failure{
	session.ActionUpload: {
		server:    "Failed to upload PDF",
		transport: "An error occurred while uploading the PDF. Please try the alternative upload method below.",
	},
	session.ActionSummary: {
		server:    "Failed to generate summary",
		transport: "An error occurred while generating the summary.",
	},
	session.ActionFlashcards: {
		server:    "Failed to generate flashcards",
		transport: "An error occurred while generating flashcards.",
	},
	session.ActionQuestion: {
		server:    "Failed to answer question",
		transport: "An error occurred while answering the question.",
	},
	session.ActionCredential: {
		server:    "Failed to update API key",
		transport: "An error occurred while updating the API key.",
	},
}

var textUploadFailure = failure{
	server:    "Failed to process text",
	transport: "An error occurred while processing the text.",
}

// messageFor turns a backend error into the message shown to the user.
func messageFor(err error, f failure) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return backend.DetailOr(err, f.server)
	}
	return f.transport
}

func inFlightMessage(action session.Action) string {
	labels := map[session.Action]string{
		session.ActionUpload:     "An upload",
		session.ActionSummary:    "Summary generation",
		session.ActionFlashcards: "Flashcard generation",
		session.ActionQuestion:   "A question",
		session.ActionCredential: "An API key update",
	}
	label, ok := labels[action]
	if !ok {
		label = string(action)
	}
	return fmt.Sprintf("%s is already in progress.", label)
}
