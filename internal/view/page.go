package view

import "github.com/csheth/studyscout/internal/session"

// Controls captures which triggers are enabled and which are busy.
type Controls struct {
	SummaryEnabled    bool
	FlashcardsEnabled bool
	AskEnabled        bool

	UploadBusy     bool
	SummaryBusy    bool
	FlashcardsBusy bool
	QuestionBusy   bool
	CredentialBusy bool
}

// Page is the structured view model for the whole study page.
type Page struct {
	SessionID     string
	UploadMode    session.UploadMode
	ExtractedText string
	// ShowExtracted reveals the extracted-text region after any successful upload.
	ShowExtracted bool
	Summary       []Block
	Card          CardView
	HasCard       bool
	Controls      Controls
}

// Build projects the current store into a Page.
func Build(store *session.Store) Page {
	page := Page{
		SessionID:  store.ID(),
		UploadMode: store.UploadMode(),
	}
	uploaded := store.HasUpload()
	if uploaded {
		page.ExtractedText = store.Note().Text
		page.ShowExtracted = true
	}
	if summary := store.Summary(); summary != "" {
		page.Summary = Paragraphs(summary)
	}
	page.Card, page.HasCard = Card(store.Deck())
	page.Controls = Controls{
		SummaryEnabled:    uploaded,
		FlashcardsEnabled: uploaded,
		AskEnabled:        uploaded,
		UploadBusy:        store.InFlight(session.ActionUpload),
		SummaryBusy:       store.InFlight(session.ActionSummary),
		FlashcardsBusy:    store.InFlight(session.ActionFlashcards),
		QuestionBusy:      store.InFlight(session.ActionQuestion),
		CredentialBusy:    store.InFlight(session.ActionCredential),
	}
	return page
}
