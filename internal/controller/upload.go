package controller

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/csheth/studyscout/internal/backend"
	"github.com/csheth/studyscout/internal/session"
)

func (c *Controller) submitDocument(path string) (*Job, error) {
	doc, err := c.openDocument(path)
	if err != nil {
		log.Printf("[upload] rejected document %q: %v", path, err)
		return nil, c.reject(msgSelectDocument)
	}
	if c.store.UploadMode() == session.UploadDirect {
		return c.startJob(session.ActionUpload, func(ctx context.Context) (any, error) {
			return c.client.SubmitDocumentForm(ctx, doc)
		}, applyNativeSubmission)
	}
	log.Printf("[upload] uploading %s", doc.Name())
	return c.startJob(session.ActionUpload, func(ctx context.Context) (any, error) {
		return c.client.UploadDocument(ctx, doc)
	}, applyDocumentUpload)
}

func (c *Controller) submitText(text string) (*Job, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, c.reject(msgEnterText)
	}
	return c.startJob(session.ActionUpload, func(ctx context.Context) (any, error) {
		return c.client.UploadText(ctx, text)
	}, applyTextUpload)
}

func applyDocumentUpload(c *Controller, payload any, err error) {
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.NoFileProvided() {
			log.Printf("[upload] switching to direct form submission for future uploads")
			c.store.SwitchToDirect()
			c.notify(LevelError, msgUploadFallback)
			return
		}
		c.notify(LevelError, messageFor(err, failures[session.ActionUpload]))
		return
	}
	c.acceptUpload(payload.(backend.UploadResult), FieldDocument)
}

func applyTextUpload(c *Controller, payload any, err error) {
	if err != nil {
		c.notify(LevelError, messageFor(err, textUploadFailure))
		return
	}
	c.acceptUpload(payload.(backend.UploadResult), FieldText)
}

func (c *Controller) acceptUpload(result backend.UploadResult, field Field) {
	c.store.ReplaceNote(result.NoteID, result.Text)
	c.surface.Reveal(RegionExtracted)
	c.surface.ClearInput(field)
	c.notify(LevelInfo, msgUploadReady)
}

// applyNativeSubmission hands the returned page to the surface. A native
// submission navigates away, so the current session ends here.
func applyNativeSubmission(c *Controller, payload any, err error) {
	if err != nil {
		c.notify(LevelError, messageFor(err, failures[session.ActionUpload]))
		return
	}
	page := payload.(backend.NativePage)
	log.Printf("[upload] native submission returned status %d", page.Status)
	c.notify(LevelInfo, msgDirectSent)
	c.surface.Navigate(page)
}
