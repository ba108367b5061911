package controller

import (
	"context"
	"strings"

	"github.com/csheth/studyscout/internal/session"
)

func (c *Controller) generateSummary() (*Job, error) {
	if !c.store.HasNote() {
		return nil, c.reject(msgNeedSummaryNote)
	}
	text := c.store.Note().Text
	revision := c.store.NoteRevision()
	return c.startJob(session.ActionSummary, func(ctx context.Context) (any, error) {
		return c.client.GenerateSummary(ctx, text)
	}, func(c *Controller, payload any, err error) {
		if err != nil {
			c.notify(LevelError, messageFor(err, failures[session.ActionSummary]))
			return
		}
		if c.store.NoteRevision() != revision {
			c.notify(LevelInfo, msgStaleSummary)
			return
		}
		c.store.SetSummary(payload.(string))
		c.surface.Reveal(RegionSummary)
	})
}

func (c *Controller) generateFlashcards() (*Job, error) {
	if !c.store.HasNote() {
		return nil, c.reject(msgNeedCardsNote)
	}
	text := c.store.Note().Text
	revision := c.store.NoteRevision()
	return c.startJob(session.ActionFlashcards, func(ctx context.Context) (any, error) {
		return c.client.GenerateFlashcards(ctx, text)
	}, func(c *Controller, payload any, err error) {
		if err != nil {
			c.notify(LevelError, messageFor(err, failures[session.ActionFlashcards]))
			return
		}
		if c.store.NoteRevision() != revision {
			c.notify(LevelInfo, msgStaleCards)
			return
		}
		cards := payload.([]session.Flashcard)
		c.store.ReplaceDeck(cards)
		if len(cards) == 0 {
			c.notify(LevelInfo, msgNoFlashcards)
		}
		c.surface.Reveal(RegionFlashcards)
	})
}

// askQuestion appends the user turn before the request is sent. A failed
// answer leaves it in the transcript unanswered.
func (c *Controller) askQuestion(question string, useContext bool) (*Job, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, c.reject(msgEnterQuestion)
	}
	if !c.store.HasNote() {
		return nil, c.reject(msgNeedQuestionNote)
	}
	var noteContext *string
	if useContext {
		text := c.store.Note().Text
		noteContext = &text
	}
	job, err := c.startJob(session.ActionQuestion, func(ctx context.Context) (any, error) {
		return c.client.AskQuestion(ctx, question, noteContext)
	}, func(c *Controller, payload any, err error) {
		if err != nil {
			c.notify(LevelError, messageFor(err, failures[session.ActionQuestion]))
			return
		}
		c.appendTurn(session.RoleAssistant, payload.(string))
		c.surface.ClearInput(FieldQuestion)
	})
	if err != nil {
		return nil, err
	}
	c.appendTurn(session.RoleUser, question)
	return job, nil
}
