package controller

import (
	"context"
	"log"
	"strings"

	"github.com/csheth/studyscout/internal/session"
)

// updateAPIKey submits a new credential. On success the whole session is
// reloaded so later requests run against the backend's new state.
func (c *Controller) updateAPIKey(key string) (*Job, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, c.reject(msgEnterAPIKey)
	}
	return c.startJob(session.ActionCredential, func(ctx context.Context) (any, error) {
		return nil, c.client.UpdateAPIKey(ctx, key)
	}, func(c *Controller, _ any, err error) {
		if err != nil {
			c.notify(LevelError, messageFor(err, failures[session.ActionCredential]))
			return
		}
		log.Printf("[credential] api key updated; reloading in %s", c.reloadDelay)
		c.notify(LevelSuccess, msgKeyUpdated)
		c.surface.ClearInput(FieldAPIKey)
		c.surface.Reload(c.reloadDelay)
	})
}
