// Package controller holds the per-capability orchestration logic: collect
// input, call the gateway, expose the result, append a history record.
//
// Every controller shares the same control pattern: input is validated
// before any network call, the loading flag clears on every path out, and
// history persistence is fire-and-forget: a failed history write is
// logged and swallowed, never shown to the user and never able to take
// back an already-displayed result.
package controller

import (
	"context"
	"sync"

	"github.com/lumenlabs/lumen-cli/internal/logging"
	"github.com/lumenlabs/lumen-cli/internal/models"
)

// Recorder appends immutable activity records. Satisfied by *store.Store.
type Recorder interface {
	AppendActivity(ctx context.Context, rec models.Activity) error
}

// base carries the loading/error state shared by all controllers.
type base struct {
	mu      sync.Mutex
	loading bool
	lastErr string
}

// Loading reports whether a call is in flight.
func (b *base) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Err returns the message of the last failed call, or "".
func (b *base) Err() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// run wraps one action: enter loading and clear the previous error, then
// clear loading no matter how fn exits. A non-nil error is captured for
// display.
func (b *base) run(fn func() error) error {
	b.mu.Lock()
	b.loading = true
	b.lastErr = ""
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.loading = false
		b.mu.Unlock()
	}()

	err := fn()
	if err != nil {
		b.mu.Lock()
		b.lastErr = err.Error()
		b.mu.Unlock()
	}
	return err
}

// record appends an activity record, swallowing failures.
func record(ctx context.Context, rec Recorder, userID string, p models.Payload) {
	a := models.NewActivity(userID, p)
	if err := rec.AppendActivity(ctx, a); err != nil {
		logging.L().Warnw("history write failed",
			"type", a.Type, "user", userID, "error", err)
	}
}
