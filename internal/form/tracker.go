// Package form tracks the submission state of console forms so a form
// cannot be submitted twice at once.
package form

import (
	"sync"

	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

// State of one form.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
)

// ErrSubmitting is returned for a submit while the same form is in flight.
var ErrSubmitting = appErrors.Clone(appErrors.ErrConflict, "form is already submitting")

// Tracker holds the state of every form, keyed by console session and form.
type Tracker struct {
	mu         sync.Mutex
	submitting map[string]struct{}
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{submitting: make(map[string]struct{})}
}

// Key joins a console session id and a form name.
func Key(sessionID, form string) string {
	return sessionID + "|" + form
}

// State reports the current state of key.
func (t *Tracker) State(key string) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.submitting[key]; ok {
		return StateSubmitting
	}
	return StateIdle
}

// Submit runs fn with key marked as submitting. The form returns to idle
// whatever fn returns; its error is passed back unchanged and fn is never
// retried.
func (t *Tracker) Submit(key string, fn func() error) error {
	t.mu.Lock()
	if _, busy := t.submitting[key]; busy {
		t.mu.Unlock()
		return ErrSubmitting
	}
	t.submitting[key] = struct{}{}
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		delete(t.submitting, key)
		t.mu.Unlock()
	}()
	return fn()
}
