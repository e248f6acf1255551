// Package debounce collapses bursts of triggers on the same key into the
// last one, after a quiet period.
package debounce

import (
	"context"
	"sync"
	"time"
)

// Group tracks the newest trigger per key.
type Group struct {
	quiet time.Duration

	mu     sync.Mutex
	seq    uint64
	latest map[string]uint64
}

// New returns a Group that waits quiet after each trigger.
func New(quiet time.Duration) *Group {
	return &Group{quiet: quiet, latest: make(map[string]uint64)}
}

// Quiet is the configured quiet period.
func (g *Group) Quiet() time.Duration { return g.quiet }

// Ticket is one trigger.
type Ticket struct {
	group *Group
	key   string
	seq   uint64
}

// Trigger supersedes every earlier ticket of key.
func (g *Group) Trigger(key string) *Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	g.latest[key] = g.seq
	return &Ticket{group: g, key: key, seq: g.seq}
}

// Wait blocks for the quiet period and reports whether t is still the
// newest ticket of its key. It returns false when ctx ends first.
func (t *Ticket) Wait(ctx context.Context) bool {
	if t.group.quiet > 0 {
		timer := time.NewTimer(t.group.quiet)
		select {
		case <-ctx.Done():
			timer.Stop()
			t.release()
			return false
		case <-timer.C:
		}
	}

	t.group.mu.Lock()
	defer t.group.mu.Unlock()
	if t.group.latest[t.key] != t.seq {
		return false
	}
	delete(t.group.latest, t.key)
	return true
}

// release forgets the key when t is abandoned while still newest.
func (t *Ticket) release() {
	t.group.mu.Lock()
	defer t.group.mu.Unlock()
	if t.group.latest[t.key] == t.seq {
		delete(t.group.latest, t.key)
	}
}

// Pending is the number of keys with an outstanding ticket.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.latest)
}
