package debounce

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBurstResultsInOneCall(t *testing.T) {
	g := New(60 * time.Millisecond)
	var calls int32
	var issued []string
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, query := range []string{"j", "jo", "joh", "john"} {
		ticket := g.Trigger("students:search")
		wg.Add(1)
		go func(q string, ticket *Ticket) {
			defer wg.Done()
			if ticket.Wait(context.Background()) {
				atomic.AddInt32(&calls, 1)
				mu.Lock()
				issued = append(issued, q)
				mu.Unlock()
			}
		}(query, ticket)
		time.Sleep(2 * time.Millisecond)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls)
	assert.Equal(t, []string{"john"}, issued)
	assert.Zero(t, g.Pending())
}

func TestPauseLongerThanQuietPeriodResultsInTwoCalls(t *testing.T) {
	g := New(20 * time.Millisecond)

	first := g.Trigger("k")
	assert.True(t, first.Wait(context.Background()))

	second := g.Trigger("k")
	assert.True(t, second.Wait(context.Background()))
}

func TestKeysAreIndependent(t *testing.T) {
	g := New(20 * time.Millisecond)

	a := g.Trigger("sess-a:students")
	b := g.Trigger("sess-b:students")

	var wg sync.WaitGroup
	results := make([]bool, 2)
	for i, ticket := range []*Ticket{a, b} {
		wg.Add(1)
		go func(i int, ticket *Ticket) {
			defer wg.Done()
			results[i] = ticket.Wait(context.Background())
		}(i, ticket)
	}
	wg.Wait()

	assert.Equal(t, []bool{true, true}, results)
}

func TestCancelledWaitReportsFalse(t *testing.T) {
	g := New(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, g.Trigger("k").Wait(ctx))
	assert.Zero(t, g.Pending())
}
