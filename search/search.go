// Package search implements debounce-and-discard for interactive catalog queries:
// input is only sent once it has been stable for a short window, and a response
// is only delivered if no newer query was submitted in the meantime.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultWait matches the delay the browse page applies to keystrokes
const DefaultWait = 300 * time.Millisecond

// Generation hands out increasing tokens; only the latest token is current
type Generation struct {
	current atomic.Uint64
}

// Next supersedes every token handed out so far
func (g *Generation) Next() uint64 {
	return g.current.Add(1)
}

func (g *Generation) IsCurrent(token uint64) bool {
	return g.current.Load() == token
}

// Debouncer runs the most recently triggered function once no trigger has arrived for wait
type Debouncer struct {
	wait  time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Trigger schedules fn, replacing any pending function.
// It reports whether a pending function was cancelled.
func (d *Debouncer) Trigger(fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	cancelled := d.timer != nil && d.timer.Stop()
	d.timer = time.AfterFunc(d.wait, fn)
	return cancelled
}

// Stop cancels the pending function and reports whether there was one
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	cancelled := d.timer.Stop()
	d.timer = nil
	return cancelled
}

// Searcher debounces queries and drops results belonging to superseded queries
type Searcher[T any] struct {
	debouncer  *Debouncer
	generation Generation
	search     func(ctx context.Context, query string) (T, error)
	deliver    func(query string, result T, err error)
	// scheduled searches that have neither run nor been cancelled
	pending sync.WaitGroup
}

func NewSearcher[T any](
	wait time.Duration,
	search func(ctx context.Context, query string) (T, error),
	deliver func(query string, result T, err error),
) *Searcher[T] {
	return &Searcher[T]{
		debouncer: NewDebouncer(wait),
		search:    search,
		deliver:   deliver,
	}
}

// Submit records query as the latest input. The search runs after the debounce
// window and its result is delivered only if query is still the latest input by then.
func (s *Searcher[T]) Submit(ctx context.Context, query string) {
	token := s.generation.Next()
	s.pending.Add(1)
	replaced := s.debouncer.Trigger(func() {
		defer s.pending.Done()
		if !s.generation.IsCurrent(token) {
			return
		}
		result, err := s.search(ctx, query)
		if !s.generation.IsCurrent(token) {
			return
		}
		s.deliver(query, result, err)
	})
	if replaced {
		s.pending.Done()
	}
}

// Wait blocks until every submitted query has been searched or discarded.
// It must not be called concurrently with Submit.
func (s *Searcher[T]) Wait() {
	s.pending.Wait()
}

// Stop cancels any pending search and invalidates in-flight ones
func (s *Searcher[T]) Stop() {
	if s.debouncer.Stop() {
		s.pending.Done()
	}
	s.generation.Next()
}
