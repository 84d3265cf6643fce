package debounce

import (
	"context"
	"sync"
	"time"
)

// DefaultWait is the quiet window applied to search-as-you-type input.
const DefaultWait = 300 * time.Millisecond

type Result[T any] struct {
	Query string
	Value T
	Err   error
}

// Searcher coalesces rapid queries and delivers at most the freshest
// result. A new query cancels a pending wait but never an in-flight
// fetch; stale fetches are discarded by request recency when they
// resolve, so an older response can never overwrite a newer one.
type Searcher[T any] struct {
	fetch func(ctx context.Context, query string) (T, error)
	wait  time.Duration

	mu            sync.Mutex
	timer         *time.Timer
	pending       string
	seq           uint64
	lastDelivered uint64

	results chan Result[T]
}

func New[T any](wait time.Duration, fetch func(ctx context.Context, query string) (T, error)) *Searcher[T] {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Searcher[T]{
		fetch:   fetch,
		wait:    wait,
		results: make(chan Result[T], 16),
	}
}

// Results yields one entry per delivered (non-stale) fetch.
func (s *Searcher[T]) Results() <-chan Result[T] {
	return s.results
}

// Query schedules a fetch after the quiet window. Calling again before
// the window elapses restarts it with the new query.
func (s *Searcher[T]) Query(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = query
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.wait, func() { s.fire(ctx) })
}

func (s *Searcher[T]) fire(ctx context.Context) {
	s.mu.Lock()
	s.seq++
	gen := s.seq
	query := s.pending
	s.mu.Unlock()

	go func() {
		value, err := s.fetch(ctx, query)

		s.mu.Lock()
		if gen <= s.lastDelivered {
			s.mu.Unlock()
			return
		}
		s.lastDelivered = gen
		s.mu.Unlock()

		select {
		case s.results <- Result[T]{Query: query, Value: value, Err: err}:
		default:
		}
	}()
}
