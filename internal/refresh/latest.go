// Package refresh coordinates overlapping loads so that only the most recent one is applied.
package refresh

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrSuperseded is returned when a newer request was issued before this one completed.
	ErrSuperseded = errors.New("superseded by a newer request")

	// ErrClosed is returned once the view the loads feed has gone away.
	ErrClosed = errors.New("view closed")
)

// Ticket identifies a single in-flight request.
type Ticket struct {
	seq uint64
	ctx context.Context
}

// Context is cancelled once the ticket is superseded or its Latest is closed.
func (t Ticket) Context() context.Context {
	return t.ctx
}

// Seq is the ticket's sequence number. Later tickets have larger numbers.
func (t Ticket) Seq() uint64 {
	return t.seq
}

// Latest holds the value from the most recently issued request (last-request-wins).
// Responses for superseded requests, or arriving after Close, are discarded.
// The zero value is ready to use.
type Latest[T any] struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool
	value  T
	set    bool
}

// Begin issues a new ticket, cancelling the context of the previous one.
func (l *Latest[T]) Begin(ctx context.Context) (Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return Ticket{}, ErrClosed
	}

	if l.cancel != nil {
		l.cancel()
	}

	l.seq++
	tctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel

	return Ticket{seq: l.seq, ctx: tctx}, nil
}

// Apply stores value if t is still the newest ticket and Latest is open.
func (l *Latest[T]) Apply(t Ticket, value T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkLocked(t); err != nil {
		return err
	}

	l.value = value
	l.set = true
	return nil
}

// Current reports whether t is still the newest ticket and Latest is open.
func (l *Latest[T]) Current(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.checkLocked(t) == nil
}

// Value returns the last applied value and whether any value has been applied.
func (l *Latest[T]) Value() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.value, l.set
}

// Close discards every in-flight request. Later calls to Begin and Apply fail with ErrClosed.
func (l *Latest[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Run begins a request, loads with fn and applies the result.
// The loaded value is returned even when it was discarded, alongside ErrSuperseded or ErrClosed.
func (l *Latest[T]) Run(ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	t, err := l.Begin(ctx)
	if err != nil {
		return zero, err
	}

	v, err := fn(t.Context())
	if cErr := l.check(t); cErr != nil {
		return v, cErr
	}
	if err != nil {
		return v, err
	}

	return v, l.Apply(t, v)
}

func (l *Latest[T]) check(t Ticket) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.checkLocked(t)
}

func (l *Latest[T]) checkLocked(t Ticket) error {
	switch {
	case l.closed:
		return ErrClosed
	case t.seq != l.seq:
		return ErrSuperseded
	default:
		return nil
	}
}
