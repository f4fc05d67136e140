package discord

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errWaitTimeout = errors.New("wait timed out")

type pendingWait struct {
	id    uint64
	match func(any) bool
	ch    chan any
}

// waiter hands gateway events to the flows blocked on them. Each event goes
// to the oldest pending wait whose predicate accepts it.
type waiter struct {
	mu      sync.Mutex
	nextID  uint64
	pending []*pendingWait
}

func newWaiter() *waiter {
	return &waiter{}
}

func (w *waiter) register(match func(any) bool) *pendingWait {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	p := &pendingWait{id: w.nextID, match: match, ch: make(chan any, 1)}
	w.pending = append(w.pending, p)
	return p
}

func (w *waiter) remove(p *pendingWait) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, q := range w.pending {
		if q.id == p.id {
			w.pending = append(w.pending[:i], w.pending[i+1:]...)
			return
		}
	}
}

// Dispatch delivers event and reports whether a wait took it.
func (w *waiter) Dispatch(event any) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, p := range w.pending {
		if !p.match(event) {
			continue
		}
		w.pending = append(w.pending[:i], w.pending[i+1:]...)
		p.ch <- event
		return true
	}
	return false
}

// Len returns the number of pending waits.
func (w *waiter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Wait blocks until an event accepted by match is dispatched. A zero timeout
// waits until ctx is done.
func (w *waiter) Wait(ctx context.Context, timeout time.Duration, match func(any) bool) (any, error) {
	p := w.register(match)
	defer w.remove(p)

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case event := <-p.ch:
		return event, nil
	case <-expired:
		w.remove(p)
		// Dispatch may have won the race against the timer.
		select {
		case event := <-p.ch:
			return event, nil
		default:
		}
		return nil, errWaitTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// waitFor is Wait narrowed to events of type E.
func waitFor[E any](ctx context.Context, w *waiter, timeout time.Duration, match func(E) bool) (E, error) {
	event, err := w.Wait(ctx, timeout, func(ev any) bool {
		typed, ok := ev.(E)
		return ok && match(typed)
	})
	if err != nil {
		var zero E
		return zero, err
	}
	return event.(E), nil
}
