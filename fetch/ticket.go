package fetch

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
)

// Ticket tracks one dispatched request
type Ticket struct {
	// Seq is the sequence number assigned at dispatch
	Seq uint64
	// ID correlates log lines of the same request
	ID uuid.UUID

	done    chan struct{}
	applied atomic.Bool
}

func newTicket(seq uint64) *Ticket {
	return &Ticket{
		Seq:  seq,
		ID:   uuid.New(),
		done: make(chan struct{}),
	}
}

// Done is closed once the request has resolved and its outcome has been
// either applied or discarded.
func (t *Ticket) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the request resolves or ctx ends
func (t *Ticket) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Applied reports whether the outcome became the controller state. It is
// false while the request is in flight and stays false for a superseded
// request.
func (t *Ticket) Applied() bool {
	return t.applied.Load()
}
