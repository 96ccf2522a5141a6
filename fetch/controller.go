package fetch

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Func performs one request for params
type Func[P, T any] func(ctx context.Context, params P) (T, error)

// Controller owns the request line of one view
type Controller[P, T any] struct {
	name   string
	fn     Func[P, T]
	opts   options
	logger zerolog.Logger

	// emitMu keeps a state change and its emission atomic with respect to
	// other transitions so subscribers observe them in order.
	emitMu sync.Mutex

	mu          sync.Mutex
	seq         uint64
	state       Result[T]
	lastSuccess T
	hasSuccess  bool
	listeners   []listener[T]
	nextID      int

	inflight sync.WaitGroup
}

// New creates a controller named for logging
func New[P, T any](name string, fn Func[P, T], opts ...Option) *Controller[P, T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Controller[P, T]{
		name:   name,
		fn:     fn,
		opts:   o,
		logger: o.logger.With().Str("controller", name).Logger(),
	}
}

// Dispatch starts a request for params and makes it the authoritative one.
// The loading transition has been emitted by the time Dispatch returns.
func (c *Controller[P, T]) Dispatch(ctx context.Context, params P) *Ticket {
	c.emitMu.Lock()
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = loading[T](seq)
	state, listeners := c.state, c.snapshot()
	c.mu.Unlock()
	emit(listeners, state)
	c.emitMu.Unlock()

	ticket := newTicket(seq)
	c.logger.Debug().
		Uint64("seq", seq).
		Str("request_id", ticket.ID.String()).
		Interface("params", params).
		Msg("Dispatching request")

	c.inflight.Add(1)
	go c.run(ctx, params, ticket)

	return ticket
}

func (c *Controller[P, T]) run(ctx context.Context, params P, ticket *Ticket) {
	defer c.inflight.Done()
	defer close(ticket.done)

	data, err := c.fn(ctx, params)

	var next Result[T]
	if err != nil {
		next = failure[T](ticket.Seq, c.opts.errorMessage(err))
	} else {
		next = success(ticket.Seq, data)
	}

	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	if c.seq != ticket.Seq {
		current := c.seq
		c.mu.Unlock()
		c.logger.Debug().
			Uint64("seq", ticket.Seq).
			Uint64("current_seq", current).
			Str("request_id", ticket.ID.String()).
			Msg("Discarding superseded response")
		return
	}
	c.state = next
	if err == nil {
		c.lastSuccess = data
		c.hasSuccess = true
	}
	listeners := c.snapshot()
	c.mu.Unlock()

	ticket.applied.Store(true)

	event := c.logger.Debug()
	if err != nil {
		event = c.logger.Warn().Err(err)
	}
	event.Uint64("seq", ticket.Seq).
		Str("request_id", ticket.ID.String()).
		Str("status", next.Status().String()).
		Msg("Applied response")

	emit(listeners, next)
}

type listener[T any] struct {
	id int
	fn func(Result[T])
}

// snapshot must be called with mu held
func (c *Controller[P, T]) snapshot() []func(Result[T]) {
	if len(c.listeners) == 0 {
		return nil
	}
	out := make([]func(Result[T]), 0, len(c.listeners))
	for _, l := range c.listeners {
		out = append(out, l.fn)
	}
	return out
}

func emit[T any](listeners []func(Result[T]), r Result[T]) {
	for _, fn := range listeners {
		fn(r)
	}
}

// Subscribe registers fn for every applied transition. The returned func
// removes the subscription.
func (c *Controller[P, T]) Subscribe(fn func(Result[T])) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners = append(c.listeners, listener[T]{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.listeners = slices.DeleteFunc(c.listeners, func(l listener[T]) bool {
				return l.id == id
			})
			c.mu.Unlock()
		})
	}
}

// State returns the current result
func (c *Controller[P, T]) State() Result[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastSuccess returns the data of the most recently applied success. It
// survives later loading and error states.
func (c *Controller[P, T]) LastSuccess() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSuccess, c.hasSuccess
}

// Seq returns the sequence number of the latest dispatch
func (c *Controller[P, T]) Seq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Name returns the controller name
func (c *Controller[P, T]) Name() string {
	return c.name
}

// Drain waits until every dispatched request has resolved
func (c *Controller[P, T]) Drain() {
	c.inflight.Wait()
}
