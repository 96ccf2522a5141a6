package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcome struct {
	data string
	err  error
}

// gates holds one release channel per request parameter so tests decide the
// order in which requests resolve.
type gates struct {
	mu sync.Mutex
	ch map[int]chan outcome
}

func newGates() *gates {
	return &gates{ch: make(map[int]chan outcome)}
}

func (g *gates) gate(p int) chan outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.ch[p]; !ok {
		g.ch[p] = make(chan outcome, 1)
	}
	return g.ch[p]
}

func (g *gates) fetch(ctx context.Context, p int) (string, error) {
	select {
	case o := <-g.gate(p):
		return o.data, o.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (g *gates) release(p int, data string, err error) {
	g.gate(p) <- outcome{data: data, err: err}
}

func waitTicket(t *testing.T, ticket *Ticket) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, ticket.Wait(ctx))
}

func TestController_InitialState(t *testing.T) {
	c := New("test", newGates().fetch)

	state := c.State()
	assert.Equal(t, StatusIdle, state.Status())
	assert.Equal(t, uint64(0), state.Seq())

	_, ok := state.Data()
	assert.False(t, ok)

	_, ok = c.LastSuccess()
	assert.False(t, ok)
}

func TestController_DispatchSetsLoading(t *testing.T) {
	g := newGates()
	c := New("test", g.fetch)

	ticket := c.Dispatch(context.Background(), 1)
	assert.Equal(t, uint64(1), ticket.Seq)
	assert.True(t, c.State().IsLoading())
	assert.False(t, ticket.Applied())

	g.release(1, "one", nil)
	waitTicket(t, ticket)

	data, ok := c.State().Data()
	require.True(t, ok)
	assert.Equal(t, "one", data)
	assert.True(t, ticket.Applied())
}

func TestController_Supersede(t *testing.T) {
	tests := []struct {
		name  string
		order []int
	}{
		{"older resolves last", []int{2, 1}},
		{"older resolves first", []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGates()
			c := New("test", g.fetch)
			ctx := context.Background()

			tickets := map[int]*Ticket{
				1: c.Dispatch(ctx, 1),
				2: c.Dispatch(ctx, 2),
			}

			for _, p := range tt.order {
				g.release(p, map[int]string{1: "stale", 2: "fresh"}[p], nil)
				waitTicket(t, tickets[p])
			}

			state := c.State()
			data, ok := state.Data()
			require.True(t, ok)
			assert.Equal(t, "fresh", data)
			assert.Equal(t, uint64(2), state.Seq())
			assert.False(t, tickets[1].Applied())
			assert.True(t, tickets[2].Applied())
		})
	}
}

func TestController_StaleErrorDoesNotOverwrite(t *testing.T) {
	g := newGates()
	c := New("test", g.fetch)
	ctx := context.Background()

	first := c.Dispatch(ctx, 1)
	second := c.Dispatch(ctx, 2)

	g.release(2, "page two", nil)
	waitTicket(t, second)
	g.release(1, "", errors.New("connection reset"))
	waitTicket(t, first)

	assert.Equal(t, StatusSuccess, c.State().Status())
	assert.Equal(t, "", c.State().Err())
}

func TestController_StaleSuccessDoesNotClearLoading(t *testing.T) {
	g := newGates()
	c := New("test", g.fetch)
	ctx := context.Background()

	first := c.Dispatch(ctx, 1)
	c.Dispatch(ctx, 2)

	g.release(1, "old", nil)
	waitTicket(t, first)

	assert.True(t, c.State().IsLoading())
	_, ok := c.LastSuccess()
	assert.False(t, ok)
}

func TestController_Error(t *testing.T) {
	g := newGates()
	c := New("test", g.fetch, WithErrorMessage(func(err error) string {
		return "failed: " + err.Error()
	}))

	ticket := c.Dispatch(context.Background(), 1)
	g.release(1, "", errors.New("status 500"))
	waitTicket(t, ticket)

	state := c.State()
	assert.Equal(t, StatusError, state.Status())
	assert.Equal(t, "failed: status 500", state.Err())
	_, ok := state.Data()
	assert.False(t, ok)
}

func TestController_EmptySuccessIsNotError(t *testing.T) {
	g := newGates()
	c := New("test", g.fetch)

	ticket := c.Dispatch(context.Background(), 1)
	g.release(1, "", nil)
	waitTicket(t, ticket)

	assert.Equal(t, StatusSuccess, c.State().Status())
}

func TestController_LastSuccessSurvivesError(t *testing.T) {
	g := newGates()
	c := New("test", g.fetch)
	ctx := context.Background()

	ticket := c.Dispatch(ctx, 1)
	g.release(1, "good", nil)
	waitTicket(t, ticket)

	ticket = c.Dispatch(ctx, 2)
	g.release(2, "", errors.New("boom"))
	waitTicket(t, ticket)

	data, ok := c.LastSuccess()
	require.True(t, ok)
	assert.Equal(t, "good", data)
	assert.Equal(t, StatusError, c.State().Status())
}

func TestController_NoDedup(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	c := New("test", func(ctx context.Context, p int) (string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return "same", nil
	})

	ctx := context.Background()
	c.Dispatch(ctx, 7)
	c.Dispatch(ctx, 7)
	c.Drain()

	assert.Equal(t, 2, calls)
	assert.Equal(t, uint64(2), c.Seq())
	assert.Equal(t, uint64(2), c.State().Seq())
}

func TestController_Subscribe(t *testing.T) {
	g := newGates()
	c := New("test", g.fetch)
	ctx := context.Background()

	var mu sync.Mutex
	var seen []string
	unsubscribe := c.Subscribe(func(r Result[string]) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, r.Status().String())
	})

	first := c.Dispatch(ctx, 1)
	second := c.Dispatch(ctx, 2)
	g.release(1, "stale", nil)
	waitTicket(t, first)
	g.release(2, "fresh", nil)
	waitTicket(t, second)

	mu.Lock()
	assert.Equal(t, []string{"loading", "loading", "success"}, seen)
	mu.Unlock()

	unsubscribe()
	unsubscribe()

	third := c.Dispatch(ctx, 3)
	g.release(3, "after", nil)
	waitTicket(t, third)

	mu.Lock()
	assert.Len(t, seen, 3)
	mu.Unlock()
}

func TestController_SubscribersInRegistrationOrder(t *testing.T) {
	g := newGates()
	c := New("test", g.fetch)

	var order []string
	c.Subscribe(func(Result[string]) { order = append(order, "a") })
	c.Subscribe(func(Result[string]) { order = append(order, "b") })

	c.Dispatch(context.Background(), 1)
	assert.Equal(t, []string{"a", "b"}, order)

	g.release(1, "", nil)
	c.Drain()
}

func TestController_Drain(t *testing.T) {
	g := newGates()
	c := New("test", g.fetch)
	ctx := context.Background()

	for p := 1; p <= 5; p++ {
		c.Dispatch(ctx, p)
	}
	for p := 5; p >= 1; p-- {
		g.release(p, "x", nil)
	}
	c.Drain()

	assert.Equal(t, StatusSuccess, c.State().Status())
	assert.Equal(t, uint64(5), c.State().Seq())
}

func TestTicket_WaitHonoursContext(t *testing.T) {
	g := newGates()
	c := New("test", g.fetch)

	ticket := c.Dispatch(context.Background(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ticket.Wait(ctx), context.Canceled)
	assert.NotEqual(t, [16]byte{}, [16]byte(ticket.ID))

	g.release(1, "", nil)
	c.Drain()
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "unknown", Status(42).String())
}
