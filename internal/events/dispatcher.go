// Package events provides the in-process dispatcher that fans domain events
// out to registered subscribers. Events are transient here; durability is the
// responsibility of whatever publishes after a successful save.
package events

import (
	"context"
	"sync"

	"quizzy-attempt-service/internal/domain"

	"golang.org/x/sync/errgroup"
)

// Handler is an asynchronous, side-effecting subscriber callback. Handlers
// must be idempotent; redelivery after a crashed publish is possible.
type Handler func(ctx context.Context, ev domain.Event) error

// Dispatcher maps event names to subscribers. Safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for future publications of the named event.
// Delivery order across different handlers is not guaranteed.
func (d *Dispatcher) Subscribe(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// Publish delivers each event to every handler registered for its name. All
// handlers run concurrently; Publish blocks until the whole batch finishes
// and then returns the first handler error, if any. A failing handler does
// not abort the others. Events with no subscribers are dropped silently,
// which is expected steady-state behavior rather than a failure.
func (d *Dispatcher) Publish(ctx context.Context, evs ...domain.Event) error {
	var g errgroup.Group
	for _, ev := range evs {
		d.mu.RLock()
		handlers := append([]Handler(nil), d.handlers[ev.Name()]...)
		d.mu.RUnlock()

		for _, h := range handlers {
			h, ev := h, ev
			g.Go(func() error {
				return h(ctx, ev)
			})
		}
	}
	return g.Wait()
}
