// Package event dispatches domain events to registered listeners.
//
// Services fire events only after their transaction commits, so a
// listener never observes a rolled-back sale.
package event

import (
	"context"
	"errors"
	"sync"

	"github.com/beshgebeya/pos/pkg/logger"
	"github.com/beshgebeya/pos/pkg/workerpool"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
	pool     *workerpool.Pool
)

// Listen registers handler for name.
func Listen(name string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[name] = append(handlers[name], handler)
}

// UsePool routes FireAsync through p. Without a pool FireAsync runs
// listeners synchronously.
func UsePool(p *workerpool.Pool) {
	mu.Lock()
	defer mu.Unlock()
	pool = p
}

func snapshot(name string) ([]Handler, *workerpool.Pool) {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Handler(nil), handlers[name]...), pool
}

// Fire runs every listener of name in registration order.
func Fire(ctx context.Context, name string, payload interface{}) {
	hs, _ := snapshot(name)
	for _, h := range hs {
		h(ctx, payload)
	}
}

// FireAsync queues every listener of name on the pool. Listeners run
// with a context detached from the caller's cancellation. An event
// dropped because the pool is full is logged.
func FireAsync(ctx context.Context, name string, payload interface{}) {
	hs, p := snapshot(name)
	if p == nil {
		Fire(ctx, name, payload)
		return
	}

	detached := context.WithoutCancel(ctx)
	for _, h := range hs {
		if err := p.Submit(func() { h(detached, payload) }); err != nil {
			level := logger.WithCtx(ctx).Warn
			if errors.Is(err, workerpool.ErrPoolClosed) {
				level = logger.WithCtx(ctx).Debug
			}
			level("event: listener dropped", "event", name, "error", err)
		}
	}
}

// Flush removes every listener and detaches the pool.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
	pool = nil
}
