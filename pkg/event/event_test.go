package event_test

import (
	"context"
	"sync"
	"testing"

	"github.com/beshgebeya/pos/pkg/event"
	"github.com/beshgebeya/pos/pkg/workerpool"
	"github.com/stretchr/testify/assert"
)

func TestFireRunsListenersInOrder(t *testing.T) {
	t.Cleanup(event.Flush)

	var got []string
	event.Listen("sale.recorded", func(_ context.Context, p interface{}) { got = append(got, "a:"+p.(string)) })
	event.Listen("sale.recorded", func(_ context.Context, p interface{}) { got = append(got, "b:"+p.(string)) })
	event.Listen("alerts.generated", func(context.Context, interface{}) { got = append(got, "other") })

	event.Fire(context.Background(), "sale.recorded", "42")

	assert.Equal(t, []string{"a:42", "b:42"}, got)
}

func TestFireAsyncUsesPool(t *testing.T) {
	t.Cleanup(event.Flush)

	pool := workerpool.New(2)
	event.UsePool(pool)

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	seen := 0
	for i := 0; i < 2; i++ {
		event.Listen("alerts.generated", func(ctx context.Context, _ interface{}) {
			defer wg.Done()
			assert.NoError(t, ctx.Err())
			mu.Lock()
			seen++
			mu.Unlock()
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	event.FireAsync(ctx, "alerts.generated", nil)
	cancel()

	wg.Wait()
	pool.Shutdown()
	assert.Equal(t, 2, seen)
}

func TestFireAsyncWithoutPoolIsSynchronous(t *testing.T) {
	t.Cleanup(event.Flush)

	ran := false
	event.Listen("sale.recorded", func(context.Context, interface{}) { ran = true })
	event.FireAsync(context.Background(), "sale.recorded", nil)
	assert.True(t, ran)
}
