package viewmodel_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/devcollab/devcollab/internal/app/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_RunsInPostOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := viewmodel.NewDispatcher()
	d.Start(ctx)

	var mu sync.Mutex
	var got []int
	done := make(chan struct{})

	for i := 0; i < 10; i++ {
		i := i
		d.Post(func() {
			mu.Lock()
			got = append(got, i)
			if len(got) == 10 {
				close(done)
			}
			mu.Unlock()
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher never drained")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 10)
	for i, v := range got {
		assert.Equal(t, i, v, "posts must run in order")
	}
}

func TestDispatcher_DropsAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := viewmodel.NewDispatcher()
	d.Start(ctx)
	cancel()

	// Give the loop a moment to observe cancellation.
	time.Sleep(20 * time.Millisecond)

	ran := false
	d.Post(func() { ran = true })
	time.Sleep(20 * time.Millisecond)
	assert.False(t, ran, "posts after shutdown must be dropped")
}
