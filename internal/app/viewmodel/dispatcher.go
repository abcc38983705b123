// internal/app/viewmodel/dispatcher.go
package viewmodel

import (
	"context"
	"sync"
)

// Dispatcher serializes state publications. Actions run on their own
// goroutines and hand their results to Post, so observers see changes
// one at a time in the order they were posted.
type Dispatcher struct {
	ch      chan func()
	once    sync.Once
	stopped chan struct{}
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		ch:      make(chan func(), 64),
		stopped: make(chan struct{}),
	}
}

// Start runs the dispatch loop until the context is canceled.
func (d *Dispatcher) Start(ctx context.Context) {
	d.once.Do(func() {
		go func() {
			defer close(d.stopped)
			for {
				select {
				case <-ctx.Done():
					return
				case fn := <-d.ch:
					fn()
				}
			}
		}()
	})
}

// Post queues a mutation to run on the dispatch loop. Posts after
// shutdown are dropped.
func (d *Dispatcher) Post(fn func()) {
	select {
	case <-d.stopped:
	case d.ch <- fn:
	}
}
