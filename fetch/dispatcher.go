package fetch

import (
	"context"
	"sync"
)

// Dispatcher runs work on a designated delivery context.
// Implementations must run submitted functions one at a time, in submission order.
type Dispatcher interface {
	Dispatch(work func()) error
}

// Queue is a Dispatcher backed by a single worker goroutine.
// Submissions never block, so work running on the queue may dispatch more work.
type Queue struct {
	mu       sync.Mutex
	pending  []func()
	stopped  bool
	signal   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewQueue creates a queue and starts its worker
func NewQueue() *Queue {
	q := &Queue{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go q.worker()
	return q
}

var defaultQueue = sync.OnceValue(NewQueue)

// DefaultQueue returns the process-wide delivery queue used when a
// Coordinator is not given its own Dispatcher.
func DefaultQueue() *Queue {
	return defaultQueue()
}

// worker processes work until the queue is stopped and drained
func (q *Queue) worker() {
	defer close(q.done)

	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			stopped := q.stopped
			q.mu.Unlock()
			if stopped {
				return
			}
			<-q.signal
			continue
		}

		work := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		if work != nil {
			work()
		}
	}
}

// Dispatch submits work to the queue
func (q *Queue) Dispatch(work func()) error {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return ErrQueueStopped
	}
	q.pending = append(q.pending, work)
	q.mu.Unlock()

	q.wake()
	return nil
}

func (q *Queue) wake() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Stop refuses new work and waits for already queued work to finish
func (q *Queue) Stop(ctx context.Context) error {
	q.stopOnce.Do(func() {
		q.mu.Lock()
		q.stopped = true
		q.mu.Unlock()
		q.wake()
	})

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
