package fetch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_RunsInOrder(t *testing.T) {
	q := NewQueue()

	var mu sync.Mutex
	var got []int
	for i := range 100 {
		require.NoError(t, q.Dispatch(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}

	require.NoError(t, q.Stop(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestQueue_ReentrantDispatch(t *testing.T) {
	q := newQueue(t)

	done := make(chan struct{})
	require.NoError(t, q.Dispatch(func() {
		assert.NoError(t, q.Dispatch(func() { close(done) }))
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested dispatch never ran")
	}
}

func TestQueue_Stop(t *testing.T) {
	q := NewQueue()

	release := make(chan struct{})
	ran := make(chan struct{})
	require.NoError(t, q.Dispatch(func() { <-release }))
	require.NoError(t, q.Dispatch(func() { close(ran) }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Stop(ctx), context.DeadlineExceeded)

	assert.ErrorIs(t, q.Dispatch(func() {}), ErrQueueStopped)

	close(release)
	require.NoError(t, q.Stop(context.Background()))

	select {
	case <-ran:
	default:
		t.Fatal("queued work was dropped on stop")
	}
}
