package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/fetch"
)

func newQueue(t *testing.T) *fetch.Queue {
	t.Helper()
	q := fetch.NewQueue()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		q.Stop(ctx)
	})
	return q
}

func TestAwait(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		c := fetch.New("seed", func(context.Context) (int, error) { return 42, nil },
			fetch.WithDispatcher(newQueue(t)))

		var placeholders []string
		state, err := await(context.Background(), c, func(s fetch.State[string, int]) {
			placeholders = append(placeholders, s.Seed)
		})
		require.NoError(t, err)
		assert.Equal(t, fetch.PhaseLoaded, state.Phase)
		assert.Equal(t, 42, state.Result)
		assert.Equal(t, []string{"seed"}, placeholders)
	})

	t.Run("error", func(t *testing.T) {
		c := fetch.New("seed", func(context.Context) (int, error) { return 0, errors.New("boom") },
			fetch.WithDispatcher(newQueue(t)))

		state, err := await(context.Background(), c, nil)
		assert.ErrorIs(t, err, errFetchFailed)
		assert.Equal(t, fetch.PhaseError, state.Phase)
	})

	t.Run("abandoned", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		c := fetch.New("seed", func(context.Context) (int, error) {
			<-release
			return 1, nil
		}, fetch.WithDispatcher(newQueue(t)))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		state, err := await(ctx, c, nil)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, fetch.PhaseLoading, state.Phase)
	})
}

func TestUserAgent(t *testing.T) {
	SetVersion("1.2.3", "today")
	t.Cleanup(func() { SetVersion("dev", "unknown") })

	assert.Equal(t, "marquee/1.2.3", userAgent("marquee"))
	assert.Equal(t, "custom/0.1", userAgent("custom/0.1"))
}
