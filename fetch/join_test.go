package fetch

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func value[T any](v T) Task[T] {
	return func(context.Context) (T, error) { return v, nil }
}

func failure[T any](err error) Task[T] {
	return func(context.Context) (T, error) {
		var zero T
		return zero, err
	}
}

func TestJoin2(t *testing.T) {
	tests := []struct {
		name     string
		first    Task[string]
		second   Task[int]
		expected Pair[string, int]
		wantErr  bool
	}{
		{
			name:     "both succeed",
			first:    value("details"),
			second:   value(42),
			expected: Pair[string, int]{First: "details", Second: 42},
		},
		{
			name:    "second fails",
			first:   value("details"),
			second:  failure[int](errBoom),
			wantErr: true,
		},
		{
			name:    "first fails",
			first:   failure[string](errBoom),
			second:  value(42),
			wantErr: true,
		},
		{
			name:    "both fail",
			first:   failure[string](errBoom),
			second:  failure[int](errBoom),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Join2(context.Background(), tt.first, tt.second)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errBoom)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestJoin2_RunsConcurrently(t *testing.T) {
	aStarted := make(chan struct{})
	bStarted := make(chan struct{})

	// Each task waits for the other to have started, which only works if
	// they run at the same time.
	rendezvous := func(mine, other chan struct{}) Task[bool] {
		return func(ctx context.Context) (bool, error) {
			close(mine)
			select {
			case <-other:
				return true, nil
			case <-time.After(2 * time.Second):
				return false, errors.New("other task never started")
			}
		}
	}

	got, err := Join2(context.Background(), rendezvous(aStarted, bStarted), rendezvous(bStarted, aStarted))
	require.NoError(t, err)
	assert.True(t, got.First)
	assert.True(t, got.Second)
}

func TestJoin2_WaitsForAllDespiteEarlyFailure(t *testing.T) {
	release := make(chan struct{})
	returned := make(chan error, 1)

	slow := func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	}

	go func() {
		_, err := Join2(context.Background(), failure[string](errBoom), slow)
		returned <- err
	}()

	select {
	case <-returned:
		t.Fatal("join returned before every constituent finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)

	select {
	case err := <-returned:
		assert.ErrorIs(t, err, errBoom)
	case <-time.After(2 * time.Second):
		t.Fatal("join never returned")
	}
}

func TestJoin2_PanicReleasesBarrier(t *testing.T) {
	panicky := func(context.Context) (string, error) {
		panic("constituent exploded")
	}

	_, err := Join2(context.Background(), panicky, value(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPanicked)
	assert.Contains(t, err.Error(), "constituent exploded")
}

func TestJoin2_GoexitReleasesBarrier(t *testing.T) {
	exits := func(context.Context) (int, error) {
		runtime.Goexit()
		return 0, nil
	}

	_, err := Join2(context.Background(), value("details"), exits)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingResult)
}

func TestJoinAll_PreservesDeclarationOrder(t *testing.T) {
	gates := []chan struct{}{make(chan struct{}), make(chan struct{}), make(chan struct{})}
	done := make(chan int, len(gates))

	tasks := make([]Task[int], len(gates))
	for i := range gates {
		tasks[i] = func(context.Context) (int, error) {
			<-gates[i]
			done <- i
			return i * 10, nil
		}
	}

	result := make(chan []int, 1)
	go func() {
		values, err := JoinAll(context.Background(), tasks...)
		assert.NoError(t, err)
		result <- values
	}()

	// Complete in reverse order.
	for i := len(gates) - 1; i >= 0; i-- {
		close(gates[i])
		assert.Equal(t, i, <-done)
	}

	select {
	case values := <-result:
		assert.Equal(t, []int{0, 10, 20}, values)
	case <-time.After(2 * time.Second):
		t.Fatal("join never returned")
	}
}

func TestJoinAll_AnyFailureFails(t *testing.T) {
	values, err := JoinAll(context.Background(), value(1), failure[int](errBoom), value(3))
	require.Error(t, err)
	assert.Nil(t, values)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "constituent 1")

	values, err = JoinAll[int](context.Background())
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestReduce_MissingResult(t *testing.T) {
	t.Run("pair", func(t *testing.T) {
		_, err := Reduce2(Succeed("details"), Outcome[int]{})
		assert.ErrorIs(t, err, ErrMissingResult)

		_, err = Reduce2(Outcome[string]{}, Succeed(1))
		assert.ErrorIs(t, err, ErrMissingResult)
	})

	t.Run("all", func(t *testing.T) {
		_, err := ReduceAll([]Outcome[int]{Succeed(1), {}, Succeed(3)})
		assert.ErrorIs(t, err, ErrMissingResult)
	})

	t.Run("zero value is still a value", func(t *testing.T) {
		got, err := Reduce2(Succeed(""), Succeed(0))
		require.NoError(t, err)
		assert.Equal(t, Pair[string, int]{}, got)
	})
}
