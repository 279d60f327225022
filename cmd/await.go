package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/s0up4200/marquee/fetch"
)

// errFetchFailed is returned when a unit of work ends in the error state.
// The cause has already been logged by the coordinator.
var errFetchFailed = errors.New("failed to load data from TMDB, see log for details")

// await subscribes to c, starts a cycle and blocks until it settles.
// onLoading is called for every loading notification, typically to draw a
// placeholder.
func await[S, R any](ctx context.Context, c *fetch.Coordinator[S, R], onLoading func(fetch.State[S, R])) (fetch.State[S, R], error) {
	states := make(chan fetch.State[S, R], 1)
	c.OnStateChange(func(s fetch.State[S, R]) {
		select {
		case states <- s:
		case <-ctx.Done():
		}
	})
	defer c.OnStateChange(nil)

	c.Fetch(ctx)

	for {
		select {
		case s := <-states:
			switch s.Phase {
			case fetch.PhaseLoading:
				if onLoading != nil {
					onLoading(s)
				}
			case fetch.PhaseLoaded:
				return s, nil
			default:
				return s, errFetchFailed
			}
		case <-ctx.Done():
			return c.State(), ctx.Err()
		}
	}
}

// signalContext is cancelled on Ctrl-C so a pending wait can be abandoned
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
