package fetch

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FetchFunc produces the combined result of one fetch cycle
type FetchFunc[R any] func(ctx context.Context) (R, error)

// Option configures a Coordinator.
type Option func(*options)

type options struct {
	dispatcher Dispatcher
	logger     zerolog.Logger
	name       string
}

// WithDispatcher sets the delivery context for state changes.
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) {
		if d != nil {
			o.dispatcher = d
		}
	}
}

// WithLogger sets the logger failure causes are written to.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithName labels log lines of this unit of work.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// Coordinator drives one unit of work: it runs a FetchFunc per cycle and
// publishes a single combined State for it.
type Coordinator[S, R any] struct {
	seed       S
	fetch      FetchFunc[R]
	dispatcher Dispatcher
	logger     zerolog.Logger

	mu          sync.Mutex
	state       State[S, R]
	observer    func(State[S, R])
	observerGen uint64
	// version counts state assignments made by completed cycles
	version uint64
	cycle   uint64
}

// New creates a coordinator in the Loading(seed) state. No request is made
// until Fetch is called.
func New[S, R any](seed S, fetch FetchFunc[R], opts ...Option) *Coordinator[S, R] {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.dispatcher == nil {
		o.dispatcher = DefaultQueue()
	}

	logger := o.logger
	if o.name != "" {
		logger = logger.With().Str("unit", o.name).Logger()
	}

	return &Coordinator[S, R]{
		seed:       seed,
		fetch:      fetch,
		dispatcher: o.dispatcher,
		logger:     logger,
		state:      Loading[S, R](seed),
	}
}

// State returns a snapshot of the current state
func (c *Coordinator[S, R]) State() State[S, R] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Seed returns the data the coordinator was created with
func (c *Coordinator[S, R]) Seed() S {
	return c.seed
}

// OnStateChange installs the single observer, replacing any previous one.
// The observer is called on the dispatcher after every state change, and
// once right away with the current state.
func (c *Coordinator[S, R]) OnStateChange(fn func(State[S, R])) {
	c.mu.Lock()
	c.observer = fn
	c.observerGen++
	gen := c.observerGen
	version := c.version
	c.mu.Unlock()

	if fn == nil {
		return
	}

	err := c.dispatcher.Dispatch(func() {
		c.mu.Lock()
		if gen != c.observerGen {
			// Replaced before the replay ran; the newer observer gets its own.
			c.mu.Unlock()
			return
		}
		if version != c.version {
			// A completion ran in between and already notified fn.
			c.mu.Unlock()
			return
		}
		st := c.state
		c.mu.Unlock()
		fn(st)
	})
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to deliver current state to observer")
	}
}

// Fetch starts a new cycle and returns its number without waiting for it.
// The requests run to completion even if ctx is cancelled. When a newer cycle
// has been started in the meantime, the result of this one is discarded.
func (c *Coordinator[S, R]) Fetch(ctx context.Context) uint64 {
	c.mu.Lock()
	c.cycle++
	cycle := c.cycle
	c.mu.Unlock()

	logger := c.logger.With().
		Uint64("cycle", cycle).
		Str("cycle_id", uuid.NewString()).
		Logger()
	logger.Debug().Msg("Fetch cycle started")

	// Requests made by the fetch function log through the cycle logger.
	ctx = logger.WithContext(context.WithoutCancel(ctx))

	go func() {
		var (
			result   R
			err      error
			finished bool
		)
		// Deferred so a fetch function that exits its goroutine still
		// completes the cycle.
		defer func() {
			if !finished {
				err = ErrMissingResult
			}
			if derr := c.dispatcher.Dispatch(func() {
				c.complete(cycle, result, err, logger)
			}); derr != nil {
				logger.Error().Err(derr).Msg("Failed to deliver fetch result")
			}
		}()

		result, err = call(ctx, c.fetch)
		finished = true
	}()

	return cycle
}

// complete applies the terminal state of a cycle. It runs on the dispatcher.
func (c *Coordinator[S, R]) complete(cycle uint64, result R, err error, logger zerolog.Logger) {
	c.mu.Lock()
	if cycle != c.cycle {
		current := c.cycle
		c.mu.Unlock()
		logger.Debug().Uint64("current_cycle", current).Msg("Discarding result of stale fetch cycle")
		return
	}

	next := Loaded(c.seed, result)
	if err != nil {
		next = Failed[S, R](c.seed)
	}
	c.state = next
	c.version++
	observer := c.observer
	c.mu.Unlock()

	if err != nil {
		logger.Warn().Err(err).Msg("Fetch cycle failed")
	} else {
		logger.Debug().Msg("Fetch cycle loaded")
	}

	if observer != nil {
		observer(next)
	}
}

// call runs fn, converting a panic into an error.
func call[R any](ctx context.Context, fn FetchFunc[R]) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()
	return fn(ctx)
}
