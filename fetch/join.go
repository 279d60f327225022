package fetch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task is one constituent request of a unit of work
type Task[T any] func(ctx context.Context) (T, error)

// Outcome is the result of a single constituent
type Outcome[T any] struct {
	Value T
	Err   error
	set   bool
}

// Succeed returns an Outcome carrying v
func Succeed[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, set: true}
}

// Fail returns an Outcome carrying err
func Fail[T any](err error) Outcome[T] {
	return Outcome[T]{Err: err}
}

// Get returns the value, the failure, or ErrMissingResult when the
// constituent never reported anything.
func (o Outcome[T]) Get() (T, error) {
	var zero T
	if o.Err != nil {
		return zero, o.Err
	}
	if !o.set {
		return zero, ErrMissingResult
	}
	return o.Value, nil
}

// Pair is the combined value of two constituents, in declaration order
type Pair[A, B any] struct {
	First  A
	Second B
}

// run executes task and records its outcome in out. The deferred recover
// turns a panic into a failure so the barrier is always released.
func run[T any](ctx context.Context, task Task[T], out *Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			*out = Fail[T](fmt.Errorf("%w: %v", ErrPanicked, r))
		}
	}()

	v, err := task(ctx)
	if err != nil {
		*out = Fail[T](err)
		return
	}
	*out = Succeed(v)
}

// Join2 runs fa and fb concurrently and waits for both, whatever their
// outcome. The pair is returned only when both succeeded.
func Join2[A, B any](ctx context.Context, fa Task[A], fb Task[B]) (Pair[A, B], error) {
	var (
		g  errgroup.Group
		oa Outcome[A]
		ob Outcome[B]
	)

	// Constituents never return an error to the group so one failure
	// does not stop the wait for the other.
	g.Go(func() error {
		run(ctx, fa, &oa)
		return nil
	})
	g.Go(func() error {
		run(ctx, fb, &ob)
		return nil
	})
	_ = g.Wait()

	return Reduce2(oa, ob)
}

// Reduce2 combines two outcomes all-or-nothing.
func Reduce2[A, B any](oa Outcome[A], ob Outcome[B]) (Pair[A, B], error) {
	a, errA := oa.Get()
	b, errB := ob.Get()
	if err := errors.Join(errA, errB); err != nil {
		return Pair[A, B]{}, err
	}
	return Pair[A, B]{First: a, Second: b}, nil
}

// JoinAll runs every task concurrently and waits for all of them. Values are
// returned in the order the tasks were given, and only when every task succeeded.
func JoinAll[T any](ctx context.Context, tasks ...Task[T]) ([]T, error) {
	var g errgroup.Group
	outcomes := make([]Outcome[T], len(tasks))

	for i, task := range tasks {
		g.Go(func() error {
			run(ctx, task, &outcomes[i])
			return nil
		})
	}
	_ = g.Wait()

	return ReduceAll(outcomes)
}

// ReduceAll combines outcomes all-or-nothing, preserving their order.
func ReduceAll[T any](outcomes []Outcome[T]) ([]T, error) {
	values := make([]T, len(outcomes))
	var errs []error

	for i, o := range outcomes {
		v, err := o.Get()
		if err != nil {
			errs = append(errs, fmt.Errorf("constituent %d: %w", i, err))
			continue
		}
		values[i] = v
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return values, nil
}
