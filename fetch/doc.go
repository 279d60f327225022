// Package fetch coordinates independent requests that together make up one
// unit of work, such as a screen that needs a movie's details and its
// similar titles.
//
// A Coordinator starts in Loading(seed). Each call to Fetch starts a cycle
// that runs a FetchFunc off the caller's goroutine; when it returns, the
// terminal state (Loaded or Failed) is computed on the Coordinator's
// Dispatcher and handed to the observer. Results of a cycle that has been
// superseded by a newer Fetch are dropped.
//
// Join2 and JoinAll are the barriers used inside a FetchFunc. They start every
// constituent at once, wait for all of them even when one fails early, and
// succeed only when every constituent produced a value:
//
//	c := fetch.New(movie, func(ctx context.Context) (fetch.Pair[Details, Similar], error) {
//		return fetch.Join2(ctx,
//			func(ctx context.Context) (Details, error) { return getDetails(ctx, movie) },
//			func(ctx context.Context) (Similar, error) { return getSimilar(ctx, movie) },
//		)
//	}, fetch.WithLogger(logger))
//
//	c.OnStateChange(func(s fetch.State[Movie, fetch.Pair[Details, Similar]]) {
//		render(s)
//	})
//	c.Fetch(ctx)
//
// Failure causes are logged, never exposed through State.
package fetch
