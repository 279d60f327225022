// Package tmdb provides a typed client for The Movie Database v3 API.
//
// Every call is described by a Request[T], an immutable value holding the
// method, the relative path and any query parameters. Execute sends it and
// decodes the body into T:
//
//	client, err := tmdb.NewClient(tmdb.DefaultBaseURL, apiKey, logger,
//		tmdb.WithTimeout(10*time.Second),
//		tmdb.WithRateLimit(20, 5),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	details, err := tmdb.Execute(ctx, client, tmdb.Details(movie))
//
// The client appends the API key to every request; descriptors never carry it.
//
// # Error Handling
//
// Execute returns a *Error with one of two kinds:
//
//   - KindTransport: connection failures and non-2xx responses (wrapping *StatusError)
//   - KindDecoding: success responses whose body is empty, malformed, or a
//     TMDB failure envelope (wrapping *APIStatus)
//
// A transport failure always wins over inspecting the body. Use errors.Is with
// ErrTransport or ErrDecoding, or KindOf, to classify:
//
//	if errors.Is(err, tmdb.ErrTransport) {
//		// network problem
//	}
//
// # Transport
//
// The network is reached through the Transport interface. HTTPTransport is the
// default; tests substitute a scripted implementation with WithTransport.
package tmdb
