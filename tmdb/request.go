package tmdb

import (
	"net/url"
	"strings"
)

// Method is the HTTP verb of a Request
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Request describes one logical API call whose response decodes into T.
// It is immutable; build one per call with Get or NewRequest.
type Request[T any] struct {
	method Method
	path   string
	query  url.Values
}

// NewRequest creates a request descriptor. path is relative to the API root
// and must not carry a host or the API key.
func NewRequest[T any](method Method, path string, query url.Values) Request[T] {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return Request[T]{
		method: method,
		path:   path,
		query:  cloneValues(query),
	}
}

// Get is shorthand for NewRequest(MethodGet, ...)
func Get[T any](path string, query url.Values) Request[T] {
	return NewRequest[T](MethodGet, path, query)
}

// Method returns the HTTP method
func (r Request[T]) Method() Method {
	if r.method == "" {
		return MethodGet
	}
	return r.method
}

// Path returns the relative API path
func (r Request[T]) Path() string {
	return r.path
}

// Query returns a copy of the descriptor's query parameters
func (r Request[T]) Query() url.Values {
	return cloneValues(r.query)
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
