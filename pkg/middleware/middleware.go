// Package middleware provides the HTTP middleware applied to mounted modules:
// request ids, CORS, and request logging.
package middleware

import "net/http"

// Func wraps a handler with additional behavior.
type Func func(http.Handler) http.Handler

// Stack is an ordered list of middleware. The first entry added is the
// outermost wrapper. The zero value is an empty stack.
type Stack struct {
	fns []Func
}

// Use appends fn to the stack.
func (s *Stack) Use(fn Func) {
	s.fns = append(s.fns, fn)
}

// Len reports how many middleware are on the stack.
func (s *Stack) Len() int {
	return len(s.fns)
}

// Apply wraps handler so that requests pass through the stack in the order
// the middleware were added.
func (s *Stack) Apply(handler http.Handler) http.Handler {
	return Chain(s.fns...)(handler)
}

// Chain composes fns into one middleware; fns[0] runs first.
func Chain(fns ...Func) Func {
	return func(handler http.Handler) http.Handler {
		for i := len(fns) - 1; i >= 0; i-- {
			handler = fns[i](handler)
		}
		return handler
	}
}
