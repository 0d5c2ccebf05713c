package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler. A Route with an empty
// Method matches every method not claimed by a more specific route on the
// same path, which makes it the place to answer 405.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

func (r Route) pattern(prefix string) string {
	if r.Method == "" {
		return prefix + r.Pattern
	}
	return r.Method + " " + prefix + r.Pattern
}
