// Package routes declares HTTP routes as nested groups and registers them
// on a ServeMux.
package routes

import (
	"net/http"

	"github.com/JaimeStill/sourcetag/pkg/handlers"
)

// Group organizes routes under a common prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux. Every path that
// has method-specific routes but no catch-all Route also gets a catch-all
// answering 405 with an Allow header listing the registered methods.
func Register(mux *http.ServeMux, groups ...Group) {
	r := &registrar{
		mux:      mux,
		methods:  make(map[string][]string),
		catchAll: make(map[string]bool),
	}

	for _, group := range groups {
		r.group("", group)
	}

	for _, path := range r.paths {
		if r.catchAll[path] {
			continue
		}
		allow := r.methods[path]
		mux.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
			handlers.MethodNotAllowed(w, allow...)
		})
	}
}

type registrar struct {
	mux      *http.ServeMux
	paths    []string
	methods  map[string][]string
	catchAll map[string]bool
}

func (r *registrar) group(parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		r.mux.HandleFunc(route.pattern(fullPrefix), route.Handler)
		r.track(fullPrefix+route.Pattern, route.Method)
	}
	for _, child := range group.Children {
		r.group(fullPrefix, child)
	}
}

func (r *registrar) track(path, method string) {
	if _, seen := r.methods[path]; !seen && !r.catchAll[path] {
		r.paths = append(r.paths, path)
	}
	if method == "" {
		r.catchAll[path] = true
		return
	}
	r.methods[path] = append(r.methods[path], method)
}
