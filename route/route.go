// Package route describes navigable paths of a feature area and mounts them
// into an HTTP router.
package route

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Route is a descriptor of a path segment: where it lives, who may activate
// it, what it resolves before activation and which component serves it.
// Descriptors are owned by the package that declares them and must not be
// modified after initialisation.
type Route struct {
	Path        string              `json:"path"`
	Name        string              `json:"name,omitempty"`
	Methods     []string            `json:"methods,omitempty"`
	Component   string              `json:"component,omitempty"`
	PageTitle   string              `json:"pageTitle,omitempty"`
	Authorities []string            `json:"authorities,omitempty"`
	DefaultSort string              `json:"defaultSort,omitempty"`
	CanActivate []Guard             `json:"-"`
	Resolve     map[string]Resolver `json:"-"`
	Children    []*Route            `json:"-"`
}

// Endpoint reports whether the route is served itself rather than only
// grouping its children.
func (r *Route) Endpoint() bool {
	return len(r.Children) == 0 || r.Component != ""
}

// HTTPMethods returns declared methods, GET when none.
func (r *Route) HTTPMethods() []string {
	if len(r.Methods) == 0 {
		return []string{http.MethodGet}
	}
	return r.Methods
}

// Entry is an endpoint of a flattened table.
type Entry struct {
	Path  string
	Route *Route
	// Chain holds the ancestors of Route, outermost first, and Route itself.
	Chain []*Route
}

// Walk visits every route of the table depth first, in declaration order.
func Walk(table []*Route, fn func(path string, chain []*Route)) {
	for _, r := range table {
		walk("", nil, r, fn)
	}
}

func walk(prefix string, chain []*Route, r *Route, fn func(string, []*Route)) {
	path := JoinPath(prefix, r.Path)
	chain = append(chain[:len(chain):len(chain)], r)
	fn(path, chain)
	for _, child := range r.Children {
		walk(path, chain, child, fn)
	}
}

// Flatten returns the endpoints of the table with their full paths.
func Flatten(table []*Route) []Entry {
	var entries []Entry
	Walk(table, func(path string, chain []*Route) {
		r := chain[len(chain)-1]
		if !r.Endpoint() {
			return
		}
		if path == "" {
			path = "/"
		}
		entries = append(entries, Entry{Path: path, Route: r, Chain: chain})
	})
	return entries
}

// Validate checks that no descriptor appears twice in the table and that no
// two endpoints answer the same method on the same path.
func Validate(table []*Route) error {
	seen := make(map[*Route]string)
	var err error
	Walk(table, func(path string, chain []*Route) {
		r := chain[len(chain)-1]
		if err != nil {
			return
		}
		if prev, ok := seen[r]; ok {
			err = errors.Wrapf(ErrDuplicateRoute, "descriptor %q registered at %q and %q", r.Name, prev, path)
			return
		}
		seen[r] = path
	})
	if err != nil {
		return err
	}

	bound := make(map[string]string)
	for _, e := range Flatten(table) {
		for _, m := range e.Route.HTTPMethods() {
			key := strings.ToUpper(m) + " " + e.Path
			if prev, ok := bound[key]; ok {
				return errors.Wrapf(ErrDuplicateRoute, "%s claimed by %q and %q", key, prev, e.Route.Name)
			}
			bound[key] = e.Route.Name
		}
	}
	return nil
}

// JoinPath appends a relative segment to prefix. Empty segments add nothing.
func JoinPath(prefix, segment string) string {
	segment = strings.Trim(segment, "/")
	prefix = strings.TrimRight(prefix, "/")
	if segment == "" {
		return prefix
	}
	return prefix + "/" + segment
}
