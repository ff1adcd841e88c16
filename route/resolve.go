package route

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Resolver produces a value before the route is activated.
type Resolver interface {
	Resolve(r *http.Request, rt *Route) (interface{}, error)
}

// ResolverFunc type is an adapter to allow the use of ordinary functions as Resolver.
type ResolverFunc func(r *http.Request, rt *Route) (interface{}, error)

// Resolve calls f(r, rt)
func (f ResolverFunc) Resolve(r *http.Request, rt *Route) (interface{}, error) {
	return f(r, rt)
}

const (
	PagingParamsKey = "pagingParams"

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PagingParams is the page requested by a list view. Page is 1-based.
type PagingParams struct {
	Page      int    `json:"page"`
	Size      int    `json:"size"`
	Predicate string `json:"predicate"`
	Ascending bool   `json:"ascending"`
}

// Offset is the number of items before the page.
func (p PagingParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// PagingParamsResolver reads page, size and sort query parameters. Sort
// falls back to the route's DefaultSort, then to "id,asc".
var PagingParamsResolver Resolver = ResolverFunc(resolvePagingParams)

func resolvePagingParams(r *http.Request, rt *Route) (interface{}, error) {
	q := r.URL.Query()
	p := PagingParams{Page: 1, Size: DefaultPageSize}

	var err error
	if v := q.Get("page"); v != "" {
		if p.Page, err = strconv.Atoi(v); err != nil || p.Page < 1 {
			return nil, errors.Wrapf(ErrBadRequest, "invalid page %q", v)
		}
	}
	if v := q.Get("size"); v != "" {
		if p.Size, err = strconv.Atoi(v); err != nil || p.Size < 1 {
			return nil, errors.Wrapf(ErrBadRequest, "invalid size %q", v)
		}
		if p.Size > MaxPageSize {
			p.Size = MaxPageSize
		}
	}

	if p.Page-1 > math.MaxInt/p.Size {
		return nil, errors.Wrapf(ErrBadRequest, "page %d out of range", p.Page)
	}

	sort := q.Get("sort")
	if sort == "" {
		sort = rt.DefaultSort
	}
	p.Predicate, p.Ascending = parseSort(sort)
	return p, nil
}

func parseSort(sort string) (string, bool) {
	parts := strings.SplitN(sort, ",", 2)
	predicate := strings.TrimSpace(parts[0])
	if predicate == "" {
		return "id", true
	}
	if len(parts) == 1 {
		return predicate, true
	}
	return predicate, !strings.EqualFold(strings.TrimSpace(parts[1]), "desc")
}

type contextKey string

const (
	routeKey    contextKey = "route"
	resolvedKey contextKey = "resolved"
)

func withActivation(r *http.Request, rt *Route, data map[string]interface{}) *http.Request {
	ctx := context.WithValue(r.Context(), routeKey, rt)
	ctx = context.WithValue(ctx, resolvedKey, data)
	return r.WithContext(ctx)
}

// Current returns the route activated for the request.
func Current(r *http.Request) (*Route, bool) {
	rt, ok := r.Context().Value(routeKey).(*Route)
	return rt, ok
}

// Resolved returns a value produced by one of the route's resolvers.
func Resolved(r *http.Request, key string) (interface{}, bool) {
	data, ok := r.Context().Value(resolvedKey).(map[string]interface{})
	if !ok {
		return nil, false
	}
	v, ok := data[key]
	return v, ok
}

// Paging returns resolved paging parameters.
func Paging(r *http.Request) (PagingParams, bool) {
	v, ok := Resolved(r, PagingParamsKey)
	if !ok {
		return PagingParams{}, false
	}
	p, ok := v.(PagingParams)
	return p, ok
}
