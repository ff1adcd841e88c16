package route

import (
	"net/http"

	"github.com/n10ty/account/token"
	"github.com/pkg/errors"
)

// Guard decides whether a request may activate a route.
type Guard interface {
	CanActivate(r *http.Request, rt *Route) error
}

// GuardFunc type is an adapter to allow the use of ordinary functions as Guard.
type GuardFunc func(r *http.Request, rt *Route) error

// CanActivate calls f(r, rt)
func (f GuardFunc) CanActivate(r *http.Request, rt *Route) error {
	return f(r, rt)
}

// UserRouteAccess lets through callers holding any of the route's
// authorities. Routes without authorities are public.
var UserRouteAccess Guard = GuardFunc(userRouteAccess)

func userRouteAccess(r *http.Request, rt *Route) error {
	if len(rt.Authorities) == 0 {
		return nil
	}

	p, err := token.FromRequest(r)
	if err != nil {
		return errors.Wrapf(ErrUnauthenticated, "route %q", rt.Name)
	}
	if !p.HasAnyAuthority(rt.Authorities...) {
		return errors.Wrapf(ErrAccessDenied, "route %q, principal %s", rt.Name, p.Name)
	}
	return nil
}
