package route

import (
	"net/http"

	"github.com/go-pkgz/rest"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Components maps component names declared by descriptors to handlers.
type Components map[string]http.Handler

// Observer is notified of every activation that passed guards and resolvers.
type Observer func(r *http.Request, rt *Route)

type Option func(*mounter)

// WithAuthenticator wraps every endpoint with m, typically a middleware that
// populates the caller of the request before guards run.
func WithAuthenticator(m func(http.Handler) http.Handler) Option {
	return func(mt *mounter) {
		mt.authenticator = m
	}
}

// WithFallback serves routes whose component is not registered with the
// handler built by f instead of failing the mount.
func WithFallback(f func(rt *Route) http.Handler) Option {
	return func(mt *mounter) {
		mt.fallback = f
	}
}

func WithObserver(o Observer) Option {
	return func(mt *mounter) {
		mt.observers = append(mt.observers, o)
	}
}

type mounter struct {
	components    Components
	authenticator func(http.Handler) http.Handler
	fallback      func(rt *Route) http.Handler
	observers     []Observer
}

type binding struct {
	path    string
	entry   Entry
	handler http.Handler
}

// bind validates the table and builds a handler for each endpoint, so that
// nothing is registered when any of them fails.
func bind(base string, table []*Route, components Components, opts []Option) ([]binding, error) {
	m := &mounter{components: components}
	for _, opt := range opts {
		opt(m)
	}

	if err := Validate(table); err != nil {
		return nil, err
	}

	var bindings []binding
	for _, e := range Flatten(table) {
		h, err := m.handler(e)
		if err != nil {
			return nil, err
		}
		path := JoinPath(base, e.Path)
		if path == "" {
			path = "/"
		}
		bindings = append(bindings, binding{path: path, entry: e, handler: h})
	}
	return bindings, nil
}

func (m *mounter) handler(e Entry) (http.Handler, error) {
	next, ok := m.components[e.Route.Component]
	if !ok {
		if m.fallback == nil {
			return nil, errors.Wrapf(ErrComponentNotFound, "route %q needs %q", e.Path, e.Route.Component)
		}
		next = m.fallback(e.Route)
	}

	var h http.Handler = &activation{entry: e, next: next, observers: m.observers}
	if m.authenticator != nil {
		h = m.authenticator(h)
	}
	return h, nil
}

// activation runs guards and resolvers of the whole chain, outermost first,
// before handing the request to the component.
type activation struct {
	entry     Entry
	next      http.Handler
	observers []Observer
}

func (a *activation) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt := a.entry.Route
	data := make(map[string]interface{})

	for _, link := range a.entry.Chain {
		for _, g := range link.CanActivate {
			if err := g.CanActivate(r, link); err != nil {
				a.fail(w, r, err)
				return
			}
		}
		for key, res := range link.Resolve {
			v, err := res.Resolve(r, link)
			if err != nil {
				a.fail(w, r, errors.Wrapf(err, "resolve %s", key))
				return
			}
			data[key] = v
		}
	}

	r = withActivation(r, rt, data)
	for _, o := range a.observers {
		o(r, rt)
	}
	a.next.ServeHTTP(w, r)
}

func (a *activation) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		log.Errorf("activate %s: %s", a.entry.Path, err)
	} else {
		log.Debugf("activate %s: %s", a.entry.Path, err)
	}
	rest.SendErrorJSON(w, r, nil, code, err, message(err))
}

// Describe serves the descriptor itself as JSON.
func Describe(rt *Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rest.RenderJSON(w, rt)
	})
}
