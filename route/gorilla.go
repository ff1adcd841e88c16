package route

import (
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// MountGorilla registers every endpoint of the table on router under base.
func MountGorilla(router *mux.Router, base string, table []*Route, components Components, opts ...Option) error {
	bindings, err := bind(base, table, components, opts)
	if err != nil {
		return err
	}

	for _, b := range bindings {
		rt := router.Path(b.path).Methods(b.entry.Route.HTTPMethods()...).Handler(b.handler)
		if b.entry.Route.Name != "" {
			rt.Name(b.entry.Route.Name)
		}
		log.Debugf("mounted %v %s -> %s", b.entry.Route.HTTPMethods(), b.path, b.entry.Route.Component)
	}
	return nil
}
