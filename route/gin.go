package route

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// MountGin registers every endpoint of the table on router under base.
func MountGin(router gin.IRouter, base string, table []*Route, components Components, opts ...Option) error {
	bindings, err := bind(base, table, components, opts)
	if err != nil {
		return err
	}

	for _, b := range bindings {
		for _, m := range b.entry.Route.HTTPMethods() {
			router.Handle(m, b.path, gin.WrapH(b.handler))
		}
		log.Debugf("mounted %v %s -> %s", b.entry.Route.HTTPMethods(), b.path, b.entry.Route.Component)
	}
	return nil
}
