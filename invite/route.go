// Package invite declares the page from which an account invites others.
// Its component is provided by the host application.
package invite

import (
	"github.com/n10ty/account/route"
	"github.com/n10ty/account/token"
)

const Component = "InviteComponent"

var Route = &route.Route{
	Path:        "invite",
	Name:        "invite",
	Component:   Component,
	PageTitle:   "invite.title",
	Authorities: []string{token.RoleUser},
	CanActivate: []route.Guard{route.UserRouteAccess},
}
