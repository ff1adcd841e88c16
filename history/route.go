// Package history lists the audit events of every account.
package history

import (
	"github.com/n10ty/account/route"
	"github.com/n10ty/account/token"
)

const Component = "HistoryComponent"

var Route = &route.Route{
	Path:        "history",
	Name:        "history",
	Component:   Component,
	PageTitle:   "history.title",
	Authorities: []string{token.RoleUser},
	DefaultSort: "id,asc",
	CanActivate: []route.Guard{route.UserRouteAccess},
	Resolve:     map[string]route.Resolver{route.PagingParamsKey: route.PagingParamsResolver},
}
