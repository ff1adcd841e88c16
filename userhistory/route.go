// Package userhistory lists the audit events of the calling account.
package userhistory

import (
	"github.com/n10ty/account/route"
	"github.com/n10ty/account/token"
)

const Component = "UserHistoryComponent"

var Route = &route.Route{
	Path:        "user-history",
	Name:        "user-history",
	Component:   Component,
	PageTitle:   "userHistory.title",
	Authorities: []string{token.RoleUser},
	DefaultSort: "id,asc",
	CanActivate: []route.Guard{route.UserRouteAccess},
	Resolve:     map[string]route.Resolver{route.PagingParamsKey: route.PagingParamsResolver},
}
