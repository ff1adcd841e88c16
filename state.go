// Package account assembles the account pages into a route table and serves
// it with the caller's identity taken from a JWT.
package account

import (
	"github.com/n10ty/account/history"
	"github.com/n10ty/account/invite"
	"github.com/n10ty/account/route"
	"github.com/n10ty/account/userhistory"
)

// AccountRoutes lists the account pages in matching order.
var AccountRoutes = []*route.Route{
	ActivateRoute,
	PasswordRoute,
	PasswordResetFinishRoute,
	PasswordResetInitRoute,
	RegisterRoute,
	SettingsRoute,
	history.Route,
	userhistory.Route,
	invite.Route,
}

// AccountState is the account feature area: a single node with an empty
// path grouping AccountRoutes, ready to be mounted under any base path.
// It must not be modified.
var AccountState = []*route.Route{
	{
		Path:     "",
		Children: AccountRoutes,
	},
}
