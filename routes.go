package account

import (
	"github.com/n10ty/account/route"
	"github.com/n10ty/account/token"
)

const (
	routeActivate            = "activate"
	routePassword            = "password"
	routePasswordResetFinish = "reset/finish"
	routePasswordResetInit   = "reset/request"
	routeRegister            = "register"
	routeSettings            = "settings"
)

const (
	ActivationComponent          = "ActivationComponent"
	PasswordComponent            = "PasswordComponent"
	PasswordResetFinishComponent = "PasswordResetFinishComponent"
	PasswordResetInitComponent   = "PasswordResetInitComponent"
	RegisterComponent            = "RegisterComponent"
	SettingsComponent            = "SettingsComponent"
)

var ActivateRoute = &route.Route{
	Path:        routeActivate,
	Name:        "activate",
	Component:   ActivationComponent,
	PageTitle:   "activate.title",
	CanActivate: []route.Guard{route.UserRouteAccess},
}

var PasswordRoute = &route.Route{
	Path:        routePassword,
	Name:        "password",
	Component:   PasswordComponent,
	PageTitle:   "global.menu.account.password",
	Authorities: []string{token.RoleUser},
	CanActivate: []route.Guard{route.UserRouteAccess},
}

var PasswordResetFinishRoute = &route.Route{
	Path:        routePasswordResetFinish,
	Name:        "password-reset-finish",
	Component:   PasswordResetFinishComponent,
	PageTitle:   "global.menu.account.password",
	CanActivate: []route.Guard{route.UserRouteAccess},
}

var PasswordResetInitRoute = &route.Route{
	Path:        routePasswordResetInit,
	Name:        "password-reset-init",
	Component:   PasswordResetInitComponent,
	PageTitle:   "global.menu.account.password",
	CanActivate: []route.Guard{route.UserRouteAccess},
}

var RegisterRoute = &route.Route{
	Path:        routeRegister,
	Name:        "register",
	Component:   RegisterComponent,
	PageTitle:   "register.title",
	CanActivate: []route.Guard{route.UserRouteAccess},
}

var SettingsRoute = &route.Route{
	Path:        routeSettings,
	Name:        "settings",
	Component:   SettingsComponent,
	PageTitle:   "global.menu.account.settings",
	Authorities: []string{token.RoleUser},
	CanActivate: []route.Guard{route.UserRouteAccess},
}
