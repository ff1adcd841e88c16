// Package token reads the caller of a request from the user info that the
// go-pkgz/auth middleware stores in the request context.
package token

import (
	"net/http"
	"strings"

	authtoken "github.com/go-pkgz/auth/token"
	"github.com/pkg/errors"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Principal is the authenticated caller.
type Principal struct {
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	Email       string   `json:"email,omitempty"`
	Authorities []string `json:"authorities,omitempty"`
}

// FromRequest returns the principal populated by the auth middleware.
func FromRequest(r *http.Request) (Principal, error) {
	u, err := authtoken.GetUserInfo(r)
	if err != nil {
		return Principal{}, errors.Wrap(err, "no principal in request")
	}
	return FromUser(u), nil
}

// FromUser converts a token user. Authorities are kept in the role claim as
// a comma separated list.
func FromUser(u authtoken.User) Principal {
	return Principal{
		Name:        u.Name,
		ID:          u.ID,
		Email:       u.Email,
		Authorities: ParseAuthorities(u.Role),
	}
}

// User builds the token user carrying the principal's authorities.
func (p Principal) User() authtoken.User {
	return authtoken.User{
		Name:  p.Name,
		ID:    p.ID,
		Email: p.Email,
		Role:  JoinAuthorities(p.Authorities),
	}
}

// HasAnyAuthority reports whether the principal holds at least one of the
// given authorities. An empty list is always satisfied.
func (p Principal) HasAnyAuthority(authorities ...string) bool {
	if len(authorities) == 0 {
		return true
	}
	for _, want := range authorities {
		for _, have := range p.Authorities {
			if have == want {
				return true
			}
		}
	}
	return false
}

func ParseAuthorities(role string) []string {
	var authorities []string
	for _, a := range strings.Split(role, ",") {
		if a = strings.TrimSpace(a); a != "" {
			authorities = append(authorities, a)
		}
	}
	return authorities
}

func JoinAuthorities(authorities []string) string {
	return strings.Join(authorities, ",")
}
