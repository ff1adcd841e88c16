package account_test

import (
	"testing"

	"github.com/n10ty/account"
	"github.com/n10ty/account/history"
	"github.com/n10ty/account/invite"
	"github.com/n10ty/account/route"
	"github.com/n10ty/account/userhistory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountState(t *testing.T) {
	require.Len(t, account.AccountState, 1)
	root := account.AccountState[0]
	assert.Equal(t, "", root.Path)

	want := []*route.Route{
		account.ActivateRoute,
		account.PasswordRoute,
		account.PasswordResetFinishRoute,
		account.PasswordResetInitRoute,
		account.RegisterRoute,
		account.SettingsRoute,
		history.Route,
		userhistory.Route,
		invite.Route,
	}
	require.Len(t, root.Children, len(want))
	for i := range want {
		assert.Same(t, want[i], root.Children[i], "child %d", i)
	}
}

func TestAccountStateNoDuplicates(t *testing.T) {
	seen := make(map[*route.Route]bool)
	for _, r := range account.AccountState[0].Children {
		assert.False(t, seen[r], "descriptor %q appears twice", r.Name)
		seen[r] = true
	}
	assert.NoError(t, route.Validate(account.AccountState))
}

func TestAccountStateStable(t *testing.T) {
	first := account.AccountState
	second := account.AccountState
	require.Len(t, second, 1)
	assert.Same(t, first[0], second[0])
	assert.Equal(t, first, second)
}

func TestAccountStatePaths(t *testing.T) {
	var paths []string
	for _, e := range route.Flatten(account.AccountState) {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{
		"/activate",
		"/password",
		"/reset/finish",
		"/reset/request",
		"/register",
		"/settings",
		"/history",
		"/user-history",
		"/invite",
	}, paths)
}
