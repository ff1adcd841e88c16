package userhistory_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authtoken "github.com/go-pkgz/auth/token"
	"github.com/n10ty/account/storage"
	"github.com/n10ty/account/token"
	"github.com/n10ty/account/userhistory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	s, err := storage.NewInMemory("")
	require.NoError(t, err)
	for _, p := range []string{"1", "2", "1"} {
		require.NoError(t, s.AddEvent(&storage.Event{Principal: p, Type: storage.EventRouteActivated, Date: time.Now()}))
	}
	c := userhistory.NewComponent(s)

	t.Run("TestNotAuthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user-history", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
	t.Run("TestSameNameOtherAccount", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/user-history", nil)
		r = authtoken.SetUserInfo(r, token.Principal{Name: "Alex", ID: "2"}.User())
		rec := httptest.NewRecorder()
		c.ServeHTTP(rec, r)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("X-Total-Count"))
	})
	t.Run("TestOwnEventsOnly", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/user-history", nil)
		r = authtoken.SetUserInfo(r, token.Principal{Name: "Alex", ID: "1"}.User())
		rec := httptest.NewRecorder()
		c.ServeHTTP(rec, r)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-Total-Count"))

		var events []storage.Event
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
		require.Len(t, events, 2)
		for _, e := range events {
			assert.Equal(t, "1", e.Principal)
		}
	})
}
