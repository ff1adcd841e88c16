package account_test

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/n10ty/account"
	"github.com/n10ty/account/route"
	"github.com/n10ty/account/storage"
	"github.com/n10ty/account/token"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const email = "a@a.a"

func testConfig(router string) *account.Config {
	return &account.Config{
		Host:            "localhost",
		Secret:          "d123",
		DisableXSRF:     true,
		TokenDuration:   time.Minute,
		CookieDuration:  time.Minute,
		Storage:         storage.Config{Type: storage.TypeInMemory},
		Router:          router,
		BasePath:        "/account",
		LogLevel:        "debug",
		DescribeMissing: true,
	}
}

func do(t *testing.T, url, jwt string) (*http.Response, string) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if jwt != "" {
		req.Header.Set("X-JWT", jwt)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServer(t *testing.T) {
	account.SetupLogger("debug")
	defer log.SetLevel(log.InfoLevel)

	for _, router := range []string{account.RouterGorilla, account.RouterGin} {
		router := router
		t.Run(router, func(t *testing.T) {
			srv, err := account.NewServer(testConfig(router), route.Components{
				account.SettingsComponent: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					p, err := token.FromRequest(r)
					if err != nil {
						w.WriteHeader(http.StatusInternalServerError)
						return
					}
					w.Write([]byte("settings of " + p.Name))
				}),
			})
			require.NoError(t, err)
			defer srv.Close()

			ts := httptest.NewServer(srv.Handler())
			defer ts.Close()

			userJwt, err := srv.Token(token.Principal{Name: email, Authorities: []string{token.RoleUser}})
			require.NoError(t, err)
			guestJwt, err := srv.Token(token.Principal{Name: "guest@a.a", Authorities: []string{"ROLE_GUEST"}})
			require.NoError(t, err)

			t.Run("TestPublicRouteDescribed", func(t *testing.T) {
				resp, body := do(t, ts.URL+"/account/register", "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				assert.JSONEq(t, `{"path":"register","name":"register","component":"RegisterComponent","pageTitle":"register.title"}`, body)
			})
			t.Run("TestNotMountedOutsideBasePath", func(t *testing.T) {
				resp, _ := do(t, ts.URL+"/register", "")
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})
			t.Run("TestAccessPrivateNotAuthorized", func(t *testing.T) {
				resp, body := do(t, ts.URL+"/account/settings", "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
				assert.Equal(t, "{\"error\":\"unauthorized\"}\n", body)
			})
			t.Run("TestAccessPrivateWithoutAuthority", func(t *testing.T) {
				resp, body := do(t, ts.URL+"/account/settings", guestJwt)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				assert.Equal(t, "{\"error\":\"access denied\"}\n", body)
			})
			t.Run("TestAccessPrivateAuthorized", func(t *testing.T) {
				resp, body := do(t, ts.URL+"/account/settings", userJwt)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				assert.Equal(t, "settings of "+email, body)
			})
			t.Run("TestUserHistory", func(t *testing.T) {
				resp, body := do(t, ts.URL+"/account/user-history", userJwt)
				require.Equal(t, http.StatusOK, resp.StatusCode, body)
				assert.Equal(t, "2", resp.Header.Get("X-Total-Count"))

				var events []storage.Event
				require.NoError(t, json.Unmarshal([]byte(body), &events))
				require.Len(t, events, 2)
				assert.Equal(t, email, events[0].Data["name"])
				assert.Equal(t, "settings", events[0].Data["route"])
				assert.Equal(t, "/account/settings", events[0].Data["path"])
				assert.Equal(t, "user-history", events[1].Data["route"])
			})
			t.Run("TestHistoryPaged", func(t *testing.T) {
				resp, body := do(t, ts.URL+"/account/history?size=1&sort=id,desc", userJwt)
				require.Equal(t, http.StatusOK, resp.StatusCode, body)
				assert.Equal(t, "3", resp.Header.Get("X-Total-Count"))

				var events []storage.Event
				require.NoError(t, json.Unmarshal([]byte(body), &events))
				require.Len(t, events, 1)
				assert.Equal(t, "history", events[0].Data["route"])
			})
			t.Run("TestHistoryBadPage", func(t *testing.T) {
				resp, _ := do(t, ts.URL+"/account/history?page=-1", userJwt)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			})
			t.Run("TestAnonymousActivationNotRecorded", func(t *testing.T) {
				_, total, err := srv.Storage().FindEvents(storage.Query{})
				require.NoError(t, err)
				assert.Equal(t, 3, total)
			})
		})
	}
}

func TestServerUserHistorySameName(t *testing.T) {
	srv, err := account.NewServer(testConfig(account.RouterGorilla), nil)
	require.NoError(t, err)
	defer srv.Close()

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	first, err := srv.Token(token.Principal{Name: "Alex", ID: "u1", Authorities: []string{token.RoleUser}})
	require.NoError(t, err)
	second, err := srv.Token(token.Principal{Name: "Alex", ID: "u2", Authorities: []string{token.RoleUser}})
	require.NoError(t, err)

	resp, _ := do(t, ts.URL+"/account/settings", first)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := do(t, ts.URL+"/account/user-history", second)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "1", resp.Header.Get("X-Total-Count"))

	var events []storage.Event
	require.NoError(t, json.Unmarshal([]byte(body), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "u2", events[0].Principal)
	assert.Equal(t, "Alex", events[0].Data["name"])
}

func TestIssueTokenAccepted(t *testing.T) {
	cfg := testConfig(account.RouterGin)
	srv, err := account.NewServer(cfg, nil)
	require.NoError(t, err)
	defer srv.Close()

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	jwt, err := account.IssueToken(cfg, token.Principal{Name: email, Authorities: []string{token.RoleUser}})
	require.NoError(t, err)

	resp, body := do(t, ts.URL+"/account/settings", jwt)
	assert.Equal(t, http.StatusOK, resp.StatusCode, body)
}

func TestServerHistoryPageOutOfRange(t *testing.T) {
	srv, err := account.NewServer(testConfig(account.RouterGorilla), nil)
	require.NoError(t, err)
	defer srv.Close()

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	jwt, err := srv.Token(token.Principal{Name: email, Authorities: []string{token.RoleUser}})
	require.NoError(t, err)

	resp, _ := do(t, ts.URL+"/account/history?page=100000000000000000&size=100", jwt)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServerMissingComponent(t *testing.T) {
	cfg := testConfig(account.RouterGorilla)
	cfg.DescribeMissing = false

	_, err := account.NewServer(cfg, nil)
	assert.True(t, errors.Is(err, route.ErrComponentNotFound))
}

func TestServerUnknownRouter(t *testing.T) {
	_, err := account.NewServer(testConfig("chi"), nil)
	assert.Error(t, err)
}
