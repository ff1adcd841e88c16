package userhistory

import (
	"net/http"

	"github.com/go-pkgz/rest"
	"github.com/n10ty/account/history"
	"github.com/n10ty/account/storage"
	"github.com/n10ty/account/token"
)

func NewComponent(s storage.Storage) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := token.FromRequest(r)
		if err != nil {
			rest.SendErrorJSON(w, r, nil, http.StatusUnauthorized, err, "unauthorized")
			return
		}
		history.Render(w, r, s, p.ID)
	})
}
