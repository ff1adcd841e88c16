package history

import (
	"net/http"
	"strconv"

	"github.com/go-pkgz/rest"
	"github.com/n10ty/account/route"
	"github.com/n10ty/account/storage"
	log "github.com/sirupsen/logrus"
)

const TotalCountHeader = "X-Total-Count"

// NewComponent lists all events, one page at a time.
func NewComponent(s storage.Storage) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Render(w, r, s, "")
	})
}

// Render writes the page of events of the principal ID (everyone when empty)
// selected by the resolved paging parameters.
func Render(w http.ResponseWriter, r *http.Request, s storage.Storage, principal string) {
	p, ok := route.Paging(r)
	if !ok {
		p = route.PagingParams{Page: 1, Size: route.DefaultPageSize, Predicate: "id", Ascending: true}
	}

	events, total, err := s.FindEvents(storage.Query{
		Principal: principal,
		Offset:    p.Offset(),
		Limit:     p.Size,
		Predicate: p.Predicate,
		Ascending: p.Ascending,
	})
	if err != nil {
		log.Errorf("find events: %s", err)
		rest.SendErrorJSON(w, r, nil, http.StatusInternalServerError, err, "internal error")
		return
	}

	w.Header().Set(TotalCountHeader, strconv.Itoa(total))
	rest.RenderJSON(w, events)
}
