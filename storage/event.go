package storage

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

const EventRouteActivated = "ROUTE_ACTIVATED"

type Event struct {
	Id        int64     `db:"id" json:"id"`
	Principal string    `db:"principal" json:"principal"`
	Type      string    `db:"event_type" json:"type"`
	Date      time.Time `db:"event_date" json:"date"`
	Data      EventData `db:"data" json:"data,omitempty"`
}

// EventData is stored as a JSON document.
type EventData map[string]string

func (d EventData) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *EventData) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.Errorf("unsupported event data type %T", src)
	}
	return json.Unmarshal(b, d)
}

// Query selects a page of events. An empty Principal matches everyone.
type Query struct {
	Principal string
	Offset    int
	Limit     int
	Predicate string
	Ascending bool
}

// sortColumns whitelists sort predicates; unknown predicates sort by id.
var sortColumns = map[string]string{
	"id":        "id",
	"principal": "principal",
	"type":      "event_type",
	"date":      "event_date",
}

func sortColumn(predicate string) string {
	if c, ok := sortColumns[predicate]; ok {
		return c
	}
	return "id"
}
