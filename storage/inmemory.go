package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// InMemory keeps events in memory. When a path is given every event is also
// appended to the file as a JSON line and the file is replayed on start.
type InMemory struct {
	mu     sync.RWMutex
	events []Event
	lastId int64
	f      *os.File
}

func NewInMemory(path string) (*InMemory, error) {
	m := &InMemory{}
	if path == "" {
		return m, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "open event file")
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		t := strings.TrimSpace(scanner.Text())
		if t == "" {
			continue
		}
		var e Event
		if err := json.Unmarshal([]byte(t), &e); err != nil {
			f.Close()
			return nil, errors.Wrap(err, "error reading file")
		}
		m.events = append(m.events, e)
		if e.Id > m.lastId {
			m.lastId = e.Id
		}
	}
	if err := scanner.Err(); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "error reading file")
	}

	log.Debugf("Loaded %d events from %s", len(m.events), path)
	m.f = f
	return m, nil
}

func (m *InMemory) AddEvent(event *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := *event
	e.Id = m.lastId + 1

	if m.f != nil {
		line, err := json.Marshal(e)
		if err != nil {
			return errors.Wrap(err, "encode event")
		}
		if _, err := m.f.Write(append(line, '\n')); err != nil {
			return errors.Wrap(err, "write event")
		}
		if err := m.f.Sync(); err != nil {
			return errors.Wrap(err, "sync event file")
		}
	}

	m.lastId = e.Id
	m.events = append(m.events, e)
	event.Id = e.Id
	return nil
}

func (m *InMemory) FindEvents(q Query) ([]Event, int, error) {
	if q.Offset < 0 || q.Limit < 0 {
		return nil, 0, errors.Wrapf(ErrInvalidQuery, "offset %d, limit %d", q.Offset, q.Limit)
	}

	m.mu.RLock()
	var matched []Event
	for _, e := range m.events {
		if q.Principal == "" || e.Principal == q.Principal {
			matched = append(matched, e)
		}
	}
	m.mu.RUnlock()

	less := eventLess(sortColumn(q.Predicate))
	sort.SliceStable(matched, func(i, j int) bool {
		if q.Ascending {
			return less(matched[i], matched[j])
		}
		return less(matched[j], matched[i])
	})

	total := len(matched)
	if q.Offset >= total {
		return []Event{}, total, nil
	}
	end := total
	if q.Limit > 0 && q.Offset+q.Limit < total {
		end = q.Offset + q.Limit
	}
	return matched[q.Offset:end], total, nil
}

// Close releases the backing file, if any.
func (m *InMemory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.f == nil {
		return nil
	}
	err := m.f.Close()
	m.f = nil
	return err
}

func eventLess(column string) func(a, b Event) bool {
	switch column {
	case "principal":
		return func(a, b Event) bool { return a.Principal < b.Principal }
	case "event_type":
		return func(a, b Event) bool { return a.Type < b.Type }
	case "event_date":
		return func(a, b Event) bool { return a.Date.Before(b.Date) }
	default:
		return func(a, b Event) bool { return a.Id < b.Id }
	}
}
