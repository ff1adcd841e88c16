package storage

import (
	"github.com/pkg/errors"
)

// Type selects the Storage implementation.
type Type string

const (
	TypeMysql    Type = "mysql"
	TypeInMemory Type = "inmemory"
)

var (
	ErrUnknownType  = errors.New("unknown storage type")
	ErrInvalidQuery = errors.New("invalid query")
)

// Storage keeps the audit events listed by the history views.
type Storage interface {
	AddEvent(event *Event) error
	// FindEvents returns one page of events matching q and the number of
	// events matching q across all pages.
	FindEvents(q Query) ([]Event, int, error)
}

type Config struct {
	Type            Type
	FileStoragePath string
	Host            string
	Port            int
	Username        string
	Password        string
	Dbname          string
}

func NewStorage(config Config) (Storage, error) {
	switch config.Type {
	case TypeMysql:
		return NewMysqlStorage(config)
	case TypeInMemory, "":
		return NewInMemory(config.FileStoragePath)
	default:
		return nil, errors.Wrap(ErrUnknownType, string(config.Type))
	}
}
