package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const schema = `CREATE TABLE IF NOT EXISTS account_events (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	principal VARCHAR(255) NOT NULL,
	event_type VARCHAR(64) NOT NULL,
	event_date DATETIME(6) NOT NULL,
	data TEXT NULL,
	INDEX idx_account_events_principal (principal)
)`

type MysqlStorage struct {
	db *sqlx.DB
}

func NewMysqlStorage(config Config) (*MysqlStorage, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8&parseTime=True&loc=Local",
		config.Username,
		config.Password,
		config.Host,
		config.Port,
		config.Dbname,
	)
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect mysql")
	}

	return NewMysqlStorageWithDB(db)
}

// NewMysqlStorageWithDB uses an open connection and creates the events
// table when missing.
func NewMysqlStorageWithDB(db *sqlx.DB) (*MysqlStorage, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, errors.Wrap(err, "create account_events")
	}
	return &MysqlStorage{db: db}, nil
}

func (s *MysqlStorage) AddEvent(event *Event) error {
	res, err := s.db.NamedExec(`INSERT INTO account_events (principal, event_type, event_date, data) VALUES (:principal, :event_type, :event_date, :data)`, event)
	if err != nil {
		return errors.Wrap(err, "error during adding event")
	}
	if event.Id, err = res.LastInsertId(); err != nil {
		return errors.Wrap(err, "error during adding event")
	}
	return nil
}

func (s *MysqlStorage) FindEvents(q Query) ([]Event, int, error) {
	if q.Offset < 0 || q.Limit < 0 {
		return nil, 0, errors.Wrapf(ErrInvalidQuery, "offset %d, limit %d", q.Offset, q.Limit)
	}

	where, args := "", []interface{}{}
	if q.Principal != "" {
		where = " WHERE principal = ?"
		args = append(args, q.Principal)
	}

	var total int
	if err := s.db.Get(&total, "SELECT COUNT(*) FROM account_events"+where, args...); err != nil {
		return nil, 0, errors.Wrap(err, "count events")
	}

	direction := "DESC"
	if q.Ascending {
		direction = "ASC"
	}
	limit := q.Limit
	if limit <= 0 {
		limit = total
	}

	events := []Event{}
	query := fmt.Sprintf("SELECT id, principal, event_type, event_date, data FROM account_events%s ORDER BY %s %s LIMIT ? OFFSET ?",
		where, sortColumn(q.Predicate), direction)
	err := s.db.Select(&events, query, append(args, limit, q.Offset)...)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, 0, errors.Wrap(err, "find events")
	}
	return events, total, nil
}

func (s *MysqlStorage) Close() error {
	return s.db.Close()
}
