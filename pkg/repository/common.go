package repository

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// stringsSQL is a JSON array of strings for SQL operations
type stringsSQL []string

// Value implements driver.Valuer for database storage
func (s stringsSQL) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (s *stringsSQL) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*s = stringsSQL{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for string list", value)
	}
	if len(data) == 0 {
		*s = stringsSQL{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(s))
}

// nowUnix returns current time as unix seconds, all timestamps are stored this way
func nowUnix() int64 { return time.Now().Unix() }

// timePtr converts nullable unix seconds to *time.Time
func timePtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}

// notFound maps sql.ErrNoRows to ErrNotFound, keeping the context
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// checkPending converts zero affected rows of a status guarded update into ErrNotPending
func checkPending(res sql.Result, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %v: %w", id, ErrNotPending)
	}
	return nil
}
