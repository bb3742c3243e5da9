package db

import (
	"database/sql"
	"time"
)

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

// timePtrArg converts an optional timestamp into a driver argument; nil becomes SQL NULL.
func timePtrArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
