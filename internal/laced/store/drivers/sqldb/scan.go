package sqldb

import (
	"fmt"
	"time"
)

// timestamp scans either unix nanoseconds (sqlite INTEGER columns) or a
// native time value (postgres TIMESTAMPTZ) into a UTC time.
type timestamp struct{ dst *time.Time }

func (ts timestamp) Scan(src any) error {
	t, err := toTime(src)
	if err != nil {
		return err
	}
	*ts.dst = t
	return nil
}

// nullTimestamp is timestamp for nullable columns.
type nullTimestamp struct{ dst **time.Time }

func (ts nullTimestamp) Scan(src any) error {
	if src == nil {
		*ts.dst = nil
		return nil
	}
	t, err := toTime(src)
	if err != nil {
		return err
	}
	*ts.dst = &t
	return nil
}

func toTime(src any) (time.Time, error) {
	switch v := src.(type) {
	case int64:
		return time.Unix(0, v).UTC(), nil
	case time.Time:
		return v.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("sqldb: cannot scan %T into time", src)
	}
}

func optionalTimestamp(d Dialect, t *time.Time) any {
	if t == nil {
		return nil
	}
	return d.Timestamp(*t)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
