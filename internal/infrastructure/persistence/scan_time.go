package persistence

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// sqliteTimeLayouts are the text forms SQLite hands back for timestamps
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// nullTime scans aggregated timestamps such as MIN(created_at).
// PostgreSQL returns them as time values; SQLite loses the column type on
// aggregates and returns text, so both are accepted.
type nullTime struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner
func (t *nullTime) Scan(src any) error {
	t.Time, t.Valid = time.Time{}, false
	switch v := src.(type) {
	case nil:
		return nil
	case time.Time:
		t.Time, t.Valid = v, true
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into a timestamp", src)
	}
}

// Value implements driver.Valuer
func (t nullTime) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Time, nil
}

func (t *nullTime) parse(s string) error {
	for _, layout := range sqliteTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time, t.Valid = parsed, true
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}

// Ptr returns nil when the value is NULL
func (t nullTime) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	tm := t.Time
	return &tm
}
