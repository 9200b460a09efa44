package sqlstore

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

var timeLayouts = []string{
	timestampLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	dateLayout,
}

// timeCol escanea timestamps que llegan como time.Time (pgx) o como texto (sqlite).
type timeCol struct {
	dst *time.Time
}

func (c timeCol) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*c.dst = v.UTC()
		return nil
	case string:
		return c.parse(v)
	case []byte:
		return c.parse(string(v))
	case nil:
		*c.dst = time.Time{}
		return nil
	default:
		return errors.Errorf("unsupported time value %T", src)
	}
}

func (c timeCol) parse(s string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*c.dst = t.UTC()
			return nil
		}
	}
	return errors.Errorf("invalid time value %q", s)
}

// dateCol escanea una fecha (DATE o TEXT) normalizada a medianoche UTC.
// Valid=false cuando la columna es NULL.
type dateCol struct {
	Time  time.Time
	Valid bool
}

func (c *dateCol) Scan(src any) error {
	if src == nil {
		c.Time, c.Valid = time.Time{}, false
		return nil
	}
	var t time.Time
	if err := (timeCol{dst: &t}).Scan(src); err != nil {
		return err
	}
	y, m, d := t.Date()
	c.Time = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	c.Valid = true
	return nil
}

func (c dateCol) Ptr() *time.Time {
	if !c.Valid {
		return nil
	}
	t := c.Time
	return &t
}

func dateArg(t time.Time) string {
	return t.Format(dateLayout)
}

func nullDateArg(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: dateArg(*t), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func encodeTimes(times []string) (string, error) {
	if times == nil {
		times = []string{}
	}
	b, err := json.Marshal(times)
	if err != nil {
		return "", errors.Wrap(err, "encode times")
	}
	return string(b), nil
}

func decodeTimes(raw string) ([]string, error) {
	out := []string{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, errors.Wrap(err, "decode times")
	}
	return out, nil
}
