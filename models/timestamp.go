package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"
)

// TimestampLayout is the canonical text form of every timestamp the API emits.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a server-assigned point in time stored as timestamptz.
// It always renders in TimestampLayout; a zero value renders as the current
// time so callers never see an empty or unparseable date.
type Timestamp time.Time

var timestampInputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses the formats the datastore and clients produce.
// Unparseable input yields the zero Timestamp.
func ParseTimestamp(raw string) Timestamp {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampInputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Timestamp(t)
		}
	}
	return Timestamp{}
}

func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

func (t Timestamp) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Timestamp) After(other Timestamp) bool {
	return time.Time(t).After(time.Time(other))
}

func (t Timestamp) String() string {
	value := time.Time(t)
	if value.IsZero() {
		value = time.Now()
	}
	return value.UTC().Format(TimestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON is lenient: timestamps are server-assigned, so whatever a
// client echoes back is parsed if possible and otherwise dropped.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = Timestamp{}
		return nil
	}
	*t = ParseTimestamp(raw)
	return nil
}

// Scan implements sql.Scanner. Corrupt values scan as zero rather than failing the read.
func (t *Timestamp) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*t = Timestamp(v)
	case string:
		*t = ParseTimestamp(v)
	case []byte:
		*t = ParseTimestamp(string(v))
	default:
		*t = Timestamp{}
	}
	return nil
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t).UTC(), nil
}

func (Timestamp) GormDataType() string {
	return "timestamptz"
}
