package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// JSONTime accepts the timestamp shapes field devices send: RFC3339 with or
// without fractions, zone-less local forms, plain dates and unix seconds or
// milliseconds.
type JSONTime time.Time

var jsonTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON parses a quoted string or a bare number.
func (jt *JSONTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*jt = JSONTime(time.Time{})
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	} else if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		// values past year 2286 in seconds are treated as milliseconds
		if n > 1e10 {
			*jt = JSONTime(time.UnixMilli(n).UTC())
		} else {
			*jt = JSONTime(time.Unix(n, 0).UTC())
		}
		return nil
	}

	t, err := ParseTime(s)
	if err != nil {
		return fmt.Errorf("JSONTime.UnmarshalJSON: %w", err)
	}
	*jt = JSONTime(t)
	return nil
}

// ParseTime parses the string forms JSONTime accepts. Query parameters use it
// too.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range jsonTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", s)
}

// MarshalJSON emits RFC3339.
func (jt JSONTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(jt).Format(time.RFC3339))
}

// Time returns the wrapped time.
func (jt JSONTime) Time() time.Time { return time.Time(jt) }

// IsZero reports whether no time was given.
func (jt JSONTime) IsZero() bool { return time.Time(jt).IsZero() }
