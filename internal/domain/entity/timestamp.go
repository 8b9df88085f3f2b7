package entity

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
// 1e11 seconds is past the year 5000.
const epochMillisThreshold = 1e11

// Timestamp is an optional instant from upstream data. It accepts an RFC 3339
// string, epoch seconds or milliseconds (as a number or a string), or null.
// Anything else leaves it absent. The zero value is absent.
type Timestamp struct {
	at    time.Time
	valid bool
}

// TimestampFrom wraps t.
func TimestampFrom(t time.Time) Timestamp {
	return Timestamp{at: t.UTC(), valid: true}
}

// ParseTimestamp reads s in any accepted text form.
func ParseTimestamp(s string) Timestamp {
	text := strings.TrimSpace(s)
	if text == "" {
		return Timestamp{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, text); err == nil {
			return TimestampFrom(t)
		}
	}
	return fromEpoch(text)
}

func fromEpoch(text string) Timestamp {
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || n <= 0 || n > 1e15 {
		return Timestamp{}
	}
	if n >= epochMillisThreshold {
		return TimestampFrom(time.UnixMilli(int64(n)))
	}
	sec := int64(n)
	return TimestampFrom(time.Unix(sec, int64((n-float64(sec))*1e9)))
}

// Time returns the instant and whether it is present.
func (ts Timestamp) Time() (time.Time, bool) {
	return ts.at, ts.valid
}

// Valid reports whether an instant is present.
func (ts Timestamp) Valid() bool {
	return ts.valid
}

// Ptr returns the instant or nil, for omitempty fields.
func (ts Timestamp) Ptr() *time.Time {
	if !ts.valid {
		return nil
	}
	t := ts.at
	return &t
}

// MarshalJSON writes RFC 3339, or null when absent.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.valid {
		return []byte("null"), nil
	}
	return []byte(`"` + ts.at.Format(time.RFC3339Nano) + `"`), nil
}

// UnmarshalJSON never fails; unreadable input leaves the field absent.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	switch {
	case text == "" || text == "null":
		*ts = Timestamp{}
	case strings.HasPrefix(text, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*ts = Timestamp{}
			return nil
		}
		*ts = ParseTimestamp(s)
	default:
		*ts = fromEpoch(text)
	}
	return nil
}
