package utility

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateSource is the single conversion point for the date shapes that reach
// this service: RFC3339 strings, unix epoch values (seconds or milliseconds),
// Firestore-style {seconds: N} maps, BSON datetimes and native time.Time.
// All persisted timestamps are unix milliseconds.
type DateSource struct {
	value interface{}
}

// NewDateSource wraps a raw date value of unknown shape.
func NewDateSource(v interface{}) DateSource {
	return DateSource{value: v}
}

// epochMsThreshold separates epoch seconds from epoch milliseconds. Anything
// above ~Nov 2286 in seconds is treated as milliseconds.
const epochMsThreshold = 1e10

// Time resolves the wrapped value to a time.Time.
func (d DateSource) Time() (time.Time, error) {
	switch v := d.value.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("date value is nil")
	case time.Time:
		return v, nil
	case primitive.DateTime:
		return v.Time(), nil
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, nil
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("unparseable date string: %q", v)
	case int64:
		return epochToTime(v), nil
	case int:
		return epochToTime(int64(v)), nil
	case float64:
		return epochToTime(int64(v)), nil
	case map[string]interface{}:
		// Firestore timestamp shape: {seconds: N, nanoseconds: M}
		if secs, ok := v["seconds"]; ok {
			sec := NewDateSource(secs)
			return sec.Time()
		}
		return time.Time{}, fmt.Errorf("map has no seconds field")
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", v)
	}
}

// UnixMilli resolves the wrapped value to unix milliseconds, 0 on failure.
func (d DateSource) UnixMilli() int64 {
	t, err := d.Time()
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

func epochToTime(v int64) time.Time {
	if v > epochMsThreshold {
		return time.UnixMilli(v)
	}
	return time.Unix(v, 0)
}
