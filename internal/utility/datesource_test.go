package utility

import (
	"testing"
	"time"
)

func TestDateSource_RFC3339String(t *testing.T) {
	tm, err := NewDateSource("2025-03-01T12:30:00Z").Time()
	if err != nil {
		t.Fatalf("Time() error: %v", err)
	}
	if tm.Year() != 2025 || tm.Month() != time.March || tm.Hour() != 12 {
		t.Errorf("unexpected time: %v", tm)
	}
}

func TestDateSource_EpochSeconds(t *testing.T) {
	// 2024-01-01T00:00:00Z
	tm, err := NewDateSource(int64(1704067200)).Time()
	if err != nil {
		t.Fatalf("Time() error: %v", err)
	}
	if tm.UTC().Year() != 2024 {
		t.Errorf("expected year 2024, got %v", tm.UTC())
	}
}

func TestDateSource_EpochMilliseconds(t *testing.T) {
	tm, err := NewDateSource(int64(1704067200000)).Time()
	if err != nil {
		t.Fatalf("Time() error: %v", err)
	}
	if tm.UTC().Year() != 2024 {
		t.Errorf("expected year 2024, got %v", tm.UTC())
	}
}

func TestDateSource_SecondsMap(t *testing.T) {
	// Firestore timestamp shape as it arrives from JSON
	v := map[string]interface{}{"seconds": float64(1704067200), "nanoseconds": float64(0)}
	tm, err := NewDateSource(v).Time()
	if err != nil {
		t.Fatalf("Time() error: %v", err)
	}
	if tm.UTC().Year() != 2024 {
		t.Errorf("expected year 2024, got %v", tm.UTC())
	}
}

func TestDateSource_UnparseableReturnsZero(t *testing.T) {
	if ms := NewDateSource("not a date").UnixMilli(); ms != 0 {
		t.Errorf("expected 0 for unparseable date, got %d", ms)
	}
	if ms := NewDateSource(nil).UnixMilli(); ms != 0 {
		t.Errorf("expected 0 for nil date, got %d", ms)
	}
}
