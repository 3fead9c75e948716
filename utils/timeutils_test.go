package utils

import (
	"testing"
	"time"
)

func TestIso8601FromUnixSeconds(t *testing.T) {
	if got := Iso8601FromUnixSeconds(0); got != "1970-01-01T00:00:00Z" {
		t.Errorf("Iso8601FromUnixSeconds(0) = %q", got)
	}
}

func TestIso8601FromTime(t *testing.T) {
	if got := Iso8601FromTime(time.Time{}); got != "" {
		t.Errorf("zero time = %q, want empty", got)
	}
	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.FixedZone("JST", 9*3600))
	if got := Iso8601FromTime(ts); got != "2024-05-01T03:30:00Z" {
		t.Errorf("Iso8601FromTime = %q", got)
	}
	if _, err := time.Parse(time.RFC3339, Iso8601Now()); err != nil {
		t.Errorf("Iso8601Now not RFC3339: %v", err)
	}
}
