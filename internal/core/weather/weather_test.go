package weather

import (
	"context"
	"testing"
	"time"
)

func TestLocalTimeReport(t *testing.T) {
	fixed := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)

	src := NewLocalTime(func() time.Time { return fixed }, time.UTC)

	got, err := src.Report(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Monday, March 4, 2024 09:30 UTC"
	if got != want {
		t.Errorf("Report() = %q, want %q", got, want)
	}
}

func TestLocalTimeDefaults(t *testing.T) {
	src := NewLocalTime(nil, nil)

	got, err := src.Report(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got == "" {
		t.Error("expected non-empty report")
	}
}
