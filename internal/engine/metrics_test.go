package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFormatMetrics(t *testing.T) {
	before := GetMetrics()["transcript_fallbacks"]
	IncrTranscriptFallbacks()

	if got := GetMetrics()["transcript_fallbacks"]; got != before+1 {
		t.Errorf("transcript_fallbacks = %d, want %d", got, before+1)
	}

	out := FormatMetrics()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(metricKeys) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(metricKeys), len(lines), out)
	}
	for i, k := range metricKeys {
		if !strings.HasPrefix(lines[i], k+" ") {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], k)
		}
	}
}

func TestTrackOperationPassesError(t *testing.T) {
	want := errors.New("boom")
	err := TrackOperation(context.Background(), "test", func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Errorf("TrackOperation() = %v, want %v", err, want)
	}
}
