package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests  atomic.Int64
	TranscriptFallbacks atomic.Int64
	TranscriptErrors    atomic.Int64
	MetadataRequests    atomic.Int64
	MetadataErrors      atomic.Int64
	FullRequests        atomic.Int64
	CaptionFetches      atomic.Int64
	CaptionFetchErrors  atomic.Int64
	YtDlpRuns           atomic.Int64
	YtDlpErrors         atomic.Int64
}

var metricKeys = []string{
	"transcript_requests", "transcript_fallbacks", "transcript_errors",
	"metadata_requests", "metadata_errors",
	"full_requests",
	"caption_fetches", "caption_fetch_errors",
	"ytdlp_runs", "ytdlp_errors",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"transcript_requests":  metrics.TranscriptRequests.Load(),
		"transcript_fallbacks": metrics.TranscriptFallbacks.Load(),
		"transcript_errors":    metrics.TranscriptErrors.Load(),
		"metadata_requests":    metrics.MetadataRequests.Load(),
		"metadata_errors":      metrics.MetadataErrors.Load(),
		"full_requests":        metrics.FullRequests.Load(),
		"caption_fetches":      metrics.CaptionFetches.Load(),
		"caption_fetch_errors": metrics.CaptionFetchErrors.Load(),
		"ytdlp_runs":           metrics.YtDlpRuns.Load(),
		"ytdlp_errors":         metrics.YtDlpErrors.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the video service.
func IncrTranscriptRequests()  { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptFallbacks() { metrics.TranscriptFallbacks.Add(1) }
func IncrTranscriptErrors()    { metrics.TranscriptErrors.Add(1) }
func IncrMetadataRequests()    { metrics.MetadataRequests.Add(1) }
func IncrMetadataErrors()      { metrics.MetadataErrors.Add(1) }
func IncrFullRequests()        { metrics.FullRequests.Add(1) }

// Incrementors for sources/ sub-package.
func IncrCaptionFetches()     { metrics.CaptionFetches.Add(1) }
func IncrCaptionFetchErrors() { metrics.CaptionFetchErrors.Add(1) }
func IncrYtDlpRuns()          { metrics.YtDlpRuns.Add(1) }
func IncrYtDlpErrors()        { metrics.YtDlpErrors.Add(1) }

// TrackOperation logs a warning if an operation takes longer than Cfg.SlowThreshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > Cfg.SlowThreshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
