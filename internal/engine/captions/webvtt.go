package captions

import (
	"fmt"
	"strings"
	"time"
)

const webVTTHeader = "WEBVTT"

// WebVTT renders cues as a WebVTT document.
type WebVTT struct{}

// Render returns "WEBVTT", a blank line, then one "start --> end\ntext"
// block per cue separated by blank lines.
func (WebVTT) Render(cues []Cue) string {
	blocks := make([]string, 0, len(cues))
	for _, c := range cues {
		blocks = append(blocks, formatVTTTime(c.Start)+" "+rangeSeparator+" "+formatVTTTime(c.End)+"\n"+c.Text)
	}
	return webVTTHeader + "\n\n" + strings.Join(blocks, "\n\n") + "\n"
}

// StripHeader removes the format identifier token from a rendered document.
func StripHeader(doc string) string {
	return strings.ReplaceAll(doc, webVTTHeader, "")
}

// formatVTTTime renders d as HH:MM:SS.mmm. Negative durations clamp to zero.
func formatVTTTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms%1000)
}
