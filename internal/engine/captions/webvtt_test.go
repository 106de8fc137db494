package captions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWebVTTRender(t *testing.T) {
	cues := []Cue{
		{Start: 1500 * time.Millisecond, End: 3 * time.Second, Text: "Hello world"},
		{Start: time.Hour + 2*time.Minute + 3*time.Second + 45*time.Millisecond, End: time.Hour + 2*time.Minute + 5*time.Second, Text: "later"},
	}

	got := WebVTT{}.Render(cues)

	want := "WEBVTT\n\n" +
		"00:00:01.500 --> 00:00:03.000\nHello world\n\n" +
		"01:02:03.045 --> 01:02:05.000\nlater\n"
	assert.Equal(t, want, got)
}

func TestWebVTTRenderEmpty(t *testing.T) {
	assert.Equal(t, "WEBVTT\n\n\n", WebVTT{}.Render(nil))
	assert.Equal(t, "", Compact(StripHeader(WebVTT{}.Render(nil))))
}

func TestStripHeader(t *testing.T) {
	assert.Equal(t, "\n\n00:00:01.000 --> 00:00:02.000\nhi\n", StripHeader("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nhi\n"))
}

func TestRenderThenCompact(t *testing.T) {
	cues := []Cue{
		{Start: 0, End: 1900 * time.Millisecond, Text: "primero"},
		{Start: 1900 * time.Millisecond, End: 2500 * time.Millisecond, Text: "  "},
		{Start: 2500 * time.Millisecond, End: 61 * time.Second, Text: "tercero"},
	}

	got := Compact(StripHeader(WebVTT{}.Render(cues)))

	assert.Equal(t, "00:00:00 -> 00:00:01 primero 00:00:02 -> 00:01:01 tercero", got)
}

func TestRenderThenCompactKeepsSeparatorInText(t *testing.T) {
	cues := []Cue{
		{Start: time.Second, End: 2 * time.Second, Text: "use a --> b"},
		{Start: 2 * time.Second, End: 3 * time.Second, Text: "next"},
	}

	got := Compact(StripHeader(WebVTT{}.Render(cues)))

	assert.Equal(t, "00:00:01 -> 00:00:02 use a --> b 00:00:02 -> 00:00:03 next", got)
}

func TestFormatVTTTimeClampsNegative(t *testing.T) {
	assert.Equal(t, "00:00:00.000", formatVTTTime(-time.Second))
}
