package captions

import (
	"regexp"
	"strings"
)

const (
	rangeSeparator = "-->"
	arrow          = " -> "
)

// timingLineRe matches a well-formed "start --> end" line. Hours and
// fractions are optional.
var timingLineRe = regexp.MustCompile(`^\s*(\d+:)?\d{2}:\d{2}(\.\d+)?\s*-->\s*(\d+:)?\d{2}:\d{2}(\.\d+)?(\s|$)`)

// Compact flattens a caption block into one space-joined string of
// "<start> -> <end> <text>" segments with whole-second timestamps.
//
// A line containing "-->" opens a cue and the line right after it is the
// cue text, whatever it contains. Both lines are consumed. Cues whose trimmed
// text is empty are dropped, and so are cues whose text line is itself a
// timing line. Everything else (headers, blank separators) is skipped.
func Compact(block string) string {
	lines := strings.Split(block, "\n")
	segments := make([]string, 0, len(lines)/3)

	for i := 0; i < len(lines); i++ {
		timeRange, ok := parseRange(lines[i])
		if !ok {
			continue
		}
		if i+1 >= len(lines) {
			break
		}
		i++
		next := lines[i]
		if timingLineRe.MatchString(next) {
			continue
		}
		if text := strings.TrimSpace(next); text != "" {
			segments = append(segments, timeRange+" "+text)
		}
	}

	return strings.Join(segments, " ")
}

// parseRange splits a "start --> end [settings]" line and returns the
// normalized "start -> end" form.
func parseRange(line string) (string, bool) {
	start, end, ok := strings.Cut(line, rangeSeparator)
	if !ok {
		return "", false
	}
	start = strings.TrimSpace(start)
	if fields := strings.Fields(end); len(fields) > 0 {
		end = fields[0]
	} else {
		end = ""
	}
	return NormalizeTimestamp(start) + arrow + NormalizeTimestamp(end), true
}
