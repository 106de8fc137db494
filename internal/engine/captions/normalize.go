package captions

import "strings"

// NormalizeTimestamp drops the fractional-second suffix of a timestamp token:
// "00:00:01.500" -> "00:00:01". Tokens without a period are returned as is.
func NormalizeTimestamp(token string) string {
	before, _, _ := strings.Cut(token, ".")
	return before
}
