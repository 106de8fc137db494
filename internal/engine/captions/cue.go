// Package captions turns timed caption cues into the compacted single-line
// transcript returned to clients.
//
// The pipeline is: cues -> WebVTT text (Render) -> header removed
// (StripHeader) -> one line of "<start> -> <end> <text>" segments (Compact).
package captions

import "time"

// Cue is one caption entry in playback order.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}
