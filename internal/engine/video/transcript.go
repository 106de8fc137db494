package video

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
)

// Transcript returns the compacted transcript of videoID in lang (the
// default language when empty). If lang fails for any reason the fallback
// language is tried once; if that fails too the error is
// ErrTranscriptUnavailable carrying the fallback failure.
func (s *Service) Transcript(ctx context.Context, videoID, lang string) (string, error) {
	engine.IncrTranscriptRequests()
	if lang == "" {
		lang = s.defaultLang
	}

	cues, err := s.captions.Fetch(ctx, videoID, lang)
	if err != nil {
		slog.Warn("transcript: requested language failed, trying fallback",
			slog.String("id", videoID), slog.String("lang", lang),
			slog.String("fallback", s.fallbackLang), slog.Any("error", err))
		engine.IncrTranscriptFallbacks()

		cues, err = s.captions.Fetch(ctx, videoID, s.fallbackLang)
		if err != nil {
			engine.IncrTranscriptErrors()
			slog.Warn("transcript: fallback failed",
				slog.String("id", videoID), slog.Any("error", err))
			return "", transcriptUnavailable(err)
		}
	}

	return captions.Compact(captions.StripHeader(s.formatter.Render(cues))), nil
}
