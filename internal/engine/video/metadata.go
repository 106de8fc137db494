package video

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

// Metadata extracts and normalizes the descriptive metadata of videoID.
// Any extraction failure is reported as ErrMetadataUnavailable.
func (s *Service) Metadata(ctx context.Context, videoID string) (engine.VideoMetadata, error) {
	engine.IncrMetadataRequests()

	info, err := s.metadata.Extract(ctx, watchURLPrefix+url.QueryEscape(videoID), engine.ExtractOptions{
		Quiet:      true,
		NoWarnings: true,
	})
	if err != nil {
		engine.IncrMetadataErrors()
		slog.Warn("metadata: extraction failed", slog.String("id", videoID), slog.Any("error", err))
		return engine.VideoMetadata{}, metadataUnavailable(err)
	}
	return normalizeMetadata(info), nil
}

// normalizeMetadata applies the documented defaults. Like and comment
// counts keep their absence; view count defaults to zero.
func normalizeMetadata(info *engine.RawVideoInfo) engine.VideoMetadata {
	if info == nil {
		info = &engine.RawVideoInfo{}
	}
	var seconds int64
	if info.Duration != nil {
		seconds = int64(*info.Duration)
	}
	return engine.VideoMetadata{
		Title:        deref(info.Title),
		Channel:      deref(info.Uploader),
		Duration:     FormatDuration(seconds),
		ViewCount:    deref(info.ViewCount),
		Description:  deref(info.Description),
		UploadDate:   FormatDate(info.UploadDate),
		Thumbnail:    deref(info.Thumbnail),
		LikeCount:    info.LikeCount,
		CommentCount: info.CommentCount,
	}
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
