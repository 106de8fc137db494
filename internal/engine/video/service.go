// Package video combines caption and metadata lookups into the three
// operations the API exposes: transcript, metadata and the full record.
package video

import (
	"context"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
)

// CaptionSource fetches the cues of one video in one language.
type CaptionSource interface {
	Fetch(ctx context.Context, videoID, lang string) ([]captions.Cue, error)
}

// CaptionFormatter renders cues into a caption document.
type CaptionFormatter interface {
	Render(cues []captions.Cue) string
}

// MetadataSource extracts raw metadata for a video URL.
type MetadataSource interface {
	Extract(ctx context.Context, url string, opts engine.ExtractOptions) (*engine.RawVideoInfo, error)
}

// Options tunes a Service. Zero values fall back to engine defaults.
type Options struct {
	DefaultLanguage  string
	FallbackLanguage string
	Formatter        CaptionFormatter
}

// Service is stateless: every call goes to the collaborators afresh, so one
// value is safe for concurrent use.
type Service struct {
	captions     CaptionSource
	metadata     MetadataSource
	formatter    CaptionFormatter
	defaultLang  string
	fallbackLang string
}

// NewService wires the caption and metadata collaborators.
func NewService(cs CaptionSource, ms MetadataSource, opts Options) *Service {
	s := &Service{
		captions:     cs,
		metadata:     ms,
		formatter:    opts.Formatter,
		defaultLang:  opts.DefaultLanguage,
		fallbackLang: opts.FallbackLanguage,
	}
	if s.formatter == nil {
		s.formatter = captions.WebVTT{}
	}
	if s.defaultLang == "" {
		s.defaultLang = engine.DefaultLanguage
	}
	if s.fallbackLang == "" {
		s.fallbackLang = engine.FallbackLanguage
	}
	return s
}

// Full fetches metadata and transcript concurrently and waits for both.
// Either failure fails the whole call; metadata errors take precedence.
func (s *Service) Full(ctx context.Context, videoID, lang string) (engine.FullVideoInfo, error) {
	engine.IncrFullRequests()

	type metaResult struct {
		meta engine.VideoMetadata
		err  error
	}
	type textResult struct {
		text string
		err  error
	}
	metaCh := make(chan metaResult, 1)
	textCh := make(chan textResult, 1)

	go func() {
		m, err := s.Metadata(ctx, videoID)
		metaCh <- metaResult{m, err}
	}()
	go func() {
		t, err := s.Transcript(ctx, videoID, lang)
		textCh <- textResult{t, err}
	}()

	mr, tr := <-metaCh, <-textCh
	if mr.err != nil {
		return engine.FullVideoInfo{}, mr.err
	}
	if tr.err != nil {
		return engine.FullVideoInfo{}, tr.err
	}
	return engine.FullVideoInfo{VideoMetadata: mr.meta, ConvertedText: tr.text}, nil
}
