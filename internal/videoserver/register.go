// Package videoserver exposes the video service as MCP tools.
package videoserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

// VideoService is the part of video.Service the tools need.
type VideoService interface {
	Transcript(ctx context.Context, videoID, lang string) (string, error)
	Metadata(ctx context.Context, videoID string) (engine.VideoMetadata, error)
	Full(ctx context.Context, videoID, lang string) (engine.FullVideoInfo, error)
}

// RegisterTools registers convert_transcript, video_info and video_full_info.
func RegisterTools(server *mcp.Server, svc VideoService) {
	t := &tools{svc: svc}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert_transcript",
		Description: "Fetch the captions of a YouTube video and return them as one compact line per cue: \"HH:MM:SS -> HH:MM:SS text\". Falls back to English when the requested language has no captions.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.convertTranscript)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_info",
		Description: "Return normalized metadata of a YouTube video: title, channel, duration, views, description, upload date, thumbnail, likes and comments.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.videoInfo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_full_info",
		Description: "Return the metadata of a YouTube video together with its compacted transcript. Fails if either part is unavailable.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.videoFullInfo)
}

type tools struct {
	svc VideoService
}

func (t *tools) convertTranscript(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoRequest) (*mcp.CallToolResult, engine.TranscriptResponse, error) {
	id, lang, err := normInput(input)
	if err != nil {
		return nil, engine.TranscriptResponse{}, err
	}
	text, err := t.svc.Transcript(ctx, id, lang)
	if err != nil {
		slog.Warn("convert_transcript failed", slog.String("video_id", id), slog.Any("error", err))
		return nil, engine.TranscriptResponse{}, err
	}
	return nil, engine.TranscriptResponse{ConvertedText: text}, nil
}

func (t *tools) videoInfo(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoRequest) (*mcp.CallToolResult, engine.VideoMetadata, error) {
	id, _, err := normInput(input)
	if err != nil {
		return nil, engine.VideoMetadata{}, err
	}
	meta, err := t.svc.Metadata(ctx, id)
	if err != nil {
		slog.Warn("video_info failed", slog.String("video_id", id), slog.Any("error", err))
		return nil, engine.VideoMetadata{}, err
	}
	return nil, meta, nil
}

func (t *tools) videoFullInfo(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoRequest) (*mcp.CallToolResult, engine.FullVideoInfo, error) {
	id, lang, err := normInput(input)
	if err != nil {
		return nil, engine.FullVideoInfo{}, err
	}
	full, err := t.svc.Full(ctx, id, lang)
	if err != nil {
		slog.Warn("video_full_info failed", slog.String("video_id", id), slog.Any("error", err))
		return nil, engine.FullVideoInfo{}, err
	}
	return nil, full, nil
}

func normInput(input engine.VideoRequest) (id, lang string, err error) {
	id = toolutil.NormVideoID(input.VideoID)
	if id == "" {
		return "", "", fmt.Errorf("video_id is required")
	}
	return id, toolutil.NormLang(input.Language, engine.Cfg.DefaultLanguage), nil
}
