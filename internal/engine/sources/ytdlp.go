package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// YtDlp extracts video metadata by running the yt-dlp binary.
type YtDlp struct {
	Path    string // binary name or resolved path
	Timeout time.Duration
}

// NewYtDlp builds an extractor. An empty path falls back to "yt-dlp" on $PATH.
func NewYtDlp(path string, timeout time.Duration) *YtDlp {
	if path == "" {
		path = engine.DefaultYtDlpPath
	}
	return &YtDlp{Path: path, Timeout: timeout}
}

// BuildArgs returns the yt-dlp arguments for a metadata-only extraction.
// --no-config goes first so user config files cannot change the output.
func BuildArgs(url string, opts engine.ExtractOptions) []string {
	args := []string{"--no-config", "-j", "--skip-download", "--no-playlist", "--no-progress"}
	if opts.Quiet {
		args = append(args, "--quiet")
	}
	if opts.NoWarnings {
		args = append(args, "--no-warnings")
	}
	return append(args, url)
}

// Extract runs `yt-dlp -j <url>` and decodes the info JSON.
// On failure the error carries yt-dlp's own ERROR line when there is one.
func (y *YtDlp) Extract(ctx context.Context, url string, opts engine.ExtractOptions) (*engine.RawVideoInfo, error) {
	engine.IncrYtDlpRuns()
	if y.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, y.Path, BuildArgs(url, opts)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := engine.TrackOperation(ctx, "ytdlp", func(context.Context) error { return cmd.Run() })
	if err != nil {
		engine.IncrYtDlpErrors()
		slog.Warn("ytdlp: extraction failed", slog.String("url", url),
			slog.String("stderr", engine.TruncateRunes(strings.TrimSpace(stderr.String()), 300, "...")),
			slog.Any("error", err))
		if msg := lastErrorLine(stderr.String()); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	jsonLine := lastJSONLine(stdout.String())
	if jsonLine == "" {
		engine.IncrYtDlpErrors()
		return nil, fmt.Errorf("yt-dlp: no JSON in output: %s", engine.TruncateRunes(stdout.String(), 200, "..."))
	}

	var info engine.RawVideoInfo
	if err := json.Unmarshal([]byte(jsonLine), &info); err != nil {
		engine.IncrYtDlpErrors()
		return nil, fmt.Errorf("unmarshal ytdlp output: %w", err)
	}
	return &info, nil
}

// lastJSONLine returns the last output line that looks like a JSON object.
func lastJSONLine(out string) string {
	var jsonLine string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "{") {
			jsonLine = line
		}
	}
	return jsonLine
}

// lastErrorLine returns the last "ERROR:" line yt-dlp wrote, if any.
func lastErrorLine(out string) string {
	var msg string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "ERROR:") {
			msg = line
		}
	}
	return msg
}
