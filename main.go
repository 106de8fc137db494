// go_transcript: video transcript & metadata API.
//
// Serves the compacted caption transcript and normalized metadata of a
// YouTube video over a JSON HTTP API. The same operations are exposed as
// MCP tools when MCP_PORT is set.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/apiserver"
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/engine/video"
	"github.com/anatolykoptev/go_transcript/internal/videoserver"
)

var (
	version = "dev"
	port    = env.Str("PORT", "8000")
	mcpPort = env.Str("MCP_PORT", "")
)

func main() {
	initEngine()

	svc := video.NewService(
		sources.NewYouTubeCaptions(engine.Cfg.HTTPClient),
		sources.NewYtDlp(engine.Cfg.YtDlpPath, engine.Cfg.YtDlpTimeout),
		video.Options{
			DefaultLanguage:  engine.Cfg.DefaultLanguage,
			FallbackLanguage: engine.Cfg.FallbackLanguage,
		},
	)

	if mcpPort != "" {
		go runMCP(svc)
	}

	gin.SetMode(env.Str("GIN_MODE", gin.ReleaseMode))
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           apiserver.NewRouter(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting go_transcript",
			slog.String("port", port),
			slog.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", slog.Any("error", err))
	}
	slog.Info("stopped")
}

func runMCP(svc videoserver.VideoService) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_transcript",
		Version: version,
	}, nil)

	videoserver.RegisterTools(server, svc)
	slog.Info("mcp tools registered", slog.Int("count", 3), slog.String("port", mcpPort))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_transcript",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("mcp server failed", slog.Any("error", err))
	}
}

func initEngine() {
	fetchTimeout := env.Duration("FETCH_TIMEOUT", 15*time.Second)
	engine.Init(engine.Config{
		DefaultLanguage:  env.Str("DEFAULT_LANGUAGE", engine.DefaultLanguage),
		FallbackLanguage: env.Str("FALLBACK_LANGUAGE", engine.FallbackLanguage),
		YtDlpPath:        env.Str("YTDLP_PATH", engine.DefaultYtDlpPath),
		YtDlpTimeout:     env.Duration("YTDLP_TIMEOUT", 60*time.Second),
		FetchTimeout:     fetchTimeout,
		MaxCaptionBytes:  int64(env.Int("MAX_CAPTION_BYTES", 2<<20)),
		SlowThreshold:    env.Duration("SLOW_THRESHOLD", 5*time.Second),
		HTTPClient: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	})
}
