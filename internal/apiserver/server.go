// Package apiserver exposes the video service over a JSON HTTP API.
package apiserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

const welcomeMessage = "Welcome to Transcript & Video Info API. Use POST /video-full-info/ to get full details."

// VideoService is the part of video.Service the handlers need.
type VideoService interface {
	Transcript(ctx context.Context, videoID, lang string) (string, error)
	Metadata(ctx context.Context, videoID string) (engine.VideoMetadata, error)
	Full(ctx context.Context, videoID, lang string) (engine.FullVideoInfo, error)
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(svc VideoService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	h := &handlers{svc: svc}
	r.GET("/", h.root)
	r.GET("/health", h.health)
	r.GET("/metrics", h.metrics)
	r.POST("/convert-transcript/", h.convertTranscript)
	r.POST("/video-info/", h.videoInfo)
	r.POST("/video-full-info/", h.videoFullInfo)
	return r
}

// requestLogger logs one line per request through slog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}
