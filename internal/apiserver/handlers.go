package apiserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

type handlers struct {
	svc VideoService
}

func (h *handlers) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": welcomeMessage})
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) metrics(c *gin.Context) {
	c.String(http.StatusOK, engine.FormatMetrics())
}

func (h *handlers) convertTranscript(c *gin.Context) {
	req, ok := bindVideoRequest(c)
	if !ok {
		return
	}
	text, err := h.svc.Transcript(c.Request.Context(), req.VideoID, req.Language)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, engine.TranscriptResponse{ConvertedText: text})
}

func (h *handlers) videoInfo(c *gin.Context) {
	req, ok := bindVideoRequest(c)
	if !ok {
		return
	}
	meta, err := h.svc.Metadata(c.Request.Context(), req.VideoID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (h *handlers) videoFullInfo(c *gin.Context) {
	req, ok := bindVideoRequest(c)
	if !ok {
		return
	}
	full, err := h.svc.Full(c.Request.Context(), req.VideoID, req.Language)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, full)
}

// bindVideoRequest decodes and normalizes the body. Invalid bodies get a 422.
func bindVideoRequest(c *gin.Context) (engine.VideoRequest, bool) {
	var req engine.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return req, false
	}
	req.VideoID = toolutil.NormVideoID(req.VideoID)
	if req.VideoID == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "video_id is required"})
		return req, false
	}
	req.Language = toolutil.NormLang(req.Language, engine.Cfg.DefaultLanguage)
	return req, true
}

// fail reports an upstream failure. Every failure kind maps to 400 with the
// upstream message as detail.
// TODO: answer 502/504 for transient upstream failures once clients can tell them apart.
func fail(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}
