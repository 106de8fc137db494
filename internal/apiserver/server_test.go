package apiserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
	"github.com/anatolykoptev/go_transcript/internal/engine/video"
)

type fakeService struct {
	text    string
	meta    engine.VideoMetadata
	textErr error
	metaErr error

	gotID   string
	gotLang string
}

func (f *fakeService) Transcript(_ context.Context, id, lang string) (string, error) {
	f.gotID, f.gotLang = id, lang
	return f.text, f.textErr
}

func (f *fakeService) Metadata(_ context.Context, id string) (engine.VideoMetadata, error) {
	f.gotID = id
	return f.meta, f.metaErr
}

func (f *fakeService) Full(ctx context.Context, id, lang string) (engine.FullVideoInfo, error) {
	meta, err := f.Metadata(ctx, id)
	if err != nil {
		return engine.FullVideoInfo{}, err
	}
	text, err := f.Transcript(ctx, id, lang)
	if err != nil {
		return engine.FullVideoInfo{}, err
	}
	return engine.FullVideoInfo{VideoMetadata: meta, ConvertedText: text}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, svc VideoService, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	NewRouter(svc).ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func likes(n int64) *int64 { return &n }

var sampleMeta = engine.VideoMetadata{
	Title:       "Video",
	Channel:     "Canal",
	Duration:    "2 minutos 5 segundos",
	ViewCount:   42,
	UploadDate:  "2023/01/15",
	Thumbnail:   "https://i.ytimg.com/vi/abc/hq.jpg",
	LikeCount:   likes(7),
	Description: "",
}

func TestRoot(t *testing.T) {
	rec, out := do(t, &fakeService{}, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, welcomeMessage, out["message"])
}

func TestHealthAndMetrics(t *testing.T) {
	rec, out := do(t, &fakeService{}, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["status"])

	rec, _ = do(t, &fakeService{}, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "transcript_requests ")
}

func TestConvertTranscript(t *testing.T) {
	svc := &fakeService{text: "00:00:01 -> 00:00:03 Hello world"}

	rec, out := do(t, svc, http.MethodPost, "/convert-transcript/", `{"video_id":"https://youtu.be/abc","language":"en"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "00:00:01 -> 00:00:03 Hello world", out["converted_text"])
	assert.Equal(t, "abc", svc.gotID)
	assert.Equal(t, "en", svc.gotLang)
}

func TestConvertTranscriptDefaultLanguage(t *testing.T) {
	svc := &fakeService{}

	rec, _ := do(t, svc, http.MethodPost, "/convert-transcript/", `{"video_id":"abc"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, engine.Cfg.DefaultLanguage, svc.gotLang)
}

func TestConvertTranscriptExplicitEmptyLanguage(t *testing.T) {
	svc := &fakeService{}

	rec, _ := do(t, svc, http.MethodPost, "/convert-transcript/", `{"video_id":"abc","language":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, engine.Cfg.DefaultLanguage, svc.gotLang)
}

func TestConvertTranscriptFailure(t *testing.T) {
	svc := &fakeService{textErr: &video.UnavailableError{
		Kind: video.ErrTranscriptUnavailable,
		Err:  assert.AnError,
	}}

	rec, out := do(t, svc, http.MethodPost, "/convert-transcript/", `{"video_id":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, assert.AnError.Error(), out["detail"])
}

func TestVideoInfo(t *testing.T) {
	svc := &fakeService{meta: sampleMeta}

	rec, out := do(t, svc, http.MethodPost, "/video-info/", `{"video_id":"abc"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Video", out["title"])
	assert.Equal(t, "Canal", out["channel"])
	assert.EqualValues(t, 42, out["view_count"])
	assert.EqualValues(t, 7, out["like_count"])
	assert.Contains(t, out, "comment_count", "absent counts are serialized as null")
	assert.Nil(t, out["comment_count"])
	assert.NotContains(t, out, "converted_text")
}

func TestVideoFullInfo(t *testing.T) {
	svc := &fakeService{meta: sampleMeta, text: "00:00:01 -> 00:00:03 Hola"}

	rec, out := do(t, svc, http.MethodPost, "/video-full-info/", `{"video_id":"abc","language":"es"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Video", out["title"])
	assert.Equal(t, "00:00:01 -> 00:00:03 Hola", out["converted_text"])
	assert.Equal(t, "2023/01/15", out["upload_date"])
}

func TestVideoFullInfoNoPartialResult(t *testing.T) {
	svc := &fakeService{meta: sampleMeta, textErr: assert.AnError}

	rec, out := do(t, svc, http.MethodPost, "/video-full-info/", `{"video_id":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"detail": assert.AnError.Error()}, out)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing video_id", `{"language":"es"}`},
		{"blank video_id", `{"video_id":"   "}`},
		{"malformed json", `{"video_id":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := do(t, &fakeService{}, http.MethodPost, "/video-info/", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.NotEmpty(t, out["detail"])
		})
	}
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	NewRouter(&fakeService{}).ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

type stubCaptions struct {
	err error
}

func (s stubCaptions) Fetch(_ context.Context, _, _ string) ([]captions.Cue, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []captions.Cue{{Start: 0, End: 2 * time.Second, Text: "hola"}}, nil
}

type stubMetadata struct{}

func (stubMetadata) Extract(_ context.Context, _ string, _ engine.ExtractOptions) (*engine.RawVideoInfo, error) {
	title := "Video"
	return &engine.RawVideoInfo{Title: &title}, nil
}

func TestVideoFullInfoWithService(t *testing.T) {
	svc := video.NewService(stubCaptions{}, stubMetadata{}, video.Options{})

	rec, out := do(t, svc, http.MethodPost, "/video-full-info/", `{"video_id":"abc"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Video", out["title"])
	assert.Equal(t, "Fecha no disponible", out["upload_date"])
	assert.Equal(t, "00:00:00 -> 00:00:02 hola", out["converted_text"])
}

func TestVideoFullInfoWithServiceTranscriptFailure(t *testing.T) {
	svc := video.NewService(stubCaptions{err: errors.New("no captions for en")}, stubMetadata{}, video.Options{})

	rec, out := do(t, svc, http.MethodPost, "/video-full-info/", `{"video_id":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"detail": "no captions for en"}, out)
}
