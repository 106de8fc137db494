package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	DefaultLanguage  string // caption language when the request names none
	FallbackLanguage string // tried once when the requested language fails
	YtDlpPath        string
	YtDlpTimeout     time.Duration
	FetchTimeout     time.Duration
	MaxCaptionBytes  int64
	SlowThreshold    time.Duration // TrackOperation warns above this
	HTTPClient       *http.Client
}

// Defaults used when a Config field is left zero.
const (
	DefaultLanguage  = "es"
	FallbackLanguage = "en"
	DefaultYtDlpPath = "yt-dlp"
)

var cfg = Config{
	DefaultLanguage:  DefaultLanguage,
	FallbackLanguage: FallbackLanguage,
	YtDlpPath:        DefaultYtDlpPath,
	YtDlpTimeout:     60 * time.Second,
	FetchTimeout:     15 * time.Second,
	MaxCaptionBytes:  2 << 20,
	SlowThreshold:    5 * time.Second,
	HTTPClient:       http.DefaultClient,
}

// Cfg exposes the engine configuration for sub-packages (sources, video).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
// Zero fields keep their defaults.
func Init(c Config) {
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = DefaultLanguage
	}
	if c.FallbackLanguage == "" {
		c.FallbackLanguage = FallbackLanguage
	}
	if c.YtDlpPath == "" {
		c.YtDlpPath = DefaultYtDlpPath
	}
	if c.YtDlpTimeout <= 0 {
		c.YtDlpTimeout = 60 * time.Second
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 15 * time.Second
	}
	if c.MaxCaptionBytes <= 0 {
		c.MaxCaptionBytes = 2 << 20
	}
	if c.SlowThreshold <= 0 {
		c.SlowThreshold = 5 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	cfg = c
	Cfg = &cfg
}
