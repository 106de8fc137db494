// Package toolutil provides request normalization shared by the HTTP API
// and the MCP tools.
package toolutil

import (
	"net/url"
	"strings"
)

// NormLang normalises a language field: empty string → def.
func NormLang(lang, def string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return def
	}
	return lang
}

// NormVideoID accepts a bare video ID or a YouTube watch/short/embed URL and
// returns the video ID. Unrecognised input is returned trimmed.
func NormVideoID(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil {
		return s
	}

	switch strings.TrimPrefix(u.Hostname(), "www.") {
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return id
		}
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
			if rest, ok := strings.CutPrefix(u.Path, prefix); ok && rest != "" {
				return strings.Trim(rest, "/")
			}
		}
	}
	return s
}
