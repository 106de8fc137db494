package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
)

// ErrNoTrack means the video has captions but none in the requested language.
var ErrNoTrack = errors.New("no transcript found")

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

const maxWatchPageBytes = 6 * 1024 * 1024

// YouTubeCaptions fetches timed caption cues for a video in one language.
// Primary:  scrape watch page ytInitialPlayerResponse → caption XML (works from any IP)
// Fallback: ANDROID Innertube /player → captionTracks
type YouTubeCaptions struct {
	client    *http.Client
	watchURL  string
	playerURL string
}

// NewYouTubeCaptions returns a caption source using client for page and player requests.
func NewYouTubeCaptions(client *http.Client) *YouTubeCaptions {
	if client == nil {
		client = http.DefaultClient
	}
	return &YouTubeCaptions{
		client:    client,
		watchURL:  ytWatchURL,
		playerURL: ytInnertubeURL,
	}
}

// Fetch returns the caption cues of videoID in lang, in playback order.
// There is no fallback language here; callers decide what to try next.
func (y *YouTubeCaptions) Fetch(ctx context.Context, videoID, lang string) ([]captions.Cue, error) {
	engine.IncrCaptionFetches()

	var cues []captions.Cue
	err := engine.TrackOperation(ctx, "youtube_captions", func(ctx context.Context) error {
		track, err := y.findTrack(ctx, videoID, lang)
		if err != nil {
			return err
		}
		cues, err = y.fetchTimedText(ctx, track.BaseURL)
		return err
	})
	if err != nil {
		engine.IncrCaptionFetchErrors()
		return nil, err
	}
	return cues, nil
}

// findTrack looks the language up on the watch page first. A missing
// language is final; scrape failures fall back to the ANDROID player.
func (y *YouTubeCaptions) findTrack(ctx context.Context, videoID, lang string) (captionTrack, error) {
	tracks, err := y.tracksFromWatchPage(ctx, videoID)
	if err == nil {
		track, pickErr := pickTrack(tracks, lang)
		if pickErr == nil || errors.Is(pickErr, ErrNoTrack) {
			return track, pickErr
		}
		err = pickErr
	}
	slog.Warn("youtube: page scrape failed, trying player",
		slog.String("id", videoID), slog.Any("err", err))

	tracks, err = y.tracksFromPlayer(ctx, videoID)
	if err != nil {
		return captionTrack{}, err
	}
	return pickTrack(tracks, lang)
}

// tracksFromWatchPage scrapes the watch page HTML and reads caption tracks
// from ytInitialPlayerResponse.
func (y *YouTubeCaptions) tracksFromWatchPage(ctx context.Context, videoID string) ([]captionTrack, error) {
	watchURL := y.watchURL + "?v=" + url.QueryEscape(videoID)

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range engine.ChromeHeaders() {
			// The transport only decompresses when it negotiated the encoding itself.
			if !strings.EqualFold(k, "Accept-Encoding") {
				req.Header.Set(k, v)
			}
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Cookie", "CONSENT=YES+cb")
		return y.client.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page: HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxWatchPageBytes))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	playerResp, err := playerResponseFromDoc(doc)
	if err != nil {
		return nil, err
	}
	return captionTracks(playerResp)
}

// playerResponseFromDoc finds the <script> that assigns ytInitialPlayerResponse
// and decodes the JSON object it holds.
func playerResponseFromDoc(doc *goquery.Document) (*innertubePlayerResp, error) {
	var jsonData []byte
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, ytInitialPlayerResponseMarker)
		if idx < 0 {
			return true
		}
		jsonData = extractJSON([]byte(text[idx+len(ytInitialPlayerResponseMarker):]))
		return jsonData == nil
	})
	if jsonData == nil {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &playerResp, nil
}

// tracksFromPlayer asks the ANDROID Innertube /player endpoint for caption tracks.
func (y *YouTubeCaptions) tracksFromPlayer(ctx context.Context, videoID string) ([]captionTrack, error) {
	playerResp, err := postInnerTubeAndroid(ctx, y.client, y.playerURL, videoID)
	if err != nil {
		return nil, err
	}
	return captionTracks(playerResp)
}

// captionTracks returns the track list or a reason why there is none.
func captionTracks(playerResp *innertubePlayerResp) ([]captionTrack, error) {
	if playerResp.Captions == nil {
		if ps := playerResp.PlayabilityStatus; ps != nil && ps.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", ps.Reason)
		}
		return nil, errors.New("transcripts are disabled for this video")
	}
	tracks := playerResp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks")
	}
	return tracks, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickTrack selects the track for exactly lang: manual before auto-generated.
// Tracks that require a PoToken are skipped.
func pickTrack(tracks []captionTrack, lang string) (captionTrack, error) {
	var manual, auto *captionTrack
	blocked := false
	for i := range tracks {
		t := &tracks[i]
		if t.LanguageCode != lang {
			continue
		}
		if needsPoToken(t.BaseURL) {
			blocked = true
			continue
		}
		if t.Kind == "asr" {
			if auto == nil {
				auto = t
			}
		} else if manual == nil {
			manual = t
		}
	}
	switch {
	case manual != nil:
		return *manual, nil
	case auto != nil:
		return *auto, nil
	case blocked:
		return captionTrack{}, fmt.Errorf("transcript for %q requires a PoToken", lang)
	}
	return captionTrack{}, fmt.Errorf("%w for any of the requested language codes: [%s] (available: %s)",
		ErrNoTrack, lang, strings.Join(trackLanguages(tracks), ", "))
}

func trackLanguages(tracks []captionTrack) []string {
	seen := make(map[string]bool, len(tracks))
	langs := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if !seen[t.LanguageCode] {
			seen[t.LanguageCode] = true
			langs = append(langs, t.LanguageCode)
		}
	}
	return langs
}

// fetchTimedText downloads a timedtext XML caption URL and parses its cues.
func (y *YouTubeCaptions) fetchTimedText(ctx context.Context, baseURL string) ([]captions.Cue, error) {
	body, err := engine.FetchBytes(ctx, y.client, strings.Replace(baseURL, "&fmt=srv3", "", 1), engine.Cfg.MaxCaptionBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	return parseTimedText(body)
}

// parseTimedText decodes <text start="" dur="">…</text> elements into cues.
// Text is HTML-unescaped and stripped of markup; elements without text are skipped.
func parseTimedText(body []byte) ([]captions.Cue, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty timedtext response")
	}
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	cues := make([]captions.Cue, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		if line.Text == "" {
			continue
		}
		start := parseSeconds(line.Start)
		cues = append(cues, captions.Cue{
			Start: start,
			End:   start + parseSeconds(line.Dur),
			Text:  engine.CleanHTML(html.UnescapeString(line.Text)),
		})
	}
	return cues, nil
}

// parseSeconds converts "12.345" into a millisecond-rounded duration; bad input is zero.
func parseSeconds(s string) time.Duration {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return time.Duration(math.Round(f*1000)) * time.Millisecond
}
