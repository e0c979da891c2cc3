package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"narrator-app/internal/domain/source"
)

// videoIDRe matches the canonical 11-character YouTube video identifier.
var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// captionTracksRe locates the caption track list inside the watch page's
// embedded player response.
var captionTracksRe = regexp.MustCompile(`(?s)"captionTracks":(\[.*?\])`)

// Extractor fetches the public caption track for a video and flattens it
// to plain text.
type Extractor struct {
	client *http.Client
}

func NewExtractor(timeout time.Duration) *Extractor {
	return &Extractor{client: &http.Client{Timeout: timeout}}
}

// Extract resolves the video id from rawURL, locates its public caption
// track and returns the transcript text.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*source.Document, error) {
	videoID, ok := ParseVideoID(rawURL)
	if !ok {
		return nil, &source.InvalidVideoURLError{URL: rawURL}
	}

	page, err := e.fetch(ctx, "https://www.youtube.com/watch?v="+videoID)
	if err != nil {
		return nil, &source.FetchError{URL: rawURL, Cause: err}
	}

	trackURL, err := captionTrackURL(page)
	if err != nil {
		return nil, &source.TranscriptUnavailableError{VideoID: videoID, Cause: err}
	}

	timedtext, err := e.fetch(ctx, trackURL)
	if err != nil {
		return nil, &source.TranscriptUnavailableError{VideoID: videoID, Cause: err}
	}

	text, err := FlattenTimedText(timedtext)
	if err != nil {
		return nil, &source.TranscriptUnavailableError{VideoID: videoID, Cause: err}
	}
	if len(text) < source.MinContentLength {
		return nil, &source.EmptyContentError{Origin: rawURL, Length: len(text)}
	}

	return &source.Document{Text: text}, nil
}

func (e *Extractor) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", "en-US,en")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// ParseVideoID recovers the video identifier from the accepted URL shapes:
// watch URLs, youtu.be short URLs, /embed/ and /shorts/ paths, or a bare id.
func ParseVideoID(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if videoIDRe.MatchString(rawURL) {
		return rawURL, true
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "youtu.be":
		return validID(strings.TrimPrefix(u.Path, "/"))
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if id, ok := validID(u.Query().Get("v")); ok {
			return id, ok
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/", "/v/"} {
			if strings.HasPrefix(u.Path, prefix) {
				rest := strings.TrimPrefix(u.Path, prefix)
				if i := strings.IndexByte(rest, '/'); i >= 0 {
					rest = rest[:i]
				}
				return validID(rest)
			}
		}
	}
	return "", false
}

func validID(s string) (string, bool) {
	if videoIDRe.MatchString(s) {
		return s, true
	}
	return "", false
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated
}

// captionTrackURL picks the caption track URL from a watch page body.
// Manually authored tracks are preferred over auto-generated ones, and
// English over other languages within each group.
func captionTrackURL(page []byte) (string, error) {
	m := captionTracksRe.FindSubmatch(page)
	if m == nil {
		return "", fmt.Errorf("no caption tracks on watch page")
	}

	var tracks []captionTrack
	if err := json.Unmarshal(m[1], &tracks); err != nil {
		return "", fmt.Errorf("parse caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return "", fmt.Errorf("caption track list is empty")
	}

	best := tracks[0]
	for _, t := range tracks[1:] {
		if rankTrack(t) > rankTrack(best) {
			best = t
		}
	}
	if best.BaseURL == "" {
		return "", fmt.Errorf("caption track has no url")
	}
	return best.BaseURL, nil
}

func rankTrack(t captionTrack) int {
	r := 0
	if t.Kind != "asr" {
		r += 2
	}
	if strings.HasPrefix(t.LanguageCode, "en") {
		r++
	}
	return r
}

type timedText struct {
	Texts []struct {
		Start float64 `xml:"start,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

// FlattenTimedText concatenates timedtext XML segments in chronological
// order into one text stream. Timing metadata is discarded; a single space
// separates segments and duplicate whitespace is collapsed.
func FlattenTimedText(data []byte) (string, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext: %w", err)
	}

	parts := make([]string, 0, len(tt.Texts))
	for _, seg := range tt.Texts {
		s := html.UnescapeString(seg.Body)
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " "), nil
}
