package youtube

import (
	"strings"
	"testing"
)

func TestParseVideoID(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch url with extras", "https://youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL1", "dQw4w9WgXcQ", true},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short url with query", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", true},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"shorts url", "https://youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"no id", "https://www.youtube.com/watch", "", false},
		{"wrong length id", "https://youtu.be/short", "", false},
		{"other site", "https://vimeo.com/12345678", "", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseVideoID(tc.url)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("ParseVideoID(%q) = (%q, %v), want (%q, %v)", tc.url, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestFlattenTimedText(t *testing.T) {
	xmlBody := `<?xml version="1.0" encoding="utf-8"?>
<transcript>
	<text start="0.0" dur="2.1">Welcome back	 to the</text>
	<text start="2.1" dur="1.9">channel &amp; today we&#39;re</text>
	<text start="4.0" dur="3.0">
talking about balloons
</text>
</transcript>`

	got, err := FlattenTimedText([]byte(xmlBody))
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	want := "Welcome back to the channel & today we're talking about balloons"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFlattenTimedTextSkipsEmptySegments(t *testing.T) {
	xmlBody := `<transcript><text start="0">one</text><text start="1">  </text><text start="2">two</text></transcript>`

	got, err := FlattenTimedText([]byte(xmlBody))
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if got != "one two" {
		t.Fatalf("got %q", got)
	}
}

func TestFlattenTimedTextRejectsGarbage(t *testing.T) {
	if _, err := FlattenTimedText([]byte("<html>not timedtext")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCaptionTrackURLPrefersManualEnglish(t *testing.T) {
	page := `var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{` +
		`"captionTracks":[` +
		`{"baseUrl":"https://www.youtube.com/api/timedtext?v=x&lang=de","languageCode":"de"},` +
		`{"baseUrl":"https://www.youtube.com/api/timedtext?v=x&lang=en&kind=asr","languageCode":"en","kind":"asr"},` +
		`{"baseUrl":"https://www.youtube.com/api/timedtext?v=x&lang=en","languageCode":"en"}` +
		`]}}};`

	got, err := captionTrackURL([]byte(page))
	if err != nil {
		t.Fatalf("captionTrackURL: %v", err)
	}
	if !strings.Contains(got, "lang=en") || strings.Contains(got, "asr") {
		t.Fatalf("picked wrong track: %q", got)
	}
}

func TestCaptionTrackURLMissingTracks(t *testing.T) {
	if _, err := captionTrackURL([]byte("<html>no captions here</html>")); err == nil {
		t.Fatal("expected error for page without caption tracks")
	}
}
