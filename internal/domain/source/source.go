package source

import "context"

// Mode selects which extractor normalizes the request.
type Mode string

const (
	ModeText  Mode = "text"
	ModeURL   Mode = "url"
	ModeVideo Mode = "video"
)

// Valid reports whether m is one of the three supported source modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeText, ModeURL, ModeVideo:
		return true
	}
	return false
}

// MinContentLength is the minimum usable source text length, in characters.
// Anything shorter cannot carry a narration script.
const MinContentLength = 50

// Document is normalized plain text ready for script generation.
// Origin is the URL or video URL that produced it, empty for direct text input.
type Document struct {
	Text   string
	Origin string
}

// Request is the validated generation request. Exactly the field matching
// Mode is required; the handler layer enforces that before dispatch.
type Request struct {
	Mode     Mode
	Voice    string
	Content  string
	URL      string
	VideoURL string
}

// Extractor reduces an external document addressed by a URL to plain text.
// Implementations wrap a web page fetch or a caption track fetch.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (*Document, error)
}
