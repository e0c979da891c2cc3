package source

import (
	"context"
	"fmt"
	"strings"
)

// Normalizer dispatches a request to the extractor matching its mode and
// enforces the minimum content-length contract before the pipeline proceeds.
type Normalizer struct {
	web   Extractor
	video Extractor
}

func NewNormalizer(web, video Extractor) *Normalizer {
	return &Normalizer{web: web, video: video}
}

// Normalize turns a validated request into a Document. Required-field
// checks run before any extractor call: a malformed request never
// triggers network access.
func (n *Normalizer) Normalize(ctx context.Context, req *Request) (*Document, error) {
	switch req.Mode {
	case ModeText:
		text := strings.TrimSpace(req.Content)
		if len(text) < MinContentLength {
			return nil, NewTooShortError("content", MinContentLength)
		}
		return &Document{Text: text}, nil

	case ModeURL:
		if strings.TrimSpace(req.URL) == "" {
			return nil, NewMissingFieldError("url")
		}
		doc, err := n.web.Extract(ctx, req.URL)
		if err != nil {
			return nil, err
		}
		doc.Origin = req.URL
		return doc, nil

	case ModeVideo:
		if strings.TrimSpace(req.VideoURL) == "" {
			return nil, NewMissingFieldError("videoUrl")
		}
		doc, err := n.video.Extract(ctx, req.VideoURL)
		if err != nil {
			return nil, err
		}
		doc.Origin = req.VideoURL
		return doc, nil

	default:
		return nil, &ValidationError{Field: "mode", Reason: fmt.Sprintf("unsupported mode %q", req.Mode)}
	}
}
