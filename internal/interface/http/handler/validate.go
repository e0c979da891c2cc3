package handler

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"narrator-app/internal/domain/source"
)

var voiceRe = regexp.MustCompile(`^[a-z-]{2,32}$`)

// validate checks the payload against the request contract and returns the
// typed request. Checks stop at the first violated constraint so the caller
// sees one precise, actionable reason. No network access happens here.
func validate(body *generateRequest, defaultVoice string) (*source.Request, error) {
	mode := source.Mode(strings.TrimSpace(body.Mode))
	if mode == "" {
		return nil, source.NewMissingFieldError("mode")
	}
	if !mode.Valid() {
		return nil, &source.ValidationError{Field: "mode", Reason: fmt.Sprintf("must be one of text, url, video, got %q", mode)}
	}

	voice := strings.TrimSpace(body.Voice)
	if voice == "" {
		voice = defaultVoice
	}
	if !voiceRe.MatchString(voice) {
		return nil, &source.ValidationError{Field: "voice", Reason: "must be 2-32 lowercase letters or hyphens"}
	}

	switch mode {
	case source.ModeText:
		if strings.TrimSpace(body.Content) == "" {
			return nil, source.NewMissingFieldError("content")
		}
		if len(strings.TrimSpace(body.Content)) < source.MinContentLength {
			return nil, source.NewTooShortError("content", source.MinContentLength)
		}
	case source.ModeURL:
		if strings.TrimSpace(body.URL) == "" {
			return nil, source.NewMissingFieldError("url")
		}
		if err := checkURL("url", body.URL); err != nil {
			return nil, err
		}
	case source.ModeVideo:
		if strings.TrimSpace(body.VideoURL) == "" {
			return nil, source.NewMissingFieldError("videoUrl")
		}
		if err := checkURL("videoUrl", body.VideoURL); err != nil {
			return nil, err
		}
	}

	return &source.Request{
		Mode:     mode,
		Voice:    voice,
		Content:  body.Content,
		URL:      strings.TrimSpace(body.URL),
		VideoURL: strings.TrimSpace(body.VideoURL),
	}, nil
}

func checkURL(field, raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &source.ValidationError{Field: field, Reason: "must be a valid http(s) URL"}
	}
	return nil
}
