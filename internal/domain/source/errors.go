package source

import (
	"errors"
	"fmt"
)

// ValidationError is a malformed or missing request field. Always the
// caller's fault and always raised before any network I/O.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return e.Reason
}

// NewMissingFieldError reports a mode whose required field is absent.
func NewMissingFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "field is required"}
}

// NewTooShortError reports direct text input below the minimum length.
func NewTooShortError(field string, min int) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf("must be at least %d characters", min)}
}

// extractionError marks the class of errors where the request was
// well-formed but no usable source material could be derived from it.
type extractionError interface {
	error
	extraction()
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsExtraction reports whether err belongs to the extraction error class.
func IsExtraction(err error) bool {
	var e extractionError
	return errors.As(err, &e)
}

// FetchError is a source URL that could not be retrieved: network failure
// or a non-2xx upstream response.
type FetchError struct {
	URL    string
	Status int
	Cause  error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("could not retrieve %s: upstream returned %d", e.URL, e.Status)
	}
	return fmt.Sprintf("could not retrieve %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }
func (e *FetchError) extraction()   {}

// EmptyContentError is a retrievable source whose extracted text is below
// the minimum content length.
type EmptyContentError struct {
	Origin string
	Length int
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("no usable content extracted from %s (%d characters, need %d)",
		e.Origin, e.Length, MinContentLength)
}

func (e *EmptyContentError) extraction() {}

// InvalidVideoURLError is a video URL from which no video identifier can
// be recovered.
type InvalidVideoURLError struct {
	URL string
}

func (e *InvalidVideoURLError) Error() string {
	return fmt.Sprintf("no video id found in %s", e.URL)
}

func (e *InvalidVideoURLError) extraction() {}

// TranscriptUnavailableError is a video without a public caption track.
// An expected user-facing condition, not a system fault.
type TranscriptUnavailableError struct {
	VideoID string
	Cause   error
}

func (e *TranscriptUnavailableError) Error() string {
	return fmt.Sprintf("no public transcript available for video %s", e.VideoID)
}

func (e *TranscriptUnavailableError) Unwrap() error { return e.Cause }
func (e *TranscriptUnavailableError) extraction()   {}
