package html

import (
	"context"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"narrator-app/internal/domain/source"
)

// browserUA identifies us as a regular browser. Some sites reject
// unidentified clients outright.
const browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// maxBodyBytes caps how much HTML we read from the wire.
const maxBodyBytes = 5 << 20

// removeSelectors are non-content elements stripped before text extraction
// so boilerplate and code never pollute the result.
var removeSelectors = []string{
	"script", "style", "noscript", "iframe", "svg",
	"header", "footer", "nav", "aside",
	"[role=navigation]", "[role=banner]", "[role=contentinfo]",
}

// candidateSelectors are block-level content containers considered for the
// most relevant block, in document order.
var candidateSelectors = []string{
	"article", "main", "[role=main]",
	".post-content", ".article-content", ".entry-content", ".content", "#content",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Extractor reduces a web page to its most relevant plain-text block.
type Extractor struct {
	client   *http.Client
	maxChars int
}

func NewExtractor(timeout time.Duration, maxChars int) *Extractor {
	return &Extractor{
		client:   &http.Client{Timeout: timeout},
		maxChars: maxChars,
	}
}

// Extract fetches rawURL and returns its main text content.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*source.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &source.FetchError{URL: rawURL, Cause: err}
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &source.FetchError{URL: rawURL, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &source.FetchError{URL: rawURL, Status: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &source.FetchError{URL: rawURL, Cause: err}
	}

	text := ExtractText(doc)
	if len(text) < source.MinContentLength {
		return nil, &source.EmptyContentError{Origin: rawURL, Length: len(text)}
	}

	if truncated := truncateAtWhitespace(text, e.maxChars); len(truncated) < len(text) {
		log.Printf("[extract] truncated %s from %d to %d chars", rawURL, len(text), len(truncated))
		text = truncated
	}

	return &source.Document{Text: text}, nil
}

// ExtractText reduces a parsed document to the text of its highest-scoring
// content block. Deterministic: the first candidate enumerated wins ties,
// and the whole body is the fallback when no candidate clears the length
// floor.
func ExtractText(doc *goquery.Document) string {
	doc.Find(strings.Join(removeSelectors, ", ")).Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	var best string
	var bestScore int
	for _, sel := range candidateSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			t := collapseText(s.Text())
			if score(t) > bestScore {
				best, bestScore = t, score(t)
			}
		})
	}

	if bestScore >= source.MinContentLength {
		return best
	}
	return collapseText(doc.Find("body").Text())
}

// score rates a candidate block. Extracted-text length is the signal;
// collapseText already removed the whitespace noise that would skew it.
func score(text string) int {
	return len(text)
}

// collapseText flattens runs of whitespace to single spaces and trims.
func collapseText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// truncateAtWhitespace bounds text to max characters, cutting at the last
// whitespace boundary at or before the budget so no word is split.
func truncateAtWhitespace(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := strings.LastIndexFunc(text[:max+1], func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\t'
	})
	if cut <= 0 {
		cut = max
	}
	return strings.TrimSpace(text[:cut])
}
