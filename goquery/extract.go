// Package goquery extracts transcriptions from tune pages using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tunescrape"
)

// Ensure PreExtractor implements tunescrape.TranscriptionExtractor at compile time.
var _ tunescrape.TranscriptionExtractor = (*PreExtractor)(nil)

// PreExtractor returns the contents of the first <pre> element on a page.
// The archive renders ABC transcriptions as preformatted blocks.
type PreExtractor struct{}

// NewPreExtractor creates a new PreExtractor.
func NewPreExtractor() *PreExtractor {
	return &PreExtractor{}
}

// Extract returns the text of the first <pre> element that has non-blank
// content. The bool result is false if there is none.
func (e *PreExtractor) Extract(html string) (string, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false, tunescrape.Errorf(tunescrape.EINVALID, "failed to parse HTML: %v", err)
	}

	var text string
	var found bool
	doc.Find("pre").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		t := sel.Text()
		if strings.TrimSpace(t) == "" {
			return true
		}
		text, found = t, true
		return false
	})
	return text, found, nil
}
