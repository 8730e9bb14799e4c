package mock

import "github.com/fwojciec/tunescrape"

var _ tunescrape.TranscriptionExtractor = (*Extractor)(nil)

// Extractor is a mock implementation of tunescrape.TranscriptionExtractor.
type Extractor struct {
	ExtractFn func(html string) (string, bool, error)
}

func (e *Extractor) Extract(html string) (string, bool, error) {
	return e.ExtractFn(html)
}

var _ tunescrape.Transliterator = (*Transliterator)(nil)

// Transliterator is a mock implementation of tunescrape.Transliterator.
type Transliterator struct {
	TransliterateFn func(s string) string
}

func (t *Transliterator) Transliterate(s string) string {
	return t.TransliterateFn(s)
}
