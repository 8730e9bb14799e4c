package harvest

import (
	"context"
	"strings"

	"github.com/fwojciec/tunescrape"
)

var _ tunescrape.TranscriptionFetcher = (*TranscriptionFetcher)(nil)

// TranscriptionFetcher downloads a tune page and extracts its transcription.
type TranscriptionFetcher struct {
	Fetcher        tunescrape.Fetcher
	Extractor      tunescrape.TranscriptionExtractor
	Transliterator tunescrape.Transliterator
}

// FetchABC returns the ASCII transcription at url, or tunescrape.NoScore
// when the page has no preformatted block.
func (f *TranscriptionFetcher) FetchABC(ctx context.Context, url string) (string, error) {
	html, err := f.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	abc, ok, err := f.Extractor.Extract(html)
	if err != nil {
		return "", err
	}
	if !ok {
		return tunescrape.NoScore, nil
	}

	if f.Transliterator != nil {
		abc = f.Transliterator.Transliterate(abc)
	}
	if strings.TrimSpace(abc) == "" {
		return tunescrape.NoScore, nil
	}
	return abc, nil
}
