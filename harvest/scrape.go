package harvest

import (
	"context"
	"fmt"

	"github.com/fwojciec/tunescrape"
)

// DefaultScrapePageSize is the page size of the unpartitioned walk.
const DefaultScrapePageSize = 20

// Scraper walks the whole index in theme code order without partitioning,
// rewriting a single corpus after every page.
type Scraper struct {
	Requester      tunescrape.PageRequester
	Transcriptions tunescrape.TranscriptionFetcher
	Corpus         tunescrape.CorpusStore

	// Limiter, if set, is waited on before every remote call.
	Limiter tunescrape.Limiter

	// PageSize is the number of entries per request.
	// Zero means DefaultScrapePageSize.
	PageSize int
}

// ScrapeResult holds the outcome of an unpartitioned walk.
type ScrapeResult struct {
	Pages     int
	Tunes     int
	Discarded int
}

// PageEvent reports one completed page of the walk.
type PageEvent struct {
	Page    int
	Entries int // entries on the page
	Kept    int // tunes kept from the page
	Total   int // tunes in the corpus so far
}

// PageFunc is a callback for reporting walk progress.
type PageFunc func(event PageEvent)

// ScrapeAll requests pages until one comes back short.
// The corpus is saved after every page, so a failure loses at most the
// page in flight.
func (s *Scraper) ScrapeAll(ctx context.Context, progress PageFunc) (*ScrapeResult, error) {
	size := s.PageSize
	if size <= 0 {
		size = DefaultScrapePageSize
	}

	var result ScrapeResult
	all := []*tunescrape.Tune{}
	for page := 0; ; page++ {
		if err := s.wait(ctx); err != nil {
			return &result, err
		}
		entries, err := s.Requester.RequestPage(ctx, tunescrape.PageQuery{Page: page, Size: size})
		if err != nil {
			return &result, fmt.Errorf("request page %d: %w", page, err)
		}

		tunes := make([]*tunescrape.Tune, 0, len(entries))
		for _, entry := range entries {
			if err := s.wait(ctx); err != nil {
				return &result, err
			}
			abc, err := s.Transcriptions.FetchABC(ctx, entry.FullURL)
			if err != nil {
				return &result, fmt.Errorf("fetch transcription %s: %w", entry.FullURL, err)
			}
			tunes = append(tunes, tunescrape.FormatTune(entry, abc))
		}
		kept := tunescrape.FilterPlaceholders(tunes)
		result.Discarded += len(tunes) - len(kept)
		all = append(all, kept...)

		if err := s.Corpus.Save(ctx, all); err != nil {
			return &result, fmt.Errorf("save corpus after page %d: %w", page, err)
		}
		result.Pages++
		result.Tunes = len(all)

		if progress != nil {
			progress(PageEvent{Page: page, Entries: len(entries), Kept: len(kept), Total: len(all)})
		}

		if len(entries) < size {
			return &result, nil
		}
	}
}

func (s *Scraper) wait(ctx context.Context) error {
	if s.Limiter == nil {
		return nil
	}
	return s.Limiter.Wait(ctx)
}
