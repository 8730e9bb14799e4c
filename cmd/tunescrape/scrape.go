package main

import (
	"fmt"

	"github.com/fwojciec/tunescrape/fs"
	"github.com/fwojciec/tunescrape/harvest"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	corpus := fs.NewCorpusFile(c.Output)

	s := &harvest.Scraper{
		Requester:      deps.Requester,
		Transcriptions: deps.Transcriptions,
		Corpus:         corpus,
		Limiter:        deps.Limiter,
		PageSize:       c.PageSize,
	}

	progress := func(event harvest.PageEvent) {
		fmt.Fprintf(deps.Stdout, "  page %d: kept %d of %d (%d total)\n",
			event.Page, event.Kept, event.Entries, event.Total)
	}

	result, err := s.ScrapeAll(deps.Ctx, progress)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d tunes from %d pages to %s (%d placeholders dropped)\n",
		result.Tunes, result.Pages, corpus.Path(), result.Discarded)
	return nil
}
