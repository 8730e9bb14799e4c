package main

import (
	"fmt"

	"github.com/fwojciec/tunescrape/fs"
	"github.com/fwojciec/tunescrape/harvest"
	tuneslog "github.com/fwojciec/tunescrape/slog"
)

// Run executes the harvest command.
func (c *HarvestCmd) Run(deps *Dependencies) error {
	store := fs.NewShardStore(c.Dir)

	h := &harvest.Harvester{
		Requester:       deps.Requester,
		Transcriptions:  deps.Transcriptions,
		Shards:          tuneslog.NewLoggingShardStore(store, deps.Logger),
		Expansions:      tuneslog.NewLoggingExpansionStore(store, deps.Logger),
		Limiter:         deps.Limiter,
		Logger:          deps.Logger,
		ContinueOnError: c.KeepGoing,
	}

	progress := func(event harvest.ProgressEvent) {
		code := harvest.DisplayCode(event.Partition)
		switch event.Type {
		case harvest.ProgressPersisted:
			fmt.Fprintf(deps.Stdout, "  %s: %d tunes (%d queued)\n", code, event.Tunes, event.Pending)
		case harvest.ProgressTruncated:
			fmt.Fprintf(deps.Stdout, "  %s: %d tunes, truncated at %d results\n", code, event.Tunes, event.Count)
		case harvest.ProgressExpanded:
			fmt.Fprintf(deps.Stdout, "  %s: saturated, subdividing (%d queued)\n", code, event.Pending)
		case harvest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", code, event.Error)
		case harvest.ProgressSkipped, harvest.ProgressResumed, harvest.ProgressFinished:
			// Summary printed after harvest completes
		}
	}

	fmt.Fprintf(deps.Stdout, "Harvesting into %s\n", store.Dir())
	result, err := h.Harvest(deps.Ctx, nil, progress)
	if result != nil {
		fmt.Fprintf(deps.Stdout, "  %s\n", harvest.FormatResult(result))
	}
	if err != nil {
		return err
	}
	return nil
}
