// Package harvest drives the partitioned crawl of the tune index.
// It walks the theme code search space, subdivides partitions whose page
// is full, and persists one shard per resolved partition.
package harvest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/tunescrape"
)

// Harvester orchestrates the partitioned harvest.
type Harvester struct {
	Requester      tunescrape.PageRequester
	Transcriptions tunescrape.TranscriptionFetcher
	Shards         tunescrape.ShardStore

	// Expansions, if set, remembers subdivided partitions across runs.
	Expansions tunescrape.ExpansionStore

	// Limiter, if set, is waited on before every remote call.
	Limiter tunescrape.Limiter

	// Logger, if set, receives truncation warnings and skipped failures.
	Logger *slog.Logger

	// SearchSpace decides subdivision. The zero value uses tunescrape.PageCap.
	SearchSpace SearchSpace

	// ContinueOnError skips a failing partition instead of aborting.
	// The partition's shard stays unwritten so the next run retries it.
	ContinueOnError bool

	// carried holds entries bound for terminal children, keyed by parent
	// code, when no ExpansionStore is set.
	carried map[string][]*tunescrape.Entry
}

// Result holds the outcome of a harvest.
type Result struct {
	Persisted int // shards written
	Skipped   int // partitions already on disk
	Resumed   int // partitions requeued from an expansion marker
	Expanded  int // saturated partitions replaced by children
	Carried   int // entries handed from a saturated parent to its terminal child
	Truncated int // saturated terminal partitions persisted as is
	Failed    int // partitions abandoned under ContinueOnError
	Tunes     int // tunes written across all shards
	Discarded int // placeholder tunes dropped
}

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Type      ProgressType
	Partition tunescrape.Partition
	Count     int // index results for the partition
	Tunes     int // tunes persisted for the partition
	Pending   int // partitions still queued
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressSkipped ProgressType = iota
	ProgressResumed
	ProgressExpanded
	ProgressPersisted
	ProgressTruncated
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// Harvest processes partitions until the frontier is empty.
// A nil frontier starts from tunescrape.RootPartitions.
//
// Every remote call happens sequentially. Unless ContinueOnError is set,
// the first failure aborts the harvest and is returned along with the
// counts so far; the failing partition has no shard, so a rerun resumes
// from it.
func (h *Harvester) Harvest(ctx context.Context, frontier tunescrape.PartitionFrontier, progress ProgressFunc) (*Result, error) {
	if frontier == nil {
		frontier = NewFrontier(tunescrape.RootPartitions()...)
	}
	if h.carried == nil {
		h.carried = make(map[string][]*tunescrape.Entry)
	}
	notify := func(e ProgressEvent) {
		if progress != nil {
			e.Pending = frontier.Len()
			progress(e)
		}
	}

	var result Result
	for {
		if err := ctx.Err(); err != nil {
			return &result, err
		}

		p, ok := frontier.Pop()
		if !ok {
			break
		}

		done, err := h.Shards.Exists(ctx, p)
		if err != nil {
			return &result, fmt.Errorf("check shard %q: %w", p.Code, err)
		}
		if done {
			result.Skipped++
			notify(ProgressEvent{Type: ProgressSkipped, Partition: p})
			continue
		}

		resumed, err := h.resume(ctx, p, frontier)
		if err != nil {
			return &result, fmt.Errorf("check expansion %q: %w", p.Code, err)
		}
		if resumed {
			result.Resumed++
			notify(ProgressEvent{Type: ProgressResumed, Partition: p})
			continue
		}

		if err := h.harvestPartition(ctx, p, frontier, &result, notify); err != nil {
			if !h.ContinueOnError || ctx.Err() != nil {
				return &result, fmt.Errorf("partition %q: %w", p.Code, err)
			}
			result.Failed++
			h.log().Error("partition failed", "code", p.Code, "err", err)
			notify(ProgressEvent{Type: ProgressFailed, Partition: p, Error: err})
		}
	}

	notify(ProgressEvent{Type: ProgressFinished})
	return &result, nil
}

// harvestPartition fetches one partition and either expands or persists it.
func (h *Harvester) harvestPartition(ctx context.Context, p tunescrape.Partition, frontier tunescrape.PartitionFrontier, result *Result, notify func(ProgressEvent)) error {
	if err := h.wait(ctx); err != nil {
		return err
	}
	entries, err := h.Requester.RequestPage(ctx, tunescrape.PageQuery{
		Partition: &p,
		Page:      0,
		Size:      h.SearchSpace.pageCap(),
	})
	if err != nil {
		return fmt.Errorf("request page: %w", err)
	}

	if children, ok := h.SearchSpace.Expand(p, len(entries)); ok {
		carried := p.Unreached(entries)
		for _, e := range carried {
			h.log().Info("carrying entry to terminal partition",
				"code", p.Code,
				"theme_code", e.ThemeCode,
				"url", e.FullURL,
			)
		}
		if err := h.markExpanded(ctx, p, carried); err != nil {
			return fmt.Errorf("mark expanded: %w", err)
		}
		frontier.Push(children...)
		result.Expanded++
		result.Carried += len(carried)
		notify(ProgressEvent{Type: ProgressExpanded, Partition: p, Count: len(entries)})
		return nil
	}

	count := len(entries)
	truncated := h.SearchSpace.Saturated(count)
	if truncated {
		h.log().Warn("terminal partition saturated, some tunes may be missing",
			"code", p.Code,
			"count", count,
		)
	}
	if p.IsTerminal() {
		carried, err := h.carriedInto(ctx, p)
		if err != nil {
			return fmt.Errorf("read carried entries: %w", err)
		}
		entries = mergeEntries(entries, carried)
	}

	tunes, discarded, err := h.collect(ctx, p, entries)
	if err != nil {
		return err
	}

	if err := h.Shards.Persist(ctx, p, tunes); err != nil {
		return fmt.Errorf("persist shard: %w", err)
	}

	result.Persisted++
	result.Tunes += len(tunes)
	result.Discarded += discarded
	event := ProgressEvent{Type: ProgressPersisted, Partition: p, Count: count, Tunes: len(tunes)}
	if truncated {
		result.Truncated++
		event.Type = ProgressTruncated
	}
	notify(event)
	return nil
}

// collect formats the entries the partition owns and drops placeholders.
// It returns the kept tunes and the number of placeholders dropped.
func (h *Harvester) collect(ctx context.Context, p tunescrape.Partition, entries []*tunescrape.Entry) ([]*tunescrape.Tune, int, error) {
	tunes := make([]*tunescrape.Tune, 0, len(entries))
	for _, entry := range entries {
		// The index filter is a string prefix; sibling partitions own the rest.
		if !p.Matches(entry.ThemeCode) {
			continue
		}

		if err := h.wait(ctx); err != nil {
			return nil, 0, err
		}
		abc, err := h.Transcriptions.FetchABC(ctx, entry.FullURL)
		if err != nil {
			return nil, 0, fmt.Errorf("fetch transcription %s: %w", entry.FullURL, err)
		}

		tunes = append(tunes, tunescrape.FormatTune(entry, abc))
	}
	kept := tunescrape.FilterPlaceholders(tunes)
	return kept, len(tunes) - len(kept), nil
}

// markExpanded records the expansion of p with the entries its terminal
// child must persist.
func (h *Harvester) markExpanded(ctx context.Context, p tunescrape.Partition, carried []*tunescrape.Entry) error {
	if h.Expansions == nil {
		h.carried[p.Code] = carried
		return nil
	}
	return h.Expansions.MarkExpanded(ctx, p, carried)
}

// carriedInto returns the entries the parent of terminal partition p
// handed down when it was expanded.
func (h *Harvester) carriedInto(ctx context.Context, p tunescrape.Partition) ([]*tunescrape.Entry, error) {
	parent := tunescrape.Partition{Code: p.Prefix()}
	if h.Expansions == nil {
		return h.carried[parent.Code], nil
	}
	return h.Expansions.Carried(ctx, parent)
}

// mergeEntries appends the extra entries whose URLs are not in entries.
func mergeEntries(entries, extra []*tunescrape.Entry) []*tunescrape.Entry {
	if len(extra) == 0 {
		return entries
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.FullURL] = true
	}
	merged := append([]*tunescrape.Entry{}, entries...)
	for _, e := range extra {
		if !seen[e.FullURL] {
			seen[e.FullURL] = true
			merged = append(merged, e)
		}
	}
	return merged
}

// resume requeues the children of a partition expanded by an earlier run.
func (h *Harvester) resume(ctx context.Context, p tunescrape.Partition, frontier tunescrape.PartitionFrontier) (bool, error) {
	if h.Expansions == nil || p.IsTerminal() {
		return false, nil
	}
	expanded, err := h.Expansions.IsExpanded(ctx, p)
	if err != nil || !expanded {
		return false, err
	}
	frontier.Push(p.Children()...)
	return true, nil
}

func (h *Harvester) wait(ctx context.Context) error {
	if h.Limiter == nil {
		return nil
	}
	return h.Limiter.Wait(ctx)
}

func (h *Harvester) log() *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return h.Logger
}
