// Package corpus concatenates harvested shards into a single training corpus.
package corpus

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/tunescrape"
	"github.com/fwojciec/tunescrape/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of shards decoded at once.
const DefaultConcurrency = 8

// Separator follows every tune written to the corpus.
const Separator = "\n\n"

// Builder writes the cleaned transcriptions of every shard to a corpus.
type Builder struct {
	Shards tunescrape.ShardSource

	// Condition selects tunes by their raw transcription.
	// Nil accepts every tune.
	Condition tunescrape.TuneCondition

	// Dedup, if set, drops tunes whose cleaned body was already written.
	Dedup *bloom.Filter

	// Concurrency bounds parallel shard decoding.
	// Zero means DefaultConcurrency.
	Concurrency int
}

// BuildResult holds the outcome of a corpus build.
type BuildResult struct {
	Shards       int
	Tunes        int   // tunes written
	Rejected     int   // tunes the condition did not accept
	Placeholders int   // placeholder tunes skipped
	Duplicates   int   // bodies dropped by the dedup filter
	Bytes        int64 // bytes written
}

// Build writes each accepted tune as its cleaned transcription followed by
// Separator. Shards are written in the order the source lists them.
func (b *Builder) Build(ctx context.Context, w io.Writer) (*BuildResult, error) {
	names, err := b.Shards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shards: %w", err)
	}

	shards, err := b.load(ctx, names)
	if err != nil {
		return nil, err
	}

	condition := b.Condition
	if condition == nil {
		condition = tunescrape.AllTunes
	}

	result := &BuildResult{Shards: len(names)}
	for _, tunes := range shards {
		for _, tune := range tunes {
			if tunescrape.IsPlaceholder(tune.ABC) {
				result.Placeholders++
				continue
			}
			if !condition(tune.ABC) {
				result.Rejected++
				continue
			}

			body := tunescrape.CleanABC(tune.ABC)
			if b.Dedup != nil && b.Dedup.TestAndAdd(body) {
				result.Duplicates++
				continue
			}

			n, err := io.WriteString(w, body+Separator)
			result.Bytes += int64(n)
			if err != nil {
				return result, fmt.Errorf("write corpus: %w", err)
			}
			result.Tunes++
		}
	}
	return result, nil
}

// load decodes the named shards concurrently and returns them in input order.
func (b *Builder) load(ctx context.Context, names []string) ([][]*tunescrape.Tune, error) {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	shards := make([][]*tunescrape.Tune, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, name := range names {
		g.Go(func() error {
			tunes, err := b.Shards.Load(gctx, name)
			if err != nil {
				return fmt.Errorf("load shard %s: %w", name, err)
			}
			shards[i] = tunes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return shards, nil
}
