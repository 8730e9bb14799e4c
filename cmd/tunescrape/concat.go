package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/fwojciec/tunescrape"
	"github.com/fwojciec/tunescrape/bloom"
	"github.com/fwojciec/tunescrape/corpus"
	"github.com/fwojciec/tunescrape/fs"
	"github.com/fwojciec/tunescrape/harvest"
)

// Bloom filter sizing for --dedup.
const (
	dedupCapacity = 500_000
	dedupFPRate   = 0.0001
)

// Run executes the concat command.
func (c *ConcatCmd) Run(deps *Dependencies) (err error) {
	b := &corpus.Builder{
		Shards:    fs.NewShardStore(c.Dir),
		Condition: tunescrape.Conditions[c.Condition],
	}
	if c.Dedup {
		b.Dedup = bloom.NewFilter(dedupCapacity, dedupFPRate)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if c.Append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(c.Output, flags, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	result, err := b.Build(deps.Ctx, w)
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", c.Output, err)
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d tunes from %d shards to %s (%s)\n",
		result.Tunes, result.Shards, c.Output, harvest.FormatBytes(result.Bytes))
	if result.Rejected > 0 || result.Duplicates > 0 {
		fmt.Fprintf(deps.Stdout, "  %d not matching %q, %d duplicates\n", result.Rejected, c.Condition, result.Duplicates)
	}
	if b.Dedup != nil {
		fmt.Fprintf(deps.Stdout, "  ~%d distinct bodies seen\n", b.Dedup.EstimatedCount())
	}
	return nil
}
