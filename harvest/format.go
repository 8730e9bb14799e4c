package harvest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/tunescrape"
)

// DisplayCode renders a partition code for progress output. Terminal
// codes are quoted so the trailing space stays visible.
func DisplayCode(p tunescrape.Partition) string {
	if p.IsTerminal() {
		return strconv.Quote(p.Code)
	}
	return p.Code
}

// FormatBytes formats a corpus size in human-readable form.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatResult summarizes a harvest run on one line.
func FormatResult(r *Result) string {
	parts := []string{
		fmt.Sprintf("%d shards written", r.Persisted),
		fmt.Sprintf("%d tunes kept", r.Tunes),
		fmt.Sprintf("%d placeholders dropped", r.Discarded),
		fmt.Sprintf("%d partitions expanded", r.Expanded),
		fmt.Sprintf("%d already harvested", r.Skipped),
	}
	if r.Resumed > 0 {
		parts = append(parts, fmt.Sprintf("%d resumed", r.Resumed))
	}
	if r.Carried > 0 {
		parts = append(parts, fmt.Sprintf("%d carried to terminal partitions", r.Carried))
	}
	if r.Truncated > 0 {
		parts = append(parts, fmt.Sprintf("%d truncated", r.Truncated))
	}
	if r.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", r.Failed))
	}
	return strings.Join(parts, ", ")
}
