// Package slog provides logging decorators for the tunescrape interfaces.
package slog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/tunescrape"
)

// Ensure LoggingFetcher implements tunescrape.Fetcher.
var _ tunescrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps the transcription page Fetcher with logging.
type LoggingFetcher struct {
	next   tunescrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next tunescrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher. Failures are logged at warn
// level; successful fetches at debug level, noting whether the page holds
// a <pre> block for the transcription.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Warn("transcription page failed", "url", url, "err", err)
		return html, err
	}
	f.logger.Debug("transcription page",
		"url", url,
		"pre", strings.Contains(html, "<pre"),
		"duration", time.Since(begin),
	)
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
