package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tunescrape"
)

// Ensure LoggingPageRequester implements tunescrape.PageRequester.
var _ tunescrape.PageRequester = (*LoggingPageRequester)(nil)

// LoggingPageRequester wraps a PageRequester with logging.
type LoggingPageRequester struct {
	next   tunescrape.PageRequester
	logger *slog.Logger
}

// NewLoggingPageRequester creates a new LoggingPageRequester.
func NewLoggingPageRequester(next tunescrape.PageRequester, logger *slog.Logger) *LoggingPageRequester {
	return &LoggingPageRequester{next: next, logger: logger}
}

// RequestPage delegates to the wrapped requester and logs the operation.
func (r *LoggingPageRequester) RequestPage(ctx context.Context, q tunescrape.PageQuery) (entries []*tunescrape.Entry, err error) {
	defer func(begin time.Time) {
		code := "(all)"
		if q.Partition != nil {
			code = q.Partition.Code
		}
		r.logger.Info("index page",
			"code", code,
			"page", q.Page,
			"size", q.Size,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.RequestPage(ctx, q)
}
