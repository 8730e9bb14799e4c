package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tunescrape"
)

var (
	_ tunescrape.ShardStore     = (*LoggingShardStore)(nil)
	_ tunescrape.ExpansionStore = (*LoggingExpansionStore)(nil)
)

// LoggingShardStore wraps a ShardStore with logging of writes.
type LoggingShardStore struct {
	next   tunescrape.ShardStore
	logger *slog.Logger
}

// NewLoggingShardStore creates a new LoggingShardStore.
func NewLoggingShardStore(next tunescrape.ShardStore, logger *slog.Logger) *LoggingShardStore {
	return &LoggingShardStore{next: next, logger: logger}
}

// Exists delegates to the wrapped store. Hits are logged at debug level.
func (s *LoggingShardStore) Exists(ctx context.Context, p tunescrape.Partition) (bool, error) {
	ok, err := s.next.Exists(ctx, p)
	if ok {
		s.logger.Debug("shard exists", "code", p.Code)
	}
	return ok, err
}

// Persist delegates to the wrapped store and logs the operation.
func (s *LoggingShardStore) Persist(ctx context.Context, p tunescrape.Partition, tunes []*tunescrape.Tune) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("persist shard",
			"code", p.Code,
			"tunes", len(tunes),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Persist(ctx, p, tunes)
}

// LoggingExpansionStore wraps an ExpansionStore with logging.
type LoggingExpansionStore struct {
	next   tunescrape.ExpansionStore
	logger *slog.Logger
}

// NewLoggingExpansionStore creates a new LoggingExpansionStore.
func NewLoggingExpansionStore(next tunescrape.ExpansionStore, logger *slog.Logger) *LoggingExpansionStore {
	return &LoggingExpansionStore{next: next, logger: logger}
}

// IsExpanded delegates to the wrapped store.
func (s *LoggingExpansionStore) IsExpanded(ctx context.Context, p tunescrape.Partition) (bool, error) {
	ok, err := s.next.IsExpanded(ctx, p)
	if ok {
		s.logger.Debug("partition already expanded", "code", p.Code)
	}
	return ok, err
}

// MarkExpanded delegates to the wrapped store and logs the operation.
func (s *LoggingExpansionStore) MarkExpanded(ctx context.Context, p tunescrape.Partition, carried []*tunescrape.Entry) (err error) {
	defer func() {
		s.logger.Info("expand partition",
			"code", p.Code,
			"children", len(p.Children()),
			"carried", len(carried),
			"err", err,
		)
	}()
	return s.next.MarkExpanded(ctx, p, carried)
}

// Carried delegates to the wrapped store.
func (s *LoggingExpansionStore) Carried(ctx context.Context, p tunescrape.Partition) ([]*tunescrape.Entry, error) {
	entries, err := s.next.Carried(ctx, p)
	if len(entries) > 0 {
		s.logger.Debug("carried entries", "code", p.Code, "count", len(entries))
	}
	return entries, err
}
