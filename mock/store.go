package mock

import (
	"context"

	"github.com/fwojciec/tunescrape"
)

// Compile-time interface verification.
var (
	_ tunescrape.ShardStore     = (*ShardStore)(nil)
	_ tunescrape.ShardSource    = (*ShardSource)(nil)
	_ tunescrape.CorpusStore    = (*CorpusStore)(nil)
	_ tunescrape.ExpansionStore = (*ExpansionStore)(nil)
)

// ShardStore is a mock implementation of tunescrape.ShardStore.
type ShardStore struct {
	ExistsFn  func(ctx context.Context, p tunescrape.Partition) (bool, error)
	PersistFn func(ctx context.Context, p tunescrape.Partition, tunes []*tunescrape.Tune) error
}

func (s *ShardStore) Exists(ctx context.Context, p tunescrape.Partition) (bool, error) {
	return s.ExistsFn(ctx, p)
}

func (s *ShardStore) Persist(ctx context.Context, p tunescrape.Partition, tunes []*tunescrape.Tune) error {
	return s.PersistFn(ctx, p, tunes)
}

// ShardSource is a mock implementation of tunescrape.ShardSource.
type ShardSource struct {
	ListFn func(ctx context.Context) ([]string, error)
	LoadFn func(ctx context.Context, name string) ([]*tunescrape.Tune, error)
}

func (s *ShardSource) List(ctx context.Context) ([]string, error) {
	return s.ListFn(ctx)
}

func (s *ShardSource) Load(ctx context.Context, name string) ([]*tunescrape.Tune, error) {
	return s.LoadFn(ctx, name)
}

// CorpusStore is a mock implementation of tunescrape.CorpusStore.
type CorpusStore struct {
	SaveFn func(ctx context.Context, tunes []*tunescrape.Tune) error
}

func (s *CorpusStore) Save(ctx context.Context, tunes []*tunescrape.Tune) error {
	return s.SaveFn(ctx, tunes)
}

// ExpansionStore is a mock implementation of tunescrape.ExpansionStore.
type ExpansionStore struct {
	IsExpandedFn   func(ctx context.Context, p tunescrape.Partition) (bool, error)
	MarkExpandedFn func(ctx context.Context, p tunescrape.Partition, carried []*tunescrape.Entry) error
	CarriedFn      func(ctx context.Context, p tunescrape.Partition) ([]*tunescrape.Entry, error)
}

func (s *ExpansionStore) IsExpanded(ctx context.Context, p tunescrape.Partition) (bool, error) {
	return s.IsExpandedFn(ctx, p)
}

func (s *ExpansionStore) MarkExpanded(ctx context.Context, p tunescrape.Partition, carried []*tunescrape.Entry) error {
	return s.MarkExpandedFn(ctx, p, carried)
}

func (s *ExpansionStore) Carried(ctx context.Context, p tunescrape.Partition) ([]*tunescrape.Entry, error) {
	return s.CarriedFn(ctx, p)
}
