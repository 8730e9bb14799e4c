package tunescrape

import "context"

// ShardStore persists one shard of tunes per completed partition.
// A shard's existence marks its partition as harvested.
type ShardStore interface {
	// Exists reports whether the partition has already been persisted.
	Exists(ctx context.Context, p Partition) (bool, error)

	// Persist writes the partition's tunes. The shard is either fully
	// written or absent.
	Persist(ctx context.Context, p Partition, tunes []*Tune) error
}

// ShardSource enumerates and reads persisted shards.
type ShardSource interface {
	// List returns the names of all persisted shards in sorted order.
	List(ctx context.Context) ([]string, error)

	// Load reads the tunes in the named shard.
	Load(ctx context.Context, name string) ([]*Tune, error)
}

// CorpusStore holds the single growing array of tunes gathered by an
// unpartitioned walk of the index.
type CorpusStore interface {
	// Save replaces the stored corpus with tunes.
	Save(ctx context.Context, tunes []*Tune) error
}

// ExpansionStore records partitions that were subdivided, so a restarted
// harvest can requeue their children without fetching the parent again.
// An expansion marker is not a shard. It carries the index entries no
// child query can return, which the terminal child persists instead.
type ExpansionStore interface {
	// IsExpanded reports whether the partition was subdivided.
	IsExpanded(ctx context.Context, p Partition) (bool, error)

	// MarkExpanded records that the partition was subdivided, along with
	// the entries carried over to its terminal child.
	MarkExpanded(ctx context.Context, p Partition, carried []*Entry) error

	// Carried returns the entries recorded when p was expanded.
	// A partition that was never expanded carries nothing.
	Carried(ctx context.Context, p Partition) ([]*Entry, error)
}
