package tunescrape

import "context"

// PartitionFrontier is an ordered queue of partitions awaiting harvest.
type PartitionFrontier interface {
	// Push appends partitions to the frontier.
	Push(partitions ...Partition)

	// Pop returns the next partition.
	// Returns false if the frontier is empty.
	Pop() (Partition, bool)

	// Len returns the number of queued partitions.
	Len() int
}

// Limiter paces calls to the remote archive.
type Limiter interface {
	// Wait blocks until the next remote call may proceed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error
}
