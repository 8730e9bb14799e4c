package mock

import (
	"context"

	"github.com/fwojciec/tunescrape"
)

var _ tunescrape.PartitionFrontier = (*PartitionFrontier)(nil)

// PartitionFrontier is a mock implementation of tunescrape.PartitionFrontier.
type PartitionFrontier struct {
	PushFn func(partitions ...tunescrape.Partition)
	PopFn  func() (tunescrape.Partition, bool)
	LenFn  func() int
}

func (f *PartitionFrontier) Push(partitions ...tunescrape.Partition) {
	f.PushFn(partitions...)
}

func (f *PartitionFrontier) Pop() (tunescrape.Partition, bool) {
	return f.PopFn()
}

func (f *PartitionFrontier) Len() int {
	return f.LenFn()
}

var _ tunescrape.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of tunescrape.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *Limiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}
