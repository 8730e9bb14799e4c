package harvest

import (
	"sync"

	"github.com/fwojciec/tunescrape"
)

// Compile-time interface verification.
var _ tunescrape.PartitionFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO queue of partitions.
// Children pushed during expansion are harvested after every partition
// already queued, so the crawl proceeds breadth first.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	queue []tunescrape.Partition
}

// NewFrontier creates a Frontier seeded with the given partitions.
func NewFrontier(partitions ...tunescrape.Partition) *Frontier {
	f := &Frontier{}
	f.Push(partitions...)
	return f
}

// Push appends partitions to the back of the queue.
func (f *Frontier) Push(partitions ...tunescrape.Partition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, partitions...)
}

// Pop removes and returns the partition at the front of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (tunescrape.Partition, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return tunescrape.Partition{}, false
	}
	p := f.queue[0]
	f.queue[0] = tunescrape.Partition{}
	f.queue = f.queue[1:]
	return p, true
}

// Len returns the number of queued partitions.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
