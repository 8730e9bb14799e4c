// Package bloom provides probabilistic deduplication of tune bodies.
package bloom

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
)

// Filter remembers which transcription bodies have been written.
// Bodies are reduced to their xxhash digest before insertion.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected bodies
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// TestAndAdd reports whether body might have been seen before and records it.
// False positives are possible; false negatives are not.
func (f *Filter) TestAndAdd(body string) bool {
	return f.f.TestAndAdd(digest(body))
}

// EstimatedCount returns the approximate number of bodies in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func digest(body string) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(body))
	return b[:]
}
