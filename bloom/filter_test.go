package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/tunescrape/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.0001)

	// First sighting is new
	assert.False(t, f.TestAndAdd("K:G\n|GABc|"))

	// Second sighting of the same body is a duplicate
	assert.True(t, f.TestAndAdd("K:G\n|GABc|"))

	// A different body is still new
	assert.False(t, f.TestAndAdd("K:D\n|DEFG|"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	for i := range 3 {
		f.TestAndAdd(fmt.Sprintf("K:G\n|tune %d|", i))
	}

	count := f.EstimatedCount()
	assert.GreaterOrEqual(t, count, uint(2))
	assert.LessOrEqual(t, count, uint(4))
}

func TestFilter_LowFalsePositiveRate(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.001)
	for i := range 5000 {
		f.TestAndAdd(fmt.Sprintf("body-%d", i))
	}

	falsePositives := 0
	for i := range 5000 {
		if f.TestAndAdd(fmt.Sprintf("other-%d", i)) {
			falsePositives++
		}
	}
	assert.Less(t, falsePositives, 50)
}
