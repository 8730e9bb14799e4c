package harvest_test

import (
	"testing"

	"github.com/fwojciec/tunescrape"
	"github.com/fwojciec/tunescrape/harvest"
	"github.com/stretchr/testify/assert"
)

func TestDisplayCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1#H", harvest.DisplayCode(tunescrape.Partition{Code: "1#H"}))
	assert.Equal(t, `"1#H "`, harvest.DisplayCode(tunescrape.Partition{Code: "1#H "}))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "900 B", harvest.FormatBytes(900))
	assert.Equal(t, "2.0 KB", harvest.FormatBytes(2048))
	assert.Equal(t, "3.5 MB", harvest.FormatBytes(3*1024*1024+512*1024))
}

func TestFormatResult(t *testing.T) {
	t.Parallel()

	t.Run("omits zero truncation and failure counts", func(t *testing.T) {
		t.Parallel()
		got := harvest.FormatResult(&harvest.Result{Persisted: 2, Tunes: 5})
		assert.Equal(t, "2 shards written, 5 tunes kept, 0 placeholders dropped, 0 partitions expanded, 0 already harvested", got)
	})

	t.Run("reports truncation and failures", func(t *testing.T) {
		t.Parallel()
		got := harvest.FormatResult(&harvest.Result{Truncated: 1, Failed: 3})
		assert.Contains(t, got, "1 truncated")
		assert.Contains(t, got, "3 failed")
	})

	t.Run("reports carried entries", func(t *testing.T) {
		t.Parallel()
		got := harvest.FormatResult(&harvest.Result{Carried: 2})
		assert.Contains(t, got, "2 carried to terminal partitions")
	})
}
