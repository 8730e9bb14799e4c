package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/tunescrape"
	"github.com/fwojciec/tunescrape/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Shard Checkpointing
// A shard file's presence marks its partition as harvested

func TestShardStore_ExistsIsFalseBeforePersist(t *testing.T) {
	t.Parallel()

	// Given an empty shard directory
	store := fs.NewShardStore(t.TempDir())

	// When I check a partition
	ok, err := store.Exists(context.Background(), tunescrape.Partition{Code: "1"})

	// Then it has not been harvested
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShardStore_PersistWritesJSONArray(t *testing.T) {
	t.Parallel()

	// Given a shard store
	dir := t.TempDir()
	store := fs.NewShardStore(dir)
	p := tunescrape.Partition{Code: "1#H "}

	// When I persist tunes for a partition
	err := store.Persist(context.Background(), p, []*tunescrape.Tune{
		{Name: "Rakes of Mallow", URL: "http://tunearch.org/wiki/Rakes", ABC: "X:1\nK:G\n|GBdB|"},
	})
	require.NoError(t, err)

	// Then the shard is marked as existing
	ok, err := store.Exists(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, ok)

	// And the file holds a bare JSON array
	data, err := os.ReadFile(filepath.Join(dir, "1%23H+.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Rakes of Mallow","url":"http://tunearch.org/wiki/Rakes","abc":"X:1\nK:G\n|GBdB|"}]`, string(data))

	// And no temporary files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestShardStore_PersistEmptyShard(t *testing.T) {
	t.Parallel()

	// Given a partition where every tune was a placeholder
	dir := t.TempDir()
	store := fs.NewShardStore(dir)
	p := tunescrape.Partition{Code: "7"}

	// When I persist no tunes
	require.NoError(t, store.Persist(context.Background(), p, nil))

	// Then the shard still marks completion and holds an empty array
	data, err := os.ReadFile(store.Path(p))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestShardStore_PersistDoesNotEscapeHTML(t *testing.T) {
	t.Parallel()

	store := fs.NewShardStore(t.TempDir())
	p := tunescrape.Partition{Code: "2"}

	require.NoError(t, store.Persist(context.Background(), p, []*tunescrape.Tune{
		{Name: "A & B", URL: "u", ABC: "|<c>d|"},
	}))

	data, err := os.ReadFile(store.Path(p))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"A & B"`)
	assert.Contains(t, string(data), `|<c>d|`)
}

func TestShardStore_ListAndLoadRoundTrip(t *testing.T) {
	t.Parallel()

	// Given persisted shards and an unrelated file
	dir := t.TempDir()
	store := fs.NewShardStore(dir)
	ctx := context.Background()
	require.NoError(t, store.Persist(ctx, tunescrape.Partition{Code: "2"}, []*tunescrape.Tune{{Name: "b", URL: "u2", ABC: "K:D"}}))
	require.NoError(t, store.Persist(ctx, tunescrape.Partition{Code: "1"}, []*tunescrape.Tune{{Name: "a", URL: "u1", ABC: "K:G"}}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	// When I list shards
	names, err := store.List(ctx)

	// Then only shard files are returned in sorted order
	require.NoError(t, err)
	assert.Equal(t, []string{"1.json", "2.json"}, names)

	// And each can be loaded
	tunes, err := store.Load(ctx, names[0])
	require.NoError(t, err)
	require.Len(t, tunes, 1)
	assert.Equal(t, "a", tunes[0].Name)
}

func TestShardStore_ListMissingDirectory(t *testing.T) {
	t.Parallel()

	store := fs.NewShardStore(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestShardStore_LoadRejectsPaths(t *testing.T) {
	t.Parallel()

	store := fs.NewShardStore(t.TempDir())

	_, err := store.Load(context.Background(), "../etc/passwd.json")

	require.Error(t, err)
	assert.Equal(t, tunescrape.EINVALID, tunescrape.ErrorCode(err))
}

func TestShardStore_LoadInvalidJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := fs.NewShardStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.json"), []byte("{not json"), 0644))

	_, err := store.Load(context.Background(), "1.json")

	assert.Equal(t, tunescrape.EINVALID, tunescrape.ErrorCode(err))
}

func TestShardName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want string
	}{
		{code: "1", want: "1.json"},
		{code: "1#", want: "1%23.json"},
		{code: "3bL ", want: "3bL+.json"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.ShardName(tt.code))
		})
	}
}

// Story: Expansion Markers
// A subdivided partition leaves a marker instead of a shard

func TestShardStore_MarkExpanded(t *testing.T) {
	t.Parallel()

	// Given a shard store with one shard
	dir := t.TempDir()
	store := fs.NewShardStore(dir)
	ctx := context.Background()
	require.NoError(t, store.Persist(ctx, tunescrape.Partition{Code: "2 "}, nil))

	// When a partition is marked expanded
	p := tunescrape.Partition{Code: "2"}
	before, err := store.IsExpanded(ctx, p)
	require.NoError(t, err)
	require.NoError(t, store.MarkExpanded(ctx, p, nil))

	// Then it reads as expanded but not harvested
	after, err := store.IsExpanded(ctx, p)
	require.NoError(t, err)
	assert.False(t, before)
	assert.True(t, after)

	ok, err := store.Exists(ctx, p)
	require.NoError(t, err)
	assert.False(t, ok)

	// And the marker is not listed as a shard
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2+.json"}, names)

	_, err = os.Stat(filepath.Join(dir, "2.expanded"))
	assert.NoError(t, err)
}

func TestShardStore_Carried(t *testing.T) {
	t.Parallel()

	// Given a partition expanded with one entry no child can reach
	store := fs.NewShardStore(t.TempDir())
	ctx := context.Background()
	p := tunescrape.Partition{Code: "1b"}
	carried := []*tunescrape.Entry{{
		FullText:  "Odd Reel",
		FullURL:   "http://tunearch.org/wiki/Odd_Reel",
		ThemeCode: "1bb3",
	}}
	require.NoError(t, store.MarkExpanded(ctx, p, carried))

	// When the carried entries are read back
	got, err := store.Carried(ctx, p)

	// Then they survive the round trip
	require.NoError(t, err)
	assert.Equal(t, carried, got)

	// And partitions without a marker carry nothing
	none, err := store.Carried(ctx, tunescrape.Partition{Code: "2"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestShardStore_CarriedEmptyMarker(t *testing.T) {
	t.Parallel()

	// Given a marker written with nothing to carry
	store := fs.NewShardStore(t.TempDir())
	ctx := context.Background()
	p := tunescrape.Partition{Code: "4"}
	require.NoError(t, store.MarkExpanded(ctx, p, nil))

	// Then it reads as expanded with no entries
	ok, err := store.IsExpanded(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := store.Carried(ctx, p)
	require.NoError(t, err)
	assert.Empty(t, got)
}
