// Package fs provides file-based storage for harvested tunes.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"github.com/fwojciec/tunescrape"
)

// File extensions for shards and expansion markers.
const (
	shardExt    = ".json"
	expandedExt = ".expanded"
)

// Ensure ShardStore implements the shard interfaces at compile time.
var (
	_ tunescrape.ShardStore     = (*ShardStore)(nil)
	_ tunescrape.ShardSource    = (*ShardStore)(nil)
	_ tunescrape.ExpansionStore = (*ShardStore)(nil)
)

// ShardStore keeps one JSON array file per harvested partition in a directory.
// A shard is written to a temporary sibling and renamed into place, so a
// shard file is either absent or complete.
type ShardStore struct {
	dir string
}

// NewShardStore creates a ShardStore rooted at dir.
func NewShardStore(dir string) *ShardStore {
	return &ShardStore{dir: dir}
}

// Dir returns the directory holding the shards.
func (s *ShardStore) Dir() string {
	return s.dir
}

// ShardName converts a partition code to its shard file name.
// Example: "1#H " → "1%23H+.json"
func ShardName(code string) string {
	return url.QueryEscape(code) + shardExt
}

// Path returns the shard file path for a partition.
func (s *ShardStore) Path(p tunescrape.Partition) string {
	return filepath.Join(s.dir, ShardName(p.Code))
}

// markerPath returns the expansion marker path for a partition.
func (s *ShardStore) markerPath(p tunescrape.Partition) string {
	return filepath.Join(s.dir, url.QueryEscape(p.Code)+expandedExt)
}

// Exists reports whether the partition's shard file is present.
func (s *ShardStore) Exists(ctx context.Context, p tunescrape.Partition) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return fileExists(s.Path(p))
}

// IsExpanded reports whether the partition's expansion marker is present.
func (s *ShardStore) IsExpanded(ctx context.Context, p tunescrape.Partition) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return fileExists(s.markerPath(p))
}

// MarkExpanded writes the partition's expansion marker. The marker holds
// the carried entries as a JSON array, or nothing when there are none.
func (s *ShardStore) MarkExpanded(ctx context.Context, p tunescrape.Partition, carried []*tunescrape.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var data []byte
	if len(carried) > 0 {
		var err error
		if data, err = json.Marshal(carried); err != nil {
			return fmt.Errorf("marshal marker %q: %w", p.Code, err)
		}
	}
	return writeAtomic(s.markerPath(p), data)
}

// Carried returns the entries held by the partition's expansion marker.
func (s *ShardStore) Carried(ctx context.Context, p tunescrape.Partition) ([]*tunescrape.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.markerPath(p)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var entries []*tunescrape.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, tunescrape.Errorf(tunescrape.EINVALID, "decode %s: %v", path, err)
	}
	return entries, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
}

// Persist writes tunes as the partition's shard.
func (s *ShardStore) Persist(ctx context.Context, p tunescrape.Partition, tunes []*tunescrape.Tune) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tunes == nil {
		tunes = []*tunescrape.Tune{}
	}
	data, err := marshalTunes(tunes)
	if err != nil {
		return fmt.Errorf("marshal shard %q: %w", p.Code, err)
	}
	return writeAtomic(s.Path(p), data)
}

// List returns the names of all shard files, sorted.
// A missing directory has no shards.
func (s *ShardStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read shard dir %s: %w", s.dir, err)
	}

	names := []string{}
	for _, e := range dirEntries {
		if e.IsDir() || filepath.Ext(e.Name()) != shardExt {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Load reads the tunes in the named shard file.
func (s *ShardStore) Load(ctx context.Context, name string) ([]*tunescrape.Tune, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name != filepath.Base(name) {
		return nil, tunescrape.Errorf(tunescrape.EINVALID, "shard name %q must not contain a path", name)
	}
	return readTunes(filepath.Join(s.dir, name))
}

// marshalTunes encodes tunes as a JSON array without HTML escaping, since
// ABC bodies routinely contain '<', '>' and '&'.
func marshalTunes(tunes []*tunescrape.Tune) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tunes); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func readTunes(path string) ([]*tunescrape.Tune, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, tunescrape.Errorf(tunescrape.ENOTFOUND, "shard %s not found", path)
	}
	if err != nil {
		return nil, err
	}
	var tunes []*tunescrape.Tune
	if err := json.Unmarshal(data, &tunes); err != nil {
		return nil, tunescrape.Errorf(tunescrape.EINVALID, "decode %s: %v", path, err)
	}
	return tunes, nil
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
