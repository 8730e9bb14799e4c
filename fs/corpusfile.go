package fs

import (
	"context"
	"fmt"

	"github.com/fwojciec/tunescrape"
)

// Ensure CorpusFile implements tunescrape.CorpusStore at compile time.
var _ tunescrape.CorpusStore = (*CorpusFile)(nil)

// CorpusFile stores the whole unpartitioned corpus as one JSON array file.
// Each Save rewrites the file atomically.
type CorpusFile struct {
	path string
}

// NewCorpusFile creates a CorpusFile at path.
func NewCorpusFile(path string) *CorpusFile {
	return &CorpusFile{path: path}
}

// Path returns the file path.
func (f *CorpusFile) Path() string {
	return f.path
}

// Save replaces the file contents with tunes.
func (f *CorpusFile) Save(ctx context.Context, tunes []*tunescrape.Tune) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tunes == nil {
		tunes = []*tunescrape.Tune{}
	}
	data, err := marshalTunes(tunes)
	if err != nil {
		return fmt.Errorf("marshal corpus: %w", err)
	}
	return writeAtomic(f.path, data)
}
