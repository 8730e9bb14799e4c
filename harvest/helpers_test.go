package harvest_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fwojciec/tunescrape"
)

// fakeIndex serves a synthetic catalog with the archive's filter semantics:
// prefix partitions match by string prefix, terminal partitions match the
// exact code or the code followed by a space. Results are sorted by theme
// code, as the archive sorts them.
type fakeIndex struct {
	mu       sync.Mutex
	entries  []*tunescrape.Entry
	requests []tunescrape.PageQuery
}

func (f *fakeIndex) RequestPage(_ context.Context, q tunescrape.PageQuery) ([]*tunescrape.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, q)

	var matched []*tunescrape.Entry
	for _, e := range f.entries {
		if q.Partition == nil || indexMatch(*q.Partition, e.ThemeCode) {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ThemeCode < matched[j].ThemeCode
	})

	start := min(q.Offset(), len(matched))
	end := min(start+q.Size, len(matched))
	return matched[start:end], nil
}

func (f *fakeIndex) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func indexMatch(p tunescrape.Partition, code string) bool {
	if p.IsTerminal() {
		prefix := p.Prefix()
		return code == prefix || strings.HasPrefix(code, prefix+" ")
	}
	return strings.HasPrefix(code, p.Code)
}

// fakeTranscriptions serves transcriptions keyed by URL.
// Unknown URLs have no score.
type fakeTranscriptions struct {
	mu    sync.Mutex
	abc   map[string]string
	calls int
}

func (f *fakeTranscriptions) FetchABC(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if abc, ok := f.abc[url]; ok {
		return abc, nil
	}
	return tunescrape.NoScore, nil
}

func (f *fakeTranscriptions) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// memShards is an in-memory shard and expansion store.
type memShards struct {
	mu       sync.Mutex
	shards   map[string][]*tunescrape.Tune
	expanded map[string][]*tunescrape.Entry
}

func newMemShards() *memShards {
	return &memShards{
		shards:   make(map[string][]*tunescrape.Tune),
		expanded: make(map[string][]*tunescrape.Entry),
	}
}

func (s *memShards) Exists(_ context.Context, p tunescrape.Partition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.shards[p.Code]
	return ok, nil
}

func (s *memShards) Persist(_ context.Context, p tunescrape.Partition, tunes []*tunescrape.Tune) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shards[p.Code]; ok {
		return fmt.Errorf("shard %q persisted twice", p.Code)
	}
	s.shards[p.Code] = tunes
	return nil
}

func (s *memShards) IsExpanded(_ context.Context, p tunescrape.Partition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.expanded[p.Code]
	return ok, nil
}

func (s *memShards) MarkExpanded(_ context.Context, p tunescrape.Partition, carried []*tunescrape.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded[p.Code] = carried
	return nil
}

func (s *memShards) Carried(_ context.Context, p tunescrape.Partition) ([]*tunescrape.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[p.Code], nil
}

func (s *memShards) codes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	codes := make([]string, 0, len(s.shards))
	for code := range s.shards {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// urls returns every persisted tune URL, including duplicates.
func (s *memShards) urls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var urls []string
	for _, tunes := range s.shards {
		for _, t := range tunes {
			urls = append(urls, t.URL)
		}
	}
	sort.Strings(urls)
	return urls
}

// entriesWithCodes builds one entry per code with a URL derived from its index.
func entriesWithCodes(prefix string, codes ...string) []*tunescrape.Entry {
	entries := make([]*tunescrape.Entry, len(codes))
	for i, code := range codes {
		entries[i] = &tunescrape.Entry{
			FullText:  fmt.Sprintf("%s tune %d", prefix, i),
			FullURL:   fmt.Sprintf("http://tunearch.org/wiki/%s_%d", prefix, i),
			ThemeCode: code,
		}
	}
	return entries
}
