package mock

import (
	"context"

	"github.com/fwojciec/tunescrape"
)

var _ tunescrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of tunescrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ tunescrape.TranscriptionFetcher = (*TranscriptionFetcher)(nil)

// TranscriptionFetcher is a mock implementation of tunescrape.TranscriptionFetcher.
type TranscriptionFetcher struct {
	FetchABCFn func(ctx context.Context, url string) (string, error)
}

func (f *TranscriptionFetcher) FetchABC(ctx context.Context, url string) (string, error) {
	return f.FetchABCFn(ctx, url)
}

var _ tunescrape.PageRequester = (*PageRequester)(nil)

// PageRequester is a mock implementation of tunescrape.PageRequester.
type PageRequester struct {
	RequestPageFn func(ctx context.Context, q tunescrape.PageQuery) ([]*tunescrape.Entry, error)
}

func (r *PageRequester) RequestPage(ctx context.Context, q tunescrape.PageQuery) ([]*tunescrape.Entry, error) {
	return r.RequestPageFn(ctx, q)
}
