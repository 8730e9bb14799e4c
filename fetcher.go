package tunescrape

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch returns the HTML body of the document at url.
	// A non-success status is reported as *HTTPError.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// TranscriptionFetcher retrieves the ABC transcription for a tune page.
type TranscriptionFetcher interface {
	// FetchABC returns the transcription at url, or NoScore when the
	// page has none. Absence is not an error.
	FetchABC(ctx context.Context, url string) (string, error)
}

// PageQuery describes one page of the tune index.
// A nil Partition walks the whole catalog in theme code order.
type PageQuery struct {
	Partition *Partition
	Page      int
	Size      int
}

// Offset returns the index of the first result on the page.
func (q PageQuery) Offset() int {
	return q.Page * q.Size
}

// PageRequester queries the remote tune index.
type PageRequester interface {
	// RequestPage returns the entries on one page of the index.
	// Fewer than q.Size entries means there are no further pages.
	RequestPage(ctx context.Context, q PageQuery) ([]*Entry, error)
}
