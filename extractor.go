package tunescrape

// TranscriptionExtractor finds the transcription block in a tune page.
type TranscriptionExtractor interface {
	// Extract returns the text of the first preformatted block in html.
	// The bool result is false if the page has no such block.
	Extract(html string) (string, bool, error)
}

// Transliterator rewrites text into an ASCII approximation.
type Transliterator interface {
	Transliterate(s string) string
}
