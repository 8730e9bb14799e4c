package tunescrape

import "strings"

// NoScore is stored in place of a transcription when the tune page has none.
const NoScore = "No Score"

// PlaceholderTemplate is the authoring template left on un-transcribed tune pages.
const PlaceholderTemplate = "REPLACE THIS LINE WITH THE ABC CODE OF THIS TUNE"

// Tune is a harvested tune record as persisted in shard files.
type Tune struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	ABC  string `json:"abc"`
}

// Entry is a raw result returned by the tune index.
type Entry struct {
	FullText  string `json:"fulltext"`
	FullURL   string `json:"fullurl"`
	ThemeCode string `json:"themecode"` // first "Theme Code Index" printout, empty when absent
}

// FormatTune builds a Tune from an index entry and its fetched transcription.
// An empty transcription is stored as NoScore.
func FormatTune(entry *Entry, abc string) *Tune {
	if abc == "" {
		abc = NoScore
	}
	return &Tune{
		Name: entry.FullText,
		URL:  entry.FullURL,
		ABC:  abc,
	}
}

// IsPlaceholder reports whether abc is a stub rather than a real transcription.
func IsPlaceholder(abc string) bool {
	return strings.Contains(abc, NoScore) || strings.Contains(abc, PlaceholderTemplate)
}

// FilterPlaceholders returns the tunes whose transcriptions are not placeholders.
func FilterPlaceholders(tunes []*Tune) []*Tune {
	kept := make([]*Tune, 0, len(tunes))
	for _, t := range tunes {
		if IsPlaceholder(t.ABC) {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
