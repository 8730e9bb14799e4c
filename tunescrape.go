// Package tunescrape harvests tune records and their ABC transcriptions
// from the Traditional Tune Archive, stores them as per-partition JSON
// shards, and concatenates the cleaned notation into a training corpus.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, fs/, slog/).
package tunescrape
