package tunescrape

import "strings"

// headerBlacklist lists the ABC header fields stripped before training.
// Fields that shape the music (K:, L:, M:, P:, Q:, R:, T:, V:) are kept.
var headerBlacklist = []string{
	"A:", "B:", "C:", "D:", "F:", "G:", "H:", "I:", "m:", "N:",
	"O:", "r:", "S:", "s:", "W:", "w:", "X:", "Z:",
}

// CleanABC removes empty lines and blacklisted header lines from abc.
func CleanABC(abc string) string {
	lines := strings.Split(abc, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line == "" || isBlacklisted(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isBlacklisted(line string) bool {
	for _, prefix := range headerBlacklist {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// TuneCondition selects which tunes are written to the corpus.
type TuneCondition func(abc string) bool

// AllTunes accepts every tune.
func AllTunes(string) bool { return true }

// CommonOrCutTime accepts tunes in 4/4, 2/2 or common time.
func CommonOrCutTime(abc string) bool {
	for _, meter := range []string{"M:4/4", "M:2/2", "M: 4/4", "M: 2/2", "M:C", "M: C"} {
		if strings.Contains(abc, meter) {
			return true
		}
	}
	return false
}

// Reels accepts tunes that mention "Reel".
func Reels(abc string) bool {
	return strings.Contains(abc, "Reel")
}

// Conditions maps condition names to their predicates.
var Conditions = map[string]TuneCondition{
	"all":         AllTunes,
	"common-time": CommonOrCutTime,
	"reels":       Reels,
}
