package tunescrape

import "strings"

// PageCap is the number of results a single partitioned index request returns.
// A partition whose request returns PageCap entries may be truncated.
const PageCap = 100

// Theme code symbol components, in enumeration order.
var (
	Digits      = []string{"1", "2", "3", "4", "5", "6", "7"}
	Accidentals = []string{"", "b", "#"}
	Octaves     = []string{"L", "", "H"}
)

// Symbols returns every theme code symbol: a digit, an optional accidental
// and an optional octave marker. Digits vary slowest, octaves fastest.
func Symbols() []string {
	symbols := make([]string, 0, len(Digits)*len(Accidentals)*len(Octaves))
	for _, d := range Digits {
		for _, a := range Accidentals {
			for _, o := range Octaves {
				symbols = append(symbols, d+a+o)
			}
		}
	}
	return symbols
}

// ParseSymbols splits the leading run of theme code symbols from code.
// Parsing stops at the first character that cannot start a symbol.
func ParseSymbols(code string) []string {
	var symbols []string
	i := 0
	for i < len(code) {
		if code[i] < '1' || code[i] > '7' {
			break
		}
		j := i + 1
		if j < len(code) && (code[j] == 'b' || code[j] == '#') {
			j++
		}
		if j < len(code) && (code[j] == 'L' || code[j] == 'H') {
			j++
		}
		symbols = append(symbols, code[i:j])
		i = j
	}
	return symbols
}

// Partition is a slice of the theme code namespace harvested as one shard.
// A code ending in a space is terminal and matches only the exact code.
type Partition struct {
	Code string
}

// IsTerminal reports whether the partition is an exact-match partition that
// cannot be subdivided.
func (p Partition) IsTerminal() bool {
	return strings.HasSuffix(p.Code, " ")
}

// Prefix returns the partition code without the terminal marker.
func (p Partition) Prefix() string {
	return strings.TrimSuffix(p.Code, " ")
}

// Children returns the partitions that together cover p: one per appended
// symbol, plus the terminal partition for the exact code.
// Terminal partitions have no children.
func (p Partition) Children() []Partition {
	if p.IsTerminal() {
		return nil
	}
	symbols := Symbols()
	children := make([]Partition, 0, len(symbols)+1)
	for _, s := range symbols {
		children = append(children, Partition{Code: p.Code + s})
	}
	return append(children, p.Terminal())
}

// Matches reports whether an entry with the given theme code belongs to p.
// Codes are compared symbol by symbol, so "1b" does not own "1bL3"; that
// entry belongs to "1bL". An empty theme code is unknown and always matches.
func (p Partition) Matches(themeCode string) bool {
	if themeCode == "" {
		return true
	}
	want := ParseSymbols(p.Prefix())
	got := ParseSymbols(themeCode)
	if len(got) < len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	if p.IsTerminal() {
		return len(got) == len(want)
	}
	return true
}

// Selects reports whether the index filter for p returns an entry with the
// given theme code. Prefix partitions select by string prefix; terminal
// partitions select the exact code or the code followed by a space.
// The selection of a prefix partition is a superset of what it Matches.
func (p Partition) Selects(themeCode string) bool {
	if !p.IsTerminal() {
		return strings.HasPrefix(themeCode, p.Code)
	}
	code := p.Prefix()
	return themeCode == code || strings.HasPrefix(themeCode, code+" ")
}

// Terminal returns the exact-match child of p.
func (p Partition) Terminal() Partition {
	if p.IsTerminal() {
		return p
	}
	return Partition{Code: p.Code + " "}
}

// Unreached returns the entries p owns that none of its children both
// selects and owns. Theme codes continuing past the prefix with something
// other than a symbol or a space, such as "1-5" under "1", fall here.
func (p Partition) Unreached(entries []*Entry) []*Entry {
	children := p.Children()
	var unreached []*Entry
	for _, e := range entries {
		if !p.Matches(e.ThemeCode) {
			continue
		}
		reached := false
		for _, c := range children {
			if c.Selects(e.ThemeCode) && c.Matches(e.ThemeCode) {
				reached = true
				break
			}
		}
		if !reached {
			unreached = append(unreached, e)
		}
	}
	return unreached
}

// RootPartitions returns the initial frontier: one partition per symbol.
func RootPartitions() []Partition {
	symbols := Symbols()
	partitions := make([]Partition, len(symbols))
	for i, s := range symbols {
		partitions[i] = Partition{Code: s}
	}
	return partitions
}
