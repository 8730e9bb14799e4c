package harvest

import "github.com/fwojciec/tunescrape"

// Attempt records how many index results a partition's single page returned.
type Attempt struct {
	Partition tunescrape.Partition
	Count     int
}

// SearchSpace decides when a partition must be subdivided.
type SearchSpace struct {
	// PageCap is the page size used for partition requests.
	// Zero means tunescrape.PageCap.
	PageCap int
}

func (s SearchSpace) pageCap() int {
	if s.PageCap <= 0 {
		return tunescrape.PageCap
	}
	return s.PageCap
}

// Saturated reports whether count results may be a truncated page.
func (s SearchSpace) Saturated(count int) bool {
	return count >= s.pageCap()
}

// Expand returns the children that replace a saturated partition.
// The bool result is false when the partition is resolved as is: either
// it returned fewer results than the cap, or it is terminal and cannot be
// subdivided further.
func (s SearchSpace) Expand(p tunescrape.Partition, count int) ([]tunescrape.Partition, bool) {
	if !s.Saturated(count) || p.IsTerminal() {
		return nil, false
	}
	return p.Children(), true
}

// NextFrontier replaces every saturated partition in attempts with its
// children, in order, and drops the resolved ones.
func (s SearchSpace) NextFrontier(attempts []Attempt) []tunescrape.Partition {
	var next []tunescrape.Partition
	for _, a := range attempts {
		if children, ok := s.Expand(a.Partition, a.Count); ok {
			next = append(next, children...)
		}
	}
	return next
}
