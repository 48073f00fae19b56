package queue

import (
	"fmt"
	"slices"
	"strings"
)

// SortOrder orders the queue by submission time.
type SortOrder string

const (
	SortNone   SortOrder = "none"
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// ParseSortOrder accepts "newest", "oldest", "none" in any case. Empty means none.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortNone:
		return SortNone, nil
	case SortNewest:
		return SortNewest, nil
	case SortOldest:
		return SortOldest, nil
	}
	return SortNone, fmt.Errorf("unknown sort order %q", s)
}

// AllSubmitters is the submitter filter value that disables the filter.
const AllSubmitters = "All"

// Options are the operator's view controls.
type Options struct {
	OnlyUnplayed bool      `json:"only_unplayed"`
	Submitter    string    `json:"submitter,omitempty"`
	Sort         SortOrder `json:"sort"`
}

func (o Options) filtersSubmitter() bool {
	return o.Submitter != "" && o.Submitter != AllSubmitters
}

// Apply filters then sorts. Submitter matching is exact and case-sensitive.
// Sorting is stable and puts records without a submission time last in
// both directions. The input slice is not modified.
func Apply(records []Record, opts Options) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if opts.OnlyUnplayed && r.Played() {
			continue
		}
		if opts.filtersSubmitter() && r.Submitter != opts.Submitter {
			continue
		}
		out = append(out, r)
	}

	switch opts.Sort {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b Record) int { return bySubmitted(a, b, true) })
	case SortOldest:
		slices.SortStableFunc(out, func(a, b Record) int { return bySubmitted(a, b, false) })
	}
	return out
}

func bySubmitted(a, b Record, newest bool) int {
	switch {
	case a.SubmittedAt == nil && b.SubmittedAt == nil:
		return 0
	case a.SubmittedAt == nil:
		return 1
	case b.SubmittedAt == nil:
		return -1
	}
	c := a.SubmittedAt.Compare(*b.SubmittedAt)
	if newest {
		return -c
	}
	return c
}

// Submitters returns the distinct non-empty submitters, sorted.
func Submitters(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	out := []string{}
	for _, r := range records {
		if r.Submitter == "" {
			continue
		}
		if _, ok := seen[r.Submitter]; ok {
			continue
		}
		seen[r.Submitter] = struct{}{}
		out = append(out, r.Submitter)
	}
	slices.Sort(out)
	return out
}
