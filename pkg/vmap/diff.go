package vmap

import "slices"

// Diff is the outcome of comparing an observed symbol list against the
// symbols a release records. Each slice is sorted lexicographically.
type Diff struct {
	Added     []string // observed but not recorded
	Removed   []string // recorded but not observed
	Unchanged []string // present on both sides
}

// Empty reports whether the diff calls for no change.
func (d Diff) Empty() bool { return len(d.Added) == 0 && len(d.Removed) == 0 }

// Diff compares observed symbols against the release's recorded set.
// Duplicates in observed collapse before comparison. The receiver is not
// modified; applying the result is update policy, not bookkeeping.
func (r *Release) Diff(observed []string) Diff {
	seen := make(map[string]bool, len(observed))
	var d Diff
	for _, s := range observed {
		if seen[s] {
			continue
		}
		seen[s] = true
		if r.HasSymbol(s) {
			d.Unchanged = append(d.Unchanged, s)
		} else {
			d.Added = append(d.Added, s)
		}
	}
	for _, s := range r.symbols {
		if !seen[s] {
			d.Removed = append(d.Removed, s)
		}
	}
	slices.Sort(d.Added)
	slices.Sort(d.Removed)
	slices.Sort(d.Unchanged)
	return d
}
