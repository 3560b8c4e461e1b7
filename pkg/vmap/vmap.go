package vmap

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrInvalidReleaseName is returned by [Graph.Add] when the release name
	// is empty. Every release must be named.
	ErrInvalidReleaseName = errors.New("release name must not be empty")

	// ErrDuplicateRelease is returned by [Graph.Add] when a release with the
	// same name already exists. Release names are unique within a graph.
	ErrDuplicateRelease = errors.New("duplicate release name")

	// ErrMultipleOpen is returned by [Graph.Add] when a second unreleased
	// release would be added. A graph holds at most one open release: the
	// single block that absorbs new symbols.
	ErrMultipleOpen = errors.New("only one release may be unreleased")
)

// Release is a named export scope: the set of symbols a library version
// makes visible. Once a release has shipped it is marked released and its
// symbol set is frozen; only the single open (unreleased) release of a
// graph may gain or lose symbols.
type Release struct {
	Name     string // unique within the graph, e.g. "LIBFOO_1_2_0"
	Parent   string // name of the preceding release, or "" for the base
	Released bool   // frozen once true

	symbols []string        // as first recorded, no duplicates
	index   map[string]bool // membership lookup
}

// NewRelease creates an open (unreleased) release and records the given
// symbols, collapsing duplicates.
func NewRelease(name string, symbols ...string) *Release {
	r := &Release{Name: name, index: make(map[string]bool)}
	for _, s := range symbols {
		r.AddSymbol(s)
	}
	return r
}

// AddSymbol records a symbol in the release. It reports whether the symbol
// was new; adding a symbol twice is a no-op. AddSymbol does not check the
// Released flag: immutability of released sets is update policy, enforced
// before any mutation is attempted.
func (r *Release) AddSymbol(name string) bool {
	if r.index == nil {
		r.index = make(map[string]bool)
	}
	if r.index[name] {
		return false
	}
	r.index[name] = true
	r.symbols = append(r.symbols, name)
	return true
}

// RemoveSymbol deletes a symbol from the release and reports whether it was
// present.
func (r *Release) RemoveSymbol(name string) bool {
	if !r.index[name] {
		return false
	}
	delete(r.index, name)
	i := slices.Index(r.symbols, name)
	r.symbols = slices.Delete(r.symbols, i, i+1)
	return true
}

// HasSymbol reports whether the release records the symbol.
func (r *Release) HasSymbol(name string) bool { return r.index[name] }

// Symbols returns a copy of the recorded symbols in the order they were
// first recorded. Serialization does not depend on this order; [Format]
// sorts symbols lexicographically.
func (r *Release) Symbols() []string { return slices.Clone(r.symbols) }

// SymbolCount returns the number of recorded symbols.
func (r *Release) SymbolCount() int { return len(r.symbols) }

// equal reports content equality: same name, state, parent and symbol set,
// regardless of recording order.
func (r *Release) equal(o *Release) bool {
	if r.Name != o.Name || r.Parent != o.Parent || r.Released != o.Released {
		return false
	}
	if len(r.symbols) != len(o.symbols) {
		return false
	}
	for s := range r.index {
		if !o.index[s] {
			return false
		}
	}
	return true
}

// Graph is an ordered sequence of releases, earliest first. File order is
// chronological order: the open release, when present, sits at the tail.
//
// The zero value is not usable; use [NewGraph]. A Graph is owned by a single
// invocation and is not safe for concurrent use.
type Graph struct {
	releases []*Release
	byName   map[string]*Release
}

// NewGraph creates an empty release graph.
func NewGraph() *Graph {
	return &Graph{byName: make(map[string]*Release)}
}

// Add appends a release to the graph. It returns [ErrInvalidReleaseName]
// for an unnamed release, [ErrDuplicateRelease] when the name is taken, and
// [ErrMultipleOpen] when the release is unreleased but the graph already
// has an open release.
func (g *Graph) Add(r *Release) error {
	if r.Name == "" {
		return ErrInvalidReleaseName
	}
	if _, exists := g.byName[r.Name]; exists {
		return ErrDuplicateRelease
	}
	if !r.Released && g.Open() != nil {
		return ErrMultipleOpen
	}
	if r.index == nil {
		r.index = make(map[string]bool)
	}
	g.byName[r.Name] = r
	g.releases = append(g.releases, r)
	return nil
}

// Release looks up a release by name.
func (g *Graph) Release(name string) (*Release, bool) {
	r, ok := g.byName[name]
	return r, ok
}

// Releases returns the releases in graph (file) order. The slice is a copy;
// the releases themselves are shared.
func (g *Graph) Releases() []*Release { return slices.Clone(g.releases) }

// Len returns the number of releases in the graph.
func (g *Graph) Len() int { return len(g.releases) }

// Open returns the single unreleased release, or nil when every release is
// frozen.
func (g *Graph) Open() *Release {
	for _, r := range g.releases {
		if !r.Released {
			return r
		}
	}
	return nil
}

// EnsureOpen returns the graph's open release, appending one first if every
// existing release is frozen. The new release is named by bumping the tail
// release's version (see [NextName]); when no version can be derived the
// name falls back to the upper-cased prefix plus "_1_0_0", then to
// "UNRELEASED" for an empty graph. A name collision keeps bumping until the
// name is free. The new release lists the previous tail as its parent.
//
// EnsureOpen is idempotent. It runs after parsing rather than inside
// [Parse] so that parsing a fully released map and re-serializing it stays
// an identity.
func (g *Graph) EnsureOpen(prefix string) *Release {
	if r := g.Open(); r != nil {
		return r
	}

	var name, parent string
	if n := len(g.releases); n > 0 {
		parent = g.releases[n-1].Name
		if next, ok := NextName(parent); ok {
			name = next
		}
	}
	if name == "" {
		switch {
		case prefix != "":
			name = strings.ToUpper(prefix) + "_1_0_0"
		case parent != "":
			name = parent + "_1_0_0"
		default:
			name = "UNRELEASED"
		}
	}
	for g.byName[name] != nil {
		next, ok := NextName(name)
		if !ok {
			next = name + "_1_0_0"
		}
		name = next
	}

	r := NewRelease(name)
	r.Parent = parent
	_ = g.Add(r)
	return r
}

// Equal reports content equality of two graphs: same releases in the same
// order, each equal in name, state, parent and symbol set. Symbol recording
// order is ignored, matching the round-trip guarantee of [Parse] and
// [Format].
func (g *Graph) Equal(o *Graph) bool {
	if len(g.releases) != len(o.releases) {
		return false
	}
	for i, r := range g.releases {
		if !r.equal(o.releases[i]) {
			return false
		}
	}
	return true
}
