// Package pkg provides the core libraries for symver version map maintenance.
//
// # Overview
//
// Symver keeps linker version maps in sync with the symbols a library
// actually exports. The pkg directory is organized into four areas:
//
//  1. [vmap] - Version map model (parse, graph, diff, canonical format)
//  2. [symbols] - Observed symbol list reading (files or stdin)
//  3. [update] - The update pipeline (diff, policy, safe write)
//  4. [buildinfo] - Build metadata injected at release time
//
// # Architecture
//
// The typical data flow through symver:
//
//	map file + observed symbols
//	         ↓
//	    [vmap] package (parse into a release graph)
//	         ↓
//	    [update] package (diff against the target, apply policy)
//	         ↓
//	    [vmap] package (canonical serialization)
//	         ↓
//	    map file (previous version rotated to .old)
//
// # Quick Start
//
// Parse a map, diff a release, and write the result:
//
//	import (
//	    "os"
//	    "github.com/symtools/symver/pkg/symbols"
//	    "github.com/symtools/symver/pkg/update"
//	)
//
//	// 1. Read the observed symbol list
//	observed, _ := symbols.ReadFile("symbols.txt")
//
//	// 2. Run the update pipeline
//	runner := update.NewRunner(nil)
//	res, _ := runner.Run(update.Request{
//	    MapPath:  "libdemo.map",
//	    Observed: observed,
//	})
//
//	// 3. Report what changed
//	for _, n := range res.Notices {
//	    os.Stdout.WriteString(n.String() + "\n")
//	}
//
// # Main Packages
//
// [vmap] - The version map model. A map file is a sequence of release
// blocks, each holding a symbol set and an optional parent reference.
// The package parses map files into a [vmap.Graph], diffs a release
// against an observed symbol list, and serializes graphs back into the
// canonical layout. Serialization is deterministic: parsing the output
// of Format and formatting it again reproduces the same bytes.
//
// [symbols] - Reads observed symbol lists. Symbols are runs of word
// characters; everything else separates them, so nm output, one-per-line
// files, and ad-hoc whitespace lists all work unmodified.
//
// [update] - The update pipeline used by the CLI. Resolves the target
// release, diffs it against the observed symbols, enforces the release
// policy (released blocks are immutable, removals need an explicit
// override), and writes the result with a .old backup when updating in
// place.
//
// [buildinfo] - Version, commit, and build date, overridable via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/vmap/...     # Specific package
//	go test -run Example       # Examples only
//
// [vmap]: https://pkg.go.dev/github.com/symtools/symver/pkg/vmap
// [symbols]: https://pkg.go.dev/github.com/symtools/symver/pkg/symbols
// [update]: https://pkg.go.dev/github.com/symtools/symver/pkg/update
// [buildinfo]: https://pkg.go.dev/github.com/symtools/symver/pkg/buildinfo
// [vmap.Graph]: https://pkg.go.dev/github.com/symtools/symver/pkg/vmap#Graph
package pkg
