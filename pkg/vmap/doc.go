// Package vmap models linker version maps as release graphs.
//
// # Overview
//
// A version map records, per library release, the set of symbols that
// release exports. Symver reads the map into a [Graph] of [Release]
// values, reconciles it against the symbols observed in a built artifact,
// and writes the map back out in a canonical form.
//
// # Map Format
//
// A map is a sequence of release blocks:
//
//	LIBFOO_1_0_0 {
//	    foo_init;
//	    foo_free;
//	};
//
//	LIBFOO_1_1_0 unreleased {
//	    foo_reset;
//	} LIBFOO_1_0_0;
//
// Each block names a release, lists its symbols, and optionally names its
// parent release after the closing brace. "#" starts a comment running to
// end of line. The unreleased keyword marks the single block whose symbol
// set may still change; blocks without it are frozen.
//
// # Parsing and Serialization
//
// [Parse] and [ParseFile] build a [Graph] from map source, reporting syntax
// errors as [ParseError] values with line and column. [Format] serializes a
// graph back to canonical source: releases in graph order, symbols sorted,
// four-space indent. The two are inverse up to formatting:
//
//	g, _ := vmap.Parse("libfoo.map", src, vmap.Options{})
//	g2, _ := vmap.Parse("libfoo.map", vmap.Format(g), vmap.Options{})
//	// g.Equal(g2) == true
//
// # Diffing
//
// [Release.Diff] compares a release's recorded symbols against an observed
// list and classifies every symbol as added, removed or unchanged. The diff
// is a report; applying it is the update package's job.
//
// # The Open Release
//
// A graph holds at most one unreleased release. [Graph.EnsureOpen] returns
// it, creating one past the graph's tail when every block is frozen; the
// new name is derived by bumping the tail's minor version ([NextName]).
package vmap
