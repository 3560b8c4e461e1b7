// Package update reconciles a version map against the symbols observed in
// a built artifact.
//
// # Overview
//
// An update run moves through fixed stages:
//
//  1. Parse the map into a release graph
//  2. Ensure the graph has an open release
//  3. Resolve the target release
//  4. Diff the target against the observed symbols
//  5. Apply update policy (immutability, ABI breaks, finalize)
//  6. Serialize and write, rotating a backup when overwriting in place
//
// Released releases are immutable: a run whose diff touches one aborts
// before any file is modified. Removing symbols from the open release is an
// ABI break and needs explicit consent.
//
// # Usage
//
//	runner := update.NewRunner(logger)
//	res, err := runner.Run(update.Request{
//	    MapPath:  "libfoo.map",
//	    Observed: observed,
//	    Finalize: true,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, n := range res.Notices {
//	    fmt.Println(n)
//	}
//
// A [Result] with no notices means the map already matched; nothing was
// written and no backup was made.
package update

import (
	"errors"

	"github.com/symtools/symver/pkg/vmap"
)

var (
	// ErrUnknownRelease is returned by [Runner.Run] when the requested
	// release names no block in the map.
	ErrUnknownRelease = errors.New("unknown release")

	// ErrReleaseImmutable is returned by [Runner.Run] when the diff would
	// change a released release. The message is the abort line operators
	// see; scripts match on it.
	ErrReleaseImmutable = errors.New("Released releases cannot be modified. Abort.")

	// ErrABIBreak is returned by [Runner.Run] when symbols would be removed
	// from the open release without [Request.AllowBreak].
	ErrABIBreak = errors.New("ABI break detected: symbols would be removed")
)

// Request describes one update run.
type Request struct {
	// MapPath is the version map to update.
	MapPath string

	// Observed is the symbol list of the built artifact, as returned by
	// the symbols package.
	Observed []string

	// Release names the target release. Empty targets the open release,
	// creating one when every block in the map is frozen.
	Release string

	// Library is the name prefix used when a fresh open release cannot
	// derive its name from the map's tail release.
	Library string

	// Finalize marks the target release as released after applying the
	// diff.
	Finalize bool

	// AllowBreak consents to removing symbols from the open release.
	AllowBreak bool

	// Out is the destination path. Empty updates MapPath in place.
	Out string

	// DryRun applies policy but skips the write stage.
	DryRun bool
}

// Result reports what an update run did.
type Result struct {
	// Target is the name of the release the diff was applied to.
	Target string

	// Diff classifies every observed and recorded symbol.
	Diff vmap.Diff

	// Notices lists the changes in report order: additions, removals,
	// then finalization. Empty means the run was a no-op.
	Notices []Notice

	// Graph is the updated release graph.
	Graph *vmap.Graph

	// Written reports whether a file was modified. False for no-ops and
	// dry runs.
	Written bool

	// Path is the file that was written, when Written is true.
	Path string

	// Backup is the rotated copy of the previous map, when one was made.
	Backup string
}

// NoticeKind classifies a change report line.
type NoticeKind int

const (
	// NoticeAdded reports a symbol recorded in the target release.
	NoticeAdded NoticeKind = iota
	// NoticeRemoved reports a symbol dropped from the target release.
	NoticeRemoved
	// NoticeFinalized reports the target release being frozen.
	NoticeFinalized
)

// Notice is one line of the change report.
type Notice struct {
	Kind NoticeKind
	Name string // symbol name, or release name for NoticeFinalized
}

func (n Notice) String() string {
	switch n.Kind {
	case NoticeAdded:
		return "Added: " + n.Name
	case NoticeRemoved:
		return "Removed: " + n.Name
	case NoticeFinalized:
		return "Finalized: " + n.Name
	default:
		return n.Name
	}
}
