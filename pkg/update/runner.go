package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/symtools/symver/pkg/vmap"
)

// Runner executes update runs. It holds no state between runs; the logger
// receives parser diagnostics and the writer's warnings.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to [log.Default].
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run executes one update. Policy violations surface as errors wrapping
// [ErrUnknownRelease], [ErrReleaseImmutable] or [ErrABIBreak]; in every
// error case the map on disk is untouched. A no-op run returns an empty
// [Result.Notices] and writes nothing.
func (r *Runner) Run(req Request) (*Result, error) {
	g, err := vmap.ParseFile(req.MapPath, vmap.Options{Logf: r.Logger.Warnf})
	if err != nil {
		return nil, err
	}
	g.EnsureOpen(req.Library)

	target, err := resolveTarget(g, req.Release)
	if err != nil {
		return nil, err
	}

	diff := target.Diff(req.Observed)
	r.Logger.Debug("diffed release",
		"release", target.Name,
		"added", len(diff.Added),
		"removed", len(diff.Removed),
		"unchanged", len(diff.Unchanged))

	notices, err := r.apply(target, diff, req)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Target:  target.Name,
		Diff:    diff,
		Notices: notices,
		Graph:   g,
	}
	if len(notices) == 0 {
		return res, nil
	}
	if req.DryRun {
		r.Logger.Info("Dry run: no files were modified.")
		return res, nil
	}
	if err := r.write(g, req, res); err != nil {
		return nil, err
	}
	return res, nil
}

// resolveTarget picks the release the diff applies to. With no explicit
// name the open release is the target; EnsureOpen has already guaranteed
// one exists.
func resolveTarget(g *vmap.Graph, name string) (*vmap.Release, error) {
	if name == "" {
		return g.Open(), nil
	}
	r, ok := g.Release(name)
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownRelease, name)
	}
	return r, nil
}

// apply enforces update policy and mutates the target. All checks run
// before the first mutation so a rejected run leaves the graph as parsed.
func (r *Runner) apply(target *vmap.Release, diff vmap.Diff, req Request) ([]Notice, error) {
	if target.Released {
		if !diff.Empty() {
			return nil, ErrReleaseImmutable
		}
		// Finalizing an already released release is a no-op.
		return nil, nil
	}
	if len(diff.Removed) > 0 && !req.AllowBreak {
		return nil, fmt.Errorf("%w: %s", ErrABIBreak, strings.Join(diff.Removed, ", "))
	}

	var notices []Notice
	for _, s := range diff.Added {
		target.AddSymbol(s)
		notices = append(notices, Notice{Kind: NoticeAdded, Name: s})
	}
	if len(diff.Removed) > 0 {
		r.Logger.Warn("ABI break detected: symbols were removed.")
		for _, s := range diff.Removed {
			target.RemoveSymbol(s)
			notices = append(notices, Notice{Kind: NoticeRemoved, Name: s})
		}
	}
	if req.Finalize {
		target.Released = true
		notices = append(notices, Notice{Kind: NoticeFinalized, Name: target.Name})
	}
	return notices, nil
}
