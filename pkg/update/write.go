package update

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/symtools/symver/pkg/vmap"
)

// backupSuffix is appended to the source map's name when it is about to be
// overwritten in place. An existing backup is replaced silently.
const backupSuffix = ".old"

// write serializes the graph to the destination path. Updating the source
// map in place first renames it to a backup; the rename happens before the
// destination is opened, so a failed run never leaves a truncated map as
// the only copy. Warnings are emitted before touching anything.
func (r *Runner) write(g *vmap.Graph, req Request, res *Result) error {
	dest := req.Out
	if dest == "" {
		dest = req.MapPath
	}
	inPlace := filepath.Clean(dest) == filepath.Clean(req.MapPath)

	if _, err := os.Stat(dest); err == nil {
		r.Logger.Warnf("Overwriting existing file '%s'", dest)
	}
	if inPlace {
		backup := dest + backupSuffix
		r.Logger.Warnf("Output path '%s' is the same as the input map.", dest)
		r.Logger.Warnf("Moving '%s' to '%s'.", dest, backup)
		if err := os.Rename(dest, backup); err != nil {
			return fmt.Errorf("back up map: %w", err)
		}
		res.Backup = backup
	}

	if err := os.WriteFile(dest, vmap.Format(g), 0644); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	res.Written = true
	res.Path = dest
	return nil
}
