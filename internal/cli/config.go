package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configFile is the per-project configuration file name. It is looked up
// next to the map file first, then in the working directory; the first one
// found wins. Flags always override file values.
const configFile = "symver.toml"

// config holds the optional per-project settings.
type config struct {
	// Library is the name prefix for releases created from scratch, e.g.
	// "libfoo" yields LIBFOO_1_0_0 when the map has no versioned tail.
	Library string `toml:"library"`

	// Verbose enables debug logging without passing --verbose.
	Verbose bool `toml:"verbose"`
}

// loadConfig reads the nearest symver.toml for the given map path. A
// missing file yields the zero config; a present but malformed file is an
// error.
func loadConfig(mapPath string) (config, error) {
	var cfg config

	mapDir := filepath.Dir(mapPath)
	dirs := []string{mapDir}
	if cwd, err := os.Getwd(); err == nil {
		if abs, err := filepath.Abs(mapDir); err != nil || abs != cwd {
			dirs = append(dirs, cwd)
		}
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, configFile)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		return cfg, nil
	}
	return cfg, nil
}
