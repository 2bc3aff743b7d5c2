package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Find walks up from startDir to locate asynclint.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest manifest above startDir. When none exists the
// built-in defaults are returned with ok=false.
func Discover(startDir string) (Config, []Problem, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Config{}, nil, false, err
	}
	cfg, problems, err := Load(path)
	if err != nil {
		return Config{}, nil, true, err
	}
	return cfg, problems, true, nil
}
