package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var scriptExtensions = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
	".jsx": true,
}

// IsScriptPath reports whether path has a JavaScript extension.
func IsScriptPath(path string) bool {
	return scriptExtensions[strings.ToLower(filepath.Ext(path))]
}

// ListScriptFiles возвращает отсортированный список всех JS файлов в директории.
// node_modules and hidden directories are never descended into.
func ListScriptFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsScriptPath(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandTargets maps CLI arguments onto the concrete file list: directories
// are walked, explicit files are taken as-is regardless of extension.
func ExpandTargets(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := ListScriptFiles(target)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		files = append(files, target)
	}
	sort.Strings(files)
	return dedupPaths(files), nil
}

func dedupPaths(paths []string) []string {
	out := paths[:0]
	var prev string
	for i, p := range paths {
		if i > 0 && p == prev {
			continue
		}
		out = append(out, p)
		prev = p
	}
	return out
}
