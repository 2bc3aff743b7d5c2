package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"asynclint/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a default asynclint.toml",
	Long: `Initialize a project for asynclint by writing an asynclint.toml manifest
with the default event patterns and checks. If [path] is omitted, the current
directory is used. If a non-existing path is provided, the directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit writes the default manifest into the target directory. It refuses
// to overwrite an existing asynclint.toml.
func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, config.FileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(defaultManifest()), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized asynclint project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - %s\n", config.FileName)
	return nil
}

// defaultManifest returns the scaffold manifest with every setting spelled
// out at its default value.
func defaultManifest() string {
	return `# asynclint manifest

[events]
# Parameter names treated as event-like. '*' matches any run of characters.
patterns = ["event", "e", "ev", "*Event"]

[continuations]
# Callee property names whose callback arguments run as later continuations.
methods = ["then", "catch", "finally"]

[checks]
# Report bare references to event-like names past a boundary.
reference = true
# Properties that go stale once the handler has yielded.
properties = ["currentTarget"]
# One-shot methods that have no effect after the dispatch returns.
methods = ["preventDefault", "stopPropagation", "stopImmediatePropagation"]
# info | warning | error
severity = "warning"
`
}
