package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"asynclint/internal/config"
	"asynclint/internal/diag"
	"asynclint/internal/diagfmt"
	"asynclint/internal/driver"
	"asynclint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.js|directory>...",
	Short: "Check JavaScript files for stale event uses",
	Long:  `Check analyzes JavaScript files or directories and reports event objects that are referenced after an await suspension or inside deferred promise callbacks`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

// init registers CLI flags for the check command used by runCheck.
func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("cache", false, "enable persistent disk cache for per-file results")
	checkCmd.Flags().String("config", "", "explicit path to asynclint.toml (default: walk up from the first target)")
	checkCmd.Flags().Bool("no-config", false, "ignore any asynclint.toml and use built-in defaults")
}

// runCheck executes the "check" command: it resolves the configuration,
// analyzes every target in parallel, formats the merged diagnostics in the
// chosen output format, and exits with a non-zero status when any
// diagnostics contain errors.
func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "sarif", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	cfg, problems, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	files, err := driver.ExpandTargets(args)
	if err != nil {
		return fmt.Errorf("failed to collect input files: %w", err)
	}

	opts := driver.Options{
		Rules:          cfg.Options(),
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		WithTimings:    showTimings,
	}
	if useCache {
		cache, err := driver.OpenDiskCache("asynclint")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}

	baseDir := targetBaseDir(args)
	fileSet, results, err := driver.CheckFiles(cmd.Context(), baseDir, files, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	merged := diag.NewBag(maxDiagnostics)
	for _, p := range problems {
		merged.Add(p.Diagnostic())
	}
	if len(files) == 0 {
		merged.Add(diag.New(diag.SevWarning, diag.IONoInputFiles, noSpan(), "no JavaScript files found in the given targets"))
	}
	merged.Merge(driver.MergeResults(results, maxDiagnostics))
	merged.Sort()

	if noWarnings {
		merged.DropBelow(diag.SevError)
	}
	if warningsAsErrors {
		merged.Promote(diag.SevWarning, diag.SevError)
	}

	useColor, err := useColorOutput(cmd)
	if err != nil {
		return err
	}
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, merged, fileSet, diagfmt.PrettyOpts{
			Color:     useColor,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
	case "short":
		output := diag.FormatShortDiagnostics(merged.Items(), fileSet, withNotes)
		if output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "json":
		err := diagfmt.JSON(os.Stdout, merged, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeData:      true,
		})
		if err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		err := diagfmt.Sarif(os.Stdout, merged, fileSet, diagfmt.SarifRunMeta{
			ToolName:       "asynclint",
			ToolVersion:    version.Plain(),
			InvocationArgs: os.Args[1:],
		})
		if err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if showTimings {
		printTimings(os.Stderr, results)
	}
	if !quiet && format == "pretty" {
		printSummary(os.Stderr, merged, len(files))
	}

	if merged.HasErrors() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errCheckFailed
	}
	return nil
}

// resolveConfig picks the manifest per flags: explicit path, discovery from
// the first target, or none.
func resolveConfig(cmd *cobra.Command, args []string) (config.Config, []config.Problem, error) {
	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to get no-config flag: %w", err)
	}
	if noConfig {
		return config.Config{}, nil, nil
	}

	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		cfg, problems, err := config.Load(explicit)
		return cfg, problems, err
	}

	cfg, problems, _, err := config.Discover(targetBaseDir(args))
	return cfg, problems, err
}

// targetBaseDir is the directory paths are shown relative to.
func targetBaseDir(args []string) string {
	if len(args) == 0 {
		return "."
	}
	first := args[0]
	if st, err := os.Stat(first); err == nil && st.IsDir() {
		return first
	}
	return filepath.Dir(first)
}
