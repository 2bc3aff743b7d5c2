package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"asynclint/internal/diag"
	"asynclint/internal/rules"
	"asynclint/internal/source"
)

// FileName is the manifest file looked up from the analyzed directory
// towards the filesystem root.
const FileName = "asynclint.toml"

// Config mirrors the TOML manifest. Absent sections fall back to built-in
// defaults, so the zero value is a valid configuration.
type Config struct {
	Events        EventsConfig        `toml:"events"`
	Continuations ContinuationsConfig `toml:"continuations"`
	Checks        ChecksConfig        `toml:"checks"`
}

type EventsConfig struct {
	// Patterns are event parameter name patterns, exact or '*' globs.
	Patterns []string `toml:"patterns"`
}

type ContinuationsConfig struct {
	// Methods are callee property names that register deferred callbacks.
	Methods []string `toml:"methods"`
}

type ChecksConfig struct {
	Reference  *bool    `toml:"reference"`
	Properties []string `toml:"properties"`
	Methods    []string `toml:"methods"`
	Severity   string   `toml:"severity"`
}

// Problem is a non-fatal validation finding. The offending value is skipped
// and analysis proceeds with the rest of the manifest.
type Problem struct {
	Code    diag.Code
	Message string
}

func (p Problem) Diagnostic() diag.Diagnostic {
	return diag.New(diag.SevWarning, p.Code, source.Span{}, p.Message)
}

// Load parses and validates a manifest. A TOML syntax error or an unknown
// severity is fatal; bad patterns and unknown keys are reported as
// problems and ignored.
func Load(path string) (Config, []Problem, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	problems := validate(&cfg, meta, path)
	if sev := strings.TrimSpace(cfg.Checks.Severity); sev != "" {
		if _, ok := parseSeverity(sev); !ok {
			return Config{}, nil, fmt.Errorf("%s: [checks].severity must be info, warning or error, got %q", path, sev)
		}
	}
	return cfg, problems, nil
}

func validate(cfg *Config, meta toml.MetaData, path string) []Problem {
	var problems []Problem
	for _, key := range meta.Undecoded() {
		problems = append(problems, Problem{
			Code:    diag.CfgUnknownSetting,
			Message: fmt.Sprintf("%s: unknown setting %q", path, key.String()),
		})
	}
	cfg.Events.Patterns = dropBadNames(cfg.Events.Patterns, "events", "patterns", path, &problems)
	cfg.Continuations.Methods = dropBadNames(cfg.Continuations.Methods, "continuations", "methods", path, &problems)
	cfg.Checks.Properties = dropBadNames(cfg.Checks.Properties, "checks", "properties", path, &problems)
	cfg.Checks.Methods = dropBadNames(cfg.Checks.Methods, "checks", "methods", path, &problems)
	return problems
}

// dropBadNames removes empty and whitespace-containing entries so a typo in
// one pattern never silences the whole list.
func dropBadNames(values []string, section, key, path string, problems *[]Problem) []string {
	out := values[:0]
	for _, v := range values {
		if v == "" || strings.ContainsAny(v, " \t") {
			*problems = append(*problems, Problem{
				Code:    diag.CfgBadPattern,
				Message: fmt.Sprintf("%s: [%s].%s entry %q is not a valid name pattern", path, section, key, v),
			})
			continue
		}
		out = append(out, v)
	}
	return out
}

// Options merges the manifest over the built-in defaults.
func (c Config) Options() rules.Options {
	opts := rules.DefaultOptions()
	if len(c.Events.Patterns) > 0 {
		opts.Patterns = c.Events.Patterns
	}
	if len(c.Continuations.Methods) > 0 {
		opts.ContinuationMethods = c.Continuations.Methods
	}
	if c.Checks.Reference != nil {
		opts.Reference = *c.Checks.Reference
	}
	if c.Checks.Properties != nil {
		opts.Properties = c.Checks.Properties
	}
	if c.Checks.Methods != nil {
		opts.Methods = c.Checks.Methods
	}
	if sev, ok := parseSeverity(strings.TrimSpace(c.Checks.Severity)); ok {
		opts.Severity = sev
	}
	return opts
}

func parseSeverity(s string) (diag.Severity, bool) {
	switch strings.ToLower(s) {
	case "info":
		return diag.SevInfo, true
	case "warning":
		return diag.SevWarning, true
	case "error":
		return diag.SevError, true
	}
	return 0, false
}
