package config

import (
	"os"
	"path/filepath"
	"testing"

	"asynclint/internal/diag"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadFullManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[events]
patterns = ["event", "*Evt"]

[continuations]
methods = ["then", "after"]

[checks]
reference = false
properties = ["currentTarget", "target"]
methods = ["preventDefault"]
severity = "error"
`)
	cfg, problems, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}

	opts := cfg.Options()
	if got := opts.Patterns; len(got) != 2 || got[1] != "*Evt" {
		t.Errorf("Patterns = %v", got)
	}
	if got := opts.ContinuationMethods; len(got) != 2 || got[1] != "after" {
		t.Errorf("ContinuationMethods = %v", got)
	}
	if opts.Reference {
		t.Error("Reference should be disabled")
	}
	if len(opts.Properties) != 2 || len(opts.Methods) != 1 {
		t.Errorf("Properties = %v, Methods = %v", opts.Properties, opts.Methods)
	}
	if opts.Severity != diag.SevError {
		t.Errorf("Severity = %v, want error", opts.Severity)
	}
}

func TestLoadEmptyManifestKeepsDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "")
	cfg, problems, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	opts := cfg.Options()
	if !opts.Reference || opts.Severity != diag.SevWarning {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if opts.Patterns != nil {
		t.Errorf("Patterns should stay nil for engine defaults, got %v", opts.Patterns)
	}
}

func TestLoadUnknownSetting(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[checks]
referense = true
`)
	_, problems, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(problems) != 1 || problems[0].Code != diag.CfgUnknownSetting {
		t.Fatalf("problems = %v, want one CfgUnknownSetting", problems)
	}
}

func TestLoadBadPattern(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[events]
patterns = ["event", "", "bad name"]
`)
	cfg, problems, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(problems) != 2 {
		t.Fatalf("problems = %v, want two CfgBadPattern", problems)
	}
	for _, p := range problems {
		if p.Code != diag.CfgBadPattern {
			t.Errorf("code = %s, want %s", p.Code.ID(), diag.CfgBadPattern.ID())
		}
	}
	if got := cfg.Events.Patterns; len(got) != 1 || got[0] != "event" {
		t.Errorf("surviving patterns = %v", got)
	}
}

func TestLoadBadSeverityFatal(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[checks]
severity = "fatal"
`)
	if _, _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown severity")
	}
}

func TestLoadSyntaxErrorFatal(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[events\n")
	if _, _, err := Load(path); err == nil {
		t.Fatal("expected error for TOML syntax error")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[events]\npatterns = [\"msg\"]\n")
	nested := filepath.Join(root, "src", "handlers")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %s, want file under %s", path, root)
	}

	cfg, _, found, err := Discover(nested)
	if err != nil || !found {
		t.Fatalf("Discover: ok=%v err=%v", found, err)
	}
	if len(cfg.Events.Patterns) != 1 || cfg.Events.Patterns[0] != "msg" {
		t.Errorf("Patterns = %v", cfg.Events.Patterns)
	}
}

func TestFindMissing(t *testing.T) {
	_, ok, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if ok {
		t.Error("unexpected manifest found in empty temp dir")
	}
}
