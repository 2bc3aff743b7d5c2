package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"asynclint/internal/diag"
	"asynclint/internal/rules"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const staleUseSrc = `async function handle(event) {
  await save();
  send(event);
}
`

const cleanSrc = `function handle(event) {
  send(event);
}
`

func TestListScriptFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "")
	writeFile(t, dir, "b.mjs", "")
	writeFile(t, dir, "sub/c.jsx", "")
	writeFile(t, dir, "readme.md", "")
	writeFile(t, dir, "node_modules/dep/index.js", "")
	writeFile(t, dir, ".hidden/d.js", "")

	files, err := ListScriptFiles(dir)
	if err != nil {
		t.Fatalf("ListScriptFiles: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("files = %v, want 3 entries", files)
	}
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f)
		switch rel {
		case "a.js", "b.mjs", filepath.Join("sub", "c.jsx"):
		default:
			t.Errorf("unexpected file %s", rel)
		}
	}
}

func TestExpandTargetsMixed(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.js", "")
	writeFile(t, dir, "sub/b.js", "")

	files, err := ExpandTargets([]string{a, dir})
	if err != nil {
		t.Fatalf("ExpandTargets: %v", err)
	}
	// a.js comes once even though it is named both explicitly and via dir
	if len(files) != 2 {
		t.Fatalf("files = %v, want 2 entries", files)
	}
}

func TestCheckFilesReportsEscapes(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.js", staleUseSrc)
	good := writeFile(t, dir, "good.js", cleanSrc)

	fileSet, results, err := CheckFiles(context.Background(), dir, []string{bad, good}, Options{
		Rules: rules.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	if fileSet.Len() != 2 {
		t.Fatalf("fileSet.Len() = %d", fileSet.Len())
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if got := results[0].Bag.Len(); got != 1 {
		t.Errorf("bad.js diagnostics = %d, want 1", got)
	}
	if got := results[1].Bag.Len(); got != 0 {
		t.Errorf("good.js diagnostics = %d, want 0", got)
	}
}

func TestCheckFilesMissingFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "gone.js")

	_, results, err := CheckFiles(context.Background(), dir, []string{missing}, Options{
		Rules: rules.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	if len(results) != 1 || results[0].Bag.Len() != 1 {
		t.Fatalf("expected one IO diagnostic, got %+v", results)
	}
	if code := results[0].Bag.Items()[0].Code; code != diag.IOLoadFileError {
		t.Errorf("code = %s, want %s", code.ID(), diag.IOLoadFileError.ID())
	}
}

func TestCheckFilesParseErrorIsDiagnostic(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.js", "function ( {\n")

	_, results, err := CheckFiles(context.Background(), dir, []string{broken}, Options{
		Rules: rules.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	if results[0].Bag.Len() == 0 {
		t.Fatal("expected parse diagnostics")
	}
	for _, d := range results[0].Bag.Items() {
		if d.Code.ID()[:3] != "PAR" {
			t.Errorf("unexpected code %s", d.Code.ID())
		}
	}
}

func TestCheckFilesCacheRoundtrip(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.js", staleUseSrc)

	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	opts := Options{Rules: rules.DefaultOptions(), Cache: cache}

	_, first, err := CheckFiles(context.Background(), dir, []string{bad}, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first[0].FromCache {
		t.Fatal("first run must not hit the cache")
	}

	_, second, err := CheckFiles(context.Background(), dir, []string{bad}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second[0].FromCache {
		t.Fatal("second run should hit the cache")
	}
	if first[0].Bag.Len() != second[0].Bag.Len() {
		t.Fatalf("cached diagnostics differ: %d vs %d", first[0].Bag.Len(), second[0].Bag.Len())
	}
	a, b := first[0].Bag.Items()[0], second[0].Bag.Items()[0]
	if a.Code != b.Code || a.Message != b.Message || a.Primary.Start != b.Primary.Start || a.Primary.End != b.Primary.End {
		t.Errorf("cached diagnostic mismatch:\n%+v\n%+v", a, b)
	}
	if len(a.Notes) != len(b.Notes) {
		t.Errorf("notes not preserved: %d vs %d", len(a.Notes), len(b.Notes))
	}
}

func TestCacheKeyChangesWithOptions(t *testing.T) {
	var hash [32]byte
	hash[0] = 0xAB

	base := CacheKey(hash, rules.DefaultOptions())

	custom := rules.DefaultOptions()
	custom.Patterns = []string{"msg"}
	if CacheKey(hash, custom) == base {
		t.Error("pattern change must change the key")
	}

	noRef := rules.DefaultOptions()
	noRef.Reference = false
	if CacheKey(hash, noRef) == base {
		t.Error("check toggle must change the key")
	}

	var other [32]byte
	other[0] = 0xCD
	if CacheKey(other, rules.DefaultOptions()) == base {
		t.Error("content change must change the key")
	}
}

func TestCheckFilesTimings(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.js", staleUseSrc)

	_, results, err := CheckFiles(context.Background(), dir, []string{bad}, Options{
		Rules:       rules.DefaultOptions(),
		WithTimings: true,
	})
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	timing := results[0].Timing
	if timing == nil || len(timing.Phases) != 2 {
		t.Fatalf("timing = %+v, want parse and analyze phases", timing)
	}
	if timing.Phases[0].Name != "parse" || timing.Phases[1].Name != "analyze" {
		t.Errorf("phase names = %v", timing.Phases)
	}
}

func TestMergeResultsSorts(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.js", staleUseSrc)
	b := writeFile(t, dir, "b.js", staleUseSrc)

	_, results, err := CheckFiles(context.Background(), dir, []string{a, b}, Options{
		Rules: rules.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	merged := MergeResults(results, 16)
	if merged.Len() != 2 {
		t.Fatalf("merged = %d, want 2", merged.Len())
	}
	items := merged.Items()
	if items[0].Primary.File > items[1].Primary.File {
		t.Error("merged bag not sorted by file")
	}
}
