package diag

import (
	"testing"

	"asynclint/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.js", []byte("a\nb\n"), 0)
	vendorFile := fs.Add("/workspace/node_modules/dep/index.js", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     EvtStaleReference,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: vendorFile, Start: 0, End: 0}, Msg: "skip me"},
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevError,
			Code:     ParSyntaxError,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
	}

	// При равной позиции сортировка идёт по строке severity: "error" < "note".
	expected := "warning EVT2001 testdata/golden/sample.js:1:1 first line second\n" +
		"error PAR1001 testdata/golden/sample.js:2:1 another\n" +
		"note EVT2001 testdata/golden/sample.js:2:1 note line"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortIncludesVendored(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	vendorFile := fs.Add("/workspace/node_modules/dep/index.js", []byte("x\n"), 0)

	diags := []Diagnostic{
		{Severity: SevWarning, Code: EvtStaleMethod, Message: "kept", Primary: source.Span{File: vendorFile, Start: 0, End: 1}},
	}

	if got := FormatGoldenDiagnostics(diags, fs, false); got != "" {
		t.Errorf("golden output should drop vendored paths, got %q", got)
	}
	if got := FormatShortDiagnostics(diags, fs, false); got == "" {
		t.Errorf("short output should keep vendored paths")
	}
}
