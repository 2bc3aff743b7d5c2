package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"asynclint/internal/diag"
	"asynclint/internal/source"
)

func testInput(t *testing.T) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	src := "async function handle(event) {\n  await save();\n  send(event);\n}\n"
	id := fs.AddVirtual("handlers.js", []byte(src))

	useStart := uint32(strings.Index(src, "send(event)") + len("send("))
	awaitStart := uint32(strings.Index(src, "await save()"))

	bag := diag.NewBag(8)
	d := diag.New(
		diag.SevWarning,
		diag.EvtStaleReference,
		source.Span{File: id, Start: useStart, End: useStart + 5},
		"'event' is used after 'await'; the event it refers to is no longer being dispatched",
	)
	d = d.WithNote(
		source.Span{File: id, Start: awaitStart, End: awaitStart + 12},
		"the enclosing function suspends here",
	)
	bag.Add(d)
	return fs, bag
}

func TestPrettyGolden(t *testing.T) {
	fs, bag := testInput(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})

	want := `handlers.js:3:8: WARNING EVT2001: 'event' is used after 'await'; the event it refers to is no longer being dispatched
      send(event);
           ^~~~~
  handlers.js:2:3: note: the enclosing function suspends here
      await save();
      ^~~~~~~~~~~~
`
	if got := buf.String(); got != want {
		t.Errorf("pretty output mismatch:\n--- got ---\n%s--- want ---\n%s", got, want)
	}
}

func TestPrettyWithoutNotes(t *testing.T) {
	fs, bag := testInput(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	out := buf.String()
	if strings.Contains(out, "note:") {
		t.Errorf("notes should be hidden:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~") {
		t.Errorf("missing underline:\n%s", out)
	}
}

func TestPrettyUnlocated(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: open x.js: no such file"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})

	want := "ERROR IO4001: failed to load file: open x.js: no such file\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrettyColorEscapes(t *testing.T) {
	fs, bag := testInput(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Error("expected ANSI escapes with Color enabled")
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{Color: false})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("unexpected ANSI escapes with Color disabled")
	}
}

func TestJSONOutput(t *testing.T) {
	fs, bag := testInput(t)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "EVT2001" || d.Severity != "WARNING" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if d.Location.File != "handlers.js" || d.Location.StartLine != 3 || d.Location.StartCol != 8 {
		t.Errorf("unexpected location %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartLine != 2 {
		t.Errorf("unexpected notes %+v", d.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs, bag := testInput(t)
	extra := diag.New(diag.SevWarning, diag.EvtStaleProperty, source.Span{File: 0, Start: 1, End: 2}, "second")
	bag.Add(extra)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 1 {
		t.Errorf("count = %d, want 1", out.Count)
	}
}

func TestSarifOutput(t *testing.T) {
	fs, bag := testInput(t)

	var buf bytes.Buffer
	err := Sarif(&buf, bag, fs, SarifRunMeta{
		ToolName:       "asynclint",
		ToolVersion:    "0.1.0",
		InvocationArgs: []string{"check", "."},
	})
	if err != nil {
		t.Fatalf("Sarif: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF JSON: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "asynclint" {
		t.Errorf("tool name = %q", run.Tool.Driver.Name)
	}
	if len(run.Results) != 1 {
		t.Fatalf("results = %d", len(run.Results))
	}
	res := run.Results[0]
	if res.RuleID != "EVT2001" || res.Level != "warning" {
		t.Errorf("unexpected result %+v", res)
	}
	if len(res.Locations) != 1 {
		t.Fatalf("locations = %d", len(res.Locations))
	}
	region := res.Locations[0].PhysicalLocation.Region
	if region.StartLine != 3 || region.StartColumn != 8 {
		t.Errorf("unexpected region %+v", region)
	}
	if len(run.Tool.Driver.Rules) != 1 || run.Tool.Driver.Rules[0].ID != "EVT2001" {
		t.Errorf("unexpected rules %+v", run.Tool.Driver.Rules)
	}
}
