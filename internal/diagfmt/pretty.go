package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"asynclint/internal/diag"
	"asynclint/internal/source"
)

// unlocated reports whether the span carries no usable position. Config and
// I/O diagnostics are emitted with a zero span.
func unlocated(span source.Span, fs *source.FileSet) bool {
	if int(span.File) >= fs.Len() {
		return true
	}
	return span.File == 0 && span.Start == 0 && span.End == 0
}

type palette struct {
	severity func(diag.Severity) string
	code     func(string) string
	caret    func(string) string
	note     func(string) string
}

func newPalette(enabled bool) palette {
	paint := func(attrs ...color.Attribute) func(string) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return func(s string) string { return c.Sprint(s) }
	}
	red := paint(color.FgRed, color.Bold)
	yellow := paint(color.FgYellow, color.Bold)
	cyan := paint(color.FgCyan)
	return palette{
		severity: func(sev diag.Severity) string {
			switch sev {
			case diag.SevError:
				return red(sev.String())
			case diag.SevWarning:
				return yellow(sev.String())
			default:
				return cyan(sev.String())
			}
		},
		code:  paint(color.Bold),
		caret: paint(color.FgGreen, color.Bold),
		note:  cyan,
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writePretty(w, d, fs, opts, pal)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	head := fmt.Sprintf("%s %s: %s", pal.severity(d.Severity), pal.code(d.Code.ID()), d.Message)
	if unlocated(d.Primary, fs) {
		fmt.Fprintln(w, head)
		return
	}

	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s\n", f.FormatPath(opts.PathMode.formatArg(), fs.BaseDir()), start.Line, start.Col, head)
	writeContext(w, f, d.Primary, start, opts, pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			writeNote(w, n, fs, opts, pal)
		}
	}
	if opts.ShowData && len(d.Data) > 0 {
		for _, key := range sortedKeys(d.Data) {
			fmt.Fprintf(w, "    %s = %s\n", key, d.Data[key])
		}
	}
}

func writeNote(w io.Writer, n diag.Note, fs *source.FileSet, opts PrettyOpts, pal palette) {
	label := pal.note("note")
	if unlocated(n.Span, fs) {
		fmt.Fprintf(w, "  %s: %s\n", label, n.Msg)
		return
	}
	f := fs.Get(n.Span.File)
	start, _ := fs.Resolve(n.Span)
	fmt.Fprintf(w, "  %s:%d:%d: %s: %s\n", f.FormatPath(opts.PathMode.formatArg(), fs.BaseDir()), start.Line, start.Col, label, n.Msg)
	writeContext(w, f, n.Span, start, opts, pal)
}

// writeContext prints the source line and a ^~~~ underline below the span.
// Multi-line spans are clamped to the first line.
func writeContext(w io.Writer, f *source.File, span source.Span, start source.LineCol, opts PrettyOpts, pal palette) {
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	if opts.Width > 0 && runewidth.StringWidth(line) > int(opts.Width) {
		line = runewidth.Truncate(line, int(opts.Width), "…")
	}
	fmt.Fprintf(w, "    %s\n", line)

	col := int(start.Col) - 1
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	prefix := line[:col]
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))

	spanLen := int(span.Len())
	if avail := len(line) - col; spanLen > avail {
		spanLen = avail
	}
	width := 1
	if spanLen > 0 {
		width = runewidth.StringWidth(line[col : col+spanLen])
	}
	if width < 1 {
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "    %s%s\n", pad, pal.caret(underline))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
