package main

import (
	"errors"
	"fmt"
	"io"

	"asynclint/internal/diag"
	"asynclint/internal/driver"
	"asynclint/internal/source"
)

// errCheckFailed signals a non-zero exit without extra error output; the
// diagnostics themselves are the message.
var errCheckFailed = errors.New("check found errors")

func noSpan() source.Span {
	return source.Span{}
}

// printTimings dumps per-file phase timings.
func printTimings(w io.Writer, results []driver.FileResult) {
	for _, r := range results {
		if r.Timing == nil {
			continue
		}
		fmt.Fprintf(w, "%s: total %.2f ms", r.Path, r.Timing.TotalMS)
		for _, phase := range r.Timing.Phases {
			fmt.Fprintf(w, "  %s %.2f ms", phase.Name, phase.DurationMS)
		}
		if r.FromCache {
			fmt.Fprint(w, "  (cached)")
		}
		fmt.Fprintln(w)
	}
}

// printSummary writes the closing problem count line.
func printSummary(w io.Writer, bag *diag.Bag, fileCount int) {
	var errorCount, warningCount int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errorCount++
		case diag.SevWarning:
			warningCount++
		}
	}
	if errorCount == 0 && warningCount == 0 {
		fmt.Fprintf(w, "%d files checked, no problems\n", fileCount)
		return
	}
	fmt.Fprintf(w, "%d files checked, %d problems (%d errors, %d warnings)\n",
		fileCount, errorCount+warningCount, errorCount, warningCount)
}
