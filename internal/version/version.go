package version

import "github.com/fatih/color"

// Version information for the asynclint CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("1") + "." + versionPatchColor.Sprint("0") + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Plain returns the version string without ANSI escapes, suitable for SARIF
// output and --version piped to files.
func Plain() string {
	return stripEscapes(Version)
}

func stripEscapes(s string) string {
	out := make([]byte, 0, len(s))
	inEscape := false
	for i := 0; i < len(s); i++ {
		switch {
		case inEscape:
			if s[i] == 'm' {
				inEscape = false
			}
		case s[i] == 0x1b:
			inEscape = true
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
