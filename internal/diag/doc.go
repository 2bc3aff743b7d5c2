// Package diag defines the diagnostic model shared by every check:
// severity levels, stable diagnostic codes, the Reporter contract and the
// Bag accumulator.
//
// Checks never print anything themselves. They hand Diagnostics to a
// Reporter; the CLI decides how the collected Bag is rendered (pretty,
// json, sarif) and what the exit status should be.
//
// Codes are grouped by prefix: PAR1xxx for parser recovery, EVT2xxx for the
// event-escape analysis, IO4xxx for file loading, CFG5xxx for configuration.
// Renumbering an existing code is a breaking change for downstream tooling
// that matches on IDs.
package diag
