package diag

// Severity ranks how seriously a finding should be taken. The check
// command's exit status and the warning gates are driven by it.
type Severity uint8

const (
	// SevInfo marks advisory output, например подсказки по манифесту.
	SevInfo Severity = iota
	// SevWarning is the default level for escape findings.
	SevWarning
	// SevError fails the run: parse failures, unreadable files and
	// promoted warnings.
	SevError
)

// String returns the upper-case label used in pretty output.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
