package version

import (
	"strings"
	"testing"
)

func TestVersionDefault(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestPlainStripsEscapes(t *testing.T) {
	if got := Plain(); strings.ContainsRune(got, 0x1b) {
		t.Errorf("Plain() still contains escapes: %q", got)
	}
	if got := stripEscapes("\x1b[33m1\x1b[0m.\x1b[32m2\x1b[0m.3"); got != "1.2.3" {
		t.Errorf("stripEscapes = %q, want 1.2.3", got)
	}
}
