package version

import (
	"strings"
	"testing"
)

func TestDefaultVersionSet(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestStringIncludesOptionalFields(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.3"
	GitCommit = ""
	BuildDate = ""
	if got := String(); got != "cinder 1.2.3" {
		t.Errorf("String() = %q", got)
	}

	GitCommit = "abc123"
	BuildDate = "2024-01-15T10:30:00Z"
	got := String()
	if !strings.Contains(got, "abc123") || !strings.Contains(got, "2024-01-15") {
		t.Errorf("String() = %q, missing commit or date", got)
	}
}
