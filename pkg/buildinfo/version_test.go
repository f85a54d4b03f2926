package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if got := Template(); !strings.Contains(got, "v9.9.9") {
		t.Errorf("Template() = %q, want it to contain the version", got)
	}
	if got := UserAgent(); got != "procview/v9.9.9" {
		t.Errorf("UserAgent() = %q, want procview/v9.9.9", got)
	}
	if got := Get().Version; got != "v9.9.9" {
		t.Errorf("Get().Version = %q, want v9.9.9", got)
	}
}
