package version

import "testing"

func TestString(t *testing.T) {
	Version, Commit, BuildDate = "v1.2.0", "abc123", "2026-01-02"
	t.Cleanup(func() { Version, Commit, BuildDate = "dev", "unknown", "unknown" })

	expected := "v1.2.0 (commit: abc123, built: 2026-01-02)"
	if got := String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
