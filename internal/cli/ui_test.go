package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// captureOutput redirects the print helpers for the duration of the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{2560, "2.5 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPrintArtifactStats(t *testing.T) {
	buf := captureOutput(t)

	printArtifactStats(2048, 1500*time.Microsecond, false)
	printArtifactStats(2048, time.Second, true)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "2.0 KiB") || !strings.Contains(lines[0], "1.5ms") || !strings.Contains(lines[0], "fresh") {
		t.Errorf("fresh line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "cached") || strings.Contains(lines[1], "1s") {
		t.Errorf("cached line = %q", lines[1])
	}
}

func TestStatusLines(t *testing.T) {
	buf := captureOutput(t)

	printSuccess("Rendered %s", "svg")
	printWarning("careful")
	printFile("out.svg")
	printKeyValue("Name", "Stylus Squiggle")

	got := buf.String()
	for _, want := range []string{iconSuccess + " Rendered svg", iconWarning, iconArrow + " out.svg", "Stylus Squiggle"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
