package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestDiagnosticLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   DiagnosticLevel
		emit    func(*DiagnosticSystem)
		message string
		shown   bool
	}{
		{"error shown at error level", DiagnosticError, func(d *DiagnosticSystem) { d.Error("boom") }, "boom", true},
		{"error hidden when silent", DiagnosticSilent, func(d *DiagnosticSystem) { d.Error("boom") }, "boom", false},
		{"warn hidden at error level", DiagnosticError, func(d *DiagnosticSystem) { d.Warn("careful") }, "careful", false},
		{"info shown at info level", DiagnosticInfo, func(d *DiagnosticSystem) { d.Info("scanning") }, "scanning", true},
		{"verbose hidden at info level", DiagnosticInfo, func(d *DiagnosticSystem) { d.Verbose("details") }, "details", false},
		{"verbose shown at verbose level", DiagnosticVerbose, func(d *DiagnosticSystem) { d.Verbose("details") }, "details", true},
		{"debug hidden at verbose level", DiagnosticVerbose, func(d *DiagnosticSystem) { d.Debug("internals") }, "internals", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			d := NewDiagnosticSystem(tt.level)
			d.SetOutput(&buf)

			tt.emit(d)

			if got := strings.Contains(buf.String(), tt.message); got != tt.shown {
				t.Errorf("output %q: contains %q = %v, want %v", buf.String(), tt.message, got, tt.shown)
			}
		})
	}
}

func TestMessagePrefixes(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnosticSystem(DiagnosticInfo)
	d.SetOutput(&buf)

	d.Error("failed to parse %s", "notes")
	d.Warn("skipping %s", "vendor")
	d.Info("scanning %d packages", 3)
	d.Success("done")

	output := buf.String()
	expected := []string{
		"[ERROR] failed to parse notes",
		"[WARN] skipping vendor",
		"[INFO] scanning 3 packages",
		"[SUCCESS] done",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestIndentation(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnosticSystem(DiagnosticInfo)
	d.SetOutput(&buf)

	d.List("top level")
	d.Indent()
	d.List("nested")
	d.Unindent()
	d.Unindent() // extra unindent stays at zero
	d.List("back to top")

	output := buf.String()
	for _, want := range []string{"- top level\n", "  - nested\n", "- back to top\n"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "  - back to top") {
		t.Errorf("indentation not reset:\n%s", output)
	}
}

func TestHeaderSectionItem(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnosticSystem(DiagnosticInfo)
	d.SetOutput(&buf)

	d.Header("generating route wrappers")
	d.Section("Packages")
	d.Item("wrote %s", "autogen_proof.go")

	output := buf.String()
	for _, want := range []string{
		"proofroute: generating route wrappers",
		"\nPackages:\n",
		"✓ wrote autogen_proof.go",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestSummaryOrder(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnosticSystem(DiagnosticInfo)
	d.SetOutput(&buf)

	d.Summary("Generation complete:", []string{"packages", "routes", "error sets"}, map[string]int{
		"routes":     5,
		"packages":   2,
		"error sets": 1,
	})

	output := buf.String()
	packagesAt := strings.Index(output, "packages: 2")
	routesAt := strings.Index(output, "routes: 5")
	setsAt := strings.Index(output, "error sets: 1")
	if packagesAt < 0 || routesAt < 0 || setsAt < 0 {
		t.Fatalf("summary missing entries:\n%s", output)
	}
	if !(packagesAt < routesAt && routesAt < setsAt) {
		t.Errorf("summary entries out of order:\n%s", output)
	}
}
