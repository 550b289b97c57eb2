package diagnostic

import (
	"strings"
	"testing"
)

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityWarning,
		Category: CategoryUnnecessaryTypeParameter,
		File:     "src/api.ts",
		Line:     12,
		Column:   5,
		Message:  "type arguments match the declared defaults",
		Hint:     "remove the bracketed list",
	}

	s := d.String()
	if !strings.Contains(s, "src/api.ts:12:5") {
		t.Errorf("expected file:line:col, got %q", s)
	}
	if !strings.Contains(s, "warning") {
		t.Errorf("expected 'warning', got %q", s)
	}
	if !strings.Contains(s, "[unnecessaryTypeParameter]") {
		t.Errorf("expected category, got %q", s)
	}
	if !strings.Contains(s, "hint:") {
		t.Errorf("expected hint, got %q", s)
	}
}

func TestDiagnostic_StringNoPosition(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityError,
		Category: CategoryConfigInvalid,
		Message:  "include: at least one pattern required",
	}
	s := d.String()
	if strings.Contains(s, ":0") {
		t.Errorf("zero position rendered: %q", s)
	}
	if !strings.HasPrefix(s, "error: ") {
		t.Errorf("fileless diagnostic should start with its severity, got %q", s)
	}
}

func TestCollector_WarnAndError(t *testing.T) {
	c := NewCollector(false, false)
	c.Add(Diagnostic{Severity: SeverityWarning, File: "a.ts", Message: "w1"})
	c.Add(Diagnostic{Severity: SeverityWarning, File: "b.ts", Message: "w2"})
	c.Add(Diagnostic{Severity: SeverityError, Message: "e1"})

	if c.Count(SeverityWarning) != 2 {
		t.Errorf("expected 2 warnings, got %d", c.Count(SeverityWarning))
	}
	if c.Count(SeverityError) != 1 {
		t.Errorf("expected 1 error, got %d", c.Count(SeverityError))
	}
	if !c.HasErrors() {
		t.Error("expected HasErrors() = true")
	}
}

func TestCollector_StrictMode(t *testing.T) {
	c := NewCollector(true, false) // strict mode
	c.Add(Diagnostic{Severity: SeverityWarning, Message: "w"})

	// In strict mode, warnings become errors
	if c.Count(SeverityError) != 1 {
		t.Errorf("expected 1 error (strict mode), got %d", c.Count(SeverityError))
	}
	if c.Count(SeverityWarning) != 0 {
		t.Errorf("expected 0 warnings (strict mode), got %d", c.Count(SeverityWarning))
	}
}

func TestCollector_QuietMode(t *testing.T) {
	c := NewCollector(false, true) // quiet mode
	c.Add(Diagnostic{Severity: SeverityWarning, Message: "w"})
	c.Add(Diagnostic{Severity: SeverityInfo, Message: "i"})
	c.Add(Diagnostic{Severity: SeverityError, Message: "e"}) // errors still show

	if len(c.Diagnostics()) != 1 {
		t.Errorf("expected 1 diagnostic (only error), got %d", len(c.Diagnostics()))
	}
}

func TestCollector_Summary(t *testing.T) {
	c := NewCollector(false, false)
	c.Add(Diagnostic{Severity: SeverityWarning, File: "a.ts", Message: "warn1"})
	c.Add(Diagnostic{Severity: SeverityWarning, File: "b.ts", Message: "warn2"})
	c.Add(Diagnostic{Severity: SeverityError, Message: "err1"})

	summary := c.Summary()
	if !strings.Contains(summary, "1 error") {
		t.Errorf("expected '1 error' in summary, got %q", summary)
	}
	if !strings.Contains(summary, "2 warning") {
		t.Errorf("expected '2 warning' in summary, got %q", summary)
	}
}

func TestCollector_EmptySummary(t *testing.T) {
	c := NewCollector(false, false)
	if got := c.Summary(); got != "no issues" {
		t.Errorf("expected 'no issues', got %q", got)
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	// Should not panic
	c.Add(Diagnostic{Severity: SeverityError, Message: "test"})
	if c.HasErrors() {
		t.Error("nil collector should not have errors")
	}
	if c.Summary() != "" {
		t.Error("nil collector should return empty summary")
	}
}
