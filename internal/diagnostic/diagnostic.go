// Package diagnostic carries structured findings from analysis to
// the CLI: severity, source position, message, and an optional
// attached fix.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/tsslim/tsslim/internal/fix"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Category identifies the rule that produced a diagnostic.
type Category string

const (
	// CategoryUnnecessaryTypeParameter flags explicit type arguments
	// that restate the declared defaults.
	CategoryUnnecessaryTypeParameter Category = "unnecessaryTypeParameter"
	// CategoryParse flags source the parser had to skip.
	CategoryParse Category = "parse"
	// CategoryConfigInvalid flags configuration problems.
	CategoryConfigInvalid Category = "config-invalid"
)

// Diagnostic represents a structured diagnostic message.
type Diagnostic struct {
	Severity Severity
	Category Category
	File     string // source file path
	Line     int    // 1-based line number (0 = unknown)
	Column   int    // 1-based column number (0 = unknown)
	Offset   int    // byte offset of the location
	Length   int    // byte length of the flagged range (0 = point)
	Message  string
	Hint     string // optional suggestion for fixing the issue

	// Fix, when non-nil, is a text edit that resolves the diagnostic.
	Fix *fix.Edit
}

// String formats the diagnostic for plain display.
func (d Diagnostic) String() string {
	var sb strings.Builder
	if d.File != "" {
		sb.WriteString(d.File)
		if d.Line > 0 {
			fmt.Fprintf(&sb, ":%d", d.Line)
			if d.Column > 0 {
				fmt.Fprintf(&sb, ":%d", d.Column)
			}
		}
		sb.WriteString(" - ")
	}
	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")
	if d.Category != "" {
		sb.WriteString("[")
		sb.WriteString(string(d.Category))
		sb.WriteString("] ")
	}
	sb.WriteString(d.Message)
	if d.Hint != "" {
		sb.WriteString("\n  hint: ")
		sb.WriteString(d.Hint)
	}
	return sb.String()
}

// Collector collects diagnostics during analysis.
type Collector struct {
	diagnostics []Diagnostic
	strict      bool // if true, warnings become errors
	quiet       bool // if true, suppress warnings and infos
}

// NewCollector creates a new diagnostic collector.
func NewCollector(strict, quiet bool) *Collector {
	return &Collector{strict: strict, quiet: quiet}
}

// Add records a diagnostic, applying the strict/quiet policy.
func (c *Collector) Add(d Diagnostic) {
	if c == nil {
		return
	}
	if d.Severity != SeverityError {
		if c.quiet {
			return
		}
		if c.strict && d.Severity == SeverityWarning {
			d.Severity = SeverityError
		}
	}
	c.diagnostics = append(c.diagnostics, d)
}

// Diagnostics returns all collected diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	if c == nil {
		return nil
	}
	return c.diagnostics
}

// HasErrors returns true if any error-level diagnostics exist.
func (c *Collector) HasErrors() bool {
	if c == nil {
		return false
	}
	for _, d := range c.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics at the given severity.
func (c *Collector) Count(sev Severity) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, d := range c.diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Summary returns a summary line like "2 warning(s), 1 error(s)".
func (c *Collector) Summary() string {
	if c == nil {
		return ""
	}
	errors := c.Count(SeverityError)
	warnings := c.Count(SeverityWarning)

	var parts []string
	if errors > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", errors))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warnings))
	}
	if len(parts) == 0 {
		return "no issues"
	}
	return strings.Join(parts, ", ")
}
