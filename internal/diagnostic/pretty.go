package diagnostic

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tsslim/tsslim/internal/syntax"
)

// ANSI color constants for pretty output.
const (
	colorReset  = "\u001b[0m"
	colorRed    = "\u001b[91m"
	colorYellow = "\u001b[93m"
	colorCyan   = "\u001b[96m"
	colorGrey   = "\u001b[90m"
	colorBlue   = "\u001b[94m"
	colorGutter = "\u001b[7m" // reverse video
)

func severityColor(sev Severity) string {
	switch sev {
	case SeverityError:
		return colorRed
	case SeverityWarning:
		return colorYellow
	case SeverityInfo:
		return colorBlue
	}
	return ""
}

// IsPrettyOutput determines if we should use colored output with code
// snippets: NO_COLOR, FORCE_COLOR, then isatty.
func IsPrettyOutput() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// Writer renders diagnostics to an output stream, plainly or with
// colored code snippets. Sources provides the file contents for
// snippet rendering; files missing from it are rendered without a
// snippet.
type Writer struct {
	Out     io.Writer
	Pretty  bool
	Sources map[string]*syntax.Source
}

// Write renders one diagnostic.
func (w *Writer) Write(d Diagnostic) {
	if !w.Pretty {
		fmt.Fprintf(w.Out, "%s\n", d.String())
		return
	}
	w.writePretty(d)
}

// WriteAll renders all diagnostics and, in pretty mode, a closing
// summary line.
func (w *Writer) WriteAll(diags []Diagnostic) {
	for _, d := range diags {
		w.Write(d)
	}
	if w.Pretty {
		w.writeSummary(diags)
	}
}

// writePretty renders `file:line:col - severity rule: message` with a
// gutter-and-squiggle code snippet underneath.
func (w *Writer) writePretty(d Diagnostic) {
	if d.File != "" {
		fmt.Fprintf(w.Out, "%s%s%s:%s%d%s:%s%d%s",
			colorCyan, d.File, colorReset,
			colorYellow, d.Line, colorReset,
			colorYellow, d.Column, colorReset)
		fmt.Fprint(w.Out, " - ")
	}

	fmt.Fprintf(w.Out, "%s%s%s %s%s:%s %s",
		severityColor(d.Severity), d.Severity, colorReset,
		colorGrey, d.Category, colorReset,
		d.Message)

	if src := w.Sources[d.File]; src != nil && d.Length > 0 {
		fmt.Fprint(w.Out, "\n")
		writeCodeSnippet(w.Out, src, d.Offset, d.Length, severityColor(d.Severity))
	}
	fmt.Fprint(w.Out, "\n")
	if d.Hint != "" {
		fmt.Fprintf(w.Out, "  %shint:%s %s\n", colorGrey, colorReset, d.Hint)
	}
}

// writeCodeSnippet writes the source context with gutter line numbers
// and squiggles under the flagged range.
func writeCodeSnippet(out io.Writer, src *syntax.Source, start, length int, squiggleColor string) {
	firstLine, firstCol := src.LineCol(start)
	lastLine, lastCol := src.LineCol(start + length)
	if length == 0 {
		lastCol++
	}

	hasMoreThanFiveLines := lastLine-firstLine >= 4
	gutterWidth := len(strconv.Itoa(lastLine))
	if hasMoreThanFiveLines && len("...") > gutterWidth {
		gutterWidth = len("...")
	}

	for line := firstLine; line <= lastLine; line++ {
		if hasMoreThanFiveLines && firstLine+1 < line && line < lastLine-1 {
			fmt.Fprintf(out, "%s%*s%s\n", colorGutter, gutterWidth, "...", colorReset)
			line = lastLine - 1
		}

		content := strings.TrimRight(src.LineText(line), " \t\r")
		content = strings.ReplaceAll(content, "\t", " ")
		fmt.Fprintf(out, "%s%*d%s %s\n", colorGutter, gutterWidth, line, colorReset, content)

		fmt.Fprintf(out, "%s%*s%s ", colorGutter, gutterWidth, "", colorReset)
		fmt.Fprint(out, squiggleColor)
		switch line {
		case firstLine:
			lastColForLine := lastCol
			if line != lastLine {
				lastColForLine = len(content) + 1
			}
			fmt.Fprint(out, strings.Repeat(" ", firstCol-1))
			squiggleLen := lastColForLine - firstCol
			if squiggleLen < 1 {
				squiggleLen = 1
			}
			fmt.Fprint(out, strings.Repeat("~", squiggleLen))
		case lastLine:
			if lastCol > 1 {
				fmt.Fprint(out, strings.Repeat("~", lastCol-1))
			}
		default:
			fmt.Fprint(out, strings.Repeat("~", len(content)))
		}
		fmt.Fprint(out, colorReset)
		fmt.Fprint(out, "\n")
	}
}

// writeSummary writes the closing "Found N problems" line.
func (w *Writer) writeSummary(diags []Diagnostic) {
	if len(diags) == 0 {
		return
	}
	files := make(map[string]bool)
	for _, d := range diags {
		if d.File != "" {
			files[d.File] = true
		}
	}
	fmt.Fprint(w.Out, "\n")
	switch {
	case len(diags) == 1:
		fmt.Fprintf(w.Out, "Found 1 problem in %s.\n", diags[0].File)
	case len(files) <= 1:
		fmt.Fprintf(w.Out, "Found %d problems in the same file.\n", len(diags))
	default:
		fmt.Fprintf(w.Out, "Found %d problems in %d files.\n", len(diags), len(files))
	}
}
