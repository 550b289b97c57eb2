// Package lint drives the analysis pipeline: parse → bind → locate
// and scan generic sites → report, and the analyze→edit→re-analyze
// loop of the fix command. Files are independent; each is analyzed
// with its own parser, binder, and resolver state.
package lint

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsslim/tsslim/internal/analyzer"
	"github.com/tsslim/tsslim/internal/binder"
	"github.com/tsslim/tsslim/internal/config"
	"github.com/tsslim/tsslim/internal/diagnostic"
	"github.com/tsslim/tsslim/internal/fix"
	"github.com/tsslim/tsslim/internal/syntax"
)

// Input is one source file to analyze.
type Input struct {
	Path string
	Text string
}

// Options controls reporting.
type Options struct {
	// Severity findings are reported at.
	Severity diagnostic.Severity
	// Strict promotes warnings to errors; Quiet drops non-errors.
	Strict bool
	Quiet  bool
	// MaxFixPasses caps the fix loop per file.
	MaxFixPasses int
}

// Result is the outcome of analyzing a set of files.
type Result struct {
	Collector *diagnostic.Collector
	// Sources indexes the parsed files by path for snippet rendering.
	Sources map[string]*syntax.Source
}

// Check analyzes all inputs and collects diagnostics.
func Check(inputs []Input, opts Options) *Result {
	res := &Result{
		Collector: diagnostic.NewCollector(opts.Strict, opts.Quiet),
		Sources:   make(map[string]*syntax.Source, len(inputs)),
	}
	for _, in := range inputs {
		src, diags := analyzeOne(in, opts)
		res.Sources[in.Path] = src
		for _, d := range diags {
			res.Collector.Add(d)
		}
	}
	return res
}

// analyzeOne runs the pipeline over one file.
func analyzeOne(in Input, opts Options) (*syntax.Source, []diagnostic.Diagnostic) {
	src := syntax.NewSource(in.Path, in.Text)
	file := syntax.Parse(src)
	table := binder.Bind(file)
	findings := analyzer.Analyze(file, table)

	diags := make([]diagnostic.Diagnostic, 0, len(findings))
	for _, f := range findings {
		diags = append(diags, toDiagnostic(src, f, opts.Severity))
	}
	return src, diags
}

// toDiagnostic renders one finding. The location anchors at the first
// removable argument (or the bracket list when everything goes), per
// the attached fix.
func toDiagnostic(src *syntax.Source, f analyzer.Finding, sev diagnostic.Severity) diagnostic.Diagnostic {
	line, col := src.LineCol(f.Pos)
	removed := len(f.Site.Args) - f.CutPoint

	var msg string
	if f.CutPoint == 0 {
		msg = fmt.Sprintf("all %d type argument(s) of %q equal the declared defaults; the type argument list can be removed",
			removed, f.Site.Sym.Name())
	} else {
		msg = fmt.Sprintf("the trailing %d type argument(s) of %q equal the declared defaults and can be removed",
			removed, f.Site.Sym.Name())
	}

	edit := f.Edit
	return diagnostic.Diagnostic{
		Severity: sev,
		Category: diagnostic.CategoryUnnecessaryTypeParameter,
		File:     src.Path,
		Line:     line,
		Column:   col,
		Offset:   f.Pos,
		Length:   f.Site.Brackets.End - f.Pos,
		Message:  msg,
		Fix:      &edit,
	}
}

// FixText applies fixes to one file's text until a fixpoint: each
// pass re-parses, re-binds, and re-analyzes from scratch, because a
// removed argument can change the resolved type of dependent
// expressions elsewhere in the file. Returns the fixed text and the
// number of passes that applied edits.
func FixText(path, text string, maxPasses int) (string, int, error) {
	if maxPasses <= 0 {
		maxPasses = 16
	}
	passes := 0
	for ; passes < maxPasses; passes++ {
		src := syntax.NewSource(path, text)
		file := syntax.Parse(src)
		table := binder.Bind(file)
		findings := analyzer.Analyze(file, table)
		if len(findings) == 0 {
			break
		}

		edits := make([]fix.Edit, len(findings))
		for i, f := range findings {
			edits[i] = f.Edit
		}
		// Nested sites can produce containing edits; apply the
		// disjoint subset and let the next pass re-discover the rest.
		fixed, err := fix.Apply(text, fix.Disjoint(edits))
		if err != nil {
			return text, passes, fmt.Errorf("applying fixes to %s: %w", path, err)
		}
		if fixed == text {
			break
		}
		text = fixed
	}
	return text, passes, nil
}

// Discover walks root and returns the files selected by the config's
// include/exclude globs, with their contents loaded.
func Discover(root string, cfg *config.Config) ([]Input, error) {
	var inputs []Input
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "node_modules" || info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		if !cfg.Matches(rel) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		inputs = append(inputs, Input{Path: rel, Text: string(data)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inputs, nil
}
