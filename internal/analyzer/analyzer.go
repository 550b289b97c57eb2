// Package analyzer finds generic instantiation sites whose trailing
// explicit type arguments restate the declared type-parameter
// defaults, and synthesizes the edits that remove them. The analysis
// is pure: it reads the AST and the injected types.Host and produces
// findings without touching the source text.
package analyzer

import (
	"github.com/tsslim/tsslim/internal/fix"
	"github.com/tsslim/tsslim/internal/syntax"
	"github.com/tsslim/tsslim/internal/types"
)

// SiteKind names the syntactic shapes that can carry an explicit
// type-argument list.
type SiteKind int

const (
	SiteCall SiteKind = iota
	SiteNew
	SiteExtends
	SiteImplements
	SiteTypeRef
)

func (k SiteKind) String() string {
	switch k {
	case SiteCall:
		return "call"
	case SiteNew:
		return "new"
	case SiteExtends:
		return "extends"
	case SiteImplements:
		return "implements"
	case SiteTypeRef:
		return "type reference"
	}
	return "site"
}

// Site is one generic instantiation supplying explicit type
// arguments. Brackets covers the `<...>` list inclusive; per-argument
// ranges come from the argument nodes themselves.
type Site struct {
	Kind SiteKind
	Sym  types.Symbol
	Args []syntax.TypeExpr
	// Brackets is the source span of the whole `<...>` list.
	Brackets syntax.Span
}

// Finding is one flagged site: every argument at or right of CutPoint
// equals its declared default, and Edit removes them (or, when
// CutPoint is zero, the whole bracketed list).
type Finding struct {
	Site     Site
	CutPoint int
	// Pos is the diagnostic anchor: the start of the first removable
	// argument, or of the bracket list when everything goes.
	Pos  int
	Edit fix.Edit
}

// Analyze walks one file and returns its findings in source order.
func Analyze(file *syntax.File, host types.Host) []Finding {
	a := &analysis{host: host, resolver: types.NewResolver(host)}
	for _, d := range file.Decls {
		a.walkDecl(d)
	}
	return a.findings
}

type analysis struct {
	host     types.Host
	resolver *types.Resolver
	findings []Finding
}

// visit checks one candidate site. Sites whose target does not
// resolve to exactly one generic declaration are skipped silently:
// unresolved, ambiguous, or any-typed targets yield no diagnostic and
// no fix (worst case is a missed simplification).
func (a *analysis) visit(kind SiteKind, target syntax.Node, list *syntax.TypeArgList) {
	if list == nil || len(list.Args) == 0 {
		return
	}
	sym := a.host.ResolveSymbol(target)
	if sym == nil || a.host.IsAnyOrUnknown(sym) {
		return
	}
	params := a.host.TypeParametersOf(sym)
	if len(params) == 0 || len(list.Args) > len(params) {
		return
	}

	cut := a.cutPoint(params, list.Args)
	if cut == len(list.Args) {
		return
	}

	f := Finding{
		Site:     Site{Kind: kind, Sym: sym, Args: list.Args, Brackets: list.Brackets},
		CutPoint: cut,
	}
	if cut == 0 {
		f.Pos = list.Brackets.Start
		f.Edit = fix.Edit{Start: list.Brackets.Start, End: list.Brackets.End}
	} else {
		f.Pos = list.Args[cut].Span().Start
		// Drop the comma-separated suffix but keep the closing `>`
		// so the retained prefix stays well formed.
		f.Edit = fix.Edit{Start: list.Args[cut-1].Span().End, End: list.Brackets.End - 1}
	}
	a.findings = append(a.findings, f)
}

// cutPoint scans right to left and returns the first index that must
// be retained. The scan stops at the first parameter without a
// default or whose supplied argument is not equivalent to it:
// argument lists are positional, so nothing left of that point can be
// removed either, no matter how redundant it looks in isolation.
func (a *analysis) cutPoint(params []*syntax.TypeParam, args []syntax.TypeExpr) int {
	cut := len(args)
	for i := len(args) - 1; i >= 0; i-- {
		def := params[i].Default
		if def == nil {
			break
		}
		// A default may reference parameters declared before it;
		// those positions are bound to the effective arguments at
		// this site. Later parameters stay unbound and resolve to
		// the unresolvable sentinel, which never compares equal.
		env := make(types.Bindings, i)
		for j := 0; j < i; j++ {
			env[params[j]] = a.resolver.Resolve(args[j])
		}
		supplied := a.resolver.Resolve(args[i])
		wanted := a.resolver.ResolveWith(def, env)
		if !types.Equal(supplied, wanted) {
			break
		}
		cut = i
	}
	return cut
}
