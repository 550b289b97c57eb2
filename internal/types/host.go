// Package types canonicalizes syntactic type expressions into
// alias-free resolved forms and decides structural equivalence
// between them. Symbol and declaration facts come from an injected
// Host so the package can run against the real binder or a test
// fake.
package types

import "github.com/tsslim/tsslim/internal/syntax"

// Symbol is a bound declaration as seen by the resolver. Identity is
// the declaration, not the name: two same-named aliases in unrelated
// scopes are distinct symbols.
type Symbol interface {
	// ID is unique per declaration within one file analysis.
	ID() int
	// Name is the declared name, for canonical rendering only.
	Name() string
}

// Host supplies symbol and declaration facts. Implemented by the
// binder for real runs and by fakes in tests.
type Host interface {
	// ResolveSymbol binds a reference node (a type reference head or
	// a call/new callee) to its declaration. Nil means unresolved —
	// either truly unknown or an ambient global such as Map.
	ResolveSymbol(n syntax.Node) Symbol

	// TypeParametersOf returns the declared type parameters of a
	// generic declaration, in order. Empty for non-generic symbols.
	TypeParametersOf(sym Symbol) []*syntax.TypeParam

	// IsAnyOrUnknown reports whether the symbol's declared type is
	// any or unknown (for example `declare const f: any`).
	IsAnyOrUnknown(sym Symbol) bool

	// AliasDefinitionOf returns a type alias's right-hand side, or
	// nil when the symbol is not an alias.
	AliasDefinitionOf(sym Symbol) syntax.TypeExpr

	// TypeParamDecl returns the type-parameter declaration a symbol
	// is bound to, or nil when the symbol is not a type parameter.
	TypeParamDecl(sym Symbol) *syntax.TypeParam
}

// DefaultsOf returns one entry per declared type parameter of sym, in
// declaration order: the default type expression, or nil when the
// parameter has none. Pure lookup; resolution happens lazily at each
// comparison.
func DefaultsOf(host Host, sym Symbol) []syntax.TypeExpr {
	params := host.TypeParametersOf(sym)
	defaults := make([]syntax.TypeExpr, len(params))
	for i, p := range params {
		defaults[i] = p.Default
	}
	return defaults
}
