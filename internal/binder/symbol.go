package binder

import "github.com/tsslim/tsslim/internal/syntax"

// SymbolKind classifies what a name is bound to.
type SymbolKind int

const (
	KindAlias SymbolKind = iota
	KindInterface
	KindClass
	KindFunc
	KindVar
	KindModule
	KindTypeParam
)

func (k SymbolKind) String() string {
	switch k {
	case KindAlias:
		return "type alias"
	case KindInterface:
		return "interface"
	case KindClass:
		return "class"
	case KindFunc:
		return "function"
	case KindVar:
		return "variable"
	case KindModule:
		return "module"
	case KindTypeParam:
		return "type parameter"
	}
	return "symbol"
}

// Symbol is one bound declaration. Identity is the declaration site:
// same-named declarations in unrelated scopes get distinct symbols
// with distinct IDs.
type Symbol struct {
	id   int
	name string
	kind SymbolKind
	decl syntax.Node

	// exports is the module's own scope when kind is KindModule.
	exports *scope

	// ambiguous marks a name declared more than once in one scope
	// (overloads, declaration merging). Ambiguous symbols are never
	// treated as a single generic declaration.
	ambiguous bool
}

// ID returns the symbol's file-unique identity.
func (s *Symbol) ID() int { return s.id }

// Name returns the declared name.
func (s *Symbol) Name() string { return s.name }

// Kind returns the declaration kind.
func (s *Symbol) Kind() SymbolKind { return s.kind }

// Decl returns the declaration node the symbol was created from.
func (s *Symbol) Decl() syntax.Node { return s.decl }

// Ambiguous reports whether the name was declared more than once in
// its scope.
func (s *Symbol) Ambiguous() bool { return s.ambiguous }

// scope is one lexical scope: a file, a module or namespace block, a
// class or function body with its type parameters.
type scope struct {
	parent *scope
	names  map[string]*Symbol
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]*Symbol)}
}

// lookup walks the scope chain.
func (sc *scope) lookup(name string) *Symbol {
	for s := sc; s != nil; s = s.parent {
		if sym, ok := s.names[name]; ok {
			return sym
		}
	}
	return nil
}
