// Package binder builds lexical scopes for a parsed file and binds
// every type reference and callee to the declaration it names. It is
// the production implementation of the resolver's Host: binding is by
// declaration identity, so a default declared in one module block is
// never matched against a same-named alias from an unrelated scope.
package binder

import (
	"github.com/tsslim/tsslim/internal/syntax"
	"github.com/tsslim/tsslim/internal/types"
)

// Table is the result of binding one file. It implements types.Host.
type Table struct {
	nextID      int
	resolutions map[syntax.Node]*Symbol
}

// Bind declares and resolves all names in the file. Type
// declarations are hoisted within each scope, so references may
// precede declarations.
func Bind(file *syntax.File) *Table {
	t := &Table{resolutions: make(map[syntax.Node]*Symbol)}
	root := newScope(nil)
	t.declareAll(root, file.Decls)
	for _, d := range file.Decls {
		t.resolveDecl(root, d)
	}
	return t
}

// Resolution returns the symbol a reference node was bound to, or
// nil.
func (t *Table) Resolution(n syntax.Node) *Symbol {
	return t.resolutions[n]
}

func (t *Table) newSymbol(name string, kind SymbolKind, decl syntax.Node) *Symbol {
	t.nextID++
	return &Symbol{id: t.nextID, name: name, kind: kind, decl: decl}
}

// declare adds a symbol to the scope, flagging redeclarations.
func (t *Table) declare(sc *scope, name string, kind SymbolKind, decl syntax.Node) *Symbol {
	if prev, ok := sc.names[name]; ok {
		prev.ambiguous = true
		return prev
	}
	sym := t.newSymbol(name, kind, decl)
	sc.names[name] = sym
	return sym
}

// declareAll hoists the declarations of one scope.
func (t *Table) declareAll(sc *scope, decls []syntax.Decl) {
	for _, d := range decls {
		switch decl := d.(type) {
		case *syntax.TypeAliasDecl:
			t.declare(sc, decl.Name.Name, KindAlias, decl)
		case *syntax.InterfaceDecl:
			t.declare(sc, decl.Name.Name, KindInterface, decl)
		case *syntax.ClassDecl:
			t.declare(sc, decl.Name.Name, KindClass, decl)
		case *syntax.FuncDecl:
			t.declare(sc, decl.Name.Name, KindFunc, decl)
		case *syntax.VarDecl:
			if decl.Name != nil {
				t.declare(sc, decl.Name.Name, KindVar, decl)
			}
		case *syntax.ModuleDecl:
			if decl.Name != "" {
				sym := t.declare(sc, decl.Name, KindModule, decl)
				if sym.exports == nil {
					sym.exports = newScope(sc)
				}
			}
		}
	}
}

// resolveDecl walks one declaration, opening the scopes it
// introduces and binding the references inside it.
func (t *Table) resolveDecl(sc *scope, d syntax.Decl) {
	switch decl := d.(type) {
	case *syntax.TypeAliasDecl:
		inner := t.paramScope(sc, decl.TypeParams)
		t.resolveParams(inner, decl.TypeParams)
		t.resolveType(inner, decl.RHS)

	case *syntax.InterfaceDecl:
		inner := t.paramScope(sc, decl.TypeParams)
		t.resolveParams(inner, decl.TypeParams)
		for _, ref := range decl.Extends {
			t.resolveRef(inner, ref)
		}
		for _, m := range decl.Members {
			t.resolveType(inner, m.Type)
		}

	case *syntax.ClassDecl:
		inner := t.paramScope(sc, decl.TypeParams)
		t.resolveParams(inner, decl.TypeParams)
		if decl.Extends != nil {
			t.resolveRef(inner, decl.Extends)
		}
		for _, ref := range decl.Implements {
			t.resolveRef(inner, ref)
		}
		body := newScope(inner)
		t.declareAll(body, decl.Body)
		for _, s := range decl.Body {
			t.resolveDecl(body, s)
		}

	case *syntax.FuncDecl:
		inner := t.paramScope(sc, decl.TypeParams)
		t.resolveParams(inner, decl.TypeParams)
		for _, p := range decl.Params {
			t.resolveType(inner, p.Type)
		}
		t.resolveType(inner, decl.Result)
		body := newScope(inner)
		t.declareAll(body, decl.Body)
		for _, s := range decl.Body {
			t.resolveDecl(body, s)
		}

	case *syntax.VarDecl:
		t.resolveType(sc, decl.Type)
		t.resolveExpr(sc, decl.Init)

	case *syntax.ModuleDecl:
		var inner *scope
		if decl.Name != "" {
			if sym := sc.lookup(decl.Name); sym != nil && sym.exports != nil {
				inner = sym.exports
			}
		}
		if inner == nil {
			inner = newScope(sc)
		}
		t.declareAll(inner, decl.Decls)
		for _, s := range decl.Decls {
			t.resolveDecl(inner, s)
		}

	case *syntax.ExprStmt:
		t.resolveExpr(sc, decl.X)
	}
}

// paramScope opens a scope holding a declaration's type parameters.
func (t *Table) paramScope(sc *scope, params []*syntax.TypeParam) *scope {
	if len(params) == 0 {
		return sc
	}
	inner := newScope(sc)
	for _, p := range params {
		t.declare(inner, p.Name.Name, KindTypeParam, p)
	}
	return inner
}

// resolveParams binds references inside constraints and defaults. A
// parameter's default may legally reference the parameters declared
// before it (and, in ill-formed input, after it — the resolver treats
// those as unresolvable rather than rejecting them here).
func (t *Table) resolveParams(sc *scope, params []*syntax.TypeParam) {
	for _, p := range params {
		t.resolveType(sc, p.Constraint)
		t.resolveType(sc, p.Default)
	}
}

func (t *Table) resolveType(sc *scope, expr syntax.TypeExpr) {
	switch ty := expr.(type) {
	case *syntax.TypeRef:
		t.resolveRef(sc, ty)
	case *syntax.UnionType:
		for _, m := range ty.Members {
			t.resolveType(sc, m)
		}
	case *syntax.IntersectionType:
		for _, m := range ty.Members {
			t.resolveType(sc, m)
		}
	case *syntax.TupleType:
		for _, e := range ty.Elems {
			t.resolveType(sc, e)
		}
	case *syntax.ArrayType:
		t.resolveType(sc, ty.Elem)
	case *syntax.ObjectType:
		for _, m := range ty.Members {
			t.resolveType(sc, m.Type)
		}
	case *syntax.FuncType:
		for _, p := range ty.Params {
			t.resolveType(sc, p.Type)
		}
		t.resolveType(sc, ty.Result)
	}
}

// resolveRef binds a possibly qualified type reference. The head
// segment resolves through the scope chain; later segments resolve
// through module exports. A reference that does not fully resolve is
// left unbound (ambient).
func (t *Table) resolveRef(sc *scope, ref *syntax.TypeRef) {
	if ref == nil {
		return
	}
	sym := sc.lookup(ref.Head().Name)
	for i := 1; i < len(ref.Parts) && sym != nil; i++ {
		if sym.kind != KindModule || sym.exports == nil {
			sym = nil
			break
		}
		sym = sym.exports.names[ref.Parts[i].Name]
	}
	if sym != nil {
		t.resolutions[ref] = sym
	}
	if ref.Args != nil {
		for _, a := range ref.Args.Args {
			t.resolveType(sc, a)
		}
	}
}

func (t *Table) resolveExpr(sc *scope, e syntax.Expr) {
	switch ex := e.(type) {
	case *syntax.IdentExpr:
		if sym := sc.lookup(ex.Name); sym != nil {
			t.resolutions[ex] = sym
		}
	case *syntax.MemberExpr:
		t.resolveExpr(sc, ex.X)
		// `ns.f` binds through module exports when the receiver is a
		// module; arbitrary object members stay unbound.
		if recv, ok := ex.X.(*syntax.IdentExpr); ok {
			if rsym := t.resolutions[recv]; rsym != nil && rsym.kind == KindModule && rsym.exports != nil {
				if sym, ok := rsym.exports.names[ex.Sel]; ok {
					t.resolutions[ex] = sym
				}
			}
		}
	case *syntax.CallExpr:
		t.resolveExpr(sc, ex.Fun)
		if ex.TypeArgs != nil {
			for _, a := range ex.TypeArgs.Args {
				t.resolveType(sc, a)
			}
		}
		for _, arg := range ex.Args {
			t.resolveExpr(sc, arg)
		}
	case *syntax.NewExpr:
		t.resolveExpr(sc, ex.Fun)
		if ex.TypeArgs != nil {
			for _, a := range ex.TypeArgs.Args {
				t.resolveType(sc, a)
			}
		}
		for _, arg := range ex.Args {
			t.resolveExpr(sc, arg)
		}
	}
}

// --- types.Host implementation ---

// ResolveSymbol implements types.Host.
func (t *Table) ResolveSymbol(n syntax.Node) types.Symbol {
	if sym := t.resolutions[n]; sym != nil {
		return sym
	}
	return nil
}

// TypeParametersOf implements types.Host.
func (t *Table) TypeParametersOf(sym types.Symbol) []*syntax.TypeParam {
	s, ok := sym.(*Symbol)
	if !ok || s.ambiguous {
		return nil
	}
	switch decl := s.decl.(type) {
	case *syntax.TypeAliasDecl:
		return decl.TypeParams
	case *syntax.InterfaceDecl:
		return decl.TypeParams
	case *syntax.ClassDecl:
		return decl.TypeParams
	case *syntax.FuncDecl:
		return decl.TypeParams
	}
	return nil
}

// IsAnyOrUnknown implements types.Host: true for symbols whose
// declared type annotation is any or unknown.
func (t *Table) IsAnyOrUnknown(sym types.Symbol) bool {
	s, ok := sym.(*Symbol)
	if !ok {
		return false
	}
	decl, ok := s.decl.(*syntax.VarDecl)
	if !ok {
		return false
	}
	kw, ok := decl.Type.(*syntax.KeywordType)
	return ok && (kw.Keyword == "any" || kw.Keyword == "unknown")
}

// AliasDefinitionOf implements types.Host.
func (t *Table) AliasDefinitionOf(sym types.Symbol) syntax.TypeExpr {
	s, ok := sym.(*Symbol)
	if !ok || s.ambiguous {
		return nil
	}
	if decl, ok := s.decl.(*syntax.TypeAliasDecl); ok {
		return decl.RHS
	}
	return nil
}

// TypeParamDecl implements types.Host.
func (t *Table) TypeParamDecl(sym types.Symbol) *syntax.TypeParam {
	s, ok := sym.(*Symbol)
	if !ok {
		return nil
	}
	if p, ok := s.decl.(*syntax.TypeParam); ok {
		return p
	}
	return nil
}
