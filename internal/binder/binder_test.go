package binder_test

import (
	"testing"

	"github.com/tsslim/tsslim/internal/binder"
	"github.com/tsslim/tsslim/internal/syntax"
)

func bind(t *testing.T, text string) (*syntax.File, *binder.Table) {
	t.Helper()
	file := syntax.Parse(syntax.NewSource("test.ts", text))
	return file, binder.Bind(file)
}

// aliasRHS returns the right-hand side of the named type alias,
// searching module blocks recursively.
func aliasRHS(t *testing.T, file *syntax.File, alias string) syntax.TypeExpr {
	t.Helper()
	var walk func(decls []syntax.Decl) syntax.TypeExpr
	walk = func(decls []syntax.Decl) syntax.TypeExpr {
		for _, d := range decls {
			switch decl := d.(type) {
			case *syntax.TypeAliasDecl:
				if decl.Name.Name == alias {
					return decl.RHS
				}
			case *syntax.ModuleDecl:
				if rhs := walk(decl.Decls); rhs != nil {
					return rhs
				}
			}
		}
		return nil
	}
	rhs := walk(file.Decls)
	if rhs == nil {
		t.Fatalf("alias %s not found", alias)
	}
	return rhs
}

// firstCall returns the first call expression found in statement
// position.
func firstCall(t *testing.T, file *syntax.File) *syntax.CallExpr {
	t.Helper()
	var walk func(decls []syntax.Decl) *syntax.CallExpr
	walk = func(decls []syntax.Decl) *syntax.CallExpr {
		for _, d := range decls {
			switch decl := d.(type) {
			case *syntax.ExprStmt:
				if call, ok := decl.X.(*syntax.CallExpr); ok {
					return call
				}
			case *syntax.ModuleDecl:
				if call := walk(decl.Decls); call != nil {
					return call
				}
			}
		}
		return nil
	}
	call := walk(file.Decls)
	if call == nil {
		t.Fatal("no call statement found")
	}
	return call
}

func TestBind_Hoisting(t *testing.T) {
	file, table := bind(t, `
type Uses = Later;
type Later = string;
`)
	rhs := aliasRHS(t, file, "Uses").(*syntax.TypeRef)
	sym := table.Resolution(rhs)
	if sym == nil {
		t.Fatal("forward reference to hoisted alias did not bind")
	}
	if sym.Name() != "Later" || sym.Kind() != binder.KindAlias {
		t.Errorf("bound to %s %q", sym.Kind(), sym.Name())
	}
}

func TestBind_ScopeShadowing(t *testing.T) {
	file, table := bind(t, `
type T = string;
type Outer = T;
namespace inner {
	type T = number;
	type Inner = T;
}
`)
	outer := table.Resolution(aliasRHS(t, file, "Outer").(*syntax.TypeRef))
	innerSym := table.Resolution(aliasRHS(t, file, "Inner").(*syntax.TypeRef))
	if outer == nil || innerSym == nil {
		t.Fatal("references did not bind")
	}
	if outer.ID() == innerSym.ID() {
		t.Error("shadowed name bound to the same symbol in both scopes")
	}
}

func TestBind_TypeParamShadowsAlias(t *testing.T) {
	file, table := bind(t, `
type T = string;
type Box<T> = T[];
`)
	arr := aliasRHS(t, file, "Box").(*syntax.ArrayType)
	sym := table.Resolution(arr.Elem.(*syntax.TypeRef))
	if sym == nil {
		t.Fatal("type parameter reference did not bind")
	}
	if sym.Kind() != binder.KindTypeParam {
		t.Errorf("T inside Box bound to %s, want type parameter", sym.Kind())
	}
	if table.TypeParamDecl(sym) == nil {
		t.Error("TypeParamDecl returned nil for a bound type parameter")
	}
}

func TestBind_QualifiedNamespaceRef(t *testing.T) {
	file, table := bind(t, `
namespace api {
	type Result<T = string> = { ok: boolean; value: T };
}
type R = api.Result;
`)
	ref := aliasRHS(t, file, "R").(*syntax.TypeRef)
	sym := table.Resolution(ref)
	if sym == nil {
		t.Fatal("qualified reference did not bind")
	}
	params := table.TypeParametersOf(sym)
	if len(params) != 1 || params[0].Default == nil {
		t.Errorf("expected one defaulted type parameter, got %v", params)
	}
}

func TestBind_AmbientStaysUnbound(t *testing.T) {
	file, table := bind(t, `type M = Map<string, number>;`)
	ref := aliasRHS(t, file, "M").(*syntax.TypeRef)
	if table.Resolution(ref) != nil {
		t.Error("undeclared ambient name should stay unbound")
	}
	if table.ResolveSymbol(ref) != nil {
		t.Error("ResolveSymbol must return a nil interface for unbound refs")
	}
}

func TestBind_AmbiguousDeclaration(t *testing.T) {
	file, table := bind(t, `
function pick<T = string>(v: T): T;
function pick<T = number>(v: T): T;
pick<string>("x");
`)
	call := firstCall(t, file)
	sym := table.Resolution(call.Fun)
	if sym == nil {
		t.Fatal("callee did not bind")
	}
	if !sym.Ambiguous() {
		t.Error("redeclared function should be ambiguous")
	}
	if table.TypeParametersOf(sym) != nil {
		t.Error("ambiguous symbol must report no type parameters")
	}
}

func TestBind_NamespaceMemberCallee(t *testing.T) {
	file, table := bind(t, `
namespace util {
	function id<T = unknown>(v: T): T {}
}
util.id<string>("x");
`)
	call := firstCall(t, file)
	sym := table.Resolution(call.Fun)
	if sym == nil {
		t.Fatal("namespace member callee did not bind")
	}
	if sym.Kind() != binder.KindFunc || sym.Name() != "id" {
		t.Errorf("bound to %s %q", sym.Kind(), sym.Name())
	}
}

func TestBind_IsAnyOrUnknown(t *testing.T) {
	file, table := bind(t, `
const loose: any = x;
const strict: Wrapper = y;
use(loose, strict);
`)
	call := firstCall(t, file)
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 call arguments, got %d", len(call.Args))
	}
	looseSym := table.Resolution(call.Args[0])
	strictSym := table.Resolution(call.Args[1])
	if looseSym == nil || strictSym == nil {
		t.Fatal("argument references did not bind")
	}
	if !table.IsAnyOrUnknown(looseSym) {
		t.Error("any-typed variable should be reported")
	}
	if table.IsAnyOrUnknown(strictSym) {
		t.Error("concretely typed variable should not be reported")
	}
}
