package syntax_test

import (
	"testing"

	"github.com/tsslim/tsslim/internal/syntax"
)

func parse(t *testing.T, text string) *syntax.File {
	t.Helper()
	return syntax.Parse(syntax.NewSource("test.ts", text))
}

func TestParse_TypeAliasWithDefaults(t *testing.T) {
	file := parse(t, `type Box<T = string, U extends object = { a: T }> = [T, U];`)
	if len(file.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(file.Decls))
	}
	alias, ok := file.Decls[0].(*syntax.TypeAliasDecl)
	if !ok {
		t.Fatalf("expected TypeAliasDecl, got %T", file.Decls[0])
	}
	if alias.Name.Name != "Box" {
		t.Errorf("expected name Box, got %q", alias.Name.Name)
	}
	if len(alias.TypeParams) != 2 {
		t.Fatalf("expected 2 type params, got %d", len(alias.TypeParams))
	}
	if alias.TypeParams[0].Default == nil {
		t.Error("T should have a default")
	}
	if alias.TypeParams[1].Constraint == nil || alias.TypeParams[1].Default == nil {
		t.Error("U should have both constraint and default")
	}
	if _, ok := alias.RHS.(*syntax.TupleType); !ok {
		t.Errorf("expected tuple RHS, got %T", alias.RHS)
	}
}

func TestParse_TypeArgBracketSpan(t *testing.T) {
	text := `const m: Map<string, number> = x;`
	file := parse(t, text)
	v, ok := file.Decls[0].(*syntax.VarDecl)
	if !ok {
		t.Fatalf("expected VarDecl, got %T", file.Decls[0])
	}
	ref, ok := v.Type.(*syntax.TypeRef)
	if !ok {
		t.Fatalf("expected TypeRef annotation, got %T", v.Type)
	}
	if ref.Args == nil {
		t.Fatal("expected type arguments")
	}
	got := text[ref.Args.Brackets.Start:ref.Args.Brackets.End]
	if got != "<string, number>" {
		t.Errorf("bracket span slices to %q", got)
	}
}

func TestParse_ClassHeritage(t *testing.T) {
	file := parse(t, `
class Repo<T> extends Base<T, string> implements Reader<T>, Writer<T> {
	save(v: T): void {
		log<T>(v);
	}
}`)
	cls, ok := file.Decls[0].(*syntax.ClassDecl)
	if !ok {
		t.Fatalf("expected ClassDecl, got %T", file.Decls[0])
	}
	if cls.Extends == nil || cls.Extends.QualifiedName() != "Base" {
		t.Fatalf("missing extends clause: %+v", cls.Extends)
	}
	if len(cls.Extends.TypeArgs()) != 2 {
		t.Errorf("expected 2 extends type args, got %d", len(cls.Extends.TypeArgs()))
	}
	if len(cls.Implements) != 2 {
		t.Fatalf("expected 2 implements refs, got %d", len(cls.Implements))
	}
	if cls.Implements[1].QualifiedName() != "Writer" {
		t.Errorf("second implements ref is %q", cls.Implements[1].QualifiedName())
	}
	if len(cls.Body) == 0 {
		t.Error("method body statements were dropped")
	}
}

func TestParse_CallTypeArgsVsComparison(t *testing.T) {
	// `f<string>(x)` is a generic call; `a < b` must not be.
	file := parse(t, `f<string>(x); const r = a < b;`)
	if len(file.Decls) == 0 {
		t.Fatal("no decls parsed")
	}
	stmt, ok := file.Decls[0].(*syntax.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", file.Decls[0])
	}
	call, ok := stmt.X.(*syntax.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", stmt.X)
	}
	if call.TypeArgs == nil || len(call.TypeArgs.Args) != 1 {
		t.Error("call lost its type argument list")
	}
	// the comparison must not produce a call with type args
	for _, d := range file.Decls[1:] {
		v, ok := d.(*syntax.VarDecl)
		if !ok {
			continue
		}
		if c, ok := v.Init.(*syntax.CallExpr); ok && c.TypeArgs != nil {
			t.Error("comparison misparsed as generic call")
		}
	}
}

func TestParse_NewExpr(t *testing.T) {
	file := parse(t, `const c = new Cache<string>();`)
	v := file.Decls[0].(*syntax.VarDecl)
	n, ok := v.Init.(*syntax.NewExpr)
	if !ok {
		t.Fatalf("expected NewExpr initializer, got %T", v.Init)
	}
	if n.TypeArgs == nil || len(n.TypeArgs.Args) != 1 {
		t.Error("new expression lost its type arguments")
	}
}

func TestParse_DeclareModule(t *testing.T) {
	file := parse(t, `
declare module "lib" {
	type Inner<T = number> = T[];
}
namespace util {
	interface Opt<T> { value?: T }
}`)
	if len(file.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(file.Decls))
	}
	mod, ok := file.Decls[0].(*syntax.ModuleDecl)
	if !ok {
		t.Fatalf("expected ModuleDecl, got %T", file.Decls[0])
	}
	if mod.Name != `"lib"` {
		t.Errorf("module name is %q", mod.Name)
	}
	if len(mod.Decls) != 1 {
		t.Errorf("expected 1 inner decl, got %d", len(mod.Decls))
	}
	ns := file.Decls[1].(*syntax.ModuleDecl)
	if ns.Name != "util" {
		t.Errorf("namespace name is %q", ns.Name)
	}
	iface, ok := ns.Decls[0].(*syntax.InterfaceDecl)
	if !ok {
		t.Fatalf("expected InterfaceDecl, got %T", ns.Decls[0])
	}
	if len(iface.Members) != 1 || !iface.Members[0].Optional {
		t.Error("optional property signature not captured")
	}
}

func TestParse_QualifiedTypeRef(t *testing.T) {
	file := parse(t, `const x: ns.sub.Thing<number> = y;`)
	v := file.Decls[0].(*syntax.VarDecl)
	ref := v.Type.(*syntax.TypeRef)
	if ref.QualifiedName() != "ns.sub.Thing" {
		t.Errorf("qualified name is %q", ref.QualifiedName())
	}
	if len(ref.TypeArgs()) != 1 {
		t.Errorf("expected 1 type arg, got %d", len(ref.TypeArgs()))
	}
}

func TestParse_UnionAndFunctionTypes(t *testing.T) {
	file := parse(t, `type Handler<T = string | number> = (v: T) => void;`)
	alias := file.Decls[0].(*syntax.TypeAliasDecl)
	u, ok := alias.TypeParams[0].Default.(*syntax.UnionType)
	if !ok {
		t.Fatalf("expected union default, got %T", alias.TypeParams[0].Default)
	}
	if len(u.Members) != 2 {
		t.Errorf("expected 2 union members, got %d", len(u.Members))
	}
	if _, ok := alias.RHS.(*syntax.FuncType); !ok {
		t.Errorf("expected function type RHS, got %T", alias.RHS)
	}
}

func TestParse_TolerantRecovery(t *testing.T) {
	// Unsupported syntax before and after must not hide the alias.
	file := parse(t, `
@decorator
enum Color { Red, Green }
type Good<T = string> = T[];
let [a, b] = pair;
`)
	found := false
	for _, d := range file.Decls {
		if alias, ok := d.(*syntax.TypeAliasDecl); ok && alias.Name.Name == "Good" {
			found = true
		}
	}
	if !found {
		t.Error("declaration after unsupported syntax was lost")
	}
}

func TestParse_ArraySuffixBinding(t *testing.T) {
	file := parse(t, `type L<T> = Map<string, T>[];`)
	alias := file.Decls[0].(*syntax.TypeAliasDecl)
	arr, ok := alias.RHS.(*syntax.ArrayType)
	if !ok {
		t.Fatalf("expected ArrayType, got %T", alias.RHS)
	}
	if _, ok := arr.Elem.(*syntax.TypeRef); !ok {
		t.Errorf("array element is %T", arr.Elem)
	}
}

func TestSource_LineCol(t *testing.T) {
	src := syntax.NewSource("t.ts", "ab\ncd\nef")
	line, col := src.LineCol(4) // 'd'
	if line != 2 || col != 2 {
		t.Errorf("LineCol(4) = %d,%d", line, col)
	}
	if src.LineCount() != 3 {
		t.Errorf("LineCount = %d", src.LineCount())
	}
	if src.LineText(2) != "cd" {
		t.Errorf("LineText(2) = %q", src.LineText(2))
	}
}
