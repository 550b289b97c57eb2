package analyzer

import "github.com/tsslim/tsslim/internal/syntax"

// walkDecl visits every position in a declaration that can hold a
// generic instantiation: heritage clauses, type annotations, alias
// right-hand sides, and the expressions inside bodies.
func (a *analysis) walkDecl(d syntax.Decl) {
	switch decl := d.(type) {
	case *syntax.TypeAliasDecl:
		a.walkParams(decl.TypeParams)
		a.walkType(decl.RHS)

	case *syntax.InterfaceDecl:
		a.walkParams(decl.TypeParams)
		for _, ref := range decl.Extends {
			a.visit(SiteExtends, ref, ref.Args)
			a.walkRefArgs(ref)
		}
		for _, m := range decl.Members {
			a.walkType(m.Type)
		}

	case *syntax.ClassDecl:
		a.walkParams(decl.TypeParams)
		if ref := decl.Extends; ref != nil {
			a.visit(SiteExtends, ref, ref.Args)
			a.walkRefArgs(ref)
		}
		for _, ref := range decl.Implements {
			a.visit(SiteImplements, ref, ref.Args)
			a.walkRefArgs(ref)
		}
		for _, s := range decl.Body {
			a.walkDecl(s)
		}

	case *syntax.FuncDecl:
		a.walkParams(decl.TypeParams)
		for _, p := range decl.Params {
			a.walkType(p.Type)
		}
		a.walkType(decl.Result)
		for _, s := range decl.Body {
			a.walkDecl(s)
		}

	case *syntax.VarDecl:
		a.walkType(decl.Type)
		a.walkExpr(decl.Init)

	case *syntax.ModuleDecl:
		for _, s := range decl.Decls {
			a.walkDecl(s)
		}

	case *syntax.ExprStmt:
		a.walkExpr(decl.X)
	}
}

func (a *analysis) walkParams(params []*syntax.TypeParam) {
	for _, p := range params {
		a.walkType(p.Constraint)
		a.walkType(p.Default)
	}
}

// walkType visits a type position. Every instantiated type reference
// is itself a candidate site, including references nested inside the
// arguments of another.
func (a *analysis) walkType(expr syntax.TypeExpr) {
	switch t := expr.(type) {
	case *syntax.TypeRef:
		a.visit(SiteTypeRef, t, t.Args)
		a.walkRefArgs(t)
	case *syntax.UnionType:
		for _, m := range t.Members {
			a.walkType(m)
		}
	case *syntax.IntersectionType:
		for _, m := range t.Members {
			a.walkType(m)
		}
	case *syntax.TupleType:
		for _, e := range t.Elems {
			a.walkType(e)
		}
	case *syntax.ArrayType:
		a.walkType(t.Elem)
	case *syntax.ObjectType:
		for _, m := range t.Members {
			a.walkType(m.Type)
		}
	case *syntax.FuncType:
		for _, p := range t.Params {
			a.walkType(p.Type)
		}
		a.walkType(t.Result)
	}
}

func (a *analysis) walkRefArgs(ref *syntax.TypeRef) {
	if ref.Args == nil {
		return
	}
	for _, arg := range ref.Args.Args {
		a.walkType(arg)
	}
}

func (a *analysis) walkExpr(e syntax.Expr) {
	switch ex := e.(type) {
	case *syntax.MemberExpr:
		a.walkExpr(ex.X)
	case *syntax.CallExpr:
		a.visit(SiteCall, ex.Fun, ex.TypeArgs)
		a.walkExpr(ex.Fun)
		a.walkTypeArgs(ex.TypeArgs)
		for _, arg := range ex.Args {
			a.walkExpr(arg)
		}
	case *syntax.NewExpr:
		a.visit(SiteNew, ex.Fun, ex.TypeArgs)
		a.walkExpr(ex.Fun)
		a.walkTypeArgs(ex.TypeArgs)
		for _, arg := range ex.Args {
			a.walkExpr(arg)
		}
	}
}

func (a *analysis) walkTypeArgs(list *syntax.TypeArgList) {
	if list == nil {
		return
	}
	for _, arg := range list.Args {
		a.walkType(arg)
	}
}
