package types

import "github.com/tsslim/tsslim/internal/syntax"

// Bindings maps type-parameter declarations to the resolved types
// they are instantiated with on the current resolution path.
type Bindings map[*syntax.TypeParam]Resolved

// Resolver canonicalizes type expressions, unwrapping alias chains
// through the Host. A Resolver is file-local and single-threaded; the
// nullary-alias cache lives for one traversal (a generic alias's
// resolution depends on its instantiation, so only aliases without
// type parameters are cacheable by declaration identity).
type Resolver struct {
	host Host

	aliasCache map[int]Resolved // symbol ID -> resolution, nullary aliases only
}

// NewResolver creates a resolver backed by the given host.
func NewResolver(host Host) *Resolver {
	return &Resolver{host: host, aliasCache: make(map[int]Resolved)}
}

// Resolve canonicalizes expr with no type-parameter bindings in
// scope. Any type-parameter reference therefore resolves to
// Unresolvable.
func (r *Resolver) Resolve(expr syntax.TypeExpr) Resolved {
	return r.ResolveWith(expr, nil)
}

// ResolveWith canonicalizes expr with the given type-parameter
// bindings in scope.
func (r *Resolver) ResolveWith(expr syntax.TypeExpr, env Bindings) Resolved {
	return r.resolve(expr, env, make(map[int]bool))
}

// Equivalent reports whether a and b resolve to the same concrete
// structural form. False when either side is opaque (any/unknown) or
// unresolvable: a missed simplification is acceptable, an incorrect
// deletion is not.
func (r *Resolver) Equivalent(a, b syntax.TypeExpr) bool {
	return Equal(r.Resolve(a), r.Resolve(b))
}

// resolve walks one type expression. visited holds the alias symbol
// IDs entered on the current path; re-entering one aborts with
// Unresolvable rather than looping, since alias declarations can be
// mutually or self-referential in ill-formed input.
func (r *Resolver) resolve(expr syntax.TypeExpr, env Bindings, visited map[int]bool) Resolved {
	switch t := expr.(type) {
	case nil:
		return Unresolvable{}

	case *syntax.KeywordType:
		if t.Keyword == "any" || t.Keyword == "unknown" {
			return Opaque{}
		}
		return Prim{Name: t.Keyword}

	case *syntax.LiteralType:
		return Literal{Text: t.Literal}

	case *syntax.TypeRef:
		return r.resolveRef(t, env, visited)

	case *syntax.UnionType:
		members, sentinel := r.resolveAll(t.Members, env, visited)
		if sentinel != nil {
			return sentinel
		}
		sortCanonical(members)
		members = dedupCanonical(members)
		if len(members) == 1 {
			return members[0]
		}
		return Union{Members: members}

	case *syntax.IntersectionType:
		members, sentinel := r.resolveAll(t.Members, env, visited)
		if sentinel != nil {
			return sentinel
		}
		sortCanonical(members)
		members = dedupCanonical(members)
		if len(members) == 1 {
			return members[0]
		}
		return Intersection{Members: members}

	case *syntax.TupleType:
		elems, sentinel := r.resolveAll(t.Elems, env, visited)
		if sentinel != nil {
			return sentinel
		}
		return Tuple{Elems: elems}

	case *syntax.ArrayType:
		elem := r.resolve(t.Elem, env, visited)
		if !IsConcrete(elem) {
			return elem
		}
		return Array{Elem: elem}

	case *syntax.ObjectType:
		return r.resolveObject(t.Members, env, visited)

	case *syntax.FuncType:
		params := make([]Resolved, len(t.Params))
		for i, p := range t.Params {
			params[i] = r.resolve(p.Type, env, visited)
			if _, ok := params[i].(Unresolvable); ok {
				return Unresolvable{}
			}
			if _, ok := params[i].(Opaque); ok {
				return Opaque{}
			}
		}
		result := r.resolve(t.Result, env, visited)
		if !IsConcrete(result) {
			return result
		}
		return Func{Params: params, Result: result}
	}
	return Unresolvable{}
}

// resolveAll resolves a member list. The second result is non-nil
// when a sentinel must propagate: Unresolvable dominates Opaque.
func (r *Resolver) resolveAll(exprs []syntax.TypeExpr, env Bindings, visited map[int]bool) ([]Resolved, Resolved) {
	out := make([]Resolved, len(exprs))
	opaque := false
	for i, e := range exprs {
		out[i] = r.resolve(e, env, visited)
		switch out[i].(type) {
		case Unresolvable:
			return nil, Unresolvable{}
		case Opaque:
			opaque = true
		}
	}
	if opaque {
		return nil, Opaque{}
	}
	return out, nil
}

func (r *Resolver) resolveObject(members []*syntax.ObjectMember, env Bindings, visited map[int]bool) Resolved {
	obj := Object{Members: make([]Member, len(members))}
	for i, m := range members {
		mt := r.resolve(m.Type, env, visited)
		if !IsConcrete(mt) {
			return mt
		}
		obj.Members[i] = Member{Name: m.Name, Optional: m.Optional, Type: mt}
	}
	sortMembers(obj.Members)
	return obj
}

func (r *Resolver) resolveRef(ref *syntax.TypeRef, env Bindings, visited map[int]bool) Resolved {
	sym := r.host.ResolveSymbol(ref)
	if sym == nil {
		// Unbound references are assumed ambient (Map, Array, Promise
		// and friends from the standard library) and compare by name.
		args, sentinel := r.resolveAll(ref.TypeArgs(), env, visited)
		if sentinel != nil {
			return sentinel
		}
		return Named{Name: ref.QualifiedName(), Args: args}
	}

	// A reference to a type parameter means the supplied bindings
	// decide; an unbound parameter (including a forward reference to
	// a later parameter of the same declaration) stays unresolvable.
	if tp := r.host.TypeParamDecl(sym); tp != nil {
		if bound, ok := env[tp]; ok {
			return bound
		}
		return Unresolvable{}
	}

	if r.host.IsAnyOrUnknown(sym) {
		return Opaque{}
	}

	if def := r.host.AliasDefinitionOf(sym); def != nil {
		return r.resolveAlias(ref, sym, def, env, visited)
	}

	// Non-alias named declaration: interface, class, enum.
	args, sentinel := r.resolveAll(ref.TypeArgs(), env, visited)
	if sentinel != nil {
		return sentinel
	}
	return Named{Sym: sym, Name: sym.Name(), Args: args}
}

func (r *Resolver) resolveAlias(ref *syntax.TypeRef, sym Symbol, def syntax.TypeExpr, env Bindings, visited map[int]bool) Resolved {
	if visited[sym.ID()] {
		return Unresolvable{}
	}

	params := r.host.TypeParametersOf(sym)
	if len(params) == 0 {
		if cached, ok := r.aliasCache[sym.ID()]; ok {
			return cached
		}
		visited[sym.ID()] = true
		res := r.resolve(def, nil, visited)
		delete(visited, sym.ID())
		r.aliasCache[sym.ID()] = res
		return res
	}

	// Instantiate: arguments resolve in the outer environment, the
	// alias body resolves in the new one. Explicit arguments belong to
	// the referencing expression and resolve before the alias is
	// entered, so a nested self-instantiation like A<A<string>> stays
	// resolvable. Defaults, in contrast, live inside the declaration:
	// they resolve with the alias marked visited, so a default that
	// names its own alias aborts instead of recursing. A missing
	// argument falls back to its parameter default, which may reference
	// parameters bound earlier in the same list.
	args := ref.TypeArgs()
	resolved := make([]Resolved, len(args))
	for i, a := range args {
		resolved[i] = r.resolve(a, env, visited)
	}

	visited[sym.ID()] = true
	inner := make(Bindings, len(params))
	for i, p := range params {
		switch {
		case i < len(args):
			inner[p] = resolved[i]
		case p.Default != nil:
			inner[p] = r.resolve(p.Default, inner, visited)
		default:
			inner[p] = Unresolvable{}
		}
	}
	res := r.resolve(def, inner, visited)
	delete(visited, sym.ID())
	return res
}
