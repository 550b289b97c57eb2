package types

import (
	"fmt"
	"sort"
	"strings"
)

// Resolved is the canonical, alias-free form of a type expression.
// Structural variants compare by shape; Opaque and Unresolvable are
// sentinels that compare equal to nothing, including themselves —
// under-approximating equivalence is the safe direction for a check
// that deletes source text.
type Resolved interface {
	// Canonical renders a form that is identical for structurally
	// identical types and distinct otherwise. Union, intersection,
	// and object members are ordered canonically before rendering.
	Canonical() string

	resolvedForm()
}

// Opaque marks resolution that reached any or unknown.
type Opaque struct{}

// Unresolvable marks resolution that failed: an unbound reference to
// a type parameter, a cyclic alias chain, or a form outside the
// modeled subset.
type Unresolvable struct{}

// Prim is a primitive keyword type: string, number, boolean, void...
type Prim struct {
	Name string
}

// Literal is a literal type: "red", 42, true.
type Literal struct {
	Text string
}

// Named is a reference to a non-alias named type, possibly
// instantiated: Map<string, string>, MyInterface<T>. Sym is nil for
// ambient globals, which compare by qualified name; bound references
// compare by declaration identity.
type Named struct {
	Sym  Symbol
	Name string
	Args []Resolved
}

// Member is one property of an Object form.
type Member struct {
	Name     string
	Optional bool
	Type     Resolved
}

// Object is a structural object form with members sorted by name.
type Object struct {
	Members []Member
}

// Tuple is a positional element list.
type Tuple struct {
	Elems []Resolved
}

// Array is T[].
type Array struct {
	Elem Resolved
}

// Union members are kept in canonical order.
type Union struct {
	Members []Resolved
}

// Intersection members are kept in canonical order.
type Intersection struct {
	Members []Resolved
}

// Func is a function type shape: parameter types and result.
type Func struct {
	Params []Resolved
	Result Resolved
}

func (Opaque) resolvedForm()       {}
func (Unresolvable) resolvedForm() {}
func (Prim) resolvedForm()         {}
func (Literal) resolvedForm()      {}
func (Named) resolvedForm()        {}
func (Object) resolvedForm()       {}
func (Tuple) resolvedForm()        {}
func (Array) resolvedForm()        {}
func (Union) resolvedForm()        {}
func (Intersection) resolvedForm() {}
func (Func) resolvedForm()         {}

func (Opaque) Canonical() string       { return "<opaque>" }
func (Unresolvable) Canonical() string { return "<unresolvable>" }
func (p Prim) Canonical() string       { return p.Name }
func (l Literal) Canonical() string    { return "lit:" + l.Text }

func (n Named) Canonical() string {
	var sb strings.Builder
	if n.Sym != nil {
		fmt.Fprintf(&sb, "ref#%d:%s", n.Sym.ID(), n.Sym.Name())
	} else {
		sb.WriteString("ambient:" + n.Name)
	}
	writeArgs(&sb, n.Args)
	return sb.String()
}

func (o Object) Canonical() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, m := range o.Members {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(m.Name)
		if m.Optional {
			sb.WriteString("?")
		}
		sb.WriteString(": ")
		sb.WriteString(m.Type.Canonical())
	}
	sb.WriteString("}")
	return sb.String()
}

func (t Tuple) Canonical() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.Canonical()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (a Array) Canonical() string { return a.Elem.Canonical() + "[]" }

func (u Union) Canonical() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.Canonical()
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

func (x Intersection) Canonical() string {
	parts := make([]string, len(x.Members))
	for i, m := range x.Members {
		parts[i] = m.Canonical()
	}
	return "(" + strings.Join(parts, " & ") + ")"
}

func (f Func) Canonical() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Canonical()
	}
	return "(" + strings.Join(parts, ", ") + ") => " + f.Result.Canonical()
}

func writeArgs(sb *strings.Builder, args []Resolved) {
	if len(args) == 0 {
		return
	}
	sb.WriteString("<")
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.Canonical())
	}
	sb.WriteString(">")
}

// IsConcrete reports whether r is a structural form rather than a
// sentinel.
func IsConcrete(r Resolved) bool {
	switch r.(type) {
	case Opaque, Unresolvable, nil:
		return false
	}
	return true
}

// Equal reports structural equivalence. Both sides must be concrete;
// a sentinel on either side is never equivalent to anything.
func Equal(a, b Resolved) bool {
	if !IsConcrete(a) || !IsConcrete(b) {
		return false
	}
	return a.Canonical() == b.Canonical()
}

// sortCanonical orders members by their canonical forms so unions and
// intersections compare independently of written order.
func sortCanonical(members []Resolved) {
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Canonical() < members[j].Canonical()
	})
}

// sortMembers orders object members by property name so written
// order does not affect comparison.
func sortMembers(members []Member) {
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})
}

// dedupCanonical removes adjacent duplicates from a canonically
// sorted member list (string | string collapses like the checker
// would collapse it).
func dedupCanonical(members []Resolved) []Resolved {
	out := members[:0]
	for _, m := range members {
		if len(out) == 0 || out[len(out)-1].Canonical() != m.Canonical() {
			out = append(out, m)
		}
	}
	return out
}
