package syntax

import "strings"

// Node is any positioned syntax tree node.
type Node interface {
	Span() Span
}

// File is the parsed form of one source file.
type File struct {
	Source *Source
	Decls  []Decl
	Errors []ParseError
}

func (f *File) Span() Span { return Span{0, len(f.Source.Text)} }

// ParseError records a location where the parser had to skip input.
type ParseError struct {
	Offset  int
	Message string
}

// Ident is a single identifier occurrence.
type Ident struct {
	Name string
	Pos  Span
}

func (i *Ident) Span() Span { return i.Pos }

// Decl is a top-level or block-level declaration.
type Decl interface {
	Node
	declNode()
}

// TypeParam is one declared type parameter, optionally constrained
// and defaulted: `T extends C = D`.
type TypeParam struct {
	Name       *Ident
	Constraint TypeExpr // nil if absent
	Default    TypeExpr // nil if absent
	Pos        Span
}

func (p *TypeParam) Span() Span { return p.Pos }

// TypeAliasDecl is `type Name<...> = RHS;`.
type TypeAliasDecl struct {
	Name       *Ident
	TypeParams []*TypeParam
	RHS        TypeExpr
	Pos        Span
}

// InterfaceDecl is `interface Name<...> extends A, B<X> { ... }`.
// Members keep only the property signatures whose annotations the
// analysis can see; methods and index signatures are skipped.
type InterfaceDecl struct {
	Name       *Ident
	TypeParams []*TypeParam
	Extends    []*TypeRef
	Members    []*ObjectMember
	Pos        Span
}

// ClassDecl is `class Name<...> extends B<X> implements I<Y> { ... }`.
// Body holds the statements found inside method bodies, flattened:
// the analysis only needs the expressions they contain.
type ClassDecl struct {
	Name       *Ident
	TypeParams []*TypeParam
	Extends    *TypeRef // nil if absent
	Implements []*TypeRef
	Body       []Stmt
	Pos        Span
}

// FuncDecl is `function name<...>(params): ret { ... }`.
type FuncDecl struct {
	Name       *Ident
	TypeParams []*TypeParam
	Params     []*Param
	Result     TypeExpr // nil if absent
	Body       []Stmt
	Pos        Span
}

// Param is one function parameter with an optional type annotation.
type Param struct {
	Name *Ident
	Type TypeExpr // nil if absent
	Pos  Span
}

func (p *Param) Span() Span { return p.Pos }

// VarDecl is `const|let|var name: T = init;` (single declarator).
type VarDecl struct {
	Keyword string
	Name    *Ident
	Type    TypeExpr // nil if absent
	Init    Expr     // nil if absent
	Pos     Span
}

// ModuleDecl is `declare module "name" { ... }` or
// `namespace Name { ... }`. Each module body is its own lexical
// scope.
type ModuleDecl struct {
	Name  string // quoted module name or namespace identifier
	Decls []Decl
	Pos   Span
}

// ExprStmt wraps an expression used as a statement or declaration.
type ExprStmt struct {
	X   Expr
	Pos Span
}

func (d *TypeAliasDecl) Span() Span { return d.Pos }
func (d *InterfaceDecl) Span() Span { return d.Pos }
func (d *ClassDecl) Span() Span     { return d.Pos }
func (d *FuncDecl) Span() Span      { return d.Pos }
func (d *VarDecl) Span() Span       { return d.Pos }
func (d *ModuleDecl) Span() Span    { return d.Pos }
func (d *ExprStmt) Span() Span      { return d.Pos }

func (*TypeAliasDecl) declNode() {}
func (*InterfaceDecl) declNode() {}
func (*ClassDecl) declNode()     {}
func (*FuncDecl) declNode()      {}
func (*VarDecl) declNode()       {}
func (*ModuleDecl) declNode()    {}
func (*ExprStmt) declNode()      {}

// Stmt is a statement inside a function or method body. The subset
// models only what the analysis consumes: nested declarations and
// expressions.
type Stmt = Decl

// TypeExpr is a syntactic type as written in the source.
type TypeExpr interface {
	Node
	typeNode()
}

// TypeArgList is an explicit `<...>` type-argument list. Brackets
// holds the span from the opening `<` through the closing `>`,
// inclusive, which is exactly the range a full removal deletes.
type TypeArgList struct {
	Args     []TypeExpr
	Brackets Span
}

func (l *TypeArgList) Span() Span { return l.Brackets }

// TypeRef is a (possibly qualified, possibly instantiated) reference
// to a named type: `Name`, `ns.Name`, `Name<A, B>`.
type TypeRef struct {
	Parts []*Ident     // qualified name segments, at least one
	Args  *TypeArgList // nil when written without type arguments
	Pos   Span
}

// QualifiedName joins the reference's name segments with dots.
func (r *TypeRef) QualifiedName() string {
	parts := make([]string, len(r.Parts))
	for i, p := range r.Parts {
		parts[i] = p.Name
	}
	return strings.Join(parts, ".")
}

// Head returns the first name segment.
func (r *TypeRef) Head() *Ident { return r.Parts[0] }

// TypeArgs returns the explicit type arguments, or nil.
func (r *TypeRef) TypeArgs() []TypeExpr {
	if r.Args == nil {
		return nil
	}
	return r.Args.Args
}

// KeywordType is a built-in keyword type such as `string` or `any`.
type KeywordType struct {
	Keyword string
	Pos     Span
}

// LiteralType is a literal used as a type: `"red"`, `42`, `true`.
type LiteralType struct {
	Literal string
	Pos     Span
}

// UnionType is `A | B | ...`.
type UnionType struct {
	Members []TypeExpr
	Pos     Span
}

// IntersectionType is `A & B & ...`.
type IntersectionType struct {
	Members []TypeExpr
	Pos     Span
}

// TupleType is `[A, B, ...]`.
type TupleType struct {
	Elems []TypeExpr
	Pos   Span
}

// ArrayType is `T[]`.
type ArrayType struct {
	Elem TypeExpr
	Pos  Span
}

// ObjectType is `{ a: A; b?: B }`.
type ObjectType struct {
	Members []*ObjectMember
	Pos     Span
}

// ObjectMember is one property signature of an object type.
type ObjectMember struct {
	Name     string
	Optional bool
	Type     TypeExpr
	Pos      Span
}

func (m *ObjectMember) Span() Span { return m.Pos }

// FuncType is `(a: A, b: B) => R`.
type FuncType struct {
	Params []*Param
	Result TypeExpr
	Pos    Span
}

func (t *TypeRef) Span() Span          { return t.Pos }
func (t *KeywordType) Span() Span      { return t.Pos }
func (t *LiteralType) Span() Span      { return t.Pos }
func (t *UnionType) Span() Span        { return t.Pos }
func (t *IntersectionType) Span() Span { return t.Pos }
func (t *TupleType) Span() Span        { return t.Pos }
func (t *ArrayType) Span() Span        { return t.Pos }
func (t *ObjectType) Span() Span       { return t.Pos }
func (t *FuncType) Span() Span         { return t.Pos }

func (*TypeRef) typeNode()          {}
func (*KeywordType) typeNode()      {}
func (*LiteralType) typeNode()      {}
func (*UnionType) typeNode()        {}
func (*IntersectionType) typeNode() {}
func (*TupleType) typeNode()        {}
func (*ArrayType) typeNode()        {}
func (*ObjectType) typeNode()       {}
func (*FuncType) typeNode()         {}

// Expr is a value-level expression. Only the shapes that can carry
// explicit type-argument lists (and their subexpressions) are
// modeled.
type Expr interface {
	Node
	exprNode()
}

// IdentExpr is an identifier in expression position.
type IdentExpr struct {
	Name string
	Pos  Span
}

// MemberExpr is `X.Sel`.
type MemberExpr struct {
	X   Expr
	Sel string
	Pos Span
}

// CallExpr is `fn<T, U>(args)`, type arguments optional.
type CallExpr struct {
	Fun      Expr
	TypeArgs *TypeArgList // nil when not supplied
	Args     []Expr
	Pos      Span
}

// NewExpr is `new C<T>(args)`, type arguments and argument list
// optional.
type NewExpr struct {
	Fun      Expr
	TypeArgs *TypeArgList
	Args     []Expr
	Pos      Span
}

// LitExpr is a string, number, or other literal in expression
// position. Opaque to the analysis.
type LitExpr struct {
	Text string
	Pos  Span
}

func (e *IdentExpr) Span() Span  { return e.Pos }
func (e *MemberExpr) Span() Span { return e.Pos }
func (e *CallExpr) Span() Span   { return e.Pos }
func (e *NewExpr) Span() Span    { return e.Pos }
func (e *LitExpr) Span() Span    { return e.Pos }

func (*IdentExpr) exprNode()  {}
func (*MemberExpr) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*NewExpr) exprNode()    {}
func (*LitExpr) exprNode()    {}
