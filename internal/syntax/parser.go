// Package syntax implements a scanner and a tolerant recursive-descent
// parser for the TypeScript subset the analysis consumes: type and
// interface and class declarations with type-parameter defaults,
// heritage clauses, function declarations, variable statements, module
// and namespace blocks, and the expression shapes that can carry
// explicit type-argument lists. Constructs outside the subset are
// skipped, never fatal.
package syntax

import "fmt"

// Parse scans and parses one source file. The returned File always
// has a usable (possibly partial) declaration list; parse problems
// are collected in File.Errors.
func Parse(src *Source) *File {
	p := &parser{src: src, toks: Scan(src.Text)}
	file := &File{Source: src}
	file.Decls = p.parseDecls(TokenEOF)
	file.Errors = p.errs
	return file
}

type parser struct {
	src  *Source
	toks []Token
	i    int
	errs []ParseError
}

func (p *parser) cur() Token  { return p.toks[p.i] }
func (p *parser) peek() Token {
	if p.i+1 < len(p.toks) {
		return p.toks[p.i+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) at(k TokenKind) bool { return p.cur().Kind == k }

func (p *parser) atKeyword(name string) bool {
	t := p.cur()
	return t.Kind == TokenIdent && t.Value == name
}

func (p *parser) advance() Token {
	t := p.toks[p.i]
	if p.i < len(p.toks)-1 {
		p.i++
	}
	return t
}

func (p *parser) expect(k TokenKind) (Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorf("expected %s, found %s", k, p.cur().Kind)
	return p.cur(), false
}

func (p *parser) errorf(format string, args ...any) {
	p.errs = append(p.errs, ParseError{
		Offset:  p.cur().Start,
		Message: fmt.Sprintf(format, args...),
	})
}

// mark/reset implement backtracking for the `<` ambiguity in
// expressions. Errors recorded after a mark are discarded on reset.
func (p *parser) mark() (int, int) { return p.i, len(p.errs) }

func (p *parser) reset(pos, errs int) {
	p.i = pos
	p.errs = p.errs[:errs]
}

func (p *parser) parseDecls(until TokenKind) []Decl {
	var decls []Decl
	for !p.at(until) && !p.at(TokenEOF) {
		before := p.i
		if d := p.parseDecl(); d != nil {
			decls = append(decls, d)
		}
		if p.i == before {
			p.advance() // ensure progress on unparseable input
		}
	}
	return decls
}

// parseDecl parses one declaration or statement. Returns nil when the
// input had to be skipped.
func (p *parser) parseDecl() Decl {
	// Modifiers carry no meaning for the analysis.
	for p.atKeyword("export") || p.atKeyword("declare") || p.atKeyword("abstract") || p.atKeyword("async") || p.atKeyword("default") {
		// `declare module` needs the keyword to pick the module form,
		// everything else is skipped outright.
		if p.atKeyword("declare") && p.peek().Kind == TokenIdent &&
			(p.peek().Value == "module" || p.peek().Value == "namespace" || p.peek().Value == "global") {
			p.advance()
			break
		}
		p.advance()
	}

	switch {
	case p.atKeyword("type"):
		return p.parseTypeAlias()
	case p.atKeyword("interface"):
		return p.parseInterface()
	case p.atKeyword("class"):
		return p.parseClass()
	case p.atKeyword("function"):
		return p.parseFunc()
	case p.atKeyword("const") || p.atKeyword("let") || p.atKeyword("var"):
		return p.parseVar()
	case p.atKeyword("module") || p.atKeyword("namespace") || p.atKeyword("global"):
		return p.parseModule()
	case p.atKeyword("return"):
		p.advance()
		if p.at(TokenSemi) || p.at(TokenRBrace) {
			if p.at(TokenSemi) {
				p.advance()
			}
			return nil
		}
		return p.parseExprStmt()
	case p.atKeyword("if") || p.atKeyword("while") || p.atKeyword("for") || p.atKeyword("switch"):
		p.advance()
		p.skipParens()
		return nil
	case p.atKeyword("else"):
		p.advance()
		return nil
	case p.atKeyword("import"):
		p.skipStatement()
		return nil
	case p.at(TokenLBrace):
		// bare block: flatten into the surrounding body
		p.advance()
		decls := p.parseDecls(TokenRBrace)
		p.expect(TokenRBrace)
		if len(decls) == 1 {
			return decls[0]
		}
		if len(decls) > 1 {
			// keep all by wrapping; a module decl with no name acts
			// as a transparent container for the binder
			return &ModuleDecl{Name: "", Decls: decls}
		}
		return nil
	case p.at(TokenIdent) || p.at(TokenString) || p.at(TokenNumber) || p.at(TokenLParen):
		return p.parseExprStmt()
	}

	p.skipStatement()
	return nil
}

func (p *parser) parseTypeAlias() Decl {
	start := p.advance().Start // `type`
	name, ok := p.expect(TokenIdent)
	if !ok {
		p.skipStatement()
		return nil
	}
	d := &TypeAliasDecl{Name: &Ident{Name: name.Value, Pos: Span{name.Start, name.End}}}
	if p.at(TokenLess) {
		d.TypeParams = p.parseTypeParams()
	}
	if _, ok := p.expect(TokenEquals); !ok {
		p.skipStatement()
		return nil
	}
	d.RHS = p.parseType()
	if p.at(TokenSemi) {
		p.advance()
	}
	d.Pos = Span{start, p.toks[p.i-1].End}
	return d
}

func (p *parser) parseInterface() Decl {
	start := p.advance().Start // `interface`
	name, ok := p.expect(TokenIdent)
	if !ok {
		p.skipStatement()
		return nil
	}
	d := &InterfaceDecl{Name: &Ident{Name: name.Value, Pos: Span{name.Start, name.End}}}
	if p.at(TokenLess) {
		d.TypeParams = p.parseTypeParams()
	}
	if p.atKeyword("extends") {
		p.advance()
		d.Extends = p.parseHeritageRefs()
	}
	if p.at(TokenLBrace) {
		obj := p.parseObjectType()
		d.Members = obj.Members
	}
	d.Pos = Span{start, p.toks[p.i-1].End}
	return d
}

func (p *parser) parseClass() Decl {
	start := p.advance().Start // `class`
	name, ok := p.expect(TokenIdent)
	if !ok {
		p.skipStatement()
		return nil
	}
	d := &ClassDecl{Name: &Ident{Name: name.Value, Pos: Span{name.Start, name.End}}}
	if p.at(TokenLess) {
		d.TypeParams = p.parseTypeParams()
	}
	for p.atKeyword("extends") || p.atKeyword("implements") {
		isExtends := p.cur().Value == "extends"
		p.advance()
		refs := p.parseHeritageRefs()
		if isExtends {
			if len(refs) > 0 {
				d.Extends = refs[0]
			}
		} else {
			d.Implements = append(d.Implements, refs...)
		}
	}
	if p.at(TokenLBrace) {
		d.Body = p.parseClassBody()
	}
	d.Pos = Span{start, p.toks[p.i-1].End}
	return d
}

// parseHeritageRefs parses the comma-separated type references of an
// extends or implements clause.
func (p *parser) parseHeritageRefs() []*TypeRef {
	var refs []*TypeRef
	for p.at(TokenIdent) {
		ref := p.parseTypeRef()
		if ref == nil {
			break
		}
		refs = append(refs, ref)
		if !p.at(TokenComma) {
			break
		}
		p.advance()
	}
	return refs
}

// parseClassBody collects the statements of all method bodies and the
// initializers of all property declarations, flattened. Member
// structure beyond that is irrelevant to the analysis.
func (p *parser) parseClassBody() []Stmt {
	p.expect(TokenLBrace)
	var stmts []Stmt
	for !p.at(TokenRBrace) && !p.at(TokenEOF) {
		before := p.i
		if s := p.parseClassMember(); s != nil {
			stmts = append(stmts, s...)
		}
		if p.i == before {
			p.advance()
		}
	}
	p.expect(TokenRBrace)
	return stmts
}

func (p *parser) parseClassMember() []Stmt {
	for p.at(TokenIdent) {
		switch p.cur().Value {
		case "public", "private", "protected", "static", "readonly", "abstract", "async", "override", "get", "set":
			p.advance()
			continue
		}
		break
	}
	if !p.at(TokenIdent) && !p.at(TokenString) && !p.at(TokenLBracket) {
		p.skipStatement()
		return nil
	}
	if p.at(TokenLBracket) { // index signature or computed name
		p.skipStatement()
		return nil
	}
	p.advance() // member name
	if p.at(TokenQuestion) {
		p.advance()
	}
	if p.at(TokenLess) {
		p.parseTypeParams() // method's own type parameters
	}
	if p.at(TokenLParen) { // method or constructor
		p.parseParams()
		if p.at(TokenColon) {
			p.advance()
			p.parseType()
		}
		if p.at(TokenLBrace) {
			p.advance()
			stmts := p.parseDecls(TokenRBrace)
			p.expect(TokenRBrace)
			return stmts
		}
		if p.at(TokenSemi) {
			p.advance()
		}
		return nil
	}
	// property: optional annotation, optional initializer
	var stmts []Stmt
	if p.at(TokenColon) {
		colon := p.advance()
		t := p.parseType()
		if t != nil {
			stmts = append(stmts, &VarDecl{
				Keyword: "property",
				Type:    t,
				Pos:     Span{colon.Start, p.toks[p.i-1].End},
			})
		}
	}
	if p.at(TokenEquals) {
		p.advance()
		if e := p.parseExpr(); e != nil {
			stmts = append(stmts, &ExprStmt{X: e, Pos: e.Span()})
		}
	}
	if p.at(TokenSemi) {
		p.advance()
	}
	return stmts
}

func (p *parser) parseFunc() Decl {
	start := p.advance().Start // `function`
	name, ok := p.expect(TokenIdent)
	if !ok {
		p.skipStatement()
		return nil
	}
	d := &FuncDecl{Name: &Ident{Name: name.Value, Pos: Span{name.Start, name.End}}}
	if p.at(TokenLess) {
		d.TypeParams = p.parseTypeParams()
	}
	d.Params = p.parseParams()
	if p.at(TokenColon) {
		p.advance()
		d.Result = p.parseType()
	}
	if p.at(TokenLBrace) {
		p.advance()
		d.Body = p.parseDecls(TokenRBrace)
		p.expect(TokenRBrace)
	} else if p.at(TokenSemi) {
		p.advance() // ambient overload signature
	}
	d.Pos = Span{start, p.toks[p.i-1].End}
	return d
}

func (p *parser) parseVar() Decl {
	kw := p.advance()
	name, ok := p.expect(TokenIdent)
	if !ok {
		p.skipStatement()
		return nil
	}
	d := &VarDecl{Keyword: kw.Value, Name: &Ident{Name: name.Value, Pos: Span{name.Start, name.End}}}
	if p.at(TokenQuestion) {
		p.advance()
	}
	if p.at(TokenColon) {
		p.advance()
		d.Type = p.parseType()
	}
	if p.at(TokenEquals) {
		p.advance()
		d.Init = p.parseExpr()
	}
	if d.Init == nil && !p.at(TokenSemi) && !p.at(TokenRBrace) && !p.at(TokenEOF) {
		p.skipStatement()
	} else if p.at(TokenSemi) {
		p.advance()
	}
	d.Pos = Span{kw.Start, p.toks[p.i-1].End}
	return d
}

func (p *parser) parseModule() Decl {
	kw := p.advance() // `module`, `namespace`, or `global`
	d := &ModuleDecl{}
	switch {
	case kw.Value == "global":
		d.Name = "global"
	case p.at(TokenString) || p.at(TokenIdent):
		d.Name = p.advance().Value
		// `namespace A.B` opens nested scopes; the subset flattens
		// the dotted name into one scope.
		for p.at(TokenDot) && p.peek().Kind == TokenIdent {
			p.advance()
			d.Name += "." + p.advance().Value
		}
	default:
		p.skipStatement()
		return nil
	}
	if p.at(TokenLBrace) {
		p.advance()
		d.Decls = p.parseDecls(TokenRBrace)
		p.expect(TokenRBrace)
	}
	d.Pos = Span{kw.Start, p.toks[p.i-1].End}
	return d
}

func (p *parser) parseExprStmt() Decl {
	var exprs []Expr
	for {
		e := p.parseExpr()
		if e != nil {
			exprs = append(exprs, e)
		}
		// assignments keep both sides visible to the site walk
		if e != nil && p.at(TokenEquals) {
			p.advance()
			continue
		}
		break
	}
	if p.at(TokenSemi) {
		p.advance()
	} else if !p.at(TokenRBrace) && !p.at(TokenEOF) {
		p.skipStatement()
	}
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return &ExprStmt{X: exprs[0], Pos: exprs[0].Span()}
	}
	stmts := make([]Decl, len(exprs))
	for i, e := range exprs {
		stmts[i] = &ExprStmt{X: e, Pos: e.Span()}
	}
	return &ModuleDecl{Name: "", Decls: stmts, Pos: Span{exprs[0].Span().Start, exprs[len(exprs)-1].Span().End}}
}

// --- type parameters and parameters ---

func (p *parser) parseTypeParams() []*TypeParam {
	p.expect(TokenLess)
	var params []*TypeParam
	for !p.at(TokenGreater) && !p.at(TokenEOF) {
		name, ok := p.expect(TokenIdent)
		if !ok {
			p.skipTo(TokenGreater)
			break
		}
		tp := &TypeParam{Name: &Ident{Name: name.Value, Pos: Span{name.Start, name.End}}}
		if p.atKeyword("extends") {
			p.advance()
			tp.Constraint = p.parseType()
		}
		if p.at(TokenEquals) {
			p.advance()
			tp.Default = p.parseType()
		}
		tp.Pos = Span{name.Start, p.toks[p.i-1].End}
		params = append(params, tp)
		if p.at(TokenComma) {
			p.advance()
		}
	}
	p.expect(TokenGreater)
	return params
}

func (p *parser) parseParams() []*Param {
	p.expect(TokenLParen)
	var params []*Param
	for !p.at(TokenRParen) && !p.at(TokenEOF) {
		start := p.cur().Start
		if p.at(TokenOther) { // rest `...` scans as Other tokens
			p.advance()
			continue
		}
		if p.at(TokenDot) {
			p.advance()
			continue
		}
		name, ok := p.expect(TokenIdent)
		if !ok {
			p.skipTo(TokenRParen)
			break
		}
		param := &Param{Name: &Ident{Name: name.Value, Pos: Span{name.Start, name.End}}}
		if p.at(TokenQuestion) {
			p.advance()
		}
		if p.at(TokenColon) {
			p.advance()
			param.Type = p.parseType()
		}
		if p.at(TokenEquals) {
			p.advance()
			p.parseExpr()
		}
		param.Pos = Span{start, p.toks[p.i-1].End}
		params = append(params, param)
		if p.at(TokenComma) {
			p.advance()
		}
	}
	p.expect(TokenRParen)
	return params
}

// --- skipping helpers ---

// skipStatement advances to the next statement boundary: a `;` at
// bracket depth zero (consumed), a `}` closing the current block
// (not consumed), or the end of a balanced `{ ... }` group entered
// during the skip (consumed) so a braced construct like an enum does
// not swallow the declaration after it.
func (p *parser) skipStatement() {
	depth := 0
	braced := false
	for !p.at(TokenEOF) {
		switch p.cur().Kind {
		case TokenLParen, TokenLBracket:
			depth++
		case TokenLBrace:
			depth++
			braced = true
		case TokenRParen, TokenRBracket:
			if depth == 0 {
				return
			}
			depth--
		case TokenRBrace:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 && braced {
				p.advance()
				if p.at(TokenSemi) {
					p.advance()
				}
				return
			}
		case TokenSemi:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// skipTo advances until the given token at depth zero, without
// consuming it.
func (p *parser) skipTo(k TokenKind) {
	depth := 0
	for !p.at(TokenEOF) {
		switch p.cur().Kind {
		case TokenLBrace, TokenLParen, TokenLBracket:
			depth++
		case TokenRBrace, TokenRParen, TokenRBracket:
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && p.at(k) {
			return
		}
		p.advance()
	}
}

// skipParens consumes a balanced `( ... )` group if present.
func (p *parser) skipParens() {
	if !p.at(TokenLParen) {
		return
	}
	depth := 0
	for !p.at(TokenEOF) {
		switch p.cur().Kind {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}
