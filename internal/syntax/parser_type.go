package syntax

// typeKeywords are the built-in keyword types the resolver treats as
// primitive (or, for any/unknown, opaque) forms.
var typeKeywords = map[string]bool{
	"any": true, "unknown": true, "never": true, "void": true,
	"string": true, "number": true, "boolean": true, "object": true,
	"symbol": true, "bigint": true, "undefined": true, "null": true,
}

// parseType parses a type expression at union precedence.
func (p *parser) parseType() TypeExpr {
	start := p.cur().Start
	if p.at(TokenPipe) {
		p.advance() // leading `|` in multi-line unions
	}
	first := p.parseIntersectionType()
	if first == nil {
		return nil
	}
	if !p.at(TokenPipe) {
		return first
	}
	members := []TypeExpr{first}
	for p.at(TokenPipe) {
		p.advance()
		m := p.parseIntersectionType()
		if m == nil {
			break
		}
		members = append(members, m)
	}
	return &UnionType{Members: members, Pos: Span{start, p.toks[p.i-1].End}}
}

func (p *parser) parseIntersectionType() TypeExpr {
	start := p.cur().Start
	first := p.parsePostfixType()
	if first == nil || !p.at(TokenAmp) {
		return first
	}
	members := []TypeExpr{first}
	for p.at(TokenAmp) {
		p.advance()
		m := p.parsePostfixType()
		if m == nil {
			break
		}
		members = append(members, m)
	}
	return &IntersectionType{Members: members, Pos: Span{start, p.toks[p.i-1].End}}
}

// parsePostfixType parses a primary type followed by any number of
// `[]` array suffixes.
func (p *parser) parsePostfixType() TypeExpr {
	t := p.parsePrimaryType()
	for t != nil && p.at(TokenLBracket) && p.peek().Kind == TokenRBracket {
		p.advance()
		end := p.advance().End
		t = &ArrayType{Elem: t, Pos: Span{t.Span().Start, end}}
	}
	return t
}

func (p *parser) parsePrimaryType() TypeExpr {
	tok := p.cur()
	switch tok.Kind {
	case TokenIdent:
		switch {
		case typeKeywords[tok.Value]:
			p.advance()
			return &KeywordType{Keyword: tok.Value, Pos: Span{tok.Start, tok.End}}
		case tok.Value == "true" || tok.Value == "false":
			p.advance()
			return &LiteralType{Literal: tok.Value, Pos: Span{tok.Start, tok.End}}
		case tok.Value == "typeof" || tok.Value == "keyof" || tok.Value == "readonly" || tok.Value == "infer":
			// operators outside the subset: consume and parse the
			// operand so spans stay sane, but surface only the operand
			p.advance()
			return p.parsePostfixType()
		}
		return p.parseTypeRef()
	case TokenString, TokenNumber:
		p.advance()
		return &LiteralType{Literal: tok.Value, Pos: Span{tok.Start, tok.End}}
	case TokenLBrace:
		return p.parseObjectType()
	case TokenLBracket:
		return p.parseTupleType()
	case TokenLParen:
		return p.parseParenOrFuncType()
	}
	p.errorf("expected a type, found %s", tok.Kind)
	return nil
}

// parseTypeRef parses a possibly qualified, possibly instantiated
// type reference.
func (p *parser) parseTypeRef() *TypeRef {
	name, ok := p.expect(TokenIdent)
	if !ok {
		return nil
	}
	ref := &TypeRef{Parts: []*Ident{{Name: name.Value, Pos: Span{name.Start, name.End}}}}
	for p.at(TokenDot) && p.peek().Kind == TokenIdent {
		p.advance()
		part := p.advance()
		ref.Parts = append(ref.Parts, &Ident{Name: part.Value, Pos: Span{part.Start, part.End}})
	}
	if p.at(TokenLess) {
		ref.Args = p.parseTypeArgList()
	}
	end := ref.Parts[len(ref.Parts)-1].Pos.End
	if ref.Args != nil {
		end = ref.Args.Brackets.End
	}
	ref.Pos = Span{name.Start, end}
	return ref
}

// parseTypeArgList parses `<T, U, ...>`, recording the bracket span
// inclusive of both angle brackets.
func (p *parser) parseTypeArgList() *TypeArgList {
	open, _ := p.expect(TokenLess)
	list := &TypeArgList{}
	for !p.at(TokenGreater) && !p.at(TokenEOF) {
		t := p.parseType()
		if t == nil {
			p.skipTo(TokenGreater)
			break
		}
		list.Args = append(list.Args, t)
		if p.at(TokenComma) {
			p.advance()
			continue
		}
		break
	}
	closing, _ := p.expect(TokenGreater)
	list.Brackets = Span{open.Start, closing.End}
	return list
}

func (p *parser) parseObjectType() *ObjectType {
	open, _ := p.expect(TokenLBrace)
	obj := &ObjectType{}
	for !p.at(TokenRBrace) && !p.at(TokenEOF) {
		m := p.parseObjectMember()
		if m != nil {
			obj.Members = append(obj.Members, m)
		}
		if p.at(TokenSemi) || p.at(TokenComma) {
			p.advance()
		}
	}
	closing, _ := p.expect(TokenRBrace)
	obj.Pos = Span{open.Start, closing.End}
	return obj
}

// parseObjectMember parses one property signature. Call signatures,
// index signatures, and methods are skipped (nil result).
func (p *parser) parseObjectMember() *ObjectMember {
	for p.atKeyword("readonly") {
		p.advance()
	}
	if !p.at(TokenIdent) && !p.at(TokenString) && !p.at(TokenNumber) {
		p.skipMember()
		return nil
	}
	name := p.advance()
	m := &ObjectMember{Name: name.Value}
	if p.at(TokenQuestion) {
		p.advance()
		m.Optional = true
	}
	if !p.at(TokenColon) {
		p.skipMember()
		return nil
	}
	p.advance()
	m.Type = p.parseType()
	if m.Type == nil {
		p.skipMember()
		return nil
	}
	m.Pos = Span{name.Start, p.toks[p.i-1].End}
	return m
}

// skipMember advances to the next `;`/`,` separator at depth zero or
// the closing `}` of the object, without consuming either.
func (p *parser) skipMember() {
	depth := 0
	for !p.at(TokenEOF) {
		switch p.cur().Kind {
		case TokenLBrace, TokenLParen, TokenLBracket:
			depth++
		case TokenRBrace, TokenRParen, TokenRBracket:
			if depth == 0 {
				return
			}
			depth--
		case TokenSemi, TokenComma:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}

func (p *parser) parseTupleType() TypeExpr {
	open, _ := p.expect(TokenLBracket)
	tup := &TupleType{}
	for !p.at(TokenRBracket) && !p.at(TokenEOF) {
		t := p.parseType()
		if t == nil {
			p.skipTo(TokenRBracket)
			break
		}
		tup.Elems = append(tup.Elems, t)
		if p.at(TokenComma) {
			p.advance()
		}
	}
	closing, _ := p.expect(TokenRBracket)
	tup.Pos = Span{open.Start, closing.End}
	return tup
}

// parseParenOrFuncType disambiguates `(T)` from `(a: T) => R` by
// attempting the function form first and backtracking.
func (p *parser) parseParenOrFuncType() TypeExpr {
	pos, errs := p.mark()
	open := p.cur()
	params := p.parseParams()
	if p.at(TokenArrow) {
		p.advance()
		ret := p.parseType()
		if ret != nil {
			return &FuncType{Params: params, Result: ret, Pos: Span{open.Start, p.toks[p.i-1].End}}
		}
	}
	p.reset(pos, errs)
	p.expect(TokenLParen)
	t := p.parseType()
	p.expect(TokenRParen)
	return t
}
