package syntax

// parseExpr parses an expression from the modeled subset. Returns nil
// when the leading token cannot start one; callers fall back to
// skipping.
func (p *parser) parseExpr() Expr {
	return p.parsePostfixExpr()
}

// parsePostfixExpr parses a primary expression followed by member
// accesses, calls, and explicit type-argument lists.
func (p *parser) parsePostfixExpr() Expr {
	e := p.parsePrimaryExpr()
	if e == nil {
		return nil
	}
	for {
		switch {
		case p.at(TokenDot) && p.peek().Kind == TokenIdent:
			p.advance()
			sel := p.advance()
			e = &MemberExpr{X: e, Sel: sel.Value, Pos: Span{e.Span().Start, sel.End}}
		case p.at(TokenLParen):
			args, end := p.parseCallArgs()
			e = &CallExpr{Fun: e, Args: args, Pos: Span{e.Span().Start, end}}
		case p.at(TokenLess):
			// `f<...>(` is a call with explicit type arguments;
			// anything else after `<` is a comparison, which the
			// subset does not model. Attempt and backtrack.
			pos, errs := p.mark()
			targs := p.parseTypeArgList()
			if len(targs.Args) > 0 && p.at(TokenLParen) {
				args, end := p.parseCallArgs()
				e = &CallExpr{Fun: e, TypeArgs: targs, Args: args, Pos: Span{e.Span().Start, end}}
				continue
			}
			p.reset(pos, errs)
			return e
		default:
			return e
		}
	}
}

func (p *parser) parsePrimaryExpr() Expr {
	tok := p.cur()
	switch tok.Kind {
	case TokenIdent:
		if tok.Value == "new" {
			return p.parseNewExpr()
		}
		p.advance()
		return &IdentExpr{Name: tok.Value, Pos: Span{tok.Start, tok.End}}
	case TokenString, TokenNumber:
		p.advance()
		return &LitExpr{Text: tok.Value, Pos: Span{tok.Start, tok.End}}
	case TokenLParen:
		p.advance()
		e := p.parseExpr()
		if p.at(TokenRParen) {
			p.advance()
		} else {
			p.skipTo(TokenRParen)
			if p.at(TokenRParen) {
				p.advance()
			}
		}
		return e
	}
	return nil
}

func (p *parser) parseNewExpr() Expr {
	start := p.advance().Start // `new`
	var fn Expr
	tok := p.cur()
	if tok.Kind != TokenIdent {
		return nil
	}
	p.advance()
	fn = &IdentExpr{Name: tok.Value, Pos: Span{tok.Start, tok.End}}
	for p.at(TokenDot) && p.peek().Kind == TokenIdent {
		p.advance()
		sel := p.advance()
		fn = &MemberExpr{X: fn, Sel: sel.Value, Pos: Span{fn.Span().Start, sel.End}}
	}
	e := &NewExpr{Fun: fn}
	if p.at(TokenLess) {
		pos, errs := p.mark()
		targs := p.parseTypeArgList()
		if len(targs.Args) > 0 && (p.at(TokenLParen) || p.at(TokenSemi) || p.at(TokenRParen) || p.at(TokenComma)) {
			e.TypeArgs = targs
		} else {
			p.reset(pos, errs)
		}
	}
	end := fn.Span().End
	if e.TypeArgs != nil {
		end = e.TypeArgs.Brackets.End
	}
	if p.at(TokenLParen) {
		var args []Expr
		args, end = p.parseCallArgs()
		e.Args = args
	}
	e.Pos = Span{start, end}
	return e
}

// parseCallArgs parses a parenthesized argument list. Arguments
// outside the expression subset (arrow functions, object literals,
// operators) are skipped to the next comma at depth zero; any sites
// nested in skipped arguments are missed, which only under-reports.
func (p *parser) parseCallArgs() ([]Expr, int) {
	p.expect(TokenLParen)
	var args []Expr
	for !p.at(TokenRParen) && !p.at(TokenEOF) {
		e := p.parseExpr()
		if e != nil && (p.at(TokenComma) || p.at(TokenRParen)) {
			args = append(args, e)
		} else {
			p.skipArg()
		}
		if p.at(TokenComma) {
			p.advance()
		}
	}
	closing, _ := p.expect(TokenRParen)
	return args, closing.End
}

// skipArg advances to the next `,` at depth zero or the `)` closing
// the argument list, without consuming either.
func (p *parser) skipArg() {
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
		case TokenComma:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}
