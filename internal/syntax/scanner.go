package syntax

// Scan tokenizes TypeScript source text. The scanner is deliberately
// permissive: punctuation outside the modeled subset becomes
// TokenOther so the parser can skip past constructs it does not
// understand instead of failing the whole file.
func Scan(text string) []Token {
	s := &scanner{text: text}
	for {
		tok := s.next()
		s.tokens = append(s.tokens, tok)
		if tok.Kind == TokenEOF {
			return s.tokens
		}
	}
}

type scanner struct {
	text   string
	pos    int
	tokens []Token
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.text) {
		return 0
	}
	return s.text[s.pos]
}

func (s *scanner) peekAt(n int) byte {
	if s.pos+n >= len(s.text) {
		return 0
	}
	return s.text[s.pos+n]
}

func (s *scanner) next() Token {
	s.skipTrivia()
	start := s.pos
	if s.pos >= len(s.text) {
		return Token{Kind: TokenEOF, Start: start, End: start}
	}

	c := s.text[s.pos]
	switch {
	case isIdentStart(c):
		for s.pos < len(s.text) && isIdentPart(s.text[s.pos]) {
			s.pos++
		}
		return s.tok(TokenIdent, start)
	case c >= '0' && c <= '9':
		for s.pos < len(s.text) && (isIdentPart(s.text[s.pos]) || s.text[s.pos] == '.') {
			s.pos++
		}
		return s.tok(TokenNumber, start)
	case c == '\'' || c == '"' || c == '`':
		s.scanString(c)
		return s.tok(TokenString, start)
	}

	s.pos++
	switch c {
	case '<':
		return s.tok(TokenLess, start)
	case '>':
		return s.tok(TokenGreater, start)
	case ',':
		return s.tok(TokenComma, start)
	case ':':
		return s.tok(TokenColon, start)
	case ';':
		return s.tok(TokenSemi, start)
	case '?':
		return s.tok(TokenQuestion, start)
	case '=':
		if s.peek() == '>' {
			s.pos++
			return s.tok(TokenArrow, start)
		}
		// ==, === are outside the subset
		if s.peek() == '=' {
			for s.peek() == '=' {
				s.pos++
			}
			return s.tok(TokenOther, start)
		}
		return s.tok(TokenEquals, start)
	case '|':
		if s.peek() == '|' {
			s.pos++
			return s.tok(TokenOther, start)
		}
		return s.tok(TokenPipe, start)
	case '&':
		if s.peek() == '&' {
			s.pos++
			return s.tok(TokenOther, start)
		}
		return s.tok(TokenAmp, start)
	case '.':
		return s.tok(TokenDot, start)
	case '(':
		return s.tok(TokenLParen, start)
	case ')':
		return s.tok(TokenRParen, start)
	case '{':
		return s.tok(TokenLBrace, start)
	case '}':
		return s.tok(TokenRBrace, start)
	case '[':
		return s.tok(TokenLBracket, start)
	case ']':
		return s.tok(TokenRBracket, start)
	}
	return s.tok(TokenOther, start)
}

func (s *scanner) tok(kind TokenKind, start int) Token {
	return Token{Kind: kind, Value: s.text[start:s.pos], Start: start, End: s.pos}
}

// scanString consumes a string literal opened by quote. Template
// literals are consumed without interpreting ${} substitutions; a
// nested brace imbalance inside a substitution is tolerated because
// the scanner only needs to find the closing backtick.
func (s *scanner) scanString(quote byte) {
	s.pos++ // opening quote
	for s.pos < len(s.text) {
		c := s.text[s.pos]
		if c == '\\' {
			// a trailing backslash in truncated input must not run
			// past the end of the text
			s.pos += 2
			if s.pos > len(s.text) {
				s.pos = len(s.text)
			}
			continue
		}
		if c == quote {
			s.pos++
			return
		}
		if c == '\n' && quote != '`' {
			return // unterminated, stop at line end
		}
		s.pos++
	}
}

func (s *scanner) skipTrivia() {
	for s.pos < len(s.text) {
		c := s.text[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.pos++
		case c == '/' && s.peekAt(1) == '/':
			for s.pos < len(s.text) && s.text[s.pos] != '\n' {
				s.pos++
			}
		case c == '/' && s.peekAt(1) == '*':
			s.pos += 2
			for s.pos < len(s.text) {
				if s.text[s.pos] == '*' && s.peekAt(1) == '/' {
					s.pos += 2
					break
				}
				s.pos++
			}
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	// Bytes >= 0x80 start a multi-byte rune; treating them all as
	// identifier characters is good enough for this subset.
	return c == '_' || c == '$' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
