package syntax

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenString  // 'x', "x", `x`
	TokenNumber  // 42, 1.5
	TokenLess    // <
	TokenGreater // >
	TokenComma   // ,
	TokenColon   // :
	TokenSemi    // ;
	TokenQuestion
	TokenEquals // =
	TokenArrow  // =>
	TokenPipe   // |
	TokenAmp    // &
	TokenDot    // .
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenOther // any punctuation the subset does not model
)

var tokenNames = map[TokenKind]string{
	TokenEOF:      "end of file",
	TokenIdent:    "identifier",
	TokenString:   "string literal",
	TokenNumber:   "number literal",
	TokenLess:     "'<'",
	TokenGreater:  "'>'",
	TokenComma:    "','",
	TokenColon:    "':'",
	TokenSemi:     "';'",
	TokenQuestion: "'?'",
	TokenEquals:   "'='",
	TokenArrow:    "'=>'",
	TokenPipe:     "'|'",
	TokenAmp:      "'&'",
	TokenDot:      "'.'",
	TokenLParen:   "'('",
	TokenRParen:   "')'",
	TokenLBrace:   "'{'",
	TokenRBrace:   "'}'",
	TokenLBracket: "'['",
	TokenRBracket: "']'",
	TokenOther:    "token",
}

func (k TokenKind) String() string {
	if s, ok := tokenNames[k]; ok {
		return s
	}
	return "token"
}

// Token is a single lexical token with its source span.
// Value holds the raw text for identifiers and literals; for string
// literals it includes the quotes.
type Token struct {
	Kind  TokenKind
	Value string
	Start int // byte offset, inclusive
	End   int // byte offset, exclusive
}

// Span is a half-open byte range [Start, End) in a source file.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }
