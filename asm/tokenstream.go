package asm

// TokenStream is a vector-backed cursor over a lexed token slice. Its
// position never regresses past the final (Eof) token.
type TokenStream struct {
	tokens []Token
	pos    int
}

// NewTokenStream wraps tokens for sequential, lookahead-capable
// consumption by the parser.
func NewTokenStream(tokens []Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Peek returns the current token without consuming it.
func (s *TokenStream) Peek() Token { return s.PeekN(0) }

// PeekN returns the token n positions ahead of the cursor without
// consuming anything. Past the end of the stream it keeps returning
// the trailing Eof token.
func (s *TokenStream) PeekN(n int) Token {
	idx := s.pos + n
	if idx >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[idx]
}

// Consume returns the current token and advances the cursor, unless
// already positioned on the trailing Eof token.
func (s *TokenStream) Consume() Token {
	t := s.Peek()
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
	return t
}

// Expect consumes and returns the current token if it has kind k,
// reporting whether the match succeeded.
func (s *TokenStream) Expect(k Kind) (Token, bool) {
	if s.Peek().Kind != k {
		return s.Peek(), false
	}
	return s.Consume(), true
}

// SkipWhitespace consumes any run of Whitespace tokens at the cursor.
func (s *TokenStream) SkipWhitespace() {
	for s.Peek().Kind == Whitespace {
		s.Consume()
	}
}

// IsEOF reports whether the cursor has reached the trailing Eof token.
func (s *TokenStream) IsEOF() bool { return s.Peek().Kind == Eof }
