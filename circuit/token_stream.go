package circuit

// TokenStream is a fully lexed token sequence. It is built once from a
// complete lexer run and then drained from the front.
type TokenStream struct {
	source string
	tokens []Token
	head   int
}

func newTokenStream(source string, mode LexMode) (*TokenStream, error) {
	var toks []Token
	var errs LexErrors
	for tok, err := range tokens(source, mode) {
		if err != nil {
			if lexErr, ok := err.(*LexError); ok {
				errs = append(errs, lexErr)
			} else {
				errs = append(errs, &LexError{Span: tok.Span, Msg: err.Error()})
			}
			continue
		}
		toks = append(toks, tok)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &TokenStream{source: source, tokens: toks}, nil
}

// Source returns the text the stream was lexed from.
func (s *TokenStream) Source() string {
	return s.source
}

// Peek returns the front token without removing it.
func (s *TokenStream) Peek() (Token, bool) {
	if s.head >= len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[s.head], true
}

// Next removes and returns the front token.
func (s *TokenStream) Next() (Token, bool) {
	tok, ok := s.Peek()
	if ok {
		s.head++
	}
	return tok, ok
}

// Len reports how many tokens remain.
func (s *TokenStream) Len() int {
	return len(s.tokens) - s.head
}

// Remaining returns a copy of the tokens not yet consumed.
func (s *TokenStream) Remaining() []Token {
	out := make([]Token, s.Len())
	copy(out, s.tokens[s.head:])
	return out
}
