package circuit

import (
	"fmt"
	"iter"
	"unicode"
)

// LexMode selects how the lexer treats characters it cannot classify.
type LexMode int

const (
	// LexStrict reports every unrecognized character as a lexical error and
	// keeps scanning so that all errors surface together.
	LexStrict LexMode = iota
	// LexPermissive ends the token sequence at the first unrecognized
	// character without reporting an error.
	LexPermissive
)

func (m LexMode) String() string {
	switch m {
	case LexStrict:
		return "strict"
	case LexPermissive:
		return "permissive"
	default:
		return fmt.Sprintf("LexMode(%d)", int(m))
	}
}

// ParseLexMode maps a configuration string onto a LexMode.
func ParseLexMode(s string) (LexMode, error) {
	switch s {
	case "", "strict":
		return LexStrict, nil
	case "permissive":
		return LexPermissive, nil
	default:
		return LexStrict, fmt.Errorf("unknown lex mode %q (want strict or permissive)", s)
	}
}

type lexer struct {
	cur     *cursor
	mode    LexMode
	stopped bool
}

func newLexer(input string, mode LexMode) *lexer {
	return &lexer{cur: newCursor(input), mode: mode}
}

// NextToken scans the next token. End of input yields a zero-width token of
// type TokenEOF; every call after that yields another one.
func (l *lexer) NextToken() (Token, error) {
	if l.stopped {
		return l.eof(), nil
	}

	l.cur.reset()
	ch, ok := l.cur.bump()
	for ok && isWhitespace(ch) {
		l.cur.reset()
		ch, ok = l.cur.bump()
	}
	if !ok {
		return l.eof(), nil
	}

	switch ch {
	case '+':
		return l.makeToken(TokenPlus), nil
	case '-':
		return l.makeToken(TokenMinus), nil
	case '*':
		return l.makeToken(TokenAsterisk), nil
	case '/':
		return l.makeToken(TokenSlash), nil
	case '.':
		return l.makeToken(TokenDot), nil
	case ',':
		return l.makeToken(TokenComma), nil
	case ';':
		return l.makeToken(TokenSemicolon), nil
	case '(':
		return l.makeToken(TokenLParen), nil
	case ')':
		return l.makeToken(TokenRParen), nil
	case '{':
		return l.makeToken(TokenLBrace), nil
	case '}':
		return l.makeToken(TokenRBrace), nil
	case '=':
		if l.cur.peekIs('=') {
			l.cur.bump()
			return l.makeToken(TokenEQ), nil
		}
		return l.makeToken(TokenAssign), nil
	case '!':
		if l.cur.peekIs('=') {
			l.cur.bump()
			return l.makeToken(TokenNotEQ), nil
		}
		return l.makeToken(TokenBang), nil
	case '"':
		return l.readString()
	}

	switch {
	case isDigit(ch):
		l.cur.bumpWhile(isDigit)
		return l.makeToken(TokenUInt), nil
	case IsIdentifierStart(ch):
		l.cur.bumpWhile(IsIdentifierRune)
		return l.makeToken(lookupIdent(l.cur.text())), nil
	}

	if l.mode == LexPermissive {
		l.stopped = true
		return l.eof(), nil
	}
	return l.makeToken(TokenIllegal), &LexError{
		Span: l.cur.span,
		Msg:  fmt.Sprintf("unexpected character %q", ch),
	}
}

func (l *lexer) makeToken(tt TokenType) Token {
	return Token{Type: tt, Span: l.cur.span}
}

func (l *lexer) eof() Token {
	return Token{Type: TokenEOF, Span: pointSpan(l.cur.pos())}
}

// readString consumes up to and including the closing quote. Escapes are not
// recognized.
func (l *lexer) readString() (Token, error) {
	l.cur.bumpWhile(func(r rune) bool { return r != '"' })
	if _, ok := l.cur.bump(); !ok {
		return l.makeToken(TokenIllegal), &LexError{Span: l.cur.span, Msg: "unterminated string literal"}
	}
	return l.makeToken(TokenString), nil
}

// Tokens lexes source in strict mode as a lazy sequence. Lexical errors are
// yielded in place alongside an ILLEGAL token; the sequence ends at end of
// input.
func Tokens(source string) iter.Seq2[Token, error] {
	return tokens(source, LexStrict)
}

func tokens(source string, mode LexMode) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		l := newLexer(source, mode)
		for {
			tok, err := l.NextToken()
			if err == nil && tok.Type == TokenEOF {
				return
			}
			if !yield(tok, err) {
				return
			}
		}
	}
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// IsIdentifierStart reports whether r may begin an identifier. It
// approximates the Unicode XID_Start property.
func IsIdentifierStart(r rune) bool {
	if unicode.In(r, unicode.Pattern_Syntax, unicode.Pattern_White_Space) {
		return false
	}
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

// IsIdentifierRune reports whether r may continue an identifier. It
// approximates the Unicode XID_Continue property.
func IsIdentifierRune(r rune) bool {
	if IsIdentifierStart(r) {
		return true
	}
	if unicode.In(r, unicode.Pattern_Syntax, unicode.Pattern_White_Space) {
		return false
	}
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}
