package circuit

import "fmt"

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	TokenIllegal TokenType = "ILLEGAL"
	TokenEOF     TokenType = "EOF"

	TokenIdent  TokenType = "IDENT"
	TokenUInt   TokenType = "UINT"
	TokenString TokenType = "STRING"

	TokenPlus     TokenType = "+"
	TokenMinus    TokenType = "-"
	TokenAsterisk TokenType = "*"
	TokenSlash    TokenType = "/"

	TokenAssign TokenType = "="
	TokenEQ     TokenType = "=="
	TokenBang   TokenType = "!"
	TokenNotEQ  TokenType = "!="

	TokenDot       TokenType = "."
	TokenComma     TokenType = ","
	TokenSemicolon TokenType = ";"
	TokenLParen    TokenType = "("
	TokenRParen    TokenType = ")"
	TokenLBrace    TokenType = "{"
	TokenRBrace    TokenType = "}"

	TokenIf     TokenType = "IF"
	TokenFor    TokenType = "FOR"
	TokenFun    TokenType = "FUN"
	TokenReturn TokenType = "RETURN"
)

var keywords = map[string]TokenType{
	"if":     TokenIf,
	"for":    TokenFor,
	"fun":    TokenFun,
	"return": TokenReturn,
}

// Keywords returns the reserved words, sorted.
func Keywords() []string {
	return []string{"for", "fun", "if", "return"}
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return TokenIdent
}

// Token is a classified lexical unit. It carries no text of its own; literal
// and identifier text is recovered from the source through Span.
type Token struct {
	Type TokenType
	Span Span
}

// Text returns the source text the token was scanned from.
func (t Token) Text(source string) string {
	return t.Span.Text(source)
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%s", t.Type, t.Span)
}

func describeTokenType(tt TokenType) string {
	switch tt {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenUInt:
		return "integer literal"
	case TokenString:
		return "string literal"
	case TokenIf, TokenFor, TokenFun, TokenReturn:
		return fmt.Sprintf("keyword '%s'", keywordText(tt))
	default:
		return fmt.Sprintf("'%s'", string(tt))
	}
}

func keywordText(tt TokenType) string {
	for word, kw := range keywords {
		if kw == tt {
			return word
		}
	}
	return string(tt)
}
