package circuit

import "fmt"

type parser struct {
	tokens *TokenStream
	source string

	last     Token
	consumed bool
}

func newParser(tokens *TokenStream) *parser {
	return &parser{tokens: tokens, source: tokens.Source()}
}

// ParseProgram parses declarations until the stream is exhausted. It stops at
// the first grammar violation.
func (p *parser) ParseProgram() (*Program, error) {
	program := &Program{}
	for !p.atEnd() {
		stmt, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program, nil
}

func (p *parser) parseDeclaration() (Statement, error) {
	if p.peekIs(TokenFun) {
		return p.parseFunctionStatement()
	}
	return p.parseStatement()
}

func (p *parser) parseStatement() (Statement, error) {
	switch {
	case p.peekIs(TokenReturn):
		return p.parseReturnStatement()
	case p.peekIs(TokenLBrace):
		start := p.start()
		p.advance()
		block, err := p.parseBlock(start)
		if err != nil {
			return nil, err
		}
		return block, nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseExpressionStatement() (Statement, error) {
	start := p.start()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon, "after expression"); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr, span: p.spanFrom(start)}, nil
}

func (p *parser) parseReturnStatement() (Statement, error) {
	start := p.start()
	p.advance()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon, "after return value"); err != nil {
		return nil, err
	}
	return &ReturnStmt{Value: value, span: p.spanFrom(start)}, nil
}

func (p *parser) atEnd() bool {
	return p.tokens.Len() == 0
}

func (p *parser) peekIs(types ...TokenType) bool {
	tok, ok := p.tokens.Peek()
	if !ok {
		return false
	}
	for _, tt := range types {
		if tok.Type == tt {
			return true
		}
	}
	return false
}

func (p *parser) advance() (Token, bool) {
	tok, ok := p.tokens.Next()
	if ok {
		p.last = tok
		p.consumed = true
	}
	return tok, ok
}

// accept consumes the front token only if it has one of the given types.
func (p *parser) accept(types ...TokenType) (Token, bool) {
	if !p.peekIs(types...) {
		return Token{}, false
	}
	return p.advance()
}

func (p *parser) expect(tt TokenType, context string) (Token, error) {
	if tok, ok := p.accept(tt); ok {
		return tok, nil
	}
	return Token{}, p.errorExpected(fmt.Sprintf("'%s' %s", tt, context))
}

func (p *parser) expectIdent(what string) (Ident, error) {
	tok, ok := p.accept(TokenIdent)
	if !ok {
		return Ident{}, p.errorExpected(what)
	}
	return p.ident(tok), nil
}

func (p *parser) ident(tok Token) Ident {
	return Ident{Token: tok, Name: tok.Text(p.source)}
}

// start is where the next node begins: the front token, or the end of the
// last consumed token once the stream has run dry.
func (p *parser) start() Position {
	if tok, ok := p.tokens.Peek(); ok {
		return tok.Span.Start
	}
	return p.last.Span.End
}

func (p *parser) spanFrom(start Position) Span {
	end := p.last.Span.End
	if !p.consumed || end.Offset < start.Offset {
		end = start
	}
	return Span{Start: start, End: end}
}

// errorSpan points at the front token, or just past the last consumed token
// when nothing is left.
func (p *parser) errorSpan() (Span, string) {
	if tok, ok := p.tokens.Peek(); ok {
		return tok.Span, p.describe(tok)
	}
	return pointSpan(p.last.Span.End), describeTokenType(TokenEOF)
}

func (p *parser) errorExpected(expected string) *ParseError {
	span, got := p.errorSpan()
	return &ParseError{Span: span, Msg: fmt.Sprintf("expected %s, got %s", expected, got)}
}

func (p *parser) errorAt(tok Token, msg string) *ParseError {
	return &ParseError{Span: tok.Span, Msg: msg}
}

func (p *parser) describe(tok Token) string {
	switch tok.Type {
	case TokenIdent, TokenUInt, TokenString:
		return fmt.Sprintf("%s %s", describeTokenType(tok.Type), tok.Text(p.source))
	default:
		return describeTokenType(tok.Type)
	}
}
