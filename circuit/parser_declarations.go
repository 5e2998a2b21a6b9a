package circuit

import "fmt"

func (p *parser) parseFunctionStatement() (Statement, error) {
	start := p.start()
	p.advance()

	name, err := p.expectIdent("function name after 'fun'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen, "before parameter list"); err != nil {
		return nil, err
	}

	params := []Ident{}
	if !p.peekIs(TokenRParen) {
		for {
			tok, ok := p.advance()
			if !ok {
				return nil, p.errorExpected("parameter name")
			}
			if tok.Type != TokenIdent {
				return nil, p.errorAt(tok, fmt.Sprintf("%s cannot be used as a parameter name", p.describe(tok)))
			}
			params = append(params, p.ident(tok))
			if _, ok := p.accept(TokenComma); !ok {
				break
			}
		}
	}

	if _, err := p.expect(TokenRParen, "after parameter list"); err != nil {
		return nil, err
	}
	braceStart := p.start()
	if _, err := p.expect(TokenLBrace, "before function body"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(braceStart)
	if err != nil {
		return nil, err
	}

	return &FunctionStmt{Name: name, Params: params, Body: body, span: p.spanFrom(start)}, nil
}

// parseBlock parses declarations up to and including the closing brace. The
// caller has already consumed the opening brace at start.
func (p *parser) parseBlock(start Position) (*BlockStmt, error) {
	stmts := []Statement{}
	for !p.atEnd() && !p.peekIs(TokenRBrace) {
		stmt, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(TokenRBrace, "to close block"); err != nil {
		return nil, err
	}
	return &BlockStmt{Statements: stmts, span: p.spanFrom(start)}, nil
}
