package circuit

import (
	"fmt"
	"strconv"
)

func (p *parser) parseExpression() (Expression, error) {
	return p.parseAddition()
}

func (p *parser) parseAddition() (Expression, error) {
	start := p.start()
	left, err := p.parseMultiplication()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept(TokenPlus, TokenMinus)
		if !ok {
			return left, nil
		}
		right, err := p.parseMultiplication()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Operator: op, Left: left, Right: right, span: p.spanFrom(start)}
	}
}

func (p *parser) parseMultiplication() (Expression, error) {
	start := p.start()
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept(TokenAsterisk, TokenSlash)
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Operator: op, Left: left, Right: right, span: p.spanFrom(start)}
	}
}

func (p *parser) parseUnary() (Expression, error) {
	start := p.start()
	op, ok := p.accept(TokenBang, TokenMinus)
	if !ok {
		return p.parseProperty()
	}
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Operator: op, Right: right, span: p.spanFrom(start)}, nil
}

// parseProperty handles an identifier followed by any chain of `.name` and
// call suffixes, applied left to right.
func (p *parser) parseProperty() (Expression, error) {
	start := p.start()
	tok, ok := p.accept(TokenIdent)
	if !ok {
		return p.parseGrouping()
	}

	var expr Expression = &PropertyExpr{Property: p.ident(tok), span: p.spanFrom(start)}
	for {
		suffix, ok := p.accept(TokenDot, TokenLParen)
		if !ok {
			return expr, nil
		}
		switch suffix.Type {
		case TokenDot:
			property, err := p.expectIdent("property name after '.'")
			if err != nil {
				return nil, err
			}
			expr = &PropertyExpr{Object: expr, Property: property, span: p.spanFrom(start)}
		case TokenLParen:
			args, err := p.parseCallArguments()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Callee: expr, Args: args, span: p.spanFrom(start)}
		}
	}
}

// parseCallArguments reads comma separated arguments and the closing paren.
func (p *parser) parseCallArguments() ([]Expression, error) {
	args := []Expression{}
	if !p.peekIs(TokenRParen) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if _, ok := p.accept(TokenComma); !ok {
				break
			}
		}
	}
	if _, err := p.expect(TokenRParen, "after call arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parseGrouping() (Expression, error) {
	start := p.start()
	switch {
	case p.peekIs(TokenLParen):
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen, "after grouped expression"); err != nil {
			return nil, err
		}
		return &GroupingExpr{Inner: inner, span: p.spanFrom(start)}, nil
	case p.peekIs(TokenLBrace):
		p.advance()
		block, err := p.parseBlock(start)
		if err != nil {
			return nil, err
		}
		return &BlockExpr{Block: block, span: p.spanFrom(start)}, nil
	default:
		return p.parseLiteral()
	}
}

func (p *parser) parseLiteral() (Expression, error) {
	tok, ok := p.accept(TokenUInt, TokenString)
	if !ok {
		return nil, p.errorExpected("a primary value")
	}

	text := tok.Text(p.source)
	switch tok.Type {
	case TokenUInt:
		value, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, p.errorAt(tok, fmt.Sprintf("integer literal %s out of range", text))
		}
		return &IntegerLiteral{Value: value, span: tok.Span}, nil
	default:
		return &StringLiteral{Value: text[1 : len(text)-1], span: tok.Span}, nil
	}
}
