package parser

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/token"
)

// binaryPrecedence returns the binding power of an infix operator, 0 for
// tokens that are not infix operators.
func binaryPrecedence(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return 1
	case token.AndAnd:
		return 2
	case token.EqEq, token.BangEq:
		return 3
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return 4
	case token.Plus, token.Minus:
		return 5
	case token.Star, token.Slash, token.Percent:
		return 6
	default:
		return 0
	}
}

func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinary(1)
}

// parseBinary implements precedence climbing over binaryPrecedence.
func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	lhs := p.parseUnary()
	if !lhs.IsValid() {
		return ast.NoExprID
	}
	for {
		prec := binaryPrecedence(p.tok.Kind)
		if prec < minPrec || prec == 0 {
			return lhs
		}
		op := p.tok.Kind
		p.next()
		rhs := p.parseBinary(prec + 1)
		if !rhs.IsValid() {
			return lhs
		}
		sp := p.builder.Expr(lhs).Span.Cover(p.builder.Expr(rhs).Span)
		lhs = p.builder.NewExpr(ast.Expr{
			Kind: ast.ExprBinary,
			Span: sp,
			X:    lhs,
			Y:    rhs,
			Op:   op,
		})
	}
}

func (p *Parser) parseUnary() ast.ExprID {
	switch p.tok.Kind {
	case token.Bang, token.Minus:
		op := p.tok.Kind
		start := p.tok.Span
		p.next()
		operand := p.parseUnary()
		if !operand.IsValid() {
			return ast.NoExprID
		}
		sp := start.Cover(p.builder.Expr(operand).Span)
		return p.builder.NewExpr(ast.Expr{
			Kind: ast.ExprUnary,
			Span: sp,
			X:    operand,
			Op:   op,
		})
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses a primary expression followed by any chain of calls,
// subscripts and member selections.
func (p *Parser) parsePostfix() ast.ExprID {
	expr := p.parsePrimary()
	for expr.IsValid() {
		switch p.tok.Kind {
		case token.LParen:
			p.next()
			var args []ast.ExprID
			for !p.at(token.RParen) && !p.at(token.EOF) {
				if arg := p.parseExpr(); arg.IsValid() {
					args = append(args, arg)
				}
				if !p.eat(token.Comma) {
					break
				}
			}
			end := p.tok.Span
			p.expect(token.RParen, diag.SynUnclosedDelimiter)
			expr = p.builder.NewExpr(ast.Expr{
				Kind: ast.ExprCall,
				Span: p.builder.Expr(expr).Span.Cover(end),
				X:    expr,
				Args: args,
			})
		case token.LBracket:
			p.next()
			sub := p.parseExpr()
			end := p.tok.Span
			p.expect(token.RBracket, diag.SynUnclosedDelimiter)
			expr = p.builder.NewExpr(ast.Expr{
				Kind: ast.ExprIndex,
				Span: p.builder.Expr(expr).Span.Cover(end),
				X:    expr,
				Y:    sub,
			})
		case token.Dot:
			p.next()
			sel, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
			if !ok {
				return expr
			}
			expr = p.builder.NewExpr(ast.Expr{
				Kind: ast.ExprMember,
				Span: p.builder.Expr(expr).Span.Cover(sel.Span),
				X:    expr,
				Text: sel.Text,
			})
		default:
			return expr
		}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.tok
	switch tok.Kind {
	case token.Ident:
		p.next()
		if id := p.resolve(tok.Text); id.IsValid() {
			return p.builder.NewExpr(ast.Expr{
				Kind: ast.ExprVar,
				Span: tok.Span,
				Var:  id,
			})
		}
		return p.builder.NewExpr(ast.Expr{
			Kind: ast.ExprGlobal,
			Span: tok.Span,
			Text: tok.Text,
		})
	case token.IntLit, token.StringLit, token.KwTrue, token.KwFalse:
		p.next()
		return p.builder.NewExpr(ast.Expr{
			Kind: ast.ExprLit,
			Span: tok.Span,
			Text: tok.Text,
		})
	case token.LParen:
		p.next()
		inner := p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedDelimiter)
		return inner
	default:
		p.errorf(diag.SynExpectExpression, tok.Span, "expected expression, found %s", tok.Kind)
		p.next()
		return ast.NoExprID
	}
}
