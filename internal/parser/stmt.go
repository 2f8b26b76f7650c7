package parser

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/token"
)

func (p *Parser) parseBlock() ast.StmtID {
	start := p.tok.Span
	p.expect(token.LBrace, diag.SynUnclosedDelimiter)

	p.openScope()
	defer p.closeScope()

	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if stmt := p.parseStmt(); stmt.IsValid() {
			stmts = append(stmts, stmt)
		}
	}
	end := p.tok.Span
	p.expect(token.RBrace, diag.SynUnclosedDelimiter)

	return p.builder.NewStmt(ast.Stmt{
		Kind:  ast.StmtBlock,
		Span:  start.Cover(end),
		Block: ast.BlockStmt{Stmts: stmts},
	})
}

func (p *Parser) parseStmt() ast.StmtID {
	switch p.tok.Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwRevert:
		sp := p.tok.Span
		p.next()
		p.expectSemicolon()
		return p.builder.NewStmt(ast.Stmt{Kind: ast.StmtRevert, Span: sp})
	case token.KwBreak:
		sp := p.tok.Span
		p.next()
		p.expectSemicolon()
		return p.builder.NewStmt(ast.Stmt{Kind: ast.StmtBreak, Span: sp})
	case token.KwContinue:
		sp := p.tok.Span
		p.next()
		p.expectSemicolon()
		return p.builder.NewStmt(ast.Stmt{Kind: ast.StmtContinue, Span: sp})
	case token.KwAsm:
		return p.parseAsm()
	case token.LBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) expectSemicolon() {
	if !p.eat(token.Semicolon) {
		p.errorf(diag.SynExpectSemicolon, p.tok.Span, "expected ';', found %s", p.tok.Kind)
		p.skipTo(token.Semicolon, token.RBrace)
	}
}

// parseLet handles `let name: [location] Type [= expr];`.
// The initializer is parsed before the name is declared, so `let x = x;`
// resolves the right-hand x to an outer binding, not to itself.
func (p *Parser) parseLet() ast.StmtID {
	start := p.tok.Span
	p.next() // 'let'

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.skipTo(token.Semicolon, token.RBrace)
		return ast.NoStmtID
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon); !ok {
		p.skipTo(token.Semicolon, token.RBrace)
		return ast.NoStmtID
	}
	loc, typeName := p.parseType()

	init := ast.NoExprID
	if p.eat(token.Assign) {
		init = p.parseExpr()
	}
	end := p.tok.Span
	p.expectSemicolon()

	id := p.builder.NewVar(name.Text, typeName, loc, name.Span)
	p.declare(name.Text, id)

	return p.builder.NewStmt(ast.Stmt{
		Kind: ast.StmtLet,
		Span: start.Cover(end),
		Let:  ast.LetStmt{Var: id, Init: init},
	})
}

func (p *Parser) parseIf() ast.StmtID {
	start := p.tok.Span
	p.next() // 'if'

	p.expect(token.LParen, diag.SynUnclosedDelimiter)
	cond := p.parseExpr()
	p.expect(token.RParen, diag.SynUnclosedDelimiter)

	then := p.parseBlock()
	els := ast.NoStmtID
	if p.eat(token.KwElse) {
		if p.at(token.KwIf) {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
	}
	sp := start
	if stmt := p.builder.Stmt(then); stmt != nil {
		sp = sp.Cover(stmt.Span)
	}
	if stmt := p.builder.Stmt(els); stmt != nil {
		sp = sp.Cover(stmt.Span)
	}
	return p.builder.NewStmt(ast.Stmt{
		Kind: ast.StmtIf,
		Span: sp,
		If:   ast.IfStmt{Cond: cond, Then: then, Else: els},
	})
}

func (p *Parser) parseWhile() ast.StmtID {
	start := p.tok.Span
	p.next() // 'while'

	p.expect(token.LParen, diag.SynUnclosedDelimiter)
	cond := p.parseExpr()
	p.expect(token.RParen, diag.SynUnclosedDelimiter)

	body := p.parseBlock()
	sp := start
	if stmt := p.builder.Stmt(body); stmt != nil {
		sp = sp.Cover(stmt.Span)
	}
	return p.builder.NewStmt(ast.Stmt{
		Kind:  ast.StmtWhile,
		Span:  sp,
		While: ast.WhileStmt{Cond: cond, Body: body},
	})
}

func (p *Parser) parseReturn() ast.StmtID {
	start := p.tok.Span
	p.next() // 'return'

	value := ast.NoExprID
	if !p.at(token.Semicolon) && !p.at(token.RBrace) {
		value = p.parseExpr()
	}
	end := p.tok.Span
	p.expectSemicolon()

	return p.builder.NewStmt(ast.Stmt{
		Kind:   ast.StmtReturn,
		Span:   start.Cover(end),
		Return: ast.ReturnStmt{Value: value},
	})
}

// parseAsm handles `asm { name, name, ... }`. The block body is opaque to the
// front end except for the local variables it names.
func (p *Parser) parseAsm() ast.StmtID {
	start := p.tok.Span
	p.next() // 'asm'

	p.expect(token.LBrace, diag.SynUnclosedDelimiter)
	var vars []ast.VarID
	for p.at(token.Ident) {
		if id := p.resolve(p.tok.Text); id.IsValid() {
			vars = append(vars, id)
		}
		p.next()
		if !p.eat(token.Comma) {
			break
		}
	}
	end := p.tok.Span
	p.expect(token.RBrace, diag.SynUnclosedDelimiter)

	return p.builder.NewStmt(ast.Stmt{
		Kind: ast.StmtAsm,
		Span: start.Cover(end),
		Asm:  ast.AsmStmt{Vars: vars},
	})
}

// parseExprStmt handles both assignments and bare expression statements.
func (p *Parser) parseExprStmt() ast.StmtID {
	start := p.tok.Span
	lhs := p.parseExpr()
	if !lhs.IsValid() {
		p.skipTo(token.Semicolon, token.RBrace)
		return ast.NoStmtID
	}

	if p.eat(token.Assign) {
		rhs := p.parseExpr()
		end := p.tok.Span
		p.expectSemicolon()
		return p.builder.NewStmt(ast.Stmt{
			Kind:   ast.StmtAssign,
			Span:   start.Cover(end),
			Assign: ast.AssignStmt{Target: lhs, Value: rhs},
		})
	}

	end := p.tok.Span
	p.expectSemicolon()
	return p.builder.NewStmt(ast.Stmt{
		Kind: ast.StmtExpr,
		Span: start.Cover(end),
		Expr: ast.ExprStmt{X: lhs},
	})
}
