package parser

import (
	"fmt"

	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/lexer"
	"cinder/internal/source"
	"cinder/internal/token"
)

// Parser turns a token stream into AST nodes inside a shared Builder.
// Local names are resolved during parsing through a scope stack; names that
// do not resolve become ExprGlobal nodes and are ignored by analyses.
type Parser struct {
	builder  *ast.Builder
	lx       *lexer.Lexer
	tok      token.Token
	reporter diag.Reporter
	scopes   []map[string]ast.VarID
}

// ParseFile parses one source file and returns its AST file node.
func ParseFile(builder *ast.Builder, file *source.File, reporter diag.Reporter) ast.FileID {
	if builder == nil || file == nil {
		return ast.NoFileID
	}
	p := &Parser{
		builder:  builder,
		lx:       lexer.New(file, reporter),
		reporter: reporter,
	}
	p.next()

	fileSpan := source.Span{File: file.ID, Start: 0, End: uint32(len(file.Content))}
	fileID := builder.NewFile(file.ID, fileSpan)

	for p.tok.Kind != token.EOF {
		if p.tok.Kind != token.KwContract {
			p.errorf(diag.SynUnexpectedTopLevel, p.tok.Span, "expected 'contract', found %s", p.tok.Kind)
			p.next()
			continue
		}
		contract := p.parseContract()
		if contract.IsValid() {
			f := builder.File(fileID)
			f.Contracts = append(f.Contracts, contract)
		}
	}
	return fileID
}

func (p *Parser) next() {
	p.tok = p.lx.Next()
}

func (p *Parser) at(kind token.Kind) bool {
	return p.tok.Kind == kind
}

// eat consumes the current token when it matches kind.
func (p *Parser) eat(kind token.Kind) bool {
	if !p.at(kind) {
		return false
	}
	p.next()
	return true
}

// expect consumes a token of the given kind or reports code and stays put.
func (p *Parser) expect(kind token.Kind, code diag.Code) (token.Token, bool) {
	if p.at(kind) {
		tok := p.tok
		p.next()
		return tok, true
	}
	p.errorf(code, p.tok.Span, "expected %s, found %s", kind, p.tok.Kind)
	return p.tok, false
}

func (p *Parser) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	if p.reporter == nil {
		return
	}
	diag.ReportError(p.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

// skipTo advances until one of the kinds (or EOF), consuming the match when
// it is a statement terminator. Used for error recovery.
func (p *Parser) skipTo(kinds ...token.Kind) {
	for !p.at(token.EOF) {
		for _, k := range kinds {
			if p.at(k) {
				if k == token.Semicolon {
					p.next()
				}
				return
			}
		}
		p.next()
	}
}

func (p *Parser) openScope() {
	p.scopes = append(p.scopes, make(map[string]ast.VarID))
}

func (p *Parser) closeScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

// declare binds a name in the innermost scope. Redeclaration shadows.
func (p *Parser) declare(name string, id ast.VarID) {
	if len(p.scopes) == 0 {
		return
	}
	p.scopes[len(p.scopes)-1][name] = id
}

// resolve finds the innermost binding for name, or NoVarID.
func (p *Parser) resolve(name string) ast.VarID {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if id, ok := p.scopes[i][name]; ok {
			return id
		}
	}
	return ast.NoVarID
}

func (p *Parser) parseContract() ast.ContractID {
	start := p.tok.Span
	p.next() // 'contract'

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.skipTo(token.RBrace)
		p.eat(token.RBrace)
		return ast.NoContractID
	}
	id := p.builder.NewContract(name.Text, start.Cover(name.Span))

	if _, ok := p.expect(token.LBrace, diag.SynUnclosedDelimiter); !ok {
		return id
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if !p.at(token.KwFn) {
			p.errorf(diag.SynUnexpectedToken, p.tok.Span, "expected 'fn' or '}', found %s", p.tok.Kind)
			p.skipTo(token.KwFn, token.RBrace)
			continue
		}
		fn := p.parseFunction()
		if fn.IsValid() {
			c := p.builder.Contract(id)
			c.Funcs = append(c.Funcs, fn)
		}
	}
	end := p.tok.Span
	if p.eat(token.RBrace) {
		c := p.builder.Contract(id)
		c.Span = c.Span.Cover(end)
	}
	return id
}

func (p *Parser) parseFunction() ast.FuncID {
	start := p.tok.Span
	p.next() // 'fn'

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.skipTo(token.Semicolon, token.RBrace)
		return ast.NoFuncID
	}
	id := p.builder.NewFunc(name.Text, start.Cover(name.Span))

	p.openScope()
	defer p.closeScope()

	if _, ok := p.expect(token.LParen, diag.SynUnclosedDelimiter); ok {
		p.parseParams(id)
	}

	// A ';' instead of a body declares an unimplemented signature.
	if p.eat(token.Semicolon) {
		return id
	}
	if !p.at(token.LBrace) {
		p.errorf(diag.SynUnexpectedToken, p.tok.Span, "expected '{' or ';', found %s", p.tok.Kind)
		p.skipTo(token.Semicolon, token.RBrace)
		return id
	}
	body := p.parseBlock()
	fn := p.builder.Func(id)
	fn.Body = body
	if stmt := p.builder.Stmt(body); stmt != nil {
		fn.Span = fn.Span.Cover(stmt.Span)
	}
	return id
}

func (p *Parser) parseParams(fn ast.FuncID) {
	for !p.at(token.RParen) && !p.at(token.EOF) {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			p.skipTo(token.RParen)
			break
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon); !ok {
			p.skipTo(token.RParen)
			break
		}
		loc, typeName := p.parseType()
		id := p.builder.NewVar(name.Text, typeName, loc, name.Span)
		p.declare(name.Text, id)
		f := p.builder.Func(fn)
		f.Params = append(f.Params, id)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedDelimiter)
}

// parseType reads an optional data-location keyword followed by a type name.
func (p *Parser) parseType() (ast.DataLocation, string) {
	loc := ast.LocDefault
	switch p.tok.Kind {
	case token.KwStorage:
		loc = ast.LocStorage
		p.next()
	case token.KwMemory:
		loc = ast.LocMemory
		p.next()
	case token.KwCalldata:
		loc = ast.LocCalldata
		p.next()
	}
	name, ok := p.expect(token.Ident, diag.SynExpectType)
	if !ok {
		return loc, ""
	}
	return loc, name.Text
}
