package ast

import (
	"cinder/internal/source"
)

// Hints preallocates arena capacities.
type Hints struct{ Files, Contracts, Funcs, Vars, Stmts, Exprs uint }

// Builder owns the arenas for every AST node kind produced by the parser.
type Builder struct {
	Files     *Arena[File]
	Contracts *Arena[Contract]
	Funcs     *Arena[Func]
	Vars      *Arena[VarDecl]
	Stmts     *Arena[Stmt]
	Exprs     *Arena[Expr]
}

// NewBuilder creates a Builder with the given capacity hints.
func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Contracts == 0 {
		hints.Contracts = 1 << 3
	}
	if hints.Funcs == 0 {
		hints.Funcs = 1 << 5
	}
	if hints.Vars == 0 {
		hints.Vars = 1 << 6
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Files:     NewArena[File](hints.Files),
		Contracts: NewArena[Contract](hints.Contracts),
		Funcs:     NewArena[Func](hints.Funcs),
		Vars:      NewArena[VarDecl](hints.Vars),
		Stmts:     NewArena[Stmt](hints.Stmts),
		Exprs:     NewArena[Expr](hints.Exprs),
	}
}

// NewFile allocates a file node bound to its source file.
func (b *Builder) NewFile(src source.FileID, sp source.Span) FileID {
	id := FileID(b.Files.Allocate(File{Source: src, Span: sp}))
	b.Files.Get(uint32(id)).ID = id
	return id
}

// NewContract allocates a contract declaration.
func (b *Builder) NewContract(name string, sp source.Span) ContractID {
	id := ContractID(b.Contracts.Allocate(Contract{Name: name, Span: sp}))
	b.Contracts.Get(uint32(id)).ID = id
	return id
}

// NewFunc allocates a function declaration.
func (b *Builder) NewFunc(name string, sp source.Span) FuncID {
	id := FuncID(b.Funcs.Allocate(Func{Name: name, Span: sp}))
	b.Funcs.Get(uint32(id)).ID = id
	return id
}

// NewVar allocates a variable declaration. IDs grow in declaration order.
func (b *Builder) NewVar(name, typeName string, loc DataLocation, sp source.Span) VarID {
	id := VarID(b.Vars.Allocate(VarDecl{Name: name, TypeName: typeName, Loc: loc, Span: sp}))
	b.Vars.Get(uint32(id)).ID = id
	return id
}

// NewStmt allocates a statement node.
func (b *Builder) NewStmt(stmt Stmt) StmtID {
	return StmtID(b.Stmts.Allocate(stmt))
}

// NewExpr allocates an expression node.
func (b *Builder) NewExpr(expr Expr) ExprID {
	return ExprID(b.Exprs.Allocate(expr))
}

// Stmt resolves a statement ID; nil for the sentinel.
func (b *Builder) Stmt(id StmtID) *Stmt {
	return b.Stmts.Get(uint32(id))
}

// Expr resolves an expression ID; nil for the sentinel.
func (b *Builder) Expr(id ExprID) *Expr {
	return b.Exprs.Get(uint32(id))
}

// Var resolves a variable ID; nil for the sentinel.
func (b *Builder) Var(id VarID) *VarDecl {
	return b.Vars.Get(uint32(id))
}

// Func resolves a function ID; nil for the sentinel.
func (b *Builder) Func(id FuncID) *Func {
	return b.Funcs.Get(uint32(id))
}

// Contract resolves a contract ID; nil for the sentinel.
func (b *Builder) Contract(id ContractID) *Contract {
	return b.Contracts.Get(uint32(id))
}

// File resolves a file ID; nil for the sentinel.
func (b *Builder) File(id FileID) *File {
	return b.Files.Get(uint32(id))
}
