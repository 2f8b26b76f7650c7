package ast

import (
	"cinder/internal/source"
)

// StmtKind enumerates the closed set of statement variants.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtLet
	StmtAssign
	StmtExpr
	StmtIf
	StmtWhile
	StmtReturn
	StmtRevert
	StmtAsm
	StmtBreak
	StmtContinue
	StmtBlock
)

// Stmt is a single statement node. Only the payload of its Kind is valid.
type Stmt struct {
	Kind StmtKind
	Span source.Span

	Let    LetStmt
	Assign AssignStmt
	Expr   ExprStmt
	If     IfStmt
	While  WhileStmt
	Return ReturnStmt
	Asm    AsmStmt
	Block  BlockStmt
}

// LetStmt declares a local variable, optionally with an initializer.
type LetStmt struct {
	Var  VarID
	Init ExprID
}

// AssignStmt stores Value into Target.
type AssignStmt struct {
	Target ExprID
	Value  ExprID
}

// ExprStmt evaluates an expression for its effects.
type ExprStmt struct {
	X ExprID
}

// IfStmt branches on Cond; Else is NoStmtID when absent.
type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

// WhileStmt loops over Body while Cond holds.
type WhileStmt struct {
	Cond ExprID
	Body StmtID
}

// ReturnStmt exits the function; Value is NoExprID for bare returns.
type ReturnStmt struct {
	Value ExprID
}

// AsmStmt is an inline assembly block. Vars lists the local variables the
// block references; any such reference is treated as an assignment by the
// control-flow analysis.
type AsmStmt struct {
	Vars []VarID
}

// BlockStmt is a braced statement sequence.
type BlockStmt struct {
	Stmts []StmtID
}
