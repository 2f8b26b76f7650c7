package ast

import (
	"cinder/internal/source"
	"cinder/internal/token"
)

// ExprKind enumerates the closed set of expression variants.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	// ExprVar references a locally declared variable or parameter.
	ExprVar
	// ExprGlobal references a name the parser could not resolve to a local:
	// state variables, builtins, free functions. Not tracked by analyses.
	ExprGlobal
	// ExprLit is an integer, string or boolean literal.
	ExprLit
	ExprUnary
	ExprBinary
	ExprCall
	ExprIndex
	ExprMember
)

// Expr is a single expression node. Only the fields of its Kind are valid.
type Expr struct {
	Kind ExprKind
	Span source.Span

	// ExprVar
	Var VarID
	// ExprGlobal, ExprLit, ExprMember (selector name)
	Text string
	// ExprUnary operand, ExprBinary lhs, ExprCall callee, ExprIndex base,
	// ExprMember base
	X ExprID
	// ExprBinary rhs, ExprIndex subscript
	Y ExprID
	// ExprUnary, ExprBinary operator
	Op token.Kind
	// ExprCall arguments
	Args []ExprID
}
