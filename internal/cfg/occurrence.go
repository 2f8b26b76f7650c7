package cfg

import (
	"cinder/internal/ast"
	"cinder/internal/source"
)

// OccurrenceKind classifies how a variable is touched at a program point.
// The ordinal order is part of the deterministic diagnostic sort key.
type OccurrenceKind uint8

const (
	// OccurDeclaration introduces the variable into scope.
	OccurDeclaration OccurrenceKind = iota
	// OccurAccess reads the variable's value.
	OccurAccess
	// OccurAssignment stores a new value into the variable.
	OccurAssignment
	// OccurInlineAsm references the variable from an inline assembly block.
	// Any such reference is treated as an assignment.
	OccurInlineAsm
)

func (k OccurrenceKind) String() string {
	switch k {
	case OccurDeclaration:
		return "declaration"
	case OccurAccess:
		return "access"
	case OccurAssignment:
		return "assignment"
	case OccurInlineAsm:
		return "inline asm"
	}
	return "unknown"
}

// Occurrence records one touch of a declared variable inside a node.
// Occurrences are compared by identity, never by value: two reads of the
// same variable are distinct occurrences.
type Occurrence struct {
	Kind OccurrenceKind
	Var  ast.VarID
	// Site is the syntactic location of the occurrence. Declaration
	// occurrences carry no separate site; the declaration's own span is
	// used for reporting instead.
	Site    source.Span
	HasSite bool
}
