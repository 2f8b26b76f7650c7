package ast

import (
	"cinder/internal/source"
)

// DataLocation classifies where a variable's value lives.
type DataLocation uint8

const (
	// LocDefault is used for plain value types with a well-defined zero value.
	LocDefault DataLocation = iota
	// LocStorage marks a reference into persistent contract storage.
	LocStorage
	// LocMemory marks a reference into transient memory.
	LocMemory
	// LocCalldata marks a read-only reference into call input data.
	LocCalldata
)

func (l DataLocation) String() string {
	switch l {
	case LocStorage:
		return "storage"
	case LocMemory:
		return "memory"
	case LocCalldata:
		return "calldata"
	}
	return "default"
}

// VarDecl is a local variable or parameter declaration.
type VarDecl struct {
	ID       VarID
	Name     string
	TypeName string
	Loc      DataLocation
	// Span covers the declared name, the location diagnostics point at when
	// referring back to the declaration.
	Span source.Span
}

// IsStorage reports whether the variable is a storage pointer. Reading such a
// variable before assignment aliases slot zero, so the control-flow analysis
// treats these declarations specially.
func (v *VarDecl) IsStorage() bool {
	return v != nil && v.Loc == LocStorage
}

// Func is a function declaration. Body is NoStmtID for unimplemented
// signatures (interface members), which analyses skip.
type Func struct {
	ID     FuncID
	Name   string
	Span   source.Span
	Params []VarID
	Body   StmtID
}

// IsImplemented reports whether the function has a body to analyze.
func (f *Func) IsImplemented() bool {
	return f != nil && f.Body.IsValid()
}

// Contract is a top-level contract declaration.
type Contract struct {
	ID    ContractID
	Name  string
	Span  source.Span
	Funcs []FuncID
}

// File is one parsed source file.
type File struct {
	ID        FileID
	Source    source.FileID
	Span      source.Span
	Contracts []ContractID
}
