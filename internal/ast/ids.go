package ast

type (
	// FileID identifies a parsed source file within a Builder.
	FileID uint32
	// ContractID identifies a contract declaration.
	ContractID uint32
	// FuncID identifies a function declaration.
	FuncID uint32
	// VarID identifies a variable declaration. Ordering of VarIDs follows
	// declaration order within a file, which diagnostics rely on.
	VarID uint32
	// StmtID identifies a statement.
	StmtID uint32
	// ExprID identifies an expression.
	ExprID uint32
)

// Invalid sentinels; arenas are 1-based so the zero value never aliases a node.
const (
	NoFileID     FileID     = 0
	NoContractID ContractID = 0
	NoFuncID     FuncID     = 0
	NoVarID      VarID      = 0
	NoStmtID     StmtID     = 0
	NoExprID     ExprID     = 0
)

func (id FileID) IsValid() bool     { return id != NoFileID }
func (id ContractID) IsValid() bool { return id != NoContractID }
func (id FuncID) IsValid() bool     { return id != NoFuncID }
func (id VarID) IsValid() bool      { return id != NoVarID }
func (id StmtID) IsValid() bool     { return id != NoStmtID }
func (id ExprID) IsValid() bool     { return id != NoExprID }
