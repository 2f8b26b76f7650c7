package parser_test

import (
	"testing"

	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/parser"
	"cinder/internal/source"
)

func parse(t *testing.T, src string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cin", []byte(src))
	builder := ast.NewBuilder(ast.Hints{})
	bag := diag.NewBag(20)
	fileID := parser.ParseFile(builder, fs.Get(id), diag.BagReporter{Bag: bag})
	return builder, fileID, bag
}

func soleFunc(t *testing.T, b *ast.Builder, fileID ast.FileID) *ast.Func {
	t.Helper()
	file := b.File(fileID)
	if file == nil || len(file.Contracts) != 1 {
		t.Fatalf("expected one contract, got %+v", file)
	}
	contract := b.Contract(file.Contracts[0])
	if len(contract.Funcs) != 1 {
		t.Fatalf("expected one function, got %d", len(contract.Funcs))
	}
	return b.Func(contract.Funcs[0])
}

func TestParseContract(t *testing.T) {
	b, fileID, bag := parse(t, `
contract Vault {
	fn deposit(amount: uint) {
		let total: uint = amount + 1;
	}
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	fn := soleFunc(t, b, fileID)
	if fn.Name != "deposit" {
		t.Errorf("function name = %q", fn.Name)
	}
	if !fn.IsImplemented() {
		t.Error("function body missing")
	}
	if len(fn.Params) != 1 || b.Var(fn.Params[0]).Name != "amount" {
		t.Errorf("unexpected params: %v", fn.Params)
	}
}

func TestParseUnimplementedFunction(t *testing.T) {
	b, fileID, bag := parse(t, `
contract IVault {
	fn deposit(amount: uint);
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	fn := soleFunc(t, b, fileID)
	if fn.IsImplemented() {
		t.Error("signature-only function reported as implemented")
	}
}

func TestParseStorageLocation(t *testing.T) {
	b, fileID, bag := parse(t, `
contract C {
	fn f() {
		let s: storage Account;
		let m: memory Buf;
		let v: uint;
	}
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	fn := soleFunc(t, b, fileID)
	block := b.Stmt(fn.Body)
	if len(block.Block.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(block.Block.Stmts))
	}
	wantLocs := []ast.DataLocation{ast.LocStorage, ast.LocMemory, ast.LocDefault}
	for i, stmtID := range block.Block.Stmts {
		stmt := b.Stmt(stmtID)
		if stmt.Kind != ast.StmtLet {
			t.Fatalf("stmt %d kind = %v", i, stmt.Kind)
		}
		v := b.Var(stmt.Let.Var)
		if v.Loc != wantLocs[i] {
			t.Errorf("var %s location = %v, want %v", v.Name, v.Loc, wantLocs[i])
		}
	}
	if !b.Var(b.Stmt(block.Block.Stmts[0]).Let.Var).IsStorage() {
		t.Error("storage var not classified as storage")
	}
}

func TestParseResolvesLocals(t *testing.T) {
	b, fileID, bag := parse(t, `
contract C {
	fn f(a: uint) {
		let x: uint = a;
		x = balance;
	}
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	fn := soleFunc(t, b, fileID)
	block := b.Stmt(fn.Body)
	let := b.Stmt(block.Block.Stmts[0])
	init := b.Expr(let.Let.Init)
	if init.Kind != ast.ExprVar || b.Var(init.Var).Name != "a" {
		t.Errorf("initializer did not resolve to parameter: %+v", init)
	}
	assign := b.Stmt(block.Block.Stmts[1])
	if assign.Kind != ast.StmtAssign {
		t.Fatalf("stmt kind = %v", assign.Kind)
	}
	target := b.Expr(assign.Assign.Target)
	if target.Kind != ast.ExprVar || b.Var(target.Var).Name != "x" {
		t.Errorf("assignment target did not resolve: %+v", target)
	}
	value := b.Expr(assign.Assign.Value)
	if value.Kind != ast.ExprGlobal || value.Text != "balance" {
		t.Errorf("unresolved name should be global: %+v", value)
	}
}

func TestParseAsmBlock(t *testing.T) {
	b, fileID, bag := parse(t, `
contract C {
	fn f() {
		let s: storage Account;
		asm { s, slot }
	}
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	fn := soleFunc(t, b, fileID)
	block := b.Stmt(fn.Body)
	asm := b.Stmt(block.Block.Stmts[1])
	if asm.Kind != ast.StmtAsm {
		t.Fatalf("stmt kind = %v", asm.Kind)
	}
	// Only the resolvable local is recorded.
	if len(asm.Asm.Vars) != 1 || b.Var(asm.Asm.Vars[0]).Name != "s" {
		t.Errorf("asm vars = %v", asm.Asm.Vars)
	}
}

func TestParseControlFlowStatements(t *testing.T) {
	b, fileID, bag := parse(t, `
contract C {
	fn f(cond: bool) {
		if (cond) {
			revert;
		} else if (!cond) {
			return;
		}
		while (cond) {
			break;
		}
	}
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	fn := soleFunc(t, b, fileID)
	block := b.Stmt(fn.Body)
	if got := b.Stmt(block.Block.Stmts[0]).Kind; got != ast.StmtIf {
		t.Errorf("stmt 0 kind = %v", got)
	}
	ifStmt := b.Stmt(block.Block.Stmts[0])
	if els := b.Stmt(ifStmt.If.Else); els == nil || els.Kind != ast.StmtIf {
		t.Error("else-if chain not parsed as nested if")
	}
	if got := b.Stmt(block.Block.Stmts[1]).Kind; got != ast.StmtWhile {
		t.Errorf("stmt 1 kind = %v", got)
	}
}

func TestParseRecovery(t *testing.T) {
	_, _, bag := parse(t, `
contract C {
	fn f() {
		let : uint;
		let x: uint = 1;
	}
}`)
	if !bag.HasErrors() {
		t.Fatal("expected a parse error")
	}
}
