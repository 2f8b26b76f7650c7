package cfg

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
)

// Construct builds flows for every implemented function in the file.
// Functions without a body get no flow and are skipped by analyses.
func Construct(b *ast.Builder, fileID ast.FileID, reporter diag.Reporter) *Set {
	set := &Set{flows: make(map[ast.FuncID]*Flow)}
	file := b.File(fileID)
	if file == nil {
		return set
	}
	for _, contractID := range file.Contracts {
		contract := b.Contract(contractID)
		if contract == nil {
			continue
		}
		for _, fnID := range contract.Funcs {
			fn := b.Func(fnID)
			if !fn.IsImplemented() {
				continue
			}
			set.flows[fnID] = buildFunction(b, fn, reporter)
		}
	}
	return set
}

type loopFrame struct {
	breakTo    NodeID
	continueTo NodeID
}

type builder struct {
	astb     *ast.Builder
	flow     *Flow
	reporter diag.Reporter
	loops    []loopFrame
}

func buildFunction(astb *ast.Builder, fn *ast.Func, reporter diag.Reporter) *Flow {
	b := &builder{
		astb:     astb,
		flow:     NewFlow(),
		reporter: reporter,
	}
	// Parameters are initialized by the caller, so they produce no
	// occurrences: they can never be in the unassigned set.
	start := b.flow.NewNode()
	b.flow.AddEdge(b.flow.Entry, start)
	end := b.lowerStmt(start, fn.Body)
	b.flow.AddEdge(end, b.flow.Exit)
	return b.flow
}

// lowerStmt appends the control flow of stmt after cur and returns the node
// where execution continues.
func (b *builder) lowerStmt(cur NodeID, stmtID ast.StmtID) NodeID {
	stmt := b.astb.Stmt(stmtID)
	if stmt == nil {
		return cur
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		for _, s := range stmt.Block.Stmts {
			cur = b.lowerStmt(cur, s)
		}
		return cur

	case ast.StmtLet:
		b.collectReads(cur, stmt.Let.Init)
		b.flow.AddOccurrence(cur, Occurrence{
			Kind: OccurDeclaration,
			Var:  stmt.Let.Var,
		})
		if stmt.Let.Init.IsValid() {
			b.flow.AddOccurrence(cur, Occurrence{
				Kind:    OccurAssignment,
				Var:     stmt.Let.Var,
				Site:    stmt.Span,
				HasSite: true,
			})
		}
		return cur

	case ast.StmtAssign:
		// The right-hand side is evaluated first.
		b.collectReads(cur, stmt.Assign.Value)
		target := b.astb.Expr(stmt.Assign.Target)
		if target != nil && target.Kind == ast.ExprVar {
			b.flow.AddOccurrence(cur, Occurrence{
				Kind:    OccurAssignment,
				Var:     target.Var,
				Site:    target.Span,
				HasSite: true,
			})
		} else {
			// Writing through a member or subscript reads the base
			// pointer; it does not assign it.
			b.collectReads(cur, stmt.Assign.Target)
		}
		return cur

	case ast.StmtExpr:
		b.collectReads(cur, stmt.Expr.X)
		return cur

	case ast.StmtIf:
		b.collectReads(cur, stmt.If.Cond)
		after := b.flow.NewNode()

		thenStart := b.flow.NewNode()
		b.flow.AddEdge(cur, thenStart)
		thenEnd := b.lowerStmt(thenStart, stmt.If.Then)
		b.flow.AddEdge(thenEnd, after)

		if stmt.If.Else.IsValid() {
			elseStart := b.flow.NewNode()
			b.flow.AddEdge(cur, elseStart)
			elseEnd := b.lowerStmt(elseStart, stmt.If.Else)
			b.flow.AddEdge(elseEnd, after)
		} else {
			b.flow.AddEdge(cur, after)
		}
		return after

	case ast.StmtWhile:
		cond := b.flow.NewNode()
		after := b.flow.NewNode()
		b.flow.AddEdge(cur, cond)
		b.collectReads(cond, stmt.While.Cond)

		body := b.flow.NewNode()
		b.flow.AddEdge(cond, body)
		b.flow.AddEdge(cond, after)

		b.loops = append(b.loops, loopFrame{breakTo: after, continueTo: cond})
		bodyEnd := b.lowerStmt(body, stmt.While.Body)
		b.loops = b.loops[:len(b.loops)-1]

		b.flow.AddEdge(bodyEnd, cond)
		return after

	case ast.StmtReturn:
		b.collectReads(cur, stmt.Return.Value)
		b.flow.AddEdge(cur, b.flow.Exit)
		// Statements after return are unreachable: they go into a fresh
		// node nothing points at, so the analysis never visits them.
		return b.flow.NewNode()

	case ast.StmtRevert:
		b.flow.AddEdge(cur, b.flow.Revert)
		return b.flow.NewNode()

	case ast.StmtBreak:
		if len(b.loops) == 0 {
			diag.ReportError(b.reporter, diag.FlowBreakOutsideLoop, stmt.Span, "'break' outside of a loop").Emit()
			return cur
		}
		b.flow.AddEdge(cur, b.loops[len(b.loops)-1].breakTo)
		return b.flow.NewNode()

	case ast.StmtContinue:
		if len(b.loops) == 0 {
			diag.ReportError(b.reporter, diag.FlowContinueOutsideLoop, stmt.Span, "'continue' outside of a loop").Emit()
			return cur
		}
		b.flow.AddEdge(cur, b.loops[len(b.loops)-1].continueTo)
		return b.flow.NewNode()

	case ast.StmtAsm:
		for _, v := range stmt.Asm.Vars {
			b.flow.AddOccurrence(cur, Occurrence{
				Kind:    OccurInlineAsm,
				Var:     v,
				Site:    stmt.Span,
				HasSite: true,
			})
		}
		return cur

	default:
		return cur
	}
}

// collectReads appends an Access occurrence for every local variable read
// inside expr, in source order.
func (b *builder) collectReads(node NodeID, exprID ast.ExprID) {
	expr := b.astb.Expr(exprID)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprVar:
		b.flow.AddOccurrence(node, Occurrence{
			Kind:    OccurAccess,
			Var:     expr.Var,
			Site:    expr.Span,
			HasSite: true,
		})
	case ast.ExprUnary, ast.ExprMember:
		b.collectReads(node, expr.X)
	case ast.ExprBinary, ast.ExprIndex:
		b.collectReads(node, expr.X)
		b.collectReads(node, expr.Y)
	case ast.ExprCall:
		b.collectReads(node, expr.X)
		for _, arg := range expr.Args {
			b.collectReads(node, arg)
		}
	}
}
