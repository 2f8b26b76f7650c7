package controlflow

import (
	"sort"

	"cinder/internal/ast"
	"cinder/internal/cfg"
	"cinder/internal/diag"
)

// UninitStorageAccessMessage is the stable wording of the diagnostic this
// analysis produces. Tools match on it, so it must not change.
const UninitStorageAccessMessage = "this variable is of storage-pointer type and is accessed without a prior assignment."

// DeclaredHereNote labels the secondary location at the declaration.
const DeclaredHereNote = "declared here"

// Analyze visits every implemented function in the file in declaration
// order and reports uninitialized storage-pointer accesses to the reporter.
// Whether the overall run counts as failed is the caller's decision, made
// by inspecting the accumulated diagnostic sink.
func Analyze(b *ast.Builder, fileID ast.FileID, flows *cfg.Set, reporter diag.Reporter) {
	file := b.File(fileID)
	if file == nil || flows == nil {
		return
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
			// The flow subsumes the whole body; no statement recursion
			// is needed beyond it.
			flow := flows.FlowFor(fnID)
			if flow == nil {
				continue
			}
			checkUninitializedAccess(b, flow, reporter)
		}
	}
}

// checkUninitializedAccess runs the fixed-point propagation from the flow's
// entry node and reports every flagged access that reaches the exit node.
func checkUninitializedAccess(b *ast.Builder, flow *cfg.Flow, reporter diag.Reporter) {
	infos := make(map[cfg.NodeID]*nodeFacts, flow.NumNodes())
	factsFor := func(id cfg.NodeID) *nodeFacts {
		f, ok := infos[id]
		if !ok {
			f = newNodeFacts()
			infos[id] = f
		}
		return f
	}

	// Walk all paths from the entry until every reachable node has been
	// visited and propagateFrom returns false for every exit, i.e. until
	// every node has been seen with its maximal sets of unassigned
	// variables and flagged accesses. The visited set matters for nodes
	// whose incoming facts are empty: merging nothing into nothing never
	// grows, but their own occurrences still have to be transferred once.
	visited := make(map[cfg.NodeID]bool, flow.NumNodes())
	worklist := []cfg.NodeID{flow.Entry}
	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		node := flow.Node(current)
		if node == nil {
			continue
		}
		visited[current] = true
		info := factsFor(current)
		for i := range node.Occurrences {
			occ := &node.Occurrences[i]
			switch occ.Kind {
			case cfg.OccurDeclaration:
				info.unassigned[occ.Var] = struct{}{}
			case cfg.OccurAssignment:
				delete(info.unassigned, occ.Var)
			case cfg.OccurInlineAsm:
				// Any inline-asm reference counts as an assignment.
				// Requiring an actual write would be more precise.
				delete(info.unassigned, occ.Var)
			case cfg.OccurAccess:
				if _, unassigned := info.unassigned[occ.Var]; !unassigned {
					continue
				}
				if b.Var(occ.Var).IsStorage() {
					// Only record the access: this path might still
					// always revert. It becomes an error only if the
					// flag reaches the exit node.
					info.accesses[occ] = struct{}{}
				}
			}
		}

		for _, exit := range node.Exits {
			grew := factsFor(exit).propagateFrom(info)
			if grew || !visited[exit] {
				worklist = append(worklist, exit)
			}
		}
	}

	reportAccesses(b, factsFor(flow.Exit), reporter)
}

// reportAccesses emits one diagnostic per flagged access in a deterministic
// order, independent of traversal and map iteration order.
func reportAccesses(b *ast.Builder, exitInfo *nodeFacts, reporter diag.Reporter) {
	if len(exitInfo.accesses) == 0 {
		return
	}
	ordered := make([]*cfg.Occurrence, 0, len(exitInfo.accesses))
	for occ := range exitInfo.accesses {
		ordered = append(ordered, occ)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return occurrenceLess(ordered[i], ordered[j])
	})

	for _, occ := range ordered {
		decl := b.Var(occ.Var)
		if decl == nil {
			continue
		}
		primary := decl.Span
		if occ.HasSite {
			primary = occ.Site
		}
		diag.ReportError(reporter, diag.FlowUninitStorageAccess, primary, UninitStorageAccessMessage).
			WithNote(decl.Span, DeclaredHereNote).
			Emit()
	}
}

// occurrenceLess is the total diagnostic order: site position first (siteless
// occurrences sort after sited ones), then declaration ID, then kind ordinal.
func occurrenceLess(a, c *cfg.Occurrence) bool {
	switch {
	case a.HasSite && c.HasSite:
		if a.Site.Start != c.Site.Start {
			return a.Site.Start < c.Site.Start
		}
		if a.Site.End != c.Site.End {
			return a.Site.End < c.Site.End
		}
	case c.HasSite:
		return false
	case a.HasSite:
		return true
	}
	if a.Var != c.Var {
		return a.Var < c.Var
	}
	return a.Kind < c.Kind
}
