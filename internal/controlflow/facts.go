package controlflow

import (
	"cinder/internal/ast"
	"cinder/internal/cfg"
)

// joinInto unions src into dst and reports whether dst grew. This is the
// semilattice merge the fixed-point iteration is built on: propagation stops
// exactly when no join grows any set.
func joinInto[K comparable](dst, src map[K]struct{}) bool {
	before := len(dst)
	for k := range src {
		dst[k] = struct{}{}
	}
	return len(dst) > before
}

// nodeFacts is the per-node analysis state. Both sets are monotone: entries
// are only ever added during propagation.
type nodeFacts struct {
	// unassigned holds variables possibly not yet assigned on some path
	// reaching this point.
	unassigned map[ast.VarID]struct{}
	// accesses holds storage-pointer accesses that happened while their
	// variable was possibly unassigned. Keyed by occurrence identity, so
	// two reads of the same variable stay distinct.
	accesses map[*cfg.Occurrence]struct{}
}

func newNodeFacts() *nodeFacts {
	return &nodeFacts{
		unassigned: make(map[ast.VarID]struct{}),
		accesses:   make(map[*cfg.Occurrence]struct{}),
	}
}

// propagateFrom merges the facts of a predecessor node into this node.
// Returns true when anything new arrived and the node has to be traversed
// again.
func (f *nodeFacts) propagateFrom(pred *nodeFacts) bool {
	grewVars := joinInto(f.unassigned, pred.unassigned)
	grewAccesses := joinInto(f.accesses, pred.accesses)
	return grewVars || grewAccesses
}
