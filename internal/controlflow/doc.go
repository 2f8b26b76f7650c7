// Package controlflow implements the uninitialized storage-pointer analysis.
//
// For every implemented function it runs a forward, monotone dataflow over
// the function's control-flow graph: at each node it tracks the set of local
// variables that are possibly still unassigned on some path, and the set of
// accesses to storage-pointer variables that happened while unassigned. Both
// sets only grow (set union is the join), so the worklist iteration reaches a
// fixed point in a bounded number of growth events.
//
// An access becomes a diagnostic only if its flag survives to the function's
// exit node: paths that always revert never reach the exit and therefore
// never report. The analysis is deliberately conservative — a flagged access
// is never retracted by later assignments, and dynamically unreachable paths
// still count.
package controlflow
