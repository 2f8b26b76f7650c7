// Package cfg builds per-function control-flow graphs over the AST.
//
// A Flow is an arena of nodes addressed by integer NodeIDs, so cyclic graphs
// (loops) never form cross-referencing ownership structures; edges are plain
// index lists. Each node carries the variable occurrences that happen inside
// it, in source order, which downstream dataflow analyses fold over.
//
// Every flow has three distinguished nodes: Entry (no predecessors), Exit
// (all non-reverting control flow ends here) and Revert (revert statements
// end here and never reach Exit, so paths that always revert stay invisible
// to exit-based analyses).
package cfg
