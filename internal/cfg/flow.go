package cfg

import (
	"fmt"

	"fortio.org/safecast"

	"cinder/internal/ast"
)

// NodeID indexes a node inside its Flow.
type NodeID uint32

// Node is a basic block of the control-flow graph.
type Node struct {
	ID NodeID
	// Occurrences in source order within the node.
	Occurrences []Occurrence
	// Exits are the successor nodes control flow may continue to.
	Exits []NodeID
}

// Flow is the control-flow graph of one function. Nodes live in an arena
// owned by the Flow; analyses borrow NodeIDs only.
type Flow struct {
	nodes []Node

	// Entry has no predecessors; control flow starts here.
	Entry NodeID
	// Exit collects all non-reverting control flow.
	Exit NodeID
	// Revert collects all reverting control flow; it has no exits.
	Revert NodeID
}

// NewFlow creates a flow with its three distinguished nodes allocated.
func NewFlow() *Flow {
	f := &Flow{nodes: make([]Node, 0, 8)}
	f.Entry = f.NewNode()
	f.Exit = f.NewNode()
	f.Revert = f.NewNode()
	return f
}

// NewNode allocates an empty node and returns its ID.
func (f *Flow) NewNode() NodeID {
	idx, err := safecast.Conv[uint32](len(f.nodes))
	if err != nil {
		panic(fmt.Errorf("cfg node overflow: %w", err))
	}
	id := NodeID(idx)
	f.nodes = append(f.nodes, Node{ID: id})
	return id
}

// Node returns the node for id, or nil when out of range.
func (f *Flow) Node(id NodeID) *Node {
	if f == nil || int(id) >= len(f.nodes) {
		return nil
	}
	return &f.nodes[id]
}

// NumNodes returns the number of allocated nodes.
func (f *Flow) NumNodes() int {
	if f == nil {
		return 0
	}
	return len(f.nodes)
}

// AddEdge records that control may transfer from one node to another.
func (f *Flow) AddEdge(from, to NodeID) {
	node := f.Node(from)
	if node == nil || f.Node(to) == nil {
		return
	}
	node.Exits = append(node.Exits, to)
}

// AddOccurrence appends an occurrence to the node, preserving source order.
func (f *Flow) AddOccurrence(id NodeID, occ Occurrence) {
	node := f.Node(id)
	if node == nil {
		return
	}
	node.Occurrences = append(node.Occurrences, occ)
}

// Set holds the flows of every implemented function in a file.
type Set struct {
	flows map[ast.FuncID]*Flow
}

// FlowFor returns the flow constructed for fn, or nil when fn has no body.
func (s *Set) FlowFor(fn ast.FuncID) *Flow {
	if s == nil {
		return nil
	}
	return s.flows[fn]
}
