package graph

import (
	"github.com/retroenv/mondriaan/internal/direction"
	"github.com/retroenv/mondriaan/internal/fault"
)

// StartState is the direction state that program execution starts with.
const StartState = direction.RightTop

// Step is a single move between two nodes.
type Step struct {
	Previous *Node
	Current  *Node
	ViaSlide bool            // no instruction is executed for this step
	State    direction.State // state after the move
}

// Walker is a traversal cursor over a graph. Walkers are independent of each other,
// any number of them can traverse the same graph.
type Walker struct {
	graph *Graph
	node  *Node
	state direction.State
}

// Node returns the node the walker is positioned at, nil before the first step.
func (w *Walker) Node() *Node {
	return w.node
}

// State returns the current direction state.
func (w *Walker) State() direction.State {
	return w.state
}

// Restart positions the walker at the given node and state.
func (w *Walker) Restart(node *Node, state direction.State) {
	w.node = node
	w.state = state
}

// Walk moves the walker to the next node. It returns false if the walker is positioned
// at a terminal node and the program ends.
func (w *Walker) Walk() (Step, bool, error) {
	if w.node == nil {
		w.node = w.graph.Initial
		if w.node == nil {
			return Step{}, false, fault.Internal("graph has no initial node")
		}
	}
	if w.node.Terminal {
		return Step{}, false, nil
	}

	state := w.state
	for range direction.Count {
		edge := w.node.Edge(state)
		if edge == nil {
			return Step{}, false, fault.Internal("node %s has no edge for state %s", w.node.ID, state)
		}

		if edge.IsRedirect() {
			state = edge.State
			continue
		}

		step := Step{
			Previous: w.node,
			Current:  edge.Target,
			ViaSlide: edge.Slide,
			State:    edge.State,
		}
		w.node = edge.Target
		w.state = edge.State
		return step, true, nil
	}

	return Step{}, false, fault.Internal("non terminal node %s has no exit within %d redirects",
		w.node.ID, direction.Count)
}
