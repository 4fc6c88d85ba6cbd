// Package graph contains the control flow graph of a Piet program. Nodes are color
// regions, every node has one edge per direction state.
package graph

import (
	"fmt"

	"github.com/retroenv/mondriaan/internal/color"
	"github.com/retroenv/mondriaan/internal/direction"
)

// Edge is an outgoing edge of a node. An edge without a target is a redirect that
// instructs the walker to retry the same node with the edge state.
type Edge struct {
	Target *Node
	State  direction.State // replacement state for redirects, state after the move otherwise
	Slide  bool            // the move crossed white codels and does not execute an instruction
}

// IsRedirect returns whether the edge does not leave the node.
func (e *Edge) IsRedirect() bool {
	return e.Target == nil
}

// Redirect returns an edge that retries the node with the given state.
func Redirect(state direction.State) *Edge {
	return &Edge{State: state}
}

// Node is a color region of the program.
type Node struct {
	ID    string
	Color color.Color
	Size  int

	Initial  bool
	Terminal bool

	edges [direction.Count]*Edge
}

// NewNode returns a node without edges.
func NewNode(id string, c color.Color, size int) *Node {
	return &Node{
		ID:    id,
		Color: c,
		Size:  size,
	}
}

// Connect sets the edge for the direction state.
func (n *Node) Connect(state direction.State, edge *Edge) {
	n.edges[state] = edge
}

// Edge returns the edge for the direction state, nil if it is not connected.
func (n *Node) Edge(state direction.State) *Edge {
	if state >= direction.Count {
		return nil
	}
	return n.edges[state]
}

// AllRedirects returns whether no connected edge leaves the node.
func (n *Node) AllRedirects() bool {
	for _, edge := range n.edges {
		if edge != nil && !edge.IsRedirect() {
			return false
		}
	}
	return true
}

// String returns the node identifier with color and size.
func (n *Node) String() string {
	return fmt.Sprintf("%s(%s, %d)", n.ID, n.Color, n.Size)
}

// Graph is the control flow graph of a program.
type Graph struct {
	Nodes   []*Node
	Initial *Node
}

// New returns a graph for the given nodes. The initial node has to be part of the nodes.
func New(nodes []*Node, initial *Node) *Graph {
	return &Graph{
		Nodes:   nodes,
		Initial: initial,
	}
}

// NewWalker returns a walker positioned before the initial node of the graph.
func (g *Graph) NewWalker() *Walker {
	return &Walker{
		graph: g,
		state: StartState,
	}
}

