package graph

import (
	"fmt"
	"strings"

	"github.com/retroenv/mondriaan/internal/direction"
)

// GenerateMermaid produces a Mermaid flowchart of the graph.
// Node shapes:
// - Initial: ((Circle))
// - Terminal: ([Stadium])
// - Default: [Rectangle]
// Direct edges are labeled with the direction states that take them, slides are dotted.
// Redirects are not drawn.
func GenerateMermaid(g *Graph) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range g.Nodes {
		opener, closer := "[", "]"
		switch {
		case node.Initial:
			opener, closer = "((", "))"
		case node.Terminal:
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s %d\"%s\n", node.ID, opener, node.Color, node.Size, closer)
	}

	for _, node := range g.Nodes {
		writeMermaidEdges(&sb, node)
	}
	return sb.String()
}

// writeMermaidEdges writes one arrow per target and edge type, combining the labels of all
// states that share it.
func writeMermaidEdges(sb *strings.Builder, node *Node) {
	type arrow struct {
		target string
		slide  bool
	}
	var order []arrow
	labels := map[arrow][]string{}

	for _, state := range direction.States {
		edge := node.Edge(state)
		if edge == nil || edge.IsRedirect() {
			continue
		}
		a := arrow{target: edge.Target.ID, slide: edge.Slide}
		if _, ok := labels[a]; !ok {
			order = append(order, a)
		}
		labels[a] = append(labels[a], state.String())
	}

	for _, a := range order {
		label := strings.Join(labels[a], ", ")
		if a.slide {
			fmt.Fprintf(sb, "    %s -. \"%s\" .-> %s\n", node.ID, label, a.target)
		} else {
			fmt.Fprintf(sb, "    %s -- \"%s\" --> %s\n", node.ID, label, a.target)
		}
	}
}
