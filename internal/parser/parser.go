// Package parser builds the control flow graph of a Piet program from its codel grid.
package parser

import (
	"fmt"

	"github.com/retroenv/mondriaan/internal/direction"
	"github.com/retroenv/mondriaan/internal/fault"
	"github.com/retroenv/mondriaan/internal/graph"
	"github.com/retroenv/mondriaan/internal/grid"
	"github.com/retroenv/retrogolib/log"
)

const nodeNaming = "block%d"

// Parser builds a graph with one node per color region of a grid. The grid is consumed
// by parsing: all reachable codels are claimed by their regions.
type Parser struct {
	logger *log.Logger
	grid   *grid.Grid

	regions []*region     // indexed by owner - 1
	nodes   []*graph.Node // indexed by owner - 1
}

// New creates a new parser for the grid.
func New(logger *log.Logger, g *grid.Grid) *Parser {
	return &Parser{
		logger: logger,
		grid:   g,
	}
}

// Parse discovers all regions that are reachable from the top left codel and connects
// them. The region of the top left codel becomes the initial node.
func (p *Parser) Parse() (*graph.Graph, error) {
	if len(p.regions) > 0 {
		return nil, fault.Internal("grid has already been parsed")
	}

	origin := grid.Position{}
	if p.grid.Color(origin).IsBlack() {
		return nil, fault.Input("program starts on a black codel")
	}
	// a white origin region becomes the only node, it is terminal and the program ends

	if err := p.discover(origin); err != nil {
		return nil, fmt.Errorf("discovering regions: %w", err)
	}

	// slides can discover new regions, which get appended and connected by this loop
	for i := 0; i < len(p.regions); i++ {
		if err := p.connect(i); err != nil {
			return nil, fmt.Errorf("connecting region %d: %w", i+1, err)
		}
	}

	initial := p.nodes[0]
	initial.Initial = true

	p.logger.Debug("Graph assembled",
		log.Int("nodes", len(p.nodes)),
		log.String("initial", initial.String()))

	return graph.New(p.nodes, initial), nil
}

// discover scans all regions that can be reached from the origin through the exits of
// chromatic regions.
func (p *Parser) discover(origin grid.Position) error {
	worklist := []grid.Position{origin}

	for len(worklist) > 0 {
		pos := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if p.grid.Claimed(pos) || p.grid.Color(pos).IsBlack() {
			continue
		}

		reg, err := p.addRegion(pos)
		if err != nil {
			return err
		}
		if !reg.color.IsChromatic() {
			continue
		}

		for _, state := range direction.States {
			next, ok := p.grid.Step(reg.exits[state], state.Pointer())
			if ok && !p.grid.Claimed(next) {
				worklist = append(worklist, next)
			}
		}
	}
	return nil
}

// addRegion scans the region at the position and creates its node.
func (p *Parser) addRegion(pos grid.Position) (*region, error) {
	owner := len(p.regions) + 1
	reg, err := scanRegion(p.grid, pos, owner)
	if err != nil {
		return nil, fmt.Errorf("scanning region at %s: %w", pos, err)
	}

	node := graph.NewNode(fmt.Sprintf(nodeNaming, owner), reg.color, reg.size)
	p.regions = append(p.regions, reg)
	p.nodes = append(p.nodes, node)

	p.logger.Debug("Region found",
		log.String("node", node.String()),
		log.String("start", pos.String()))
	return reg, nil
}

// nodeAt returns the node of the region containing the position, scanning the region
// first if it has not been discovered yet.
func (p *Parser) nodeAt(pos grid.Position) (*graph.Node, error) {
	owner := p.grid.Owner(pos)
	if owner == 0 {
		reg, err := p.addRegion(pos)
		if err != nil {
			return nil, err
		}
		owner = reg.owner
	}
	if owner > len(p.nodes) {
		return nil, fault.Internal("codel %s is owned by unknown region %d", pos, owner)
	}
	return p.nodes[owner-1], nil
}

// connect sets all 8 edges of the node of a region and determines whether it is terminal.
// White regions have no edges and are always terminal.
func (p *Parser) connect(idx int) error {
	reg := p.regions[idx]
	node := p.nodes[idx]

	if !reg.color.IsChromatic() {
		node.Terminal = true
		return nil
	}

	for _, state := range direction.States {
		edge, err := p.exitEdge(reg, state)
		if err != nil {
			return fmt.Errorf("resolving %s exit: %w", state, err)
		}
		node.Connect(state, edge)
	}

	node.Terminal = node.AllRedirects()
	return nil
}

// exitEdge resolves the edge that leaves the region through the exit of the state.
func (p *Parser) exitEdge(reg *region, state direction.State) (*graph.Edge, error) {
	next, ok := p.grid.Step(reg.exits[state], state.Pointer())
	if !ok {
		return graph.Redirect(state.Next()), nil
	}

	c := p.grid.Color(next)
	switch {
	case c.IsBlack():
		return graph.Redirect(state.Next()), nil

	case c.IsWhite():
		return p.slide(next, state)

	default:
		target, err := p.nodeAt(next)
		if err != nil {
			return nil, err
		}
		return &graph.Edge{Target: target, State: state}, nil
	}
}
