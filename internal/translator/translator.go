// Package translator generates code units by walking the control flow graph.
//
// A walk emits one instruction per step until it reaches a terminal node, a branching
// instruction or a state it has already visited. Branching instructions end the unit
// with a dispatch over recursively generated units, one per possible outcome. Units are
// memoized by the sequence of visited nodes, which bounds the recursion on graphs that
// loop through branches.
package translator

import (
	"strings"

	"github.com/retroenv/mondriaan/internal/direction"
	"github.com/retroenv/mondriaan/internal/fault"
	"github.com/retroenv/mondriaan/internal/graph"
	"github.com/retroenv/mondriaan/internal/instruction"
	"github.com/retroenv/mondriaan/internal/program"
	"github.com/retroenv/retrogolib/log"
)

const (
	keySeparator   = "_"
	slideMarker    = "~"
	stateMarker    = "@"
	loopMarker     = "*"
	loopJumpMarker = ">"
)

// Translator converts a graph to a program.
type Translator struct {
	logger *log.Logger

	graph   *graph.Graph
	program *program.Program
	memo    map[string]*program.Unit
}

// visit is a node together with the direction state it was entered with.
type visit struct {
	node  *graph.Node
	state direction.State
}

// mark records the generation progress at the time a visit was first seen.
type mark struct {
	instructions int
	parts        int
}

// New creates a new translator.
func New(logger *log.Logger) *Translator {
	return &Translator{
		logger: logger,
	}
}

// Translate generates the program for the graph, starting at the initial node.
func (t *Translator) Translate(g *graph.Graph) (*program.Program, error) {
	if g.Initial == nil {
		return nil, fault.Internal("graph has no initial node")
	}

	t.graph = g
	t.program = program.New()
	t.memo = map[string]*program.Unit{}

	entry, err := t.translateBranch(g.Initial, graph.StartState)
	if err != nil {
		return nil, err
	}
	t.program.Entry = entry

	t.logger.Debug("Program generated",
		log.Int("units", len(t.program.Units)),
		log.Int("instructions", t.program.InstructionCount()),
		log.String("entry", entry.Name))
	return t.program, nil
}

// translateBranch generates the unit that starts at the node with the given state.
func (t *Translator) translateBranch(node *graph.Node, state direction.State) (*program.Unit, error) {
	w := t.graph.NewWalker()
	w.Restart(node, state)

	unit := program.NewUnit()
	var parts []string
	seen := map[visit]mark{
		{node: node, state: state}: {},
	}

	for {
		step, ok, err := w.Walk()
		if err != nil {
			return nil, err
		}
		if !ok {
			return t.closeReturn(unit, parts, w.Node()), nil
		}

		if step.ViaSlide {
			parts = append(parts, slideMarker+step.Previous.ID)
		} else {
			parts = append(parts, step.Previous.ID)

			op, err := operation(step)
			if err != nil {
				return nil, err
			}

			switch {
			case op.IsBranch():
				return t.translateDispatch(unit, parts, step.Current, step.State, op)
			case op == instruction.Noop:
			case op == instruction.Push:
				unit.Emit(op, int32(step.Previous.Size))
			default:
				unit.Emit(op, 0)
			}
		}

		v := visit{node: step.Current, state: step.State}
		if m, ok := seen[v]; ok {
			return t.closeLoop(unit, parts, m, v), nil
		}
		seen[v] = mark{
			instructions: len(unit.Instructions),
			parts:        len(parts),
		}
	}
}

// translateDispatch ends the unit with a dispatch over the branches that the selector
// can take from the node. The unit is memoized before its branches are generated, so
// branches that lead back to it reuse it.
func (t *Translator) translateDispatch(unit *program.Unit, parts []string, node *graph.Node,
	state direction.State, selector instruction.Operation) (*program.Unit, error) {

	key := sequenceKey(parts, node.ID) + stateMarker + state.String()
	if memoized, ok := t.memo[key]; ok {
		t.logger.Debug("Reusing dispatch unit", log.String("unit", memoized.Name), log.String("key", key))
		return memoized, nil
	}
	t.add(unit, key)

	width := program.DispatchWidth(selector)
	targets := make([]*program.Unit, 0, width)
	for i := range width {
		target, err := t.translateBranch(node, branchState(selector, state, i))
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	unit.SetDispatch(selector, targets)
	return unit, nil
}

// closeReturn ends the unit at a terminal node.
func (t *Translator) closeReturn(unit *program.Unit, parts []string, node *graph.Node) *program.Unit {
	key := sequenceKey(parts, node.ID)
	if memoized, ok := t.memo[key]; ok {
		t.logger.Debug("Reusing unit", log.String("unit", memoized.Name), log.String("key", key))
		return memoized
	}

	unit.SetReturn()
	t.add(unit, key)
	return unit
}

// closeLoop splits the unit at the first visit of a state that was entered again. The
// instructions generated since then repeat forever and become a unit that jumps to
// itself.
func (t *Translator) closeLoop(unit *program.Unit, parts []string, m mark, v visit) *program.Unit {
	loopKey := strings.Join(parts[m.parts:], keySeparator) + loopMarker
	loop, ok := t.memo[loopKey]
	if !ok {
		loop = program.NewUnit()
		loop.Instructions = append(loop.Instructions, unit.Instructions[m.instructions:]...)
		loop.SetJump(loop)
		t.add(loop, loopKey)
		t.logger.Debug("Loop detected",
			log.String("node", v.node.ID),
			log.Stringer("state", v.state),
			log.String("unit", loop.Name))
	}

	if m.parts == 0 {
		return loop
	}

	key := sequenceKey(parts[:m.parts], v.node.ID) + loopJumpMarker + loopKey
	if memoized, ok := t.memo[key]; ok {
		return memoized
	}

	unit.Instructions = unit.Instructions[:m.instructions]
	unit.SetJump(loop)
	t.add(unit, key)
	return unit
}

func (t *Translator) add(unit *program.Unit, key string) {
	t.program.Add(unit, key)
	t.memo[key] = unit
	t.logger.Debug("Unit generated",
		log.String("unit", unit.Name),
		log.String("key", key),
		log.Int("instructions", len(unit.Instructions)))
}

// operation returns the operation that a step between two chromatic regions executes.
func operation(step graph.Step) (instruction.Operation, error) {
	tr, ok := instruction.Classify(step.Previous.Color, step.Current.Color)
	if !ok {
		return 0, fault.Internal("direct step from %s to %s has no color transition",
			step.Previous, step.Current)
	}
	return tr.Operation(), nil
}

// branchState returns the state that the branch with the given index continues with.
// Pointer branches turn the direction pointer clockwise index times, switch branches
// toggle the codel chooser for odd indexes.
func branchState(selector instruction.Operation, state direction.State, index int) direction.State {
	if selector == instruction.Switch {
		if index%2 == 1 {
			return state.Switch()
		}
		return state
	}

	for range index {
		state = state.Turn()
	}
	return state
}

// sequenceKey joins the visited node parts and the node that the unit ends at.
func sequenceKey(parts []string, final string) string {
	if len(parts) == 0 {
		return final
	}
	return strings.Join(parts, keySeparator) + keySeparator + final
}
