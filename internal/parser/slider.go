package parser

import (
	"github.com/retroenv/mondriaan/internal/direction"
	"github.com/retroenv/mondriaan/internal/graph"
	"github.com/retroenv/mondriaan/internal/grid"
	"github.com/retroenv/retrogolib/log"
)

// maxFlips is the number of orientation flips a slide can perform before the white
// region is treated as a dead end.
const maxFlips = 4

// slide moves in a straight line through white codels, starting at the entry codel.
// Hitting black or the grid border flips the orientation. The returned edge leads to the
// first chromatic region that is reached, or to the white region itself if the flips are
// exhausted, which ends the program there.
func (p *Parser) slide(entry grid.Position, state direction.State) (*graph.Edge, error) {
	white, err := p.nodeAt(entry)
	if err != nil {
		return nil, err
	}

	pos := entry
	flips := 0
	for {
		next, ok := p.grid.Step(pos, state.Pointer())
		c := p.grid.Color(next)

		switch {
		case !ok || c.IsBlack():
			if flips == maxFlips {
				p.logger.Debug("Slide is a dead end",
					log.String("entry", entry.String()),
					log.String("node", white.ID))
				return &graph.Edge{Target: white, State: state, Slide: true}, nil
			}
			state = state.Flip()
			flips++

		case c.IsWhite():
			pos = next

		default:
			target, err := p.nodeAt(next)
			if err != nil {
				return nil, err
			}
			return &graph.Edge{Target: target, State: state, Slide: true}, nil
		}
	}
}
