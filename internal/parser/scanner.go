package parser

import (
	"github.com/retroenv/mondriaan/internal/color"
	"github.com/retroenv/mondriaan/internal/direction"
	"github.com/retroenv/mondriaan/internal/grid"
)

// region is a maximal 4-connected set of codels sharing one color.
type region struct {
	owner int // 1-based index, matches the grid owner of all codels of the region
	color color.Color
	size  int
	start grid.Position

	// exits contains the exit codel for every direction state, only set for chromatic regions.
	exits [direction.Count]grid.Position
}

// exitPreferred reports whether the candidate codel is a better exit for the state than the
// current one: farther along the direction pointer, or equally far and farther towards the
// codel chooser side.
func exitPreferred(state direction.State, candidate, current grid.Position) bool {
	switch state {
	case direction.RightTop:
		return candidate.Column > current.Column || (candidate.Column == current.Column && candidate.Row < current.Row)
	case direction.RightBottom:
		return candidate.Column > current.Column || (candidate.Column == current.Column && candidate.Row > current.Row)
	case direction.BottomRight:
		return candidate.Row > current.Row || (candidate.Row == current.Row && candidate.Column > current.Column)
	case direction.BottomLeft:
		return candidate.Row > current.Row || (candidate.Row == current.Row && candidate.Column < current.Column)
	case direction.LeftBottom:
		return candidate.Column < current.Column || (candidate.Column == current.Column && candidate.Row > current.Row)
	case direction.LeftTop:
		return candidate.Column < current.Column || (candidate.Column == current.Column && candidate.Row < current.Row)
	case direction.TopLeft:
		return candidate.Row < current.Row || (candidate.Row == current.Row && candidate.Column < current.Column)
	case direction.TopRight:
		return candidate.Row < current.Row || (candidate.Row == current.Row && candidate.Column > current.Column)
	default:
		return false
	}
}

// scanRegion flood fills the region that contains the start codel and claims all its
// codels for the owner. The fill uses an explicit stack to support large regions.
func scanRegion(g *grid.Grid, start grid.Position, owner int) (*region, error) {
	reg := &region{
		owner: owner,
		color: g.Color(start),
		start: start,
	}
	chromatic := reg.color.IsChromatic()

	stack := []grid.Position{start}
	for len(stack) > 0 {
		pos := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !g.In(pos) || g.Claimed(pos) || g.Color(pos) != reg.color {
			continue
		}

		if err := g.Claim(pos, owner); err != nil {
			return nil, err
		}
		reg.size++

		if chromatic {
			for _, state := range direction.States {
				if reg.size == 1 || exitPreferred(state, pos, reg.exits[state]) {
					reg.exits[state] = pos
				}
			}
		}

		stack = append(stack,
			grid.Position{Row: pos.Row - 1, Column: pos.Column},
			grid.Position{Row: pos.Row + 1, Column: pos.Column},
			grid.Position{Row: pos.Row, Column: pos.Column - 1},
			grid.Position{Row: pos.Row, Column: pos.Column + 1},
		)
	}

	return reg, nil
}
