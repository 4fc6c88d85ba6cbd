// Package grid implements the codel grid of a Piet program together with the region
// ownership of every codel.
package grid

import (
	"fmt"

	"github.com/retroenv/mondriaan/internal/color"
	"github.com/retroenv/mondriaan/internal/direction"
	"github.com/retroenv/mondriaan/internal/fault"
)

// Position is the location of a codel.
type Position struct {
	Row    int
	Column int
}

// String returns the position formatted as (row, column).
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Column)
}

// Grid contains the codel colors and the 1-based index of the region that claimed each
// codel, 0 marks an unclaimed codel.
type Grid struct {
	rows    int
	columns int

	colors []color.Color
	owners []int
}

// New returns a grid of the given size with all codels set to black.
func New(rows, columns int) (*Grid, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fault.Input("invalid grid size %dx%d", rows, columns)
	}

	return &Grid{
		rows:    rows,
		columns: columns,
		colors:  make([]color.Color, rows*columns),
		owners:  make([]int, rows*columns),
	}, nil
}

// FromRows returns a grid initialized with the given rows of colors. All rows need to have
// the same length and every color needs to be a valid Piet color.
func FromRows(rows [][]color.Color) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fault.Input("empty grid")
	}

	g, err := New(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}

	for row, values := range rows {
		if len(values) != g.columns {
			return nil, fault.Input("row %d has %d columns, expected %d", row, len(values), g.columns)
		}
		for column, c := range values {
			pos := Position{Row: row, Column: column}
			if !c.Valid() {
				return nil, fault.Input("invalid color %s at %s", c, pos)
			}
			g.colors[g.index(pos)] = c
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of columns.
func (g *Grid) Columns() int {
	return g.columns
}

// In returns whether the position is inside the grid.
func (g *Grid) In(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Column >= 0 && pos.Column < g.columns
}

// Color returns the color of the codel at the position. Positions outside of the grid
// are reported as black, as they block movement the same way.
func (g *Grid) Color(pos Position) color.Color {
	if !g.In(pos) {
		return color.Black
	}
	return g.colors[g.index(pos)]
}

// SetColor sets the color of the codel at the position.
func (g *Grid) SetColor(pos Position, c color.Color) error {
	if !g.In(pos) {
		return fault.Internal("setting color at %s outside of %dx%d grid", pos, g.rows, g.columns)
	}
	g.colors[g.index(pos)] = c
	return nil
}

// Owner returns the 1-based index of the region that claimed the codel, or 0.
func (g *Grid) Owner(pos Position) int {
	if !g.In(pos) {
		return 0
	}
	return g.owners[g.index(pos)]
}

// Claimed returns whether the codel has been claimed by a region.
func (g *Grid) Claimed(pos Position) bool {
	return g.Owner(pos) != 0
}

// Claim marks the codel as owned by the region with the given 1-based index.
// A codel can only be claimed once.
func (g *Grid) Claim(pos Position, owner int) error {
	if !g.In(pos) {
		return fault.Internal("claiming %s outside of %dx%d grid", pos, g.rows, g.columns)
	}
	if owner <= 0 {
		return fault.Internal("invalid owner %d for %s", owner, pos)
	}

	idx := g.index(pos)
	if current := g.owners[idx]; current != 0 {
		return fault.Internal("codel %s already claimed by region %d", pos, current)
	}
	g.owners[idx] = owner
	return nil
}

// Step returns the position of the neighbor codel in the given direction and whether
// it is inside the grid.
func (g *Grid) Step(pos Position, dp direction.Pointer) (Position, bool) {
	dr, dc := dp.Delta()
	next := Position{Row: pos.Row + dr, Column: pos.Column + dc}
	return next, g.In(next)
}

func (g *Grid) index(pos Position) int {
	return pos.Row*g.columns + pos.Column
}
