package grid

import (
	"testing"

	"github.com/retroenv/mondriaan/internal/color"
	"github.com/retroenv/mondriaan/internal/direction"
	"github.com/retroenv/mondriaan/internal/fault"
	"github.com/retroenv/retrogolib/assert"
)

func TestFromRows(t *testing.T) {
	g, err := FromRows([][]color.Color{
		{color.Red, color.Blue, color.White},
		{color.Black, color.Green, color.DarkRed},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Columns())
	assert.Equal(t, color.Blue, g.Color(Position{Row: 0, Column: 1}))
	assert.Equal(t, color.DarkRed, g.Color(Position{Row: 1, Column: 2}))
}

func TestFromRowsErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]color.Color
	}{
		{name: "empty", rows: nil},
		{name: "empty row", rows: [][]color.Color{{}}},
		{name: "ragged", rows: [][]color.Color{{color.Red, color.Red}, {color.Red}}},
		{name: "invalid color", rows: [][]color.Color{{color.Red, 0x999999}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRows(tt.rows)
			assert.Error(t, err)
			assert.True(t, !fault.IsInternal(err))
		})
	}
}

func TestBounds(t *testing.T) {
	g, err := New(2, 3)
	assert.NoError(t, err)

	assert.True(t, g.In(Position{Row: 1, Column: 2}))
	assert.False(t, g.In(Position{Row: 2, Column: 0}))
	assert.False(t, g.In(Position{Row: 0, Column: -1}))
	assert.Equal(t, color.Black, g.Color(Position{Row: -1, Column: 0}))
	assert.Equal(t, 0, g.Owner(Position{Row: 5, Column: 5}))
	assert.Error(t, g.SetColor(Position{Row: 0, Column: 3}, color.Red))
}

func TestClaim(t *testing.T) {
	g, err := New(2, 2)
	assert.NoError(t, err)

	pos := Position{Row: 1, Column: 0}
	assert.False(t, g.Claimed(pos))
	assert.NoError(t, g.Claim(pos, 3))
	assert.True(t, g.Claimed(pos))
	assert.Equal(t, 3, g.Owner(pos))

	// owners are stored per codel, not per row
	assert.Equal(t, 0, g.Owner(Position{Row: 0, Column: 0}))
	assert.Equal(t, 0, g.Owner(Position{Row: 1, Column: 1}))

	err = g.Claim(pos, 4)
	assert.Error(t, err)
	assert.True(t, fault.IsInternal(err))

	assert.Error(t, g.Claim(Position{Row: 0, Column: 0}, 0))
	assert.Error(t, g.Claim(Position{Row: 2, Column: 0}, 1))
}

func TestStep(t *testing.T) {
	g, err := New(3, 3)
	assert.NoError(t, err)

	center := Position{Row: 1, Column: 1}
	tests := []struct {
		dp   direction.Pointer
		want Position
	}{
		{direction.Right, Position{Row: 1, Column: 2}},
		{direction.Down, Position{Row: 2, Column: 1}},
		{direction.Left, Position{Row: 1, Column: 0}},
		{direction.Up, Position{Row: 0, Column: 1}},
	}
	for _, tt := range tests {
		next, ok := g.Step(center, tt.dp)
		assert.True(t, ok)
		assert.Equal(t, tt.want, next)
	}

	_, ok := g.Step(Position{Row: 0, Column: 0}, direction.Up)
	assert.False(t, ok)
	_, ok = g.Step(Position{Row: 2, Column: 2}, direction.Right)
	assert.False(t, ok)
}
