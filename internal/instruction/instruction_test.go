package instruction

import (
	"testing"

	"github.com/retroenv/mondriaan/internal/color"
	"github.com/retroenv/retrogolib/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		previous color.Color
		current  color.Color
		expected Transition
		op       Operation
	}{
		{"same color", color.Red, color.Red, Transition{0, 0}, Noop},
		{"darker", color.LightRed, color.Red, Transition{0, 1}, Push},
		{"two darker", color.LightRed, color.DarkRed, Transition{0, 2}, Pop},
		{"lightness wraps", color.DarkRed, color.LightRed, Transition{0, 1}, Push},
		{"next hue", color.Red, color.Yellow, Transition{1, 0}, Add},
		{"hue wraps", color.Magenta, color.Red, Transition{1, 0}, Add},
		{"hue 3 lightness 1", color.LightRed, color.Cyan, Transition{3, 1}, Pointer},
		{"hue 3 lightness 2", color.Red, color.LightCyan, Transition{3, 2}, Switch},
		{"hue 4 lightness 1", color.Yellow, color.DarkBlue, Transition{3, 1}, Pointer},
		{"hue 5 lightness 2", color.DarkYellow, color.Red, Transition{5, 2}, OutChar},
		{"hue 5 lightness 1", color.Red, color.DarkMagenta, Transition{5, 1}, OutNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, ok := Classify(tt.previous, tt.current)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, tr)
			assert.Equal(t, tt.op, tr.Operation())
		})
	}
}

func TestClassifyNonChromatic(t *testing.T) {
	for _, pair := range [][2]color.Color{
		{color.White, color.Red},
		{color.Red, color.Black},
		{color.White, color.White},
		{color.Color(0x123456), color.Red},
	} {
		_, ok := Classify(pair[0], pair[1])
		assert.False(t, ok)
	}
}

func TestOperationTable(t *testing.T) {
	table := [color.HueCount][color.LightnessCount]Operation{
		{Noop, Push, Pop},
		{Add, Subtract, Multiply},
		{Divide, Mod, Not},
		{Greater, Pointer, Switch},
		{Duplicate, Roll, InNumber},
		{InChar, OutNumber, OutChar},
	}

	for hue, row := range table {
		for lightness, expected := range row {
			tr := Transition{Hue: hue, Lightness: lightness}
			assert.Equal(t, expected, tr.Operation())
		}
	}

	// every table entry is reachable from any chromatic start color
	start := color.DarkGreen
	startHue, _ := start.Hue()
	startLightness, _ := start.Lightness()
	for hue := range color.HueCount {
		for lightness := range color.LightnessCount {
			tr, ok := Classify(start, color.At(startLightness+lightness, startHue+hue))
			assert.True(t, ok)
			assert.Equal(t, table[hue][lightness], tr.Operation())
		}
	}
}

func TestOperationProperties(t *testing.T) {
	assert.Len(t, Operations, 18)
	assert.Equal(t, "in_number", InNumber.String())
	assert.Equal(t, "out_char", OutChar.String())
	assert.Equal(t, "operation(99)", Operation(99).String())

	for _, op := range Operations {
		assert.Equal(t, op == Pointer || op == Switch, op.IsBranch())
		assert.Equal(t, op == Push, op.HasOperand())
	}
}
