package stack

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/mondriaan/internal/fault"
	"github.com/retroenv/mondriaan/internal/instruction"
	"github.com/retroenv/retrogolib/assert"
)

func newMachine(values ...int64) *Machine {
	m := New(strings.NewReader(""), &bytes.Buffer{})
	for _, value := range values {
		m.Push(value)
	}
	return m
}

func TestExecuteArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		values   []int64
		op       instruction.Operation
		expected []int64
	}{
		{"add", []int64{2, 3}, instruction.Add, []int64{5}},
		{"subtract", []int64{2, 3}, instruction.Subtract, []int64{-1}},
		{"multiply", []int64{4, -3}, instruction.Multiply, []int64{-12}},
		{"divide", []int64{7, 2}, instruction.Divide, []int64{3}},
		{"divide by zero", []int64{7, 0}, instruction.Divide, []int64{7, 0}},
		{"mod", []int64{7, 3}, instruction.Mod, []int64{1}},
		{"mod negative dividend", []int64{-7, 3}, instruction.Mod, []int64{2}},
		{"mod negative divisor", []int64{7, -3}, instruction.Mod, []int64{-2}},
		{"mod by zero", []int64{7, 0}, instruction.Mod, []int64{7, 0}},
		{"greater true", []int64{5, 3}, instruction.Greater, []int64{1}},
		{"greater false", []int64{3, 5}, instruction.Greater, []int64{0}},
		{"not zero", []int64{0}, instruction.Not, []int64{1}},
		{"not non zero", []int64{-4}, instruction.Not, []int64{0}},
		{"duplicate", []int64{1, 9}, instruction.Duplicate, []int64{1, 9, 9}},
		{"pop", []int64{1, 9}, instruction.Pop, []int64{1}},
		{"noop", []int64{1}, instruction.Noop, []int64{1}},
		{"add underflow", []int64{2}, instruction.Add, []int64{2}},
		{"pop underflow", nil, instruction.Pop, []int64{}},
		{"duplicate underflow", nil, instruction.Duplicate, []int64{}},
		{"not underflow", nil, instruction.Not, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(tt.values...)
			assert.NoError(t, m.Execute(tt.op, 0))
			assert.Equal(t, tt.expected, m.Values())
		})
	}
}

func TestRoll(t *testing.T) {
	tests := []struct {
		name     string
		values   []int64
		expected []int64
	}{
		{"single roll", []int64{1, 2, 3, 3, 1}, []int64{3, 1, 2}},
		{"two rolls", []int64{1, 2, 3, 3, 2}, []int64{2, 3, 1}},
		{"negative roll", []int64{1, 2, 3, 3, -1}, []int64{2, 3, 1}},
		{"rolls wrap at depth", []int64{1, 2, 3, 3, 4}, []int64{3, 1, 2}},
		{"partial depth", []int64{1, 2, 3, 2, 1}, []int64{1, 3, 2}},
		{"zero rolls", []int64{1, 2, 3, 3, 0}, []int64{1, 2, 3}},
		{"depth too large", []int64{1, 2, 5, 1}, []int64{1, 2}},
		{"negative depth", []int64{1, 2, -1, 1}, []int64{1, 2}},
		{"missing operands", []int64{1}, []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(tt.values...)
			assert.NoError(t, m.Execute(instruction.Roll, 0))
			assert.Equal(t, tt.expected, m.Values())
		})
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		op       instruction.Operation
		values   []int64
		expected int
	}{
		{"pointer", instruction.Pointer, []int64{3}, 3},
		{"pointer wraps", instruction.Pointer, []int64{6}, 2},
		{"pointer negative", instruction.Pointer, []int64{-1}, 3},
		{"pointer empty", instruction.Pointer, nil, 0},
		{"switch odd", instruction.Switch, []int64{3}, 1},
		{"switch negative", instruction.Switch, []int64{-3}, 1},
		{"switch even", instruction.Switch, []int64{4}, 0},
		{"switch empty", instruction.Switch, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(tt.values...)
			index, err := m.Select(tt.op)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, index)
			assert.Equal(t, 0, m.Len())
		})
	}

	_, err := newMachine().Select(instruction.Add)
	assert.True(t, fault.IsInternal(err))
	assert.True(t, fault.IsInternal(newMachine().Execute(instruction.Pointer, 0)))
}

func TestInputOutput(t *testing.T) {
	out := &bytes.Buffer{}
	m := New(strings.NewReader("42\nnope\nAé"), out)

	assert.NoError(t, m.Execute(instruction.InNumber, 0))
	assert.NoError(t, m.Execute(instruction.InNumber, 0))
	assert.Equal(t, []int64{42}, m.Values())

	assert.NoError(t, m.Execute(instruction.InChar, 0))
	assert.NoError(t, m.Execute(instruction.InChar, 0))
	assert.NoError(t, m.Execute(instruction.InChar, 0))
	assert.Equal(t, []int64{42, 'A', 'é'}, m.Values())

	assert.NoError(t, m.Execute(instruction.OutChar, 0))
	assert.NoError(t, m.Execute(instruction.OutChar, 0))
	assert.NoError(t, m.Execute(instruction.OutNumber, 0))
	assert.NoError(t, m.Execute(instruction.OutNumber, 0))
	assert.NoError(t, m.Flush())
	assert.Equal(t, "éA42", out.String())
}
