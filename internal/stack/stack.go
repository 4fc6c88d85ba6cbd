// Package stack implements the runtime library of compiled programs: an unbounded stack of
// integers together with the Piet operations on it. Operations that lack operands or
// have invalid ones leave the stack unchanged.
package stack

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/mondriaan/internal/fault"
	"github.com/retroenv/mondriaan/internal/instruction"
)

// Machine is the operand stack with its input and output streams.
type Machine struct {
	values []int64
	in     *bufio.Reader
	out    *bufio.Writer
}

// New creates a new machine with an empty stack.
func New(in io.Reader, out io.Writer) *Machine {
	return &Machine{
		in:  bufio.NewReader(in),
		out: bufio.NewWriter(out),
	}
}

// Len returns the number of values on the stack.
func (m *Machine) Len() int {
	return len(m.values)
}

// Values returns a copy of the stack, the top value is last.
func (m *Machine) Values() []int64 {
	values := make([]int64, len(m.values))
	copy(values, m.values)
	return values
}

// Flush writes all buffered output.
func (m *Machine) Flush() error {
	if err := m.out.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

// Execute runs a non branching operation.
func (m *Machine) Execute(op instruction.Operation, operand int32) error {
	switch op {
	case instruction.Noop:
	case instruction.Push:
		m.Push(int64(operand))
	case instruction.Pop:
		m.pop()
	case instruction.Add:
		m.binary(func(a, b int64) (int64, bool) { return a + b, true })
	case instruction.Subtract:
		m.binary(func(a, b int64) (int64, bool) { return a - b, true })
	case instruction.Multiply:
		m.binary(func(a, b int64) (int64, bool) { return a * b, true })
	case instruction.Divide:
		m.binary(divide)
	case instruction.Mod:
		m.binary(modulo)
	case instruction.Not:
		m.Not()
	case instruction.Greater:
		m.binary(greater)
	case instruction.Duplicate:
		m.Duplicate()
	case instruction.Roll:
		m.Roll()
	case instruction.InNumber:
		return m.InNumber()
	case instruction.InChar:
		return m.InChar()
	case instruction.OutNumber:
		return m.OutNumber()
	case instruction.OutChar:
		return m.OutChar()
	default:
		return fault.Internal("operation %s can not be executed directly", op)
	}
	return nil
}

// Push pushes a value.
func (m *Machine) Push(value int64) {
	m.values = append(m.values, value)
}

func (m *Machine) pop() (int64, bool) {
	if len(m.values) == 0 {
		return 0, false
	}
	value := m.values[len(m.values)-1]
	m.values = m.values[:len(m.values)-1]
	return value, true
}

// binary pops the top value b and the value a below it and pushes the result of
// the operation on a and b. Nothing is changed if the operation rejects the operands.
func (m *Machine) binary(operation func(a, b int64) (int64, bool)) {
	n := len(m.values)
	if n < 2 {
		return
	}

	result, ok := operation(m.values[n-2], m.values[n-1])
	if !ok {
		return
	}
	m.values = m.values[:n-1]
	m.values[n-2] = result
}

func divide(a, b int64) (int64, bool) {
	if b == 0 {
		return 0, false
	}
	return a / b, true
}

// modulo returns the remainder with the sign of the divisor.
func modulo(a, b int64) (int64, bool) {
	if b == 0 {
		return 0, false
	}
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r, true
}

func greater(a, b int64) (int64, bool) {
	if a > b {
		return 1, true
	}
	return 0, true
}

// Not replaces the top value by 1 if it is 0, otherwise by 0.
func (m *Machine) Not() {
	n := len(m.values)
	if n == 0 {
		return
	}
	if m.values[n-1] == 0 {
		m.values[n-1] = 1
	} else {
		m.values[n-1] = 0
	}
}

// Duplicate pushes a copy of the top value.
func (m *Machine) Duplicate() {
	if n := len(m.values); n > 0 {
		m.values = append(m.values, m.values[n-1])
	}
}

// Roll pops the number of rolls and the depth and rotates the top depth values. A single
// roll buries the top value at the depth and moves the values above it up by one,
// negative rolls rotate the other way. An invalid depth consumes both operands only.
func (m *Machine) Roll() {
	if len(m.values) < 2 {
		return
	}
	rolls, _ := m.pop()
	depth, _ := m.pop()

	n := int64(len(m.values))
	if depth <= 0 || depth > n {
		return
	}
	rolls %= depth
	if rolls < 0 {
		rolls += depth
	}
	if rolls == 0 {
		return
	}

	segment := m.values[n-depth:]
	rotated := make([]int64, depth)
	for i := range segment {
		rotated[(int64(i)+rolls)%depth] = segment[i]
	}
	copy(segment, rotated)
}

// Pointer pops the top value and returns it modulo 4 as number of clockwise direction
// pointer turns. An empty stack returns 0.
func (m *Machine) Pointer() int {
	value, ok := m.pop()
	if !ok {
		return 0
	}
	return int(((value % 4) + 4) % 4)
}

// Switch pops the top value and returns its absolute value modulo 2 as number of codel
// chooser toggles. An empty stack returns 0.
func (m *Machine) Switch() int {
	value, ok := m.pop()
	if !ok {
		return 0
	}
	return int(((value % 2) + 2) % 2)
}

// Select runs the branching operation and returns the index of the branch to take.
func (m *Machine) Select(op instruction.Operation) (int, error) {
	switch op {
	case instruction.Pointer:
		return m.Pointer(), nil
	case instruction.Switch:
		return m.Switch(), nil
	default:
		return 0, fault.Internal("operation %s is not a branch", op)
	}
}

// InNumber reads a line containing a decimal number and pushes it. Input that is not a
// number is ignored.
func (m *Machine) InNumber() error {
	if err := m.out.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	line, err := m.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading number: %w", err)
	}

	value, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return nil //nolint:nilerr // invalid input leaves the stack unchanged
	}
	m.Push(value)
	return nil
}

// InChar reads a single UTF-8 character and pushes its code point. Nothing is pushed at the
// end of the input.
func (m *Machine) InChar() error {
	if err := m.out.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	r, _, err := m.in.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("reading character: %w", err)
	}
	m.Push(int64(r))
	return nil
}

// OutNumber pops the top value and writes it as decimal number.
func (m *Machine) OutNumber() error {
	value, ok := m.pop()
	if !ok {
		return nil
	}
	if _, err := m.out.WriteString(strconv.FormatInt(value, 10)); err != nil {
		return fmt.Errorf("writing number: %w", err)
	}
	return nil
}

// OutChar pops the top value and writes it as UTF-8 character.
func (m *Machine) OutChar() error {
	value, ok := m.pop()
	if !ok {
		return nil
	}
	if _, err := m.out.WriteRune(rune(value)); err != nil {
		return fmt.Errorf("writing character: %w", err)
	}
	return nil
}
