// Package instruction contains the Piet operations and the classification of color
// transitions into operations.
package instruction

import (
	"fmt"

	"github.com/retroenv/mondriaan/internal/color"
)

// Operation is a Piet stack operation.
type Operation uint8

// All operations, ordered by hue change and lightness change of the transition that
// selects them.
const (
	Noop Operation = iota
	Push
	Pop
	Add
	Subtract
	Multiply
	Divide
	Mod
	Not
	Greater
	Pointer
	Switch
	Duplicate
	Roll
	InNumber
	InChar
	OutNumber
	OutChar
)

var operationNames = [...]string{
	Noop:      "noop",
	Push:      "push",
	Pop:       "pop",
	Add:       "add",
	Subtract:  "subtract",
	Multiply:  "multiply",
	Divide:    "divide",
	Mod:       "mod",
	Not:       "not",
	Greater:   "greater",
	Pointer:   "pointer",
	Switch:    "switch",
	Duplicate: "duplicate",
	Roll:      "roll",
	InNumber:  "in_number",
	InChar:    "in_char",
	OutNumber: "out_number",
	OutChar:   "out_char",
}

// Operations lists all operations.
var Operations = func() []Operation {
	ops := make([]Operation, len(operationNames))
	for i := range ops {
		ops[i] = Operation(i)
	}
	return ops
}()

// String returns the operation name as used by the runtime library.
func (o Operation) String() string {
	if int(o) < len(operationNames) {
		return operationNames[o]
	}
	return fmt.Sprintf("operation(%d)", uint8(o))
}

// IsBranch returns whether the operation changes the direction state depending on the
// value on top of the stack.
func (o Operation) IsBranch() bool {
	return o == Pointer || o == Switch
}

// HasOperand returns whether the operation carries an immediate operand.
func (o Operation) HasOperand() bool {
	return o == Push
}

// Transition is the step distance between two colors in the hue and lightness cycles.
type Transition struct {
	Hue       int // 0..5
	Lightness int // 0..2
}

// Classify returns the transition from the previous to the current color. It returns
// false if one of the colors is not part of the color cycle.
func Classify(previous, current color.Color) (Transition, bool) {
	prevHue, ok1 := previous.Hue()
	curHue, ok2 := current.Hue()
	if !ok1 || !ok2 {
		return Transition{}, false
	}

	prevLightness, _ := previous.Lightness()
	curLightness, _ := current.Lightness()

	return Transition{
		Hue:       (curHue - prevHue + color.HueCount) % color.HueCount,
		Lightness: (curLightness - prevLightness + color.LightnessCount) % color.LightnessCount,
	}, true
}

// Operation returns the operation that the transition selects.
func (t Transition) Operation() Operation {
	return Operation(t.Hue*color.LightnessCount + t.Lightness)
}

// String returns the transition as hue and lightness step distances.
func (t Transition) String() string {
	return fmt.Sprintf("hue %d lightness %d", t.Hue, t.Lightness)
}
