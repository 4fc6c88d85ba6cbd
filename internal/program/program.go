// Package program represents a compiled Piet program as a set of code units.
package program

import (
	"fmt"

	"github.com/retroenv/mondriaan/internal/instruction"
)

// Instruction is a single call into the runtime library.
type Instruction struct {
	Op      instruction.Operation
	Operand int32 // value pushed by a push instruction
}

// String returns the instruction in listing notation.
func (i Instruction) String() string {
	if i.Op.HasOperand() {
		return fmt.Sprintf("%s %d", i.Op, i.Operand)
	}
	return i.Op.String()
}

// Unit is a straight sequence of instructions with a single exit at its end.
type Unit struct {
	Name string // identifier in the generated code
	Key  string // visited node sequence the unit was generated for

	Instructions []Instruction
	Exit         Exit
}

// NewUnit returns an unnamed unit without instructions that returns at its end.
func NewUnit() *Unit {
	return &Unit{}
}

// Emit appends an instruction.
func (u *Unit) Emit(op instruction.Operation, operand int32) {
	u.Instructions = append(u.Instructions, Instruction{Op: op, Operand: operand})
}

// String returns the unit name.
func (u *Unit) String() string {
	return u.Name
}

// Program is a compiled program.
type Program struct {
	Entry *Unit
	Units []*Unit // in creation order
}

// New creates a new empty program.
func New() *Program {
	return &Program{}
}

// Add names the unit and appends it to the program.
func (p *Program) Add(unit *Unit, key string) {
	unit.Name = fmt.Sprintf("unit%d", len(p.Units))
	unit.Key = key
	p.Units = append(p.Units, unit)
}

// InstructionCount returns the number of instructions of all units.
func (p *Program) InstructionCount() int {
	count := 0
	for _, unit := range p.Units {
		count += len(unit.Instructions)
	}
	return count
}
