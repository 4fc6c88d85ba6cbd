package program

import (
	"github.com/retroenv/mondriaan/internal/instruction"
)

// ExitKind defines how a unit continues after its last instruction.
type ExitKind uint8

// exit kinds.
const (
	Return   ExitKind = iota // program ends
	Jump                     // continue with the only target
	Dispatch                 // select the target by the value returned from the selector
)

var exitKindNames = [...]string{
	Return:   "return",
	Jump:     "jump",
	Dispatch: "dispatch",
}

// String returns the exit kind name.
func (k ExitKind) String() string {
	if int(k) < len(exitKindNames) {
		return exitKindNames[k]
	}
	return "unknown"
}

// Exit is the end of a unit.
type Exit struct {
	Kind     ExitKind
	Selector instruction.Operation // pointer or switch, only for dispatch exits
	Targets  []*Unit
}

// SetReturn ends the unit by returning from the program.
func (u *Unit) SetReturn() {
	u.Exit = Exit{Kind: Return}
}

// SetJump ends the unit by continuing with the target.
func (u *Unit) SetJump(target *Unit) {
	u.Exit = Exit{
		Kind:    Jump,
		Targets: []*Unit{target},
	}
}

// SetDispatch ends the unit with a call to the selector, the returned value is the index
// of the target to continue with. Values without a target continue with the last one.
func (u *Unit) SetDispatch(selector instruction.Operation, targets []*Unit) {
	u.Exit = Exit{
		Kind:     Dispatch,
		Selector: selector,
		Targets:  targets,
	}
}

// DispatchWidth returns the number of targets a dispatch on the selector needs.
func DispatchWidth(selector instruction.Operation) int {
	switch selector {
	case instruction.Pointer:
		return 4
	case instruction.Switch:
		return 2
	default:
		return 0
	}
}
