// Package vm interprets compiled programs using the runtime library of the stack package.
package vm

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/mondriaan/internal/program"
	"github.com/retroenv/mondriaan/internal/stack"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnitLimit is returned when a program executed the maximum number of units.
var ErrUnitLimit = errors.New("unit limit reached")

// contextCheckInterval is the number of units that are executed between checks of the
// context for cancellation.
const contextCheckInterval = 1024

// VM executes programs on a stack machine.
type VM struct {
	logger   *log.Logger
	machine  *stack.Machine
	maxUnits int // 0 means no limit
}

// New creates a new VM. A maximum of 0 units runs the program until it returns.
func New(logger *log.Logger, machine *stack.Machine, maxUnits int) *VM {
	return &VM{
		logger:   logger,
		machine:  machine,
		maxUnits: maxUnits,
	}
}

// Run executes the program starting at its entry unit until a unit returns. Programs
// can loop forever, the context can be used to stop them.
func (v *VM) Run(ctx context.Context, prog *program.Program) (err error) {
	defer func() {
		if flushErr := v.machine.Flush(); flushErr != nil && err == nil {
			err = flushErr
		}
	}()

	unit := prog.Entry
	executed := 0
	for unit != nil {
		if executed%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("running program: %w", err)
			}
		}
		if v.maxUnits > 0 && executed >= v.maxUnits {
			return fmt.Errorf("running program: %w: %d", ErrUnitLimit, v.maxUnits)
		}
		executed++

		unit, err = v.execute(unit)
		if err != nil {
			return err
		}
	}

	v.logger.Debug("Program finished", log.Int("units", executed))
	return nil
}

// execute runs the instructions of the unit and returns the unit to continue with, nil if
// the program ends.
func (v *VM) execute(unit *program.Unit) (*program.Unit, error) {
	for _, ins := range unit.Instructions {
		if err := v.machine.Execute(ins.Op, ins.Operand); err != nil {
			return nil, fmt.Errorf("executing %s in %s: %w", ins, unit.Name, err)
		}
	}

	exit := unit.Exit
	switch exit.Kind {
	case program.Return:
		return nil, nil

	case program.Jump:
		return exit.Targets[0], nil

	case program.Dispatch:
		index, err := v.machine.Select(exit.Selector)
		if err != nil {
			return nil, fmt.Errorf("dispatching %s: %w", unit.Name, err)
		}
		// values without a target fall through to the last one
		index = min(index, len(exit.Targets)-1)
		return exit.Targets[index], nil

	default:
		return nil, fmt.Errorf("unit %s has unsupported exit kind %s", unit.Name, exit.Kind)
	}
}
