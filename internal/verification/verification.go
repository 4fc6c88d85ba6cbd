// Package verification verifies that a generated program is structurally consistent
// before code is emitted for it.
package verification

import (
	"fmt"

	"github.com/retroenv/mondriaan/internal/fault"
	"github.com/retroenv/mondriaan/internal/instruction"
	"github.com/retroenv/mondriaan/internal/program"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// maxReportedIssues limits the issues that are logged individually.
const maxReportedIssues = 10

type verifier struct {
	logger *log.Logger
	units  set.Set[*program.Unit]
	names  set.Set[string]
	issues int
}

// VerifyProgram checks all units of the program. Any inconsistency is a defect of the
// code generator and is returned as internal error.
func VerifyProgram(logger *log.Logger, prog *program.Program) error {
	v := &verifier{
		logger: logger,
		units:  set.New[*program.Unit](),
		names:  set.New[string](),
	}

	for _, unit := range prog.Units {
		if v.names.Contains(unit.Name) {
			v.report(unit, "duplicate unit name")
		}
		v.names.Add(unit.Name)
		v.units.Add(unit)
	}

	if prog.Entry == nil {
		return fault.Internal("program has no entry unit")
	}
	if !v.units.Contains(prog.Entry) {
		v.report(prog.Entry, "entry unit is not part of the program")
	}

	for _, unit := range prog.Units {
		v.verifyUnit(unit)
	}

	if v.issues > 0 {
		return fault.Internal("program verification found %d issues", v.issues)
	}
	return nil
}

func (v *verifier) verifyUnit(unit *program.Unit) {
	if unit.Name == "" {
		v.report(unit, "unit has no name")
	}

	for _, ins := range unit.Instructions {
		switch {
		case int(ins.Op) >= len(instruction.Operations):
			v.report(unit, "unknown operation", ins.Op)
		case ins.Op.IsBranch():
			v.report(unit, "branch instruction inside unit body", ins.Op)
		case ins.Op == instruction.Noop:
			v.report(unit, "noop instruction emitted")
		case !ins.Op.HasOperand() && ins.Operand != 0:
			v.report(unit, "operand for instruction without operand", ins.Op)
		}
	}

	exit := unit.Exit
	switch exit.Kind {
	case program.Return:
		if len(exit.Targets) != 0 {
			v.report(unit, "return exit with targets")
		}

	case program.Jump:
		if len(exit.Targets) != 1 {
			v.report(unit, "jump exit needs exactly one target", len(exit.Targets))
		}

	case program.Dispatch:
		width := program.DispatchWidth(exit.Selector)
		if width == 0 {
			v.report(unit, "dispatch on non branch operation", exit.Selector)
		} else if len(exit.Targets) != width {
			v.report(unit, "dispatch target count mismatch", len(exit.Targets))
		}

	default:
		v.report(unit, "unknown exit kind", exit.Kind)
	}

	for _, target := range exit.Targets {
		if target == nil || !v.units.Contains(target) {
			v.report(unit, "exit target is not part of the program")
		}
	}
}

// report logs an issue of the unit together with the offending value if one is given.
func (v *verifier) report(unit *program.Unit, msg string, value ...any) {
	v.issues++
	if v.issues > maxReportedIssues {
		return
	}

	if len(value) == 0 {
		v.logger.Warn(msg, log.String("unit", unit.Name))
		return
	}
	v.logger.Warn(msg,
		log.String("unit", unit.Name),
		log.String("value", fmt.Sprint(value[0])))
}
