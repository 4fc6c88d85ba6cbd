// Package llvm generates LLVM IR for a compiled program.
//
// Every unit becomes a private void function. Units continue by tail calling the next
// unit, which keeps loops in the program from growing the native stack. Stack
// operations are calls into the runtime library.
package llvm

import (
	"fmt"
	"io"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/retroenv/mondriaan/internal/fault"
	"github.com/retroenv/mondriaan/internal/instruction"
	"github.com/retroenv/mondriaan/internal/options"
	"github.com/retroenv/mondriaan/internal/program"
	"github.com/retroenv/mondriaan/internal/writer"
)

// RuntimePrefix is the symbol prefix of all runtime library functions.
const RuntimePrefix = "mondriaan_runtime_"

// FileWriter writes the LLVM IR file content.
type FileWriter struct {
	prog       *program.Program
	options    options.Writer
	mainWriter io.Writer
	writer     *writer.Writer
}

// New creates a new file writer.
// nolint: ireturn
func New(prog *program.Program, options options.Writer, mainWriter io.Writer) writer.AssemblerWriter {
	return FileWriter{
		prog:       prog,
		options:    options,
		mainWriter: mainWriter,
		writer:     writer.New(prog, mainWriter, options),
	}
}

// Write writes the comment header followed by the module.
func (f FileWriter) Write() error {
	module, err := Generate(f.prog)
	if err != nil {
		return err
	}

	if err := f.writer.WriteCommentHeader(); err != nil {
		return err
	}
	if _, err := io.WriteString(f.mainWriter, module.String()); err != nil {
		return fmt.Errorf("writing module: %w", err)
	}
	return nil
}

type generator struct {
	module  *ir.Module
	runtime map[instruction.Operation]*ir.Func
	units   map[*program.Unit]*ir.Func
}

// Generate returns the module for the program.
func Generate(prog *program.Program) (*ir.Module, error) {
	if prog.Entry == nil {
		return nil, fault.Internal("program has no entry unit")
	}

	g := &generator{
		module:  ir.NewModule(),
		runtime: map[instruction.Operation]*ir.Func{},
		units:   map[*program.Unit]*ir.Func{},
	}
	g.declareRuntime()

	// declare all units first, exits can reference units that are defined later
	for _, unit := range prog.Units {
		f := g.module.NewFunc(unit.Name, types.Void)
		f.Linkage = enum.LinkagePrivate
		g.units[unit] = f
	}

	for _, unit := range prog.Units {
		if err := g.defineUnit(unit); err != nil {
			return nil, fmt.Errorf("generating unit %s: %w", unit.Name, err)
		}
	}

	entry, ok := g.units[prog.Entry]
	if !ok {
		return nil, fault.Internal("entry unit %s is not part of the program", prog.Entry.Name)
	}
	mainFunc := g.module.NewFunc("main", types.I32)
	block := mainFunc.NewBlock("entry")
	block.NewCall(entry)
	block.NewCall(g.runtime[flushOperation])
	block.NewRet(constant.NewInt(types.I32, 0))

	return g.module, nil
}

// flushOperation is a pseudo operation used as key for the runtime output flush function.
const flushOperation = instruction.Operation(0xff)

// declareRuntime declares the external runtime library functions.
func (g *generator) declareRuntime() {
	for _, op := range instruction.Operations {
		var f *ir.Func
		switch {
		case op == instruction.Noop:
			continue
		case op.IsBranch():
			f = g.module.NewFunc(RuntimePrefix+op.String(), types.I32)
		case op.HasOperand():
			f = g.module.NewFunc(RuntimePrefix+op.String(), types.Void, ir.NewParam("value", types.I32))
		default:
			f = g.module.NewFunc(RuntimePrefix+op.String(), types.Void)
		}
		g.runtime[op] = f
	}
	g.runtime[flushOperation] = g.module.NewFunc(RuntimePrefix+"flush", types.Void)
}

// defineUnit generates the body of the unit function.
func (g *generator) defineUnit(unit *program.Unit) error {
	f := g.units[unit]
	block := f.NewBlock("entry")

	for _, ins := range unit.Instructions {
		callee, ok := g.runtime[ins.Op]
		if !ok || ins.Op.IsBranch() {
			return fault.Internal("no runtime function for %s", ins.Op)
		}
		if ins.Op.HasOperand() {
			block.NewCall(callee, constant.NewInt(types.I32, int64(ins.Operand)))
		} else {
			block.NewCall(callee)
		}
	}

	exit := unit.Exit
	switch exit.Kind {
	case program.Return:
		block.NewRet(nil)
		return nil

	case program.Jump:
		if len(exit.Targets) != 1 {
			return fault.Internal("jump with %d targets", len(exit.Targets))
		}
		return g.tailCall(block, exit.Targets[0])

	case program.Dispatch:
		return g.dispatch(f, block, exit)

	default:
		return fault.Internal("unsupported exit kind %s", exit.Kind)
	}
}

// dispatch calls the selector and compares the result against the target indexes in a
// chain of equality checks. A value without a match continues with the last target.
func (g *generator) dispatch(f *ir.Func, block *ir.Block, exit program.Exit) error {
	selector, ok := g.runtime[exit.Selector]
	if !ok || !exit.Selector.IsBranch() || len(exit.Targets) == 0 {
		return fault.Internal("invalid dispatch on %s with %d targets", exit.Selector, len(exit.Targets))
	}

	var index value.Value = block.NewCall(selector)
	check := block
	last := len(exit.Targets) - 1

	for i, target := range exit.Targets[:last] {
		take := f.NewBlock(fmt.Sprintf("target%d", i))
		if err := g.tailCall(take, target); err != nil {
			return err
		}

		name := fmt.Sprintf("check%d", i+1)
		if i+1 == last {
			name = "fallthrough"
		}
		next := f.NewBlock(name)

		cond := check.NewICmp(enum.IPredEQ, index, constant.NewInt(types.I32, int64(i)))
		check.NewCondBr(cond, take, next)
		check = next
	}

	return g.tailCall(check, exit.Targets[last])
}

func (g *generator) tailCall(block *ir.Block, target *program.Unit) error {
	if target == nil {
		return fault.Internal("missing target unit")
	}
	callee, ok := g.units[target]
	if !ok {
		return fault.Internal("target unit %s is not part of the program", target.Name)
	}

	call := block.NewCall(callee)
	call.Tail = enum.TailMustTail
	block.NewRet(nil)
	return nil
}
