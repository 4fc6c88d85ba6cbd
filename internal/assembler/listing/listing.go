// Package listing writes a compiled program as human readable text listing.
package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/mondriaan/internal/options"
	"github.com/retroenv/mondriaan/internal/program"
	"github.com/retroenv/mondriaan/internal/writer"
)

// FileWriter writes the listing file content.
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

// Write writes the comment header and all units, starting with the entry unit.
func (f FileWriter) Write() error {
	if err := f.writer.WriteCommentHeader(); err != nil {
		return err
	}

	units := make([]*program.Unit, 0, len(f.prog.Units))
	if f.prog.Entry != nil {
		units = append(units, f.prog.Entry)
	}
	for _, unit := range f.prog.Units {
		if unit != f.prog.Entry {
			units = append(units, unit)
		}
	}

	for i, unit := range units {
		if i > 0 {
			if err := f.writer.WriteLine(); err != nil {
				return err
			}
		}
		if err := f.writeUnit(unit); err != nil {
			return fmt.Errorf("writing unit %s: %w", unit.Name, err)
		}
	}
	return nil
}

func (f FileWriter) writeUnit(unit *program.Unit) error {
	if err := f.writer.WriteLabel(unit.Name, unit.Key); err != nil {
		return err
	}

	for _, ins := range unit.Instructions {
		if err := f.writer.WriteCodeLine(ins.String(), ""); err != nil {
			return err
		}
	}

	return f.writer.WriteCodeLine(exitCode(unit.Exit), "")
}

// exitCode returns the listing notation of the exit.
func exitCode(exit program.Exit) string {
	names := make([]string, 0, len(exit.Targets))
	for _, target := range exit.Targets {
		names = append(names, target.Name)
	}

	switch exit.Kind {
	case program.Jump:
		return "jump " + strings.Join(names, ", ")
	case program.Dispatch:
		return fmt.Sprintf("dispatch %s %s", exit.Selector, strings.Join(names, ", "))
	default:
		return exit.Kind.String()
	}
}
