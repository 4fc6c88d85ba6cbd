// Package writer implements common output file writing functionality of the backends.
package writer

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/retroenv/mondriaan/internal/options"
	"github.com/retroenv/mondriaan/internal/program"
)

// AssemblerWriter defines a shared interface used by the different backend packages.
// Their constructors need to return this shared interface, having them return the actual type instead of
// the interface results in compiler errors for the constructor variable that they are assigned to.
type AssemblerWriter interface {
	Write() error
}

// Writer implements common output file writing functionality.
type Writer struct {
	prog    *program.Program
	options options.Writer
	writer  io.Writer
}

// New creates a new writer.
func New(prog *program.Program, writer io.Writer, options options.Writer) *Writer {
	return &Writer{
		prog:    prog,
		options: options,
		writer:  writer,
	}
}

// WriteCommentHeader writes the source name and program statistics as comments to the output.
// Both supported output formats use a semicolon to start a comment.
func (w Writer) WriteCommentHeader() error {
	if !w.options.Comments {
		return nil
	}

	if w.options.Source != "" {
		if _, err := fmt.Fprintf(w.writer, "; Source: %s\n", filepath.Base(w.options.Source)); err != nil {
			return fmt.Errorf("writing source name: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w.writer, "; Units: %d\n", len(w.prog.Units)); err != nil {
		return fmt.Errorf("writing unit count: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Instructions: %d\n", w.prog.InstructionCount()); err != nil {
		return fmt.Errorf("writing instruction count: %w", err)
	}
	if w.prog.Entry != nil {
		if _, err := fmt.Fprintf(w.writer, "; Entry: %s\n", w.prog.Entry.Name); err != nil {
			return fmt.Errorf("writing entry: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// WriteLabel writes the label of a unit, followed by the comment if comments are enabled.
func (w Writer) WriteLabel(label, comment string) error {
	if comment == "" || !w.options.Comments {
		if _, err := fmt.Fprintf(w.writer, "%s:\n", label); err != nil {
			return fmt.Errorf("writing label: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w.writer, "%-32s ; %s\n", label+":", comment); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

// WriteCodeLine writes an indented code line, followed by the comment if comments are enabled.
func (w Writer) WriteCodeLine(code, comment string) error {
	if comment == "" || !w.options.Comments {
		if _, err := fmt.Fprintf(w.writer, "  %s\n", code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", code, comment); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// WriteLine writes an empty line.
func (w Writer) WriteLine() error {
	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}
