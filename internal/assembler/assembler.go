// Package assembler defines the available backend output formats.
package assembler

import (
	"io"

	"github.com/retroenv/mondriaan/internal/options"
	"github.com/retroenv/mondriaan/internal/program"
	"github.com/retroenv/mondriaan/internal/writer"
)

const (
	LLVM    = "llvm"
	Listing = "listing"
)

// Formats lists all supported output formats.
var Formats = []string{LLVM, Listing}

// FileWriterConstructor creates a backend writer that writes the program to the main writer.
type FileWriterConstructor func(prog *program.Program, options options.Writer, mainWriter io.Writer) writer.AssemblerWriter
