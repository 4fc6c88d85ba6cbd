// Package app provides the main application helpers for the compiler.
package app

import (
	"strings"

	"github.com/retroenv/mondriaan/internal/assembler"
	"github.com/retroenv/mondriaan/internal/assembler/listing"
	"github.com/retroenv/mondriaan/internal/assembler/llvm"
	"github.com/retroenv/mondriaan/internal/fault"
	"github.com/retroenv/mondriaan/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// PrintInfo prints the information about the input file and the selected output.
func PrintInfo(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}

	mode := "native"
	if opts.EmitLLVM {
		mode = opts.Format
	}
	logger.Info("Compiling Piet program",
		log.String("file", opts.Input),
		log.String("output", opts.Output),
		log.String("mode", mode),
	)
	if opts.CodelSize > 0 {
		logger.Info("Using fixed codel size", log.Int("size", opts.CodelSize))
	}
}

// InitializeBackend returns the file writer constructor of the chosen output format.
func InitializeBackend(format string) (assembler.FileWriterConstructor, error) {
	switch strings.ToLower(format) {
	case assembler.LLVM:
		return llvm.New, nil

	case assembler.Listing:
		return listing.New, nil

	default:
		return nil, fault.Input("unsupported output format '%s', valid formats: %s",
			format, strings.Join(assembler.Formats, ", "))
	}
}

// ValidateOptions checks the option combinations that the command line can not express.
func ValidateOptions(opts options.Program) error {
	if opts.CodelSize < 0 {
		return fault.Input("invalid codel size %d", opts.CodelSize)
	}
	if opts.MaxUnits < 0 {
		return fault.Input("invalid unit limit %d", opts.MaxUnits)
	}
	if !opts.EmitLLVM && !strings.EqualFold(opts.Format, assembler.LLVM) {
		return fault.Input("the %s format can only be written with --emit-llvm", opts.Format)
	}
	return nil
}
