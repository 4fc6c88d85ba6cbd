// Package fileprocessor handles output file handling and the processing of single input files.
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/mondriaan/internal/app"
	"github.com/retroenv/mondriaan/internal/graph"
	"github.com/retroenv/mondriaan/internal/options"
	"github.com/retroenv/mondriaan/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile compiles the input file of the options.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	app.PrintInfo(logger, opts)

	var writer io.WriteCloser = nopCloser{io.Discard}
	if opts.EmitLLVM {
		var err error
		writer, err = createWriter(opts.Output)
		if err != nil {
			return fmt.Errorf("creating writer: %w", err)
		}
	}

	prog, err := pipeline.New(logger).Execute(ctx, opts, writer)
	if err != nil {
		_ = writer.Close()
		if _, created := writer.(*os.File); created {
			// do not leave an empty or partial output file behind
			_ = os.Remove(opts.Output)
		}
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}

	logger.Info("Compilation finished",
		log.String("output", opts.Output),
		log.Int("units", len(prog.Units)),
		log.Int("instructions", prog.InstructionCount()))
	return nil
}

// RunFile compiles the input file and interprets it using the standard input and output.
func RunFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	return pipeline.New(logger).Run(ctx, opts, os.Stdin, os.Stdout)
}

// GraphFile writes the Mermaid flowchart of the control flow graph of the input file to the
// output file, or to the standard output if no output file is set.
func GraphFile(logger *log.Logger, opts options.Program) error {
	cfg, err := pipeline.New(logger).Graph(opts)
	if err != nil {
		return err
	}

	writer, err := createWriter(opts.Output)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	if _, err := io.WriteString(writer, graph.GenerateMermaid(cfg)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("writing graph: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// createWriter returns the output file, the standard output for an empty name or "-".
func createWriter(output string) (io.WriteCloser, error) {
	if output == "" || output == "-" {
		return nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("mondriaan", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nc nopCloser) Close() error {
	return nil
}
