// Package pipeline orchestrates the compilation workflow stages.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/retroenv/mondriaan/internal/app"
	"github.com/retroenv/mondriaan/internal/assembler/llvm"
	"github.com/retroenv/mondriaan/internal/assembler/native"
	"github.com/retroenv/mondriaan/internal/config"
	"github.com/retroenv/mondriaan/internal/detector"
	"github.com/retroenv/mondriaan/internal/graph"
	"github.com/retroenv/mondriaan/internal/loader"
	"github.com/retroenv/mondriaan/internal/options"
	"github.com/retroenv/mondriaan/internal/parser"
	"github.com/retroenv/mondriaan/internal/program"
	"github.com/retroenv/mondriaan/internal/stack"
	"github.com/retroenv/mondriaan/internal/translator"
	"github.com/retroenv/mondriaan/internal/verification"
	"github.com/retroenv/mondriaan/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete compilation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new compilation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute compiles the input image. With the emit option set the backend output is written
// to the writer, otherwise a native executable is built at the output path.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) (*program.Program, error) {
	if err := app.ValidateOptions(opts); err != nil {
		return nil, err
	}

	prog, err := p.Compile(ctx, opts)
	if err != nil {
		return nil, err
	}

	if opts.EmitLLVM {
		if err := p.Emit(prog, opts, writer); err != nil {
			return nil, fmt.Errorf("writing output: %w", err)
		}
		return prog, nil
	}

	if err := p.Link(ctx, prog, opts); err != nil {
		return nil, fmt.Errorf("building executable: %w", err)
	}
	return prog, nil
}

// Graph loads the input image and returns its control flow graph.
func (p *Pipeline) Graph(opts options.Program) (*graph.Graph, error) {
	img, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading image: %w", err)
	}

	codelSize := opts.CodelSize
	if codelSize == 0 {
		codelSize = p.detector.CodelSize(img)
	}

	g, err := p.loader.Grid(img, codelSize)
	if err != nil {
		return nil, fmt.Errorf("reading codels: %w", err)
	}
	p.logger.Debug("Codel grid read",
		log.Int("rows", g.Rows()),
		log.Int("columns", g.Columns()),
		log.Int("codel_size", codelSize))

	cfg, err := parser.New(p.logger, g).Parse()
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	return cfg, nil
}

// Compile loads the input image and returns the verified program.
func (p *Pipeline) Compile(ctx context.Context, opts options.Program) (*program.Program, error) {
	cfg, err := p.Graph(opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compiling: %w", err)
	}

	prog, err := translator.New(p.logger).Translate(cfg)
	if err != nil {
		return nil, fmt.Errorf("translating: %w", err)
	}

	if err := verification.VerifyProgram(p.logger, prog); err != nil {
		return nil, fmt.Errorf("verifying program: %w", err)
	}

	p.logger.Debug("Compiled program",
		log.Int("blocks", len(cfg.Nodes)),
		log.Int("units", len(prog.Units)),
		log.Int("instructions", prog.InstructionCount()))
	return prog, nil
}

// Emit writes the program in the output format of the options.
func (p *Pipeline) Emit(prog *program.Program, opts options.Program, writer io.Writer) error {
	constructor, err := app.InitializeBackend(opts.Format)
	if err != nil {
		return err
	}
	return constructor(prog, options.NewWriter(opts), writer).Write()
}

// Link builds a native executable of the program at the output path.
func (p *Pipeline) Link(ctx context.Context, prog *program.Program, opts options.Program) error {
	toolchain, err := config.LoadToolchain(opts.Config)
	if err != nil {
		return err
	}

	var module bytes.Buffer
	writerOptions := options.NewWriter(opts)
	if err := llvm.New(prog, writerOptions, &module).Write(); err != nil {
		return fmt.Errorf("generating module: %w", err)
	}

	return native.New(p.logger, toolchain).Build(ctx, module.Bytes(), opts.Output)
}

// Run compiles the input image and interprets the program using the given input and output.
func (p *Pipeline) Run(ctx context.Context, opts options.Program, in io.Reader, out io.Writer) error {
	prog, err := p.Compile(ctx, opts)
	if err != nil {
		return err
	}

	machine := stack.New(in, out)
	return vm.New(p.logger, machine, opts.MaxUnits).Run(ctx, prog)
}
