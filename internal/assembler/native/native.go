// Package native builds executables from generated LLVM IR by compiling it together with
// the C runtime library.
package native

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/retroenv/mondriaan/internal/config"
	"github.com/retroenv/retrogolib/log"
)

//go:embed runtime/runtime.c
var runtimeSource []byte

const (
	moduleFileName  = "program.ll"
	runtimeFileName = "runtime.c"
)

// Builder compiles LLVM IR to native executables.
type Builder struct {
	logger    *log.Logger
	toolchain config.Toolchain
}

// New creates a new builder.
func New(logger *log.Logger, toolchain config.Toolchain) *Builder {
	return &Builder{
		logger:    logger,
		toolchain: toolchain,
	}
}

// Build writes the module and the runtime library to a temporary directory and compiles
// both into the output executable.
func (b *Builder) Build(ctx context.Context, module []byte, outputFile string) error {
	compiler := b.toolchain.Compiler
	if runtime.GOOS == "windows" && filepath.Ext(compiler) == "" {
		compiler += ".exe"
	}
	if _, err := exec.LookPath(compiler); err != nil {
		return fmt.Errorf("%s is not installed", compiler)
	}

	dir, err := os.MkdirTemp("", "mondriaan-build-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	if b.toolchain.KeepIntermediate {
		b.logger.Info("Keeping intermediate files", log.String("dir", dir))
	} else {
		defer func() {
			_ = os.RemoveAll(dir)
		}()
	}

	moduleFile := filepath.Join(dir, moduleFileName)
	if err := os.WriteFile(moduleFile, module, 0o600); err != nil {
		return fmt.Errorf("writing module file: %w", err)
	}
	runtimeFile := filepath.Join(dir, runtimeFileName)
	if err := os.WriteFile(runtimeFile, runtimeSource, 0o600); err != nil {
		return fmt.Errorf("writing runtime file: %w", err)
	}

	args := b.Arguments(moduleFile, runtimeFile, outputFile)
	b.logger.Debug("Compiling", log.String("command", compiler+" "+strings.Join(args, " ")))

	cmd := exec.CommandContext(ctx, compiler, args...)
	cmd.Env = os.Environ()
	for key, value := range b.toolchain.Environment {
		cmd.Env = append(cmd.Env, key+"="+value)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("compiling file: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// Arguments returns the compiler arguments for building the executable.
func (b *Builder) Arguments(moduleFile, runtimeFile, outputFile string) []string {
	args := make([]string, 0, len(b.toolchain.Flags)+5)
	args = append(args, b.toolchain.Flags...)
	// the IR does not set a target triple, the compiler default is used
	args = append(args, "-Wno-override-module", "-o", outputFile, moduleFile, runtimeFile)
	return args
}
