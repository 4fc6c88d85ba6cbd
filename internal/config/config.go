// Package config handles application configuration and setup
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/mondriaan/internal/fault"
	"github.com/retroenv/retrogolib/log"
	"gopkg.in/yaml.v3"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// DefaultCompiler is the C compiler used to build native binaries.
const DefaultCompiler = "clang"

// Toolchain configures the native build.
type Toolchain struct {
	Compiler         string            `yaml:"compiler"`
	Flags            []string          `yaml:"flags"`
	Environment      map[string]string `yaml:"env"`
	KeepIntermediate bool              `yaml:"keep_intermediate"` // keep the temporary build directory
}

// DefaultToolchain returns the toolchain settings used without a config file.
func DefaultToolchain() Toolchain {
	return Toolchain{
		Compiler: DefaultCompiler,
		Flags:    []string{"-O2"},
	}
}

// LoadToolchain reads the YAML toolchain config file. An empty path returns the default
// settings, fields missing in the file keep their default values.
func LoadToolchain(path string) (Toolchain, error) {
	tc := DefaultToolchain()
	if path == "" {
		return tc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tc, fault.Input("toolchain config '%s' does not exist", path)
		}
		return tc, fmt.Errorf("reading toolchain config: %w", err)
	}

	if err := yaml.Unmarshal(data, &tc); err != nil {
		return tc, fault.Input("parsing toolchain config '%s': %s", path, err)
	}
	if tc.Compiler == "" {
		tc.Compiler = DefaultCompiler
	}
	return tc, nil
}
