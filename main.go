// Package main implements the main entry point for a Piet compiler
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/mondriaan/internal/cli"
	"github.com/retroenv/mondriaan/internal/config"
	"github.com/retroenv/mondriaan/internal/fault"
	"github.com/retroenv/mondriaan/internal/fileprocessor"
	"github.com/retroenv/mondriaan/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	// the logger of the last handler that ran, used to report its error
	logger := config.CreateLogger(false, false)
	setup := func(opts options.Program) *log.Logger {
		logger = config.CreateLogger(opts.Debug, opts.Quiet)
		return logger
	}

	handlers := cli.Handlers{
		Compile: func(ctx context.Context, opts options.Program) error {
			logger := setup(opts)
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			return fileprocessor.ProcessFile(ctx, logger, opts)
		},
		Run: func(ctx context.Context, opts options.Program) error {
			return fileprocessor.RunFile(ctx, setup(opts), opts)
		},
		Graph: func(_ context.Context, opts options.Program) error {
			return fileprocessor.GraphFile(setup(opts), opts)
		},
		Version: func(w io.Writer) {
			_, _ = fmt.Fprintf(w, "mondriaan version %s\n", buildinfo.Version(version, commit, date))
		},
	}

	err := cli.Execute(ctx, os.Args[1:], handlers)
	if err == nil {
		return
	}

	var usageErr *cli.UsageError
	switch {
	case errors.As(err, &usageErr):
		logger.Error(usageErr.Error())
		usageErr.ShowUsage()
	case errors.Is(err, context.Canceled):
		logger.Info("Operation cancelled")
	case fault.IsInternal(err):
		logger.Error("Internal compiler error, please report this issue", log.Err(err))
	default:
		logger.Error("Compiling failed", log.Err(err))
	}
	os.Exit(1)
}
