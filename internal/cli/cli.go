// Package cli handles command line interface logic
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/mondriaan/internal/assembler"
	"github.com/retroenv/mondriaan/internal/options"
	"github.com/spf13/cobra"
)

// Handler processes the options of a parsed command.
type Handler func(ctx context.Context, opts options.Program) error

// Handlers contains the actions executed by the commands.
type Handlers struct {
	Compile Handler
	Run     Handler
	Graph   Handler
	Version func(w io.Writer)
}

// UsageError represents an error that should show usage information
type UsageError struct {
	cmd *cobra.Command
	msg string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage of the command that failed to parse.
func (e *UsageError) ShowUsage() {
	if e.cmd == nil {
		return
	}
	e.cmd.Printf("%s\n\n", e.cmd.UsageString())
}

// NewRootCommand returns the root command with all sub commands attached.
func NewRootCommand(handlers Handlers) *cobra.Command {
	var opts options.Program

	root := &cobra.Command{
		Use:           "mondriaan [flags] <input.png>",
		Short:         "mondriaan compiles Piet programs to native executables",
		Long:          `mondriaan reads a Piet program from a PNG image and compiles it to LLVM IR that is linked with a small runtime library into a native executable.`,
		Args:          inputArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			if opts.Output == "" {
				return &UsageError{cmd: cmd, msg: "no output file given, use -o to set it"}
			}
			return handlers.Compile(cmd.Context(), opts)
		},
	}
	root.SetFlagErrorFunc(flagError)

	flags := root.Flags()
	flags.StringVarP(&opts.Output, "output", "o", "", "name of the output file")
	flags.BoolVarP(&opts.EmitLLVM, "emit-llvm", "S", false, "write the generated code instead of building an executable")
	flags.StringVarP(&opts.Format, "format", "f", assembler.LLVM, "format of the generated code (llvm/listing)")
	flags.StringVar(&opts.Config, "config", "", "YAML toolchain config file for building executables")
	flags.BoolVar(&opts.NoComments, "nocomments", false, "do not output the comment header and unit keys")
	addCommonFlags(root, &opts)

	root.AddCommand(
		newRunCommand(handlers.Run),
		newGraphCommand(handlers.Graph),
		newVersionCommand(handlers.Version),
	)
	return root
}

// Execute parses the arguments and executes the matching command.
func Execute(ctx context.Context, args []string, handlers Handlers) error {
	root := NewRootCommand(handlers)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("executing command: %w", err)
	}
	return nil
}

func newRunCommand(handler Handler) *cobra.Command {
	var opts options.Program

	cmd := &cobra.Command{
		Use:   "run [flags] <input.png>",
		Short: "Interpret the compiled program without building an executable",
		Args:  inputArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return handler(cmd.Context(), opts)
		},
	}
	cmd.SetFlagErrorFunc(flagError)

	cmd.Flags().IntVar(&opts.MaxUnits, "max-units", 0, "stop after executing the given number of units, 0 runs until the program ends")
	addCommonFlags(cmd, &opts)
	return cmd
}

func newGraphCommand(handler Handler) *cobra.Command {
	var opts options.Program

	cmd := &cobra.Command{
		Use:   "graph [flags] <input.png>",
		Short: "Export the control flow graph as Mermaid flowchart",
		Args:  inputArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return handler(cmd.Context(), opts)
		},
	}
	cmd.SetFlagErrorFunc(flagError)

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "name of the output file, printed on console if no name given")
	addCommonFlags(cmd, &opts)
	return cmd
}

func newVersionCommand(handler func(w io.Writer)) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mondriaan",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			handler(cmd.OutOrStdout())
		},
	}
}

func addCommonFlags(cmd *cobra.Command, opts *options.Program) {
	flags := cmd.Flags()
	flags.IntVarP(&opts.CodelSize, "codel-size", "c", 0, "pixel size of a codel, detected from the image if not set")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "perform operations quietly")
}

// inputArg checks that exactly one input file is passed.
func inputArg(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 1:
		return nil
	case 0:
		return &UsageError{cmd: cmd, msg: "no input file given"}
	default:
		return &UsageError{cmd: cmd, msg: fmt.Sprintf("expected one input file, got %d arguments", len(args))}
	}
}

func flagError(cmd *cobra.Command, err error) error {
	return &UsageError{cmd: cmd, msg: err.Error()}
}
