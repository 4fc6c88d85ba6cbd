// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string // PNG image of the program
	Output string // output file, for the graph command stdout if empty
	Config string // YAML toolchain config for native builds
}

// Flags contains behavior options.
type Flags struct {
	Format    string // backend: llvm or listing
	EmitLLVM  bool   // write the backend output instead of building a native binary
	CodelSize int    // pixel size of a codel, 0 detects it
	MaxUnits  int    // interpreter unit limit, 0 runs until the program ends
	Debug     bool
	Quiet     bool
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	NoComments bool // omit the comment header and unit keys
}

// Program options of the compiler.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Writer defines options to control the backend output.
type Writer struct {
	Source   string // name of the compiled image, written to the comment header
	Comments bool
}

// NewWriter returns writer options for the program options.
func NewWriter(opts Program) Writer {
	return Writer{
		Source:   opts.Input,
		Comments: !opts.NoComments,
	}
}
