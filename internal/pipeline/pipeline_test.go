package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	imagecolor "image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/mondriaan/internal/assembler"
	. "github.com/retroenv/mondriaan/internal/color"
	"github.com/retroenv/mondriaan/internal/fault"
	"github.com/retroenv/mondriaan/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// printOne pushes 1 and prints it as number.
var printOne = [][]Color{
	{LightRed, Red, DarkMagenta},
	{Black, DarkMagenta, DarkMagenta},
}

// writeProgram writes the codels as PNG image with the given codel size.
func writeProgram(t *testing.T, codels [][]Color, codelSize int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, len(codels[0])*codelSize, len(codels)*codelSize))
	for y := range img.Bounds().Dy() {
		for x := range img.Bounds().Dx() {
			r, g, b := codels[y/codelSize][x/codelSize].RGB()
			img.SetRGBA(x, y, imagecolor.RGBA{R: r, G: g, B: b, A: 0xff})
		}
	}

	path := filepath.Join(t.TempDir(), "program.png")
	file, err := os.Create(path)
	assert.NoError(t, err)
	assert.NoError(t, png.Encode(file, img))
	assert.NoError(t, file.Close())
	return path
}

func testOptions(input string) options.Program {
	var opts options.Program
	opts.Input = input
	opts.Format = assembler.LLVM
	opts.EmitLLVM = true
	return opts
}

func TestNew(t *testing.T) {
	p := New(log.NewTestLogger(t))

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		imageSize int
		codelSize int
	}{
		{"unscaled", 1, 0},
		{"detected codel size", 4, 0},
		{"fixed codel size", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(writeProgram(t, printOne, tt.imageSize))
			opts.CodelSize = tt.codelSize

			var out bytes.Buffer
			err := New(log.NewTestLogger(t)).Run(context.Background(), opts, strings.NewReader(""), &out)
			assert.NoError(t, err)
			assert.Equal(t, "1", out.String())
		})
	}
}

func TestExecuteEmit(t *testing.T) {
	tests := []struct {
		format   string
		contains []string
	}{
		{assembler.LLVM, []string{
			"; Source: program.png",
			"declare void @mondriaan_runtime_out_number()",
			"define i32 @main()",
		}},
		{assembler.Listing, []string{
			"; Entry: unit0",
			"  push 1",
			"  out_number",
			"  return",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			opts := testOptions(writeProgram(t, printOne, 1))
			opts.Format = tt.format

			var out bytes.Buffer
			prog, err := New(log.NewTestLogger(t)).Execute(context.Background(), opts, &out)
			assert.NoError(t, err)
			assert.Len(t, prog.Units, 1)
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	p := New(log.NewTestLogger(t))

	t.Run("black origin", func(t *testing.T) {
		opts := testOptions(writeProgram(t, [][]Color{{Black, Red}}, 1))
		_, err := p.Execute(context.Background(), opts, &bytes.Buffer{})
		assert.True(t, errors.Is(err, fault.ErrInput))
		assert.ErrorContains(t, err, "parsing:")
	})

	t.Run("codel size mismatch", func(t *testing.T) {
		opts := testOptions(writeProgram(t, printOne, 2))
		opts.CodelSize = 4
		_, err := p.Execute(context.Background(), opts, &bytes.Buffer{})
		assert.True(t, errors.Is(err, fault.ErrInput))
		assert.ErrorContains(t, err, "reading codels:")
	})

	t.Run("missing compiler", func(t *testing.T) {
		config := filepath.Join(t.TempDir(), "toolchain.yaml")
		assert.NoError(t, os.WriteFile(config, []byte("compiler: mondriaan-missing-cc\n"), 0o600))

		opts := testOptions(writeProgram(t, printOne, 1))
		opts.EmitLLVM = false
		opts.Config = config
		opts.Output = filepath.Join(t.TempDir(), "program")
		_, err := p.Execute(context.Background(), opts, nil)
		assert.ErrorContains(t, err, "building executable: mondriaan-missing-cc is not installed")
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := p.Execute(ctx, testOptions(writeProgram(t, printOne, 1)), &bytes.Buffer{})
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestGraph(t *testing.T) {
	cfg, err := New(log.NewTestLogger(t)).Graph(testOptions(writeProgram(t, printOne, 3)))
	assert.NoError(t, err)
	assert.Len(t, cfg.Nodes, 3)
	assert.Equal(t, "block1", cfg.Initial.ID)
}
