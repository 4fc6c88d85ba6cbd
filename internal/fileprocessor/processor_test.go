package fileprocessor

import (
	"context"
	"errors"
	"image"
	imagecolor "image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/mondriaan/internal/assembler"
	"github.com/retroenv/mondriaan/internal/color"
	"github.com/retroenv/mondriaan/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// writeProgram writes a program that pushes 1 and prints it as number.
func writeProgram(t *testing.T, dir string) string {
	t.Helper()

	codels := [][]color.Color{
		{color.LightRed, color.Red, color.DarkMagenta},
		{color.Black, color.DarkMagenta, color.DarkMagenta},
	}
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y, row := range codels {
		for x, c := range row {
			r, g, b := c.RGB()
			img.SetRGBA(x, y, imagecolor.RGBA{R: r, G: g, B: b, A: 0xff})
		}
	}

	path := filepath.Join(dir, "program.png")
	file, err := os.Create(path)
	assert.NoError(t, err)
	assert.NoError(t, png.Encode(file, img))
	assert.NoError(t, file.Close())
	return path
}

func TestProcessFileEmit(t *testing.T) {
	dir := t.TempDir()

	var opts options.Program
	opts.Input = writeProgram(t, dir)
	opts.Output = filepath.Join(dir, "program.txt")
	opts.Format = assembler.Listing
	opts.EmitLLVM = true
	opts.NoComments = true

	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts))

	data, err := os.ReadFile(opts.Output)
	assert.NoError(t, err)
	assert.Equal(t, "unit0:\n  push 1\n  out_number\n  return\n", string(data))
}

func TestProcessFileMissingInput(t *testing.T) {
	dir := t.TempDir()

	var opts options.Program
	opts.Input = filepath.Join(dir, "missing.png")
	opts.Output = filepath.Join(dir, "program.ll")
	opts.Format = assembler.LLVM
	opts.EmitLLVM = true

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.ErrorContains(t, err, "loading image")
}

func TestProcessFileRemovesOutputOnError(t *testing.T) {
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, imagecolor.RGBA{R: 0xff, G: 0x80, A: 0xff})
	input := filepath.Join(dir, "orange.png")
	file, err := os.Create(input)
	assert.NoError(t, err)
	assert.NoError(t, png.Encode(file, img))
	assert.NoError(t, file.Close())

	var opts options.Program
	opts.Input = input
	opts.Output = filepath.Join(dir, "program.ll")
	opts.Format = assembler.LLVM
	opts.EmitLLVM = true

	err = ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.ErrorContains(t, err, "unknown color")

	_, err = os.Stat(opts.Output)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestGraphFile(t *testing.T) {
	dir := t.TempDir()

	var opts options.Program
	opts.Input = writeProgram(t, dir)
	opts.Output = filepath.Join(dir, "program.mmd")

	assert.NoError(t, GraphFile(log.NewTestLogger(t), opts))

	data, err := os.ReadFile(opts.Output)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "graph TD")
	assert.Contains(t, string(data), "block1")
}

func TestCreateWriterStdout(t *testing.T) {
	for _, output := range []string{"", "-"} {
		w, err := createWriter(output)
		assert.NoError(t, err)
		_, ok := w.(nopCloser)
		assert.True(t, ok)
		assert.NoError(t, w.Close())
	}
}
