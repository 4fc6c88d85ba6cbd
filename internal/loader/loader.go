// Package loader handles program image loading operations.
package loader

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/retroenv/mondriaan/internal/color"
	"github.com/retroenv/mondriaan/internal/fault"
	"github.com/retroenv/mondriaan/internal/grid"
	"golang.org/x/image/draw"
)

// Loader handles loading program images from disk.
type Loader struct{}

// New creates a new image loader.
func New() *Loader {
	return &Loader{}
}

// Load decodes the PNG image of the input file and returns it converted to RGBA.
func (l *Loader) Load(input string) (*image.RGBA, error) {
	file, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", input, err)
	}
	defer func() { _ = file.Close() }()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fault.Input("decoding image %s: %s", input, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba, nil
}

// Grid converts the image to a codel grid. Every codel of the image has to be a square
// of codelSize pixels of the same Piet color.
func (l *Loader) Grid(img *image.RGBA, codelSize int) (*grid.Grid, error) {
	bounds := img.Bounds()
	if codelSize <= 0 {
		return nil, fault.Input("invalid codel size %d", codelSize)
	}
	if bounds.Dx()%codelSize != 0 || bounds.Dy()%codelSize != 0 {
		return nil, fault.Input("image size %dx%d is not a multiple of the codel size %d",
			bounds.Dx(), bounds.Dy(), codelSize)
	}

	codels := img
	if codelSize > 1 {
		if err := checkCodels(img, codelSize); err != nil {
			return nil, err
		}

		// all codels are uniform, the sampled pixel does not matter
		codels = image.NewRGBA(image.Rect(0, 0, bounds.Dx()/codelSize, bounds.Dy()/codelSize))
		draw.NearestNeighbor.Scale(codels, codels.Bounds(), img, bounds, draw.Src, nil)
	}

	g, err := grid.New(codels.Bounds().Dy(), codels.Bounds().Dx())
	if err != nil {
		return nil, err
	}

	for y := range codels.Bounds().Dy() {
		for x := range codels.Bounds().Dx() {
			pixel := codels.RGBAAt(x, y)
			c, ok := color.FromRGB(pixel.R, pixel.G, pixel.B)
			if !ok {
				return nil, fault.Input("unknown color #%02x%02x%02x at pixel (%d, %d)",
					pixel.R, pixel.G, pixel.B, x*codelSize, y*codelSize)
			}
			if err := g.SetColor(grid.Position{Row: y, Column: x}, c); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// checkCodels verifies that all pixels of the image match the top left pixel of their codel.
func checkCodels(img *image.RGBA, codelSize int) error {
	bounds := img.Bounds()
	for y := range bounds.Dy() {
		for x := range bounds.Dx() {
			origin := img.RGBAAt(x-x%codelSize, y-y%codelSize)
			if img.RGBAAt(x, y) != origin {
				return fault.Input("pixel (%d, %d) does not match the color of its codel of size %d",
					x, y, codelSize)
			}
		}
	}
	return nil
}
