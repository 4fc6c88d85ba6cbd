// Package detector handles codel size detection.
package detector

import (
	"image"

	"github.com/retroenv/retrogolib/log"
)

// Detector detects the codel size of program images.
type Detector struct {
	logger *log.Logger
}

// New creates a new codel size detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// CodelSize returns the largest codel size that the image can be made of: the greatest
// common divisor of the image dimensions and the lengths of all horizontal and vertical
// runs of equal pixels.
func (d *Detector) CodelSize(img *image.RGBA) int {
	bounds := img.Bounds()
	size := gcd(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y && size > 1; y++ {
		size = runs(size, bounds.Min.X, bounds.Max.X, func(x int) []uint8 {
			return pixel(img, x, y)
		})
	}
	for x := bounds.Min.X; x < bounds.Max.X && size > 1; x++ {
		size = runs(size, bounds.Min.Y, bounds.Max.Y, func(y int) []uint8 {
			return pixel(img, x, y)
		})
	}

	d.logger.Debug("Detected codel size",
		log.Int("size", size),
		log.Int("width", bounds.Dx()),
		log.Int("height", bounds.Dy()))
	return size
}

// runs reduces the size by the lengths of all runs of equal pixels between start and end.
func runs(size, start, end int, at func(int) []uint8) int {
	runStart := start
	for i := start + 1; i <= end && size > 1; i++ {
		if i < end && equal(at(i), at(runStart)) {
			continue
		}
		size = gcd(size, i-runStart)
		runStart = i
	}
	return size
}

func pixel(img *image.RGBA, x, y int) []uint8 {
	offset := img.PixOffset(x, y)
	return img.Pix[offset : offset+4]
}

func equal(a, b []uint8) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2] && a[3] == b[3]
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
