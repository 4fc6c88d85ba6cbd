// Package color contains the Piet codel colors and their position in the hue/lightness cycle.
package color

import "fmt"

// Color is a codel color stored as 24 bit RGB value.
type Color uint32

// Piet colors.
const (
	Black Color = 0x000000
	White Color = 0xFFFFFF

	LightRed Color = 0xFFC0C0
	Red      Color = 0xFF0000
	DarkRed  Color = 0xC00000

	LightYellow Color = 0xFFFFC0
	Yellow      Color = 0xFFFF00
	DarkYellow  Color = 0xC0C000

	LightGreen Color = 0xC0FFC0
	Green      Color = 0x00FF00
	DarkGreen  Color = 0x00C000

	LightCyan Color = 0xC0FFFF
	Cyan      Color = 0x00FFFF
	DarkCyan  Color = 0x00C0C0

	LightBlue Color = 0xC0C0FF
	Blue      Color = 0x0000FF
	DarkBlue  Color = 0x0000C0

	LightMagenta Color = 0xFFC0FF
	Magenta      Color = 0xFF00FF
	DarkMagenta  Color = 0xC000C0
)

const (
	// HueCount is the number of hues in the color cycle.
	HueCount = 6
	// LightnessCount is the number of lightness levels in the color cycle.
	LightnessCount = 3
)

// cycle contains the chromatic colors, indexed by lightness and hue.
var cycle = [LightnessCount][HueCount]Color{
	{LightRed, LightYellow, LightGreen, LightCyan, LightBlue, LightMagenta},
	{Red, Yellow, Green, Cyan, Blue, Magenta},
	{DarkRed, DarkYellow, DarkGreen, DarkCyan, DarkBlue, DarkMagenta},
}

var hueNames = [HueCount]string{"red", "yellow", "green", "cyan", "blue", "magenta"}

var lightnessNames = [LightnessCount]string{"light ", "", "dark "}

type position struct {
	lightness int
	hue       int
}

var positions = map[Color]position{}

func init() {
	for lightness, row := range cycle {
		for hue, c := range row {
			positions[c] = position{lightness: lightness, hue: hue}
		}
	}
}

// FromRGB converts the 8 bit color channels to a color and returns whether it is a valid
// Piet color.
func FromRGB(r, g, b uint8) (Color, bool) {
	c := Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
	return c, c.Valid()
}

// Valid returns whether the color is black, white or one of the 18 chromatic colors.
func (c Color) Valid() bool {
	return c == Black || c == White || c.IsChromatic()
}

// IsChromatic returns whether the color is part of the hue/lightness cycle.
func (c Color) IsChromatic() bool {
	_, ok := positions[c]
	return ok
}

// IsBlack returns whether the color blocks movement.
func (c Color) IsBlack() bool {
	return c == Black
}

// IsWhite returns whether the color is the colorless color that is slid through.
func (c Color) IsWhite() bool {
	return c == White
}

// Hue returns the hue index of a chromatic color.
func (c Color) Hue() (int, bool) {
	pos, ok := positions[c]
	return pos.hue, ok
}

// Lightness returns the lightness index of a chromatic color, 0 being light and 2 being dark.
func (c Color) Lightness() (int, bool) {
	pos, ok := positions[c]
	return pos.lightness, ok
}

// RGB returns the 8 bit color channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// String returns the name of the color.
func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}

	pos, ok := positions[c]
	if !ok {
		return fmt.Sprintf("#%06X", uint32(c))
	}
	return lightnessNames[pos.lightness] + hueNames[pos.hue]
}

// At returns the chromatic color at the given lightness and hue, both are taken modulo
// their cycle length.
func At(lightness, hue int) Color {
	return cycle[mod(lightness, LightnessCount)][mod(hue, HueCount)]
}

func mod(value, n int) int {
	return ((value % n) + n) % n
}
