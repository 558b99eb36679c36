package termpix

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 24-bit RGB sample. The zero value is black.
type Color struct {
	R, G, B uint8
}

// RGB creates a Color from its channels
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Splat creates a gray Color with every channel set to v
func Splat(v uint8) Color {
	return Color{R: v, G: v, B: v}
}

// ColorFrom converts any color.Color to a Color, dropping alpha.
// The straight (non-premultiplied) channels are kept, so a translucent pixel
// prints in its stored color.
func ColorFrom(c color.Color) Color {
	if rgb, ok := c.(Color); ok {
		return rgb
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// RGBA implements color.Color. Colors are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Colorful returns the color in go-colorful's float representation
func (c Color) Colorful() colorful.Color {
	cf, _ := colorful.MakeColor(c)
	return cf
}

// Hex returns the color as a "#rrggbb" string
func (c Color) Hex() string {
	return c.Colorful().Hex()
}

func (c Color) String() string {
	return c.Hex()
}
