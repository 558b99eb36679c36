package termpix

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/blacktop/go-termpix/pkg/csi"
	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/mattn/go-sixel"
	"github.com/soniakeys/quant/median"
)

// Default character cell size in pixels when the terminal does not report one
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// SixelRenderer implements the Renderer interface for the Sixel protocol.
// Every cache cell is drawn as a CellSize x CellSize square so the bitmap
// lines up with the character grid used by the text modes.
type SixelRenderer struct {
	// CellSize is the edge of each cell in pixels. Zero queries the terminal.
	CellSize int
	// Colors is the palette size, clamped to 2-256. Zero means 256.
	Colors int
	// OptimizePalette reduces the image to a median cut palette with
	// Floyd-Steinberg dithering before encoding.
	OptimizePalette bool
}

// Mode returns the mode type
func (r *SixelRenderer) Mode() Mode {
	return Sixel
}

// Render generates the sixel escape sequence for the cache
func (r *SixelRenderer) Render(c *PixelCache) (string, error) {
	if c == nil {
		return "", fmt.Errorf("cache cannot be nil")
	}
	if c.Width() == 0 {
		return "", nil
	}

	cell := r.CellSize
	if cell <= 0 {
		cell = cellPixelSize()
	}

	var img image.Image = Resize(c.Image(), c.Width()*cell, c.Height()*cell, NearestNeighbor)

	colors := r.Colors
	if colors <= 0 {
		colors = 256
	}
	colors = min(max(colors, 2), 256)

	if r.OptimizePalette {
		img = optimizePalette(img, colors)
	}

	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	enc.Colors = colors
	enc.Dither = !r.OptimizePalette

	if err := enc.Encode(img); err != nil {
		return "", fmt.Errorf("failed to encode sixel: %w", err)
	}
	if buf.Len() == 0 {
		return "", fmt.Errorf("sixel encoding produced empty output")
	}

	return wrapTmuxPassthrough(buf.String()), nil
}

// Print outputs the cache directly to stdout
func (r *SixelRenderer) Print(c *PixelCache) error {
	output, err := r.Render(c)
	if err != nil {
		return err
	}

	_, err = io.WriteString(os.Stdout, output)
	return err
}

// optimizePalette applies median cut quantization and error diffusion
func optimizePalette(img image.Image, colors int) image.Image {
	palette := median.Quantizer(colors).Palette(img).ColorPalette()
	if len(palette) < 2 {
		return img
	}

	ditherer := dither.NewDitherer(palette)
	if ditherer == nil {
		return img
	}
	ditherer.Matrix = dither.FloydSteinberg

	if out := ditherer.Dither(img); out != nil {
		return out
	}
	return img
}

// cellPixelSize returns the width of a character cell in pixels, asking the
// terminal once and falling back to DefaultCellWidth
func cellPixelSize() int {
	if w, _, ok := csi.CellSize(); ok && w > 0 {
		return w
	}
	return DefaultCellWidth
}
