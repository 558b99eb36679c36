package termpix

import (
	"fmt"
	"image"
)

// Raster is a full-resolution, row-major grid of colors with its origin at the
// top-left. A Raster is consumed by Build: once released it reports a zero size
// and must not be read again.
type Raster struct {
	width  int
	height int
	pix    []Color
}

// NewRaster allocates a black raster of the given size
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster dimensions must be positive, got %dx%d", width, height)
	}
	return &Raster{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}, nil
}

// FromImage copies an image.Image into a new Raster
func FromImage(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}

	bounds := img.Bounds()
	r, err := NewRaster(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	// Fast paths for the common decoder outputs
	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < r.height; y++ {
			for x := 0; x < r.width; x++ {
				i := src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
				r.pix[y*r.width+x] = Color{R: src.Pix[i], G: src.Pix[i+1], B: src.Pix[i+2]}
			}
		}
		return r, nil
	case *image.RGBA:
		for y := 0; y < r.height; y++ {
			for x := 0; x < r.width; x++ {
				i := src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
				if src.Pix[i+3] != 0xff {
					// premultiplied; let ColorFrom restore the straight color
					r.pix[y*r.width+x] = ColorFrom(src.RGBAAt(bounds.Min.X+x, bounds.Min.Y+y))
					continue
				}
				r.pix[y*r.width+x] = Color{R: src.Pix[i], G: src.Pix[i+1], B: src.Pix[i+2]}
			}
		}
		return r, nil
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r.pix[(y-bounds.Min.Y)*r.width+(x-bounds.Min.X)] = ColorFrom(img.At(x, y))
		}
	}
	return r, nil
}

// Width returns the raster width in pixels
func (r *Raster) Width() int {
	return r.width
}

// Height returns the raster height in pixels
func (r *Raster) Height() int {
	return r.height
}

// PixelAt returns the color at (x, y). It panics when the coordinates are out
// of bounds or the raster has been released.
func (r *Raster) PixelAt(x, y int) Color {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		panic(fmt.Sprintf("termpix: pixel (%d,%d) out of bounds for %dx%d raster", x, y, r.width, r.height))
	}
	return r.pix[y*r.width+x]
}

// Set writes the color at (x, y). Out-of-bounds writes are ignored.
func (r *Raster) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.pix[y*r.width+x] = c
}

// Released reports whether the raster has been consumed by a build
func (r *Raster) Released() bool {
	return r.pix == nil
}

// release drops the pixel data so the garbage collector can reclaim it
func (r *Raster) release() {
	r.pix = nil
	r.width = 0
	r.height = 0
}
