package termpix

import (
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Interpolation selects the kernel used by Resize
type Interpolation int

const (
	// CatmullRom is the sharp cubic kernel used for fixed size output
	CatmullRom Interpolation = iota
	// BiLinear is cheaper and softer
	BiLinear
	// NearestNeighbor copies pixels and is used to enlarge cells
	NearestNeighbor
)

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case BiLinear:
		return draw.BiLinear
	case NearestNeighbor:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize scales img to exactly width x height pixels. Images already at that
// size are returned unchanged.
func Resize(img image.Image, width, height int, interp Interpolation) image.Image {
	if img == nil || width <= 0 || height <= 0 {
		return img
	}
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	interp.scaler().Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// Thumbnail shrinks img to fit within maxWidth x maxHeight keeping its aspect
// ratio. Images that already fit are returned unchanged.
func Thumbnail(img image.Image, maxWidth, maxHeight uint) image.Image {
	if img == nil || maxWidth == 0 || maxHeight == 0 {
		return img
	}

	// Use fastest interpolation for large reductions
	interp := resize.Lanczos3
	bounds := img.Bounds()
	if uint(bounds.Dx()) > maxWidth*4 || uint(bounds.Dy()) > maxHeight*4 {
		interp = resize.Bilinear
	}
	return resize.Thumbnail(maxWidth, maxHeight, img, interp)
}

// BuildResized resizes img to exactly width x height cells and builds an
// unscaled cache from the result
func BuildResized(img image.Image, width, height int) (*PixelCache, error) {
	r, err := FromImage(Resize(img, width, height, CatmullRom))
	if err != nil {
		return nil, err
	}
	return BuildUnscaled(r)
}

// BuildThumbnail shrinks img to fit within maxWidth x maxHeight cells, keeping
// its aspect ratio, and builds an unscaled cache from the result. Images that
// already fit keep their size.
func BuildThumbnail(img image.Image, maxWidth, maxHeight uint) (*PixelCache, error) {
	r, err := FromImage(Thumbnail(img, maxWidth, maxHeight))
	if err != nil {
		return nil, err
	}
	return BuildUnscaled(r)
}
