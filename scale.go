package termpix

import (
	"fmt"
	"math"
)

// Scale is the target size as a fraction of the source width (X) and
// height (Y). Both factors must be in (0, 1].
type Scale struct {
	X float64
	Y float64
}

// Uniform returns a Scale that shrinks both axes by s
func Uniform(s float64) Scale {
	return Scale{X: s, Y: s}
}

// Unscaled keeps every source pixel
var Unscaled = Scale{X: 1, Y: 1}

// Validate checks that both factors are finite and in (0, 1]
func (s Scale) Validate() error {
	if !validFactor(s.X) || !validFactor(s.Y) {
		return fmt.Errorf("%w: (%g, %g) must be in (0, 1]", ErrInvalidScale, s.X, s.Y)
	}
	return nil
}

func validFactor(f float64) bool {
	return !math.IsNaN(f) && f > 0 && f <= 1
}

// blockGrid describes how a raster is partitioned into averaging blocks
type blockGrid struct {
	wStep int // block width in source pixels
	hStep int // block height in source pixels
	cols  int // blocks per row
	rows  int // block rows
}

// blockSteps partitions a width x height raster for the given scale.
// The raster is split into floor(W*sx) columns of wStep pixels; when W is not
// a multiple of wStep an extra, narrower block covers the remainder. Rows are
// derived from the height alone.
func blockSteps(width, height int, s Scale) (blockGrid, error) {
	if width <= 0 || height <= 0 {
		return blockGrid{}, fmt.Errorf("%w: empty %dx%d raster", ErrInvalidScale, width, height)
	}
	if err := s.Validate(); err != nil {
		return blockGrid{}, err
	}

	targetCols := int(math.Floor(float64(width) * s.X))
	targetRows := int(math.Floor(float64(height) * s.Y))
	if targetCols == 0 || targetRows == 0 {
		return blockGrid{}, fmt.Errorf("%w: (%g, %g) is too small for a %dx%d image",
			ErrInvalidScale, s.X, s.Y, width, height)
	}

	g := blockGrid{
		wStep: width / targetCols,
		hStep: height / targetRows,
	}
	g.cols = ceilDiv(width, g.wStep)
	g.rows = ceilDiv(height, g.hStep)
	return g, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
