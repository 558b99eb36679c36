package termpix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRaster fills a raster from fn(x, y)
func newTestRaster(t *testing.T, width, height int, fn func(x, y int) Color) *Raster {
	t.Helper()
	r, err := NewRaster(width, height)
	require.NoError(t, err)
	for y := range height {
		for x := range width {
			r.Set(x, y, fn(x, y))
		}
	}
	return r
}

func solid(c Color) func(x, y int) Color {
	return func(int, int) Color { return c }
}

func TestAverageBlock(t *testing.T) {
	t.Run("constant block", func(t *testing.T) {
		r := newTestRaster(t, 3, 3, solid(RGB(10, 20, 30)))
		assert.Equal(t, RGB(10, 20, 30), averageBlock(r, 0, 0, 3, 3))
	})

	t.Run("truncating division", func(t *testing.T) {
		r := newTestRaster(t, 2, 1, func(x, _ int) Color {
			return Splat(uint8(x * 255))
		})
		assert.Equal(t, Splat(127), averageBlock(r, 0, 0, 2, 1))
	})

	t.Run("large white block does not overflow", func(t *testing.T) {
		r := newTestRaster(t, 256, 256, solid(Splat(255)))
		assert.Equal(t, Splat(255), averageBlock(r, 0, 0, 256, 256))
	})

	t.Run("overhanging block is clamped", func(t *testing.T) {
		r := newTestRaster(t, 3, 1, func(x, _ int) Color {
			return Splat(uint8(x * 90))
		})
		assert.Equal(t, Splat(180), averageBlock(r, 2, 0, 4, 1))
	})

	t.Run("sub block", func(t *testing.T) {
		r := newTestRaster(t, 4, 4, func(x, y int) Color {
			return RGB(uint8(x*10+y), 0, uint8(y))
		})
		// (0,0)=0 (1,0)=10 (0,1)=1 (1,1)=11
		assert.Equal(t, RGB(5, 0, 0), averageBlock(r, 0, 0, 2, 2))
	})

	t.Run("empty block panics", func(t *testing.T) {
		r := newTestRaster(t, 3, 3, solid(Splat(1)))
		assert.Panics(t, func() {
			averageBlock(r, 5, 5, 6, 6)
		})
	})
}
