package termpix

import (
	"fmt"
	"image"
	"iter"
	"runtime"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
)

// PixelCache is a downsampled, immutable grid of averaged colors. It keeps no
// reference to the raster it was built from.
type PixelCache struct {
	width  int
	height int
	cells  []Color
}

// BuildOptions configures how a cache is built
type BuildOptions struct {
	// Workers is the number of goroutines averaging block rows in parallel.
	// Values below 2 build on the calling goroutine; a negative value uses
	// GOMAXPROCS.
	Workers int
}

// Build averages r into a cache at the given scale. The raster is consumed:
// once the scale has been validated r is released whether or not the build
// succeeds.
func Build(r *Raster, s Scale) (*PixelCache, error) {
	return BuildWithOptions(r, s, BuildOptions{})
}

// BuildWithOptions is Build with explicit options
func BuildWithOptions(r *Raster, s Scale, opts BuildOptions) (*PixelCache, error) {
	if r == nil || r.Released() {
		return nil, fmt.Errorf("raster is nil or already consumed")
	}

	grid, err := blockSteps(r.width, r.height, s)
	if err != nil {
		return nil, err
	}
	defer r.release()

	start := time.Now()
	c := &PixelCache{
		width:  grid.cols,
		height: grid.rows,
		cells:  make([]Color, grid.cols*grid.rows),
	}

	workers := opts.Workers
	if workers < 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, grid.rows)

	if workers < 2 {
		for row := range grid.rows {
			c.fillRow(r, grid, row)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(workers)
		for row := range grid.rows {
			g.Go(func() error {
				c.fillRow(r, grid, row)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to build pixel cache: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"source":  fmt.Sprintf("%dx%d", r.width, r.height),
		"cache":   fmt.Sprintf("%dx%d", c.width, c.height),
		"block":   fmt.Sprintf("%dx%d", grid.wStep, grid.hStep),
		"workers": max(workers, 1),
		"elapsed": time.Since(start),
	}).Debug("built pixel cache")

	return c, nil
}

// fillRow averages one row of blocks. Rows write disjoint slices of c.cells.
func (c *PixelCache) fillRow(r *Raster, grid blockGrid, row int) {
	y0 := row * grid.hStep
	out := c.cells[row*c.width : (row+1)*c.width]
	for col := range out {
		x0 := col * grid.wStep
		out[col] = averageBlock(r, x0, y0, x0+grid.wStep, y0+grid.hStep)
	}
}

// BuildUnscaled copies every pixel of r into a cache without averaging.
// The raster is consumed.
func BuildUnscaled(r *Raster) (*PixelCache, error) {
	if r == nil || r.Released() {
		return nil, fmt.Errorf("raster is nil or already consumed")
	}
	defer r.release()

	c := &PixelCache{
		width:  r.width,
		height: r.height,
		cells:  r.pix,
	}
	return c, nil
}

// BuildFromImage copies img into a raster and builds a cache from it
func BuildFromImage(img image.Image, s Scale) (*PixelCache, error) {
	r, err := FromImage(img)
	if err != nil {
		return nil, err
	}
	return Build(r, s)
}

// BuildFromPath decodes the image at path and builds a cache from it.
// Decode failures are returned as *ImageLoadError.
func BuildFromPath(path string, s Scale) (*PixelCache, error) {
	r, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return Build(r, s)
}

// BuildUnscaledFromPath decodes the image at path into a cache with one cell
// per source pixel
func BuildUnscaledFromPath(path string) (*PixelCache, error) {
	r, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return BuildUnscaled(r)
}

// Width returns the number of cells per row, or 0 for an empty cache
func (c *PixelCache) Width() int {
	if c.height == 0 {
		return 0
	}
	return c.width
}

// Height returns the number of rows
func (c *PixelCache) Height() int {
	return c.height
}

// At returns the cell at column x, row y
func (c *PixelCache) At(x, y int) Color {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		panic(fmt.Sprintf("termpix: cell (%d,%d) out of bounds for %dx%d cache", x, y, c.width, c.height))
	}
	return c.cells[y*c.width+x]
}

// Row returns a copy of row y
func (c *PixelCache) Row(y int) []Color {
	if y < 0 || y >= c.height {
		return nil
	}
	row := make([]Color, c.width)
	copy(row, c.cells[y*c.width:(y+1)*c.width])
	return row
}

// Cells iterates the grid in row-major order
func (c *PixelCache) Cells() iter.Seq2[image.Point, Color] {
	return func(yield func(image.Point, Color) bool) {
		for y := range c.height {
			for x := range c.width {
				if !yield(image.Pt(x, y), c.cells[y*c.width+x]) {
					return
				}
			}
		}
	}
}

// Image returns the cache as an opaque RGBA image, one pixel per cell
func (c *PixelCache) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for i, cell := range c.cells {
		p := img.Pix[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2], p[3] = cell.R, cell.G, cell.B, 0xff
	}
	return img
}

// MSE returns the mean squared per-channel error between two caches.
// Caches of different dimensions return ErrMismatchedSize.
func (c *PixelCache) MSE(other *PixelCache) (float64, error) {
	if other == nil || c.Width() != other.Width() || c.Height() != other.Height() {
		return 0, fmt.Errorf("%w: cannot compare %s with %s", ErrMismatchedSize, c.size(), other.size())
	}
	if len(c.cells) == 0 {
		return 0, nil
	}

	var sumSq float64
	for i, a := range c.cells {
		b := other.cells[i]
		dr := float64(a.R) - float64(b.R)
		dg := float64(a.G) - float64(b.G)
		db := float64(a.B) - float64(b.B)
		sumSq += dr*dr + dg*dg + db*db
	}
	return sumSq / float64(len(c.cells)*3), nil
}

func (c *PixelCache) size() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%dx%d", c.Width(), c.Height())
}
