package termpix

import (
	"fmt"

	"github.com/charmbracelet/x/mosaic"
)

// HalfblocksRenderer implements the Renderer interface using mosaic. Each
// character cell shows two vertically stacked cache cells.
type HalfblocksRenderer struct {
	Dither bool
}

// Mode returns the mode type
func (r *HalfblocksRenderer) Mode() Mode {
	return Halfblocks
}

// Render generates the escape sequences for the cache
func (r *HalfblocksRenderer) Render(c *PixelCache) (string, error) {
	if c == nil {
		return "", fmt.Errorf("cache cannot be nil")
	}
	if c.Width() == 0 {
		return "", nil
	}

	// One column per cell; rows are halved since every character holds two
	m := mosaic.New().
		Dither(r.Dither).
		Width(c.Width()).
		Height(ceilDiv(c.Height(), 2))

	return m.Render(c.Image()), nil
}

// Print outputs the cache directly to stdout
func (r *HalfblocksRenderer) Print(c *PixelCache) error {
	output, err := r.Render(c)
	if err != nil {
		return err
	}

	fmt.Print(output)
	return nil
}
