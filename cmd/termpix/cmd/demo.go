package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strings"

	"github.com/blacktop/go-termpix"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Render a generated test pattern in every text mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		modes := []termpix.Mode{termpix.TrueColor, termpix.Halfblocks, termpix.ASCII}
		if mode, err := termpix.ParseMode(modeFlag); err == nil && mode == termpix.Sixel {
			modes = append(modes, termpix.Sixel)
		}
		return runDemo(cmd.OutOrStdout(), createTestPattern(), modes, 40, 20)
	},
}

// runDemo prints img once per mode, each fitted to cols x rows cells
func runDemo(w io.Writer, img image.Image, modes []termpix.Mode, cols, rows int) error {
	bounds := img.Bounds()
	for _, mode := range modes {
		fmt.Fprintf(w, "\n=== %s ===\n", mode)

		scale := termpix.FitScale(bounds.Dx(), bounds.Dy(), cols, rows, mode)
		cache, err := termpix.BuildFromImage(img, scale)
		if err != nil {
			return err
		}
		if err := render(w, cache, mode); err != nil {
			return fmt.Errorf("%s: %w", mode, err)
		}
		fmt.Fprintf(w, "\n%dx%d cells at %.3g\n", cache.Width(), cache.Height(), scale.X)
		fmt.Fprint(w, strings.Repeat("-", 50)+"\n")
	}
	return nil
}

func createTestPattern() image.Image {
	const size = 200
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	// Create a gradient pattern
	for y := range size {
		for x := range size {
			r := uint8((x * 255) / size)
			g := uint8((y * 255) / size)
			b := uint8(((x + y) * 255) / (2 * size))
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}

	// One solid square in each corner
	corners := []struct {
		rect image.Rectangle
		c    color.RGBA
	}{
		{image.Rect(20, 20, 60, 60), color.RGBA{255, 0, 0, 255}},
		{image.Rect(140, 20, 180, 60), color.RGBA{0, 255, 0, 255}},
		{image.Rect(20, 140, 60, 180), color.RGBA{0, 0, 255, 255}},
		{image.Rect(140, 140, 180, 180), color.RGBA{255, 255, 255, 255}},
	}
	for _, sq := range corners {
		draw.Draw(img, sq.rect, &image.Uniform{sq.c}, image.Point{}, draw.Src)
	}

	return img
}
