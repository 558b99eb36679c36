/*
Copyright © 2024 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/blacktop/go-termpix"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	scaleFlag  float64
	modeFlag   string
	widthFlag  int
	heightFlag int
)

func init() {
	log.SetHandler(clihander.Default)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Float64VarP(&scaleFlag, "scale", "s", 0, "Scale factor in (0, 1] (default: fit the terminal)")
	rootCmd.PersistentFlags().StringVarP(&modeFlag, "mode", "m", "auto", "Render mode (auto, truecolor, ascii, halfblocks, sixel)")
	rootCmd.Flags().IntVarP(&widthFlag, "width", "W", 0, "Output width in cells (alone: shrink to fit this width)")
	rootCmd.Flags().IntVarP(&heightFlag, "height", "H", 0, "Output height in cells (alone: shrink to fit this height)")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "termpix <image>",
	Short: "Print images in your terminal as colored blocks or ASCII",
	Args:  cobra.ExactArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := termpix.ParseMode(modeFlag)
		if err != nil {
			return err
		}
		if mode == termpix.Auto {
			mode = termpix.DetectMode()
		}

		var cache *termpix.PixelCache
		if widthFlag != 0 || heightFlag != 0 {
			if scaleFlag != 0 {
				return fmt.Errorf("--scale cannot be combined with --width or --height")
			}
			cache, err = loadSizedCache(args[0], widthFlag, heightFlag)
		} else {
			cols, rows := termpix.TerminalSize()
			cache, err = loadCache(args[0], scaleFlag, mode, cols, rows)
		}
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), cache, mode)
	},
}

// resolveScale returns the user's scale, or one that fits the terminal when
// none was given
func resolveScale(flag float64, width, height, cols, rows int, mode termpix.Mode) (termpix.Scale, error) {
	if flag == 0 {
		return termpix.FitScale(width, height, cols, rows, mode), nil
	}
	s := termpix.Uniform(flag)
	if err := s.Validate(); err != nil {
		return termpix.Scale{}, err
	}
	return s, nil
}

// loadCache decodes path and builds a cache sized for the terminal
func loadCache(path string, flag float64, mode termpix.Mode, cols, rows int) (*termpix.PixelCache, error) {
	raster, err := termpix.Decode(path)
	if err != nil {
		return nil, err
	}

	scale, err := resolveScale(flag, raster.Width(), raster.Height(), cols, rows, mode)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"path":  path,
		"size":  fmt.Sprintf("%dx%d", raster.Width(), raster.Height()),
		"scale": fmt.Sprintf("%g,%g", scale.X, scale.Y),
		"mode":  mode,
	}).Debug("building pixel cache")

	return termpix.BuildWithOptions(raster, scale, termpix.BuildOptions{Workers: -1})
}

// loadSizedCache decodes path and resizes it to width x height cells. With only
// one dimension set the image is shrunk to fit it, keeping its aspect ratio.
func loadSizedCache(path string, width, height int) (*termpix.PixelCache, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("--width and --height must not be negative, got %dx%d", width, height)
	}

	img, err := termpix.DecodeImage(path)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()

	log.WithFields(log.Fields{
		"path":   path,
		"size":   fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
		"target": fmt.Sprintf("%dx%d", width, height),
	}).Debug("resizing image")

	if width > 0 && height > 0 {
		return termpix.BuildResized(img, width, height)
	}

	// the unset side is bounded by the image itself
	maxW, maxH := uint(width), uint(height)
	if width == 0 {
		maxW = uint(bounds.Dx())
	}
	if height == 0 {
		maxH = uint(bounds.Dy())
	}
	return termpix.BuildThumbnail(img, maxW, maxH)
}

// render writes the cache to w using the renderer for mode
func render(w io.Writer, cache *termpix.PixelCache, mode termpix.Mode) error {
	renderer, err := termpix.GetRenderer(mode)
	if err != nil {
		return err
	}

	out, err := renderer.Render(cache)
	if err != nil {
		return fmt.Errorf("failed to render image: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
