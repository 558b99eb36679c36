/*
Package termpix renders raster images as text in a terminal.

An image is decoded into a Raster, shrunk into a PixelCache by averaging
rectangular blocks of pixels, and printed one glyph per cache cell. The cache
is the only thing kept after a build: the full resolution raster is released as
soon as the averages are computed.

Supported input formats are PNG, JPEG, GIF, BMP, TIFF and WebP.

Basic Usage:

	// Print a file at a tenth of its size
	err := termpix.PrintFile("image.png", termpix.Uniform(0.1))
	if err != nil {
	    log.Fatal(err)
	}

Building a cache:

	cache, err := termpix.BuildFromPath("image.png", termpix.Scale{X: 0.2, Y: 0.1})
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(cache.Width(), cache.Height())

	// Every source pixel as one cell
	full, err := termpix.BuildUnscaledFromPath("icon.png")

Choosing how cells are drawn:

	// A two column 24-bit block per cell
	out, _ := termpix.RenderString(cache, termpix.TrueColorBlock)

	// One character per cell from a nine step luminance ramp
	out, _ = termpix.RenderString(cache, termpix.ASCIILuminance)

	// Any func(termpix.Color) string works as a mapper
	out, _ = termpix.RenderString(cache, func(c termpix.Color) string {
	    if c.R > 128 {
	        return "-"
	    }
	    return "+"
	})

Renderers:

	// Pick a renderer by mode; Auto honours TERMPIX_MODE and the color profile
	r, err := termpix.GetRenderer(termpix.Halfblocks)
	if err != nil {
	    log.Fatal(err)
	}
	r.Print(cache)

Fitting the terminal:

	cols, rows := termpix.TerminalSize()
	raster, _ := termpix.Decode("image.png")
	scale := termpix.FitScale(raster.Width(), raster.Height(), cols, rows, termpix.TrueColor)
	cache, err := termpix.Build(raster, scale) // raster is released here

Errors:

Scale factors must be in (0, 1] and large enough to leave at least one block
on each axis; anything else returns an error wrapping ErrInvalidScale. Files
that cannot be opened or decoded return an *ImageLoadError wrapping the cause.
*/
package termpix
