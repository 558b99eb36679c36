package termpix

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// PixelMapper turns one cache cell into the text printed for it
type PixelMapper func(Color) string

// BlockGlyph is printed for every cell by the block mappers. Two columns keep
// cells roughly square in most terminal fonts.
const BlockGlyph = "██"

// asciiRamp maps luminance bins from darkest to brightest
var asciiRamp = [...]string{" ", ":", ";", "=", "*", "#", "@", "&", "%"}

// asciiBinWidth is the width of each luminance bin over the 0-765 sum range
const asciiBinWidth = 85

// TrueColorBlock prints BlockGlyph in the cell's 24-bit color
func TrueColorBlock(c Color) string {
	// written directly: termenv round-trips through float hex and can lose a unit
	var sb strings.Builder
	sb.Grow(32)
	sb.WriteString(termenv.CSI + "38;2;")
	sb.WriteString(strconv.Itoa(int(c.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.B)))
	sb.WriteByte('m')
	sb.WriteString(BlockGlyph)
	sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	return sb.String()
}

// BlockMapper returns a block mapper that degrades the cell color to the given
// terminal profile. termenv.Ascii prints the bare glyph.
func BlockMapper(profile termenv.Profile) PixelMapper {
	return func(c Color) string {
		return blockFor(profile, c)
	}
}

func blockFor(profile termenv.Profile, c Color) string {
	if profile == termenv.TrueColor {
		return TrueColorBlock(c)
	}
	return profile.String(BlockGlyph).Foreground(profile.Color(c.Hex())).String()
}

// ASCIILuminance picks a character from a nine step ramp using the sum
// R + G + G. Green is counted twice and blue ignored; output produced by
// earlier releases depends on this weighting.
func ASCIILuminance(c Color) string {
	sum := int(c.R) + int(c.G) + int(c.G)
	bin := sum / asciiBinWidth
	if sum > 0 && sum%asciiBinWidth == 0 {
		// bins are closed on the right: 85 is still the darkest bin
		bin--
	}
	return asciiRamp[min(bin, len(asciiRamp)-1)]
}
