package termpix

import (
	"math"
	"os"

	"github.com/blacktop/go-termpix/pkg/csi"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ModeEnv overrides mode detection when set to a mode name
const ModeEnv = "TERMPIX_MODE"

// Fallback terminal size when stdout is not a terminal
const (
	DefaultColumns = 80
	DefaultRows    = 24
)

// DetectMode picks a mode from the environment. TERMPIX_MODE wins; otherwise
// terminals without color support get ASCII and everything else TrueColor.
// Sixel is never chosen automatically.
func DetectMode() Mode {
	if forced := os.Getenv(ModeEnv); forced != "" {
		if mode, err := ParseMode(forced); err == nil && mode != Auto {
			return mode
		}
	}

	if termenv.EnvColorProfile() == termenv.Ascii {
		return ASCII
	}
	return TrueColor
}

// TerminalSize returns the size of the terminal attached to stdout in
// character cells, falling back to 80x24
func TerminalSize() (cols, rows int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return DefaultColumns, DefaultRows
}

// FitScale returns the largest uniform Scale at which a width x height image
// renders within cols x rows character cells in the given mode. One row is
// left free for the prompt.
func FitScale(width, height, cols, rows int, mode Mode) Scale {
	if width <= 0 || height <= 0 {
		return Unscaled
	}

	maxW, maxH := cols, max(rows-1, 1)
	switch mode {
	case TrueColor:
		maxW = cols / 2 // BlockGlyph is two columns wide
	case Halfblocks, Sixel:
		maxH *= 2
	}
	maxW = max(maxW, 1)

	// An integral step k guarantees ceil(W/k) <= maxW for the block grid
	k := max(ceilDiv(width, maxW), ceilDiv(height, maxH), 1)
	if k == 1 {
		return Unscaled
	}
	return Scale{X: stepScale(width, k), Y: stepScale(height, k)}
}

// stepScale returns a factor whose block step along an axis of n pixels is at
// least k. Axes shorter than k collapse to a single block.
func stepScale(n, k int) float64 {
	// nudge up so floor(n*s) does not land one below n/k
	s := (1 / float64(k)) * (1 + 1e-9)
	if n < k {
		s = (1 / float64(n)) * (1 + 1e-9)
	}
	return math.Min(1, s)
}

// colorProfile is the block mapper profile for TrueColor mode. An explicit
// TrueColor request still emits color when stdout is not a terminal.
func colorProfile() termenv.Profile {
	p := termenv.EnvColorProfile()
	if p == termenv.Ascii {
		return termenv.TrueColor
	}
	return p
}

// wrapTmuxPassthrough wraps graphics sequences so tmux forwards them
func wrapTmuxPassthrough(output string) string {
	return csi.WrapTmuxPassthrough(output)
}
