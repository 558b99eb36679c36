package termpix

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Mode selects how cache cells are drawn in the terminal
type Mode int

const (
	// Auto picks the best mode for the current terminal
	Auto Mode = iota
	// TrueColor prints a 24-bit colored block per cell
	TrueColor
	// ASCII prints a luminance character per cell
	ASCII
	// Halfblocks packs two cells per character with upper half blocks
	Halfblocks
	// Sixel draws the cache as a sixel bitmap
	Sixel
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case TrueColor:
		return "truecolor"
	case ASCII:
		return "ascii"
	case Halfblocks:
		return "halfblocks"
	case Sixel:
		return "sixel"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as printed by Mode.String
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "truecolor", "true-color", "rgb":
		return TrueColor, nil
	case "ascii", "text":
		return ASCII, nil
	case "halfblocks", "half", "mosaic":
		return Halfblocks, nil
	case "sixel":
		return Sixel, nil
	default:
		return Auto, fmt.Errorf("unsupported mode: %q", s)
	}
}

// Renderer draws a PixelCache for a terminal
type Renderer interface {
	// Render returns the full terminal output for the cache
	Render(c *PixelCache) (string, error)

	// Print writes the output to stdout
	Print(c *PixelCache) error

	// Mode returns the mode the renderer implements
	Mode() Mode
}

// GetRenderer returns a renderer for the specified mode
func GetRenderer(mode Mode) (Renderer, error) {
	switch mode {
	case Auto:
		return GetRenderer(DetectMode())
	case TrueColor:
		return &TextRenderer{Mapper: BlockMapper(colorProfile()), mode: TrueColor}, nil
	case ASCII:
		return &TextRenderer{Mapper: ASCIILuminance, mode: ASCII}, nil
	case Halfblocks:
		return &HalfblocksRenderer{}, nil
	case Sixel:
		return &SixelRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported mode: %s", mode)
	}
}

// TextRenderer prints one mapped string per cell and a newline per row
type TextRenderer struct {
	Mapper PixelMapper
	mode   Mode
}

// NewTextRenderer creates a renderer for a custom mapper
func NewTextRenderer(mapper PixelMapper) *TextRenderer {
	return &TextRenderer{Mapper: mapper, mode: TrueColor}
}

// Mode returns the mode type
func (r *TextRenderer) Mode() Mode {
	return r.mode
}

// Render generates the text for the whole cache
func (r *TextRenderer) Render(c *PixelCache) (string, error) {
	var sb strings.Builder
	if err := Fprint(&sb, c, r.Mapper); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Print outputs the cache directly to stdout
func (r *TextRenderer) Print(c *PixelCache) error {
	return Fprint(os.Stdout, c, r.Mapper)
}

// Fprint walks the cache rows top to bottom and cells left to right, writing
// mapper output for each cell and a line break after each row
func Fprint(w io.Writer, c *PixelCache, mapper PixelMapper) error {
	if c == nil {
		return fmt.Errorf("cache cannot be nil")
	}
	if mapper == nil {
		return fmt.Errorf("mapper cannot be nil")
	}

	bw := bufio.NewWriter(w)
	for y := range c.Height() {
		for x := range c.Width() {
			if _, err := bw.WriteString(mapper(c.At(x, y))); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// RenderString renders the cache with mapper into a string
func RenderString(c *PixelCache, mapper PixelMapper) (string, error) {
	return NewTextRenderer(mapper).Render(c)
}

// Print renders the cache with the best mode for the terminal
func Print(c *PixelCache) error {
	r, err := GetRenderer(Auto)
	if err != nil {
		return err
	}
	return r.Print(c)
}

// PrintFile builds a cache from path at scale s and prints it
func PrintFile(path string, s Scale) error {
	c, err := BuildFromPath(path, s)
	if err != nil {
		return err
	}
	return Print(c)
}
