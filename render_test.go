package termpix

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, width, height int, fn func(x, y int) Color) *PixelCache {
	t.Helper()
	c, err := BuildUnscaled(newTestRaster(t, width, height, fn))
	require.NoError(t, err)
	return c
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "", want: Auto},
		{input: "auto", want: Auto},
		{input: "TrueColor", want: TrueColor},
		{input: "rgb", want: TrueColor},
		{input: "ascii", want: ASCII},
		{input: " text ", want: ASCII},
		{input: "halfblocks", want: Halfblocks},
		{input: "mosaic", want: Halfblocks},
		{input: "sixel", want: Sixel},
		{input: "kitty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeString(t *testing.T) {
	for _, m := range []Mode{Auto, TrueColor, ASCII, Halfblocks, Sixel} {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	assert.Equal(t, "Mode(42)", Mode(42).String())
}

func TestGetRenderer(t *testing.T) {
	tests := []struct {
		mode Mode
		want Mode
	}{
		{mode: TrueColor, want: TrueColor},
		{mode: ASCII, want: ASCII},
		{mode: Halfblocks, want: Halfblocks},
		{mode: Sixel, want: Sixel},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			r, err := GetRenderer(tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Mode())
		})
	}

	t.Run("auto honours the environment", func(t *testing.T) {
		t.Setenv(ModeEnv, "ascii")
		r, err := GetRenderer(Auto)
		require.NoError(t, err)
		assert.Equal(t, ASCII, r.Mode())
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := GetRenderer(Mode(42))
		assert.Error(t, err)
	})
}

func TestFprint(t *testing.T) {
	c := newTestCache(t, 3, 2, gradient)

	var sb strings.Builder
	require.NoError(t, Fprint(&sb, c, func(Color) string { return "x" }))
	assert.Equal(t, "xxx\nxxx\n", sb.String())

	assert.Error(t, Fprint(&sb, nil, ASCIILuminance))
	assert.Error(t, Fprint(&sb, c, nil))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestFprintWriteError(t *testing.T) {
	c := newTestCache(t, 2, 2, gradient)
	assert.Error(t, Fprint(failingWriter{}, c, ASCIILuminance))
}

func TestRenderString(t *testing.T) {
	c := newTestCache(t, 2, 2, func(x, y int) Color {
		if x == y {
			return Splat(255)
		}
		return Splat(0)
	})

	out, err := RenderString(c, ASCIILuminance)
	require.NoError(t, err)
	assert.Equal(t, "% \n %\n", out)

	out, err = RenderString(c, TrueColorBlock)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, 2, strings.Count(line, BlockGlyph))
	}
}

func TestHalfblocksRenderer(t *testing.T) {
	r := &HalfblocksRenderer{}
	assert.Equal(t, Halfblocks, r.Mode())

	out, err := r.Render(newTestCache(t, 8, 6, gradient))
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "\x1b[")

	out, err = r.Render(&PixelCache{})
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = r.Render(nil)
	assert.Error(t, err)
}

func TestSixelRenderer(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM_PROGRAM", "")

	c := newTestCache(t, 4, 3, gradient)

	tests := []struct {
		name     string
		renderer *SixelRenderer
	}{
		{name: "default palette", renderer: &SixelRenderer{CellSize: 2}},
		{name: "small palette", renderer: &SixelRenderer{CellSize: 2, Colors: 4}},
		{name: "optimized palette", renderer: &SixelRenderer{CellSize: 2, Colors: 16, OptimizePalette: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.renderer.Render(c)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, "\x1bP"), "sixel output starts with DCS")
			assert.True(t, strings.HasSuffix(out, "\x1b\\"), "sixel output ends with ST")
		})
	}

	t.Run("tmux passthrough", func(t *testing.T) {
		t.Setenv("TMUX", "/tmp/tmux-1000/default,1,0")
		out, err := (&SixelRenderer{CellSize: 2}).Render(c)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "\x1bPtmux;\x1b\x1bP"))
	})

	_, err := (&SixelRenderer{}).Render(nil)
	assert.Error(t, err)
}
