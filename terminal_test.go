package termpix

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMode(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Mode
	}{
		{
			name: "override",
			env:  map[string]string{ModeEnv: "halfblocks"},
			want: Halfblocks,
		},
		{
			name: "override can pick sixel",
			env:  map[string]string{ModeEnv: "sixel"},
			want: Sixel,
		},
		{
			name: "no color",
			env:  map[string]string{ModeEnv: "", "NO_COLOR": "1", "CLICOLOR_FORCE": ""},
			want: ASCII,
		},
		{
			name: "bad override is ignored",
			env:  map[string]string{ModeEnv: "bogus", "NO_COLOR": "1", "CLICOLOR_FORCE": ""},
			want: ASCII,
		},
		{
			name: "forced color",
			env:  map[string]string{ModeEnv: "", "NO_COLOR": "", "CLICOLOR_FORCE": "1"},
			want: TrueColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, DetectMode())
		})
	}
}

func TestTerminalSize(t *testing.T) {
	cols, rows := TerminalSize()
	assert.Positive(t, cols)
	assert.Positive(t, rows)
}

func TestFitScaleUnscaledWhenImageFits(t *testing.T) {
	assert.Equal(t, Unscaled, FitScale(30, 20, 80, 24, TrueColor))
	assert.Equal(t, Unscaled, FitScale(80, 23, 80, 24, ASCII))
	assert.Equal(t, Unscaled, FitScale(80, 46, 80, 24, Halfblocks))
	assert.Equal(t, Unscaled, FitScale(0, 10, 80, 24, ASCII))
}

func TestFitScaleFitsTerminal(t *testing.T) {
	images := [][2]int{{4000, 3000}, {1000, 10}, {10, 1000}, {81, 23}, {160, 46}, {5, 5}, {1, 500}}
	terminals := [][2]int{{80, 24}, {200, 60}, {20, 5}, {1, 1}}

	for _, mode := range []Mode{TrueColor, ASCII, Halfblocks} {
		for _, img := range images {
			for _, term := range terminals {
				name := fmt.Sprintf("%s/%dx%d/%dx%d", mode, img[0], img[1], term[0], term[1])
				t.Run(name, func(t *testing.T) {
					s := FitScale(img[0], img[1], term[0], term[1], mode)
					require.NoError(t, s.Validate())

					g, err := blockSteps(img[0], img[1], s)
					require.NoError(t, err)

					maxCols, maxRows := term[0], max(term[1]-1, 1)
					switch mode {
					case TrueColor:
						maxCols = max(term[0]/2, 1)
					case Halfblocks:
						maxRows *= 2
					}
					assert.LessOrEqual(t, g.cols, maxCols)
					assert.LessOrEqual(t, g.rows, maxRows)
				})
			}
		}
	}
}

func TestFitScaleUsesOneFactorForBothAxes(t *testing.T) {
	s := FitScale(4000, 3000, 80, 24, ASCII)
	assert.Equal(t, s.X, s.Y)
	assert.Less(t, s.X, 1.0)
}
