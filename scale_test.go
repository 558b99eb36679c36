package termpix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleValidate(t *testing.T) {
	tests := []struct {
		name    string
		scale   Scale
		wantErr bool
	}{
		{name: "unscaled", scale: Unscaled},
		{name: "uniform half", scale: Uniform(0.5)},
		{name: "mixed axes", scale: Scale{X: 0.2, Y: 0.1}},
		{name: "zero x", scale: Scale{X: 0, Y: 0.5}, wantErr: true},
		{name: "zero y", scale: Scale{X: 0.5, Y: 0}, wantErr: true},
		{name: "negative", scale: Scale{X: -1, Y: 1}, wantErr: true},
		{name: "enlarging", scale: Uniform(1.5), wantErr: true},
		{name: "nan", scale: Scale{X: math.NaN(), Y: 0.5}, wantErr: true},
		{name: "infinite", scale: Scale{X: 0.5, Y: math.Inf(1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scale.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidScale)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBlockSteps(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		scale         Scale
		want          blockGrid
	}{
		{
			name:  "exact quarter width",
			width: 100, height: 50,
			scale: Uniform(0.25),
			// floor(50*0.25)=12 rows of 4 leaves a 2 pixel remainder row
			want: blockGrid{wStep: 4, hStep: 4, cols: 25, rows: 13},
		},
		{
			name:  "remainder column and row",
			width: 10, height: 10,
			scale: Uniform(0.3),
			want:  blockGrid{wStep: 3, hStep: 3, cols: 4, rows: 4},
		},
		{
			name:  "unscaled",
			width: 7, height: 3,
			scale: Unscaled,
			want:  blockGrid{wStep: 1, hStep: 1, cols: 7, rows: 3},
		},
		{
			name:  "single pixel",
			width: 1, height: 1,
			scale: Unscaled,
			want:  blockGrid{wStep: 1, hStep: 1, cols: 1, rows: 1},
		},
		{
			name:  "independent axes",
			width: 64, height: 64,
			scale: Scale{X: 0.5, Y: 0.125},
			want:  blockGrid{wStep: 2, hStep: 8, cols: 32, rows: 8},
		},
		{
			// 0.4 is not 1/k: step floor(100/40)=2 covers the width in 50
			// blocks, well past floor(100*0.4)=40
			name:  "non reciprocal scale overshoots target",
			width: 100, height: 100,
			scale: Uniform(0.4),
			want:  blockGrid{wStep: 2, hStep: 2, cols: 50, rows: 50},
		},
		{
			// a wide image: deriving the row step from the width would give
			// floor(20/100)=0 here
			name:  "height step derived from height",
			width: 200, height: 20,
			scale: Uniform(0.5),
			want:  blockGrid{wStep: 2, hStep: 2, cols: 100, rows: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := blockSteps(tt.width, tt.height, tt.scale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlockStepsErrors(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		scale         Scale
	}{
		{name: "zero x", width: 10, height: 10, scale: Scale{X: 0, Y: 0.5}},
		{name: "negative x", width: 10, height: 10, scale: Scale{X: -1, Y: 1}},
		{name: "greater than one", width: 10, height: 10, scale: Uniform(2)},
		{name: "too small for width", width: 10, height: 100, scale: Scale{X: 0.05, Y: 0.5}},
		{name: "too small for height", width: 100, height: 10, scale: Scale{X: 0.5, Y: 0.05}},
		{name: "empty raster", width: 0, height: 10, scale: Unscaled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := blockSteps(tt.width, tt.height, tt.scale)
			assert.ErrorIs(t, err, ErrInvalidScale)
		})
	}
}

func TestBlockStepsStaysWithinOneOfTarget(t *testing.T) {
	for _, s := range []float64{1, 0.5, 0.25, 0.125} {
		for w := 8; w <= 100; w += 7 {
			for h := 8; h <= 100; h += 11 {
				g, err := blockSteps(w, h, Uniform(s))
				require.NoError(t, err)

				wantCols := int(math.Floor(float64(w) * s))
				wantRows := int(math.Floor(float64(h) * s))
				assert.GreaterOrEqual(t, g.cols, wantCols, "%dx%d@%g", w, h, s)
				assert.LessOrEqual(t, g.cols, wantCols+1, "%dx%d@%g", w, h, s)
				assert.GreaterOrEqual(t, g.rows, wantRows, "%dx%d@%g", w, h, s)
				assert.LessOrEqual(t, g.rows, wantRows+1, "%dx%d@%g", w, h, s)
			}
		}
	}
}
