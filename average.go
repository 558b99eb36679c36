package termpix

import "fmt"

// averageBlock returns the mean color of the pixels in [x0,x1) x [y0,y1).
// The region is clamped to the raster so overhanging edge blocks only count
// pixels that exist. Channels are summed in 64 bits and divided with
// truncation.
func averageBlock(r *Raster, x0, y0, x1, y1 int) Color {
	x0, x1 = max(x0, 0), min(x1, r.width)
	y0, y1 = max(y0, 0), min(y1, r.height)

	var sumR, sumG, sumB, count uint64
	for y := y0; y < y1; y++ {
		row := r.pix[y*r.width : (y+1)*r.width]
		for x := x0; x < x1; x++ {
			p := row[x]
			sumR += uint64(p.R)
			sumG += uint64(p.G)
			sumB += uint64(p.B)
		}
		if x1 > x0 {
			count += uint64(x1 - x0)
		}
	}

	// blockSteps guarantees every block starts inside the raster
	if count == 0 {
		panic(fmt.Sprintf("termpix: empty averaging block [%d,%d)x[%d,%d)", x0, x1, y0, y1))
	}

	return Color{
		R: uint8(sumR / count),
		G: uint8(sumG / count),
		B: uint8(sumB / count),
	}
}
