package render

import (
	"github.com/cristianadrielbraun/qrframe/internal/svg"
	"github.com/cristianadrielbraun/qrframe/internal/symbol"
)

// dotRadius is the data circle radius as a fraction of one module.
const dotRadius = 0.3

// IsFinderModule reports whether (x, y) lies in one of the three 7×7
// position detection patterns of a size×size symbol.
func IsFinderModule(x, y, size int) bool {
	switch {
	case x < 7 && y < 7:
		return true
	case x >= size-7 && y < 7:
		return true
	case x < 7 && y >= size-7:
		return true
	}
	return false
}

// DataCircles returns one circle per dark module outside the finder patterns,
// centered in the module, in pixel coordinates.
func DataCircles(g symbol.Grid, margin int, pixelSize float64) []*svg.Node {
	var out []*svg.Node
	n := g.Size()
	r := svg.Num(pixelSize * dotRadius)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !g.Dark(x, y) || IsFinderModule(x, y, n) {
				continue
			}
			cx := (float64(x+margin) + 0.5) * pixelSize
			cy := (float64(y+margin) + 0.5) * pixelSize
			out = append(out, svg.El("circle", "cx", svg.Num(cx), "cy", svg.Num(cy), "r", r))
		}
	}
	return out
}
