// Package render turns a QR module grid into an SVG document: run-length
// module paths or decorative dots, ornamental finder corners, an optional
// excavated logo and an optional template frame.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/cristianadrielbraun/qrframe/internal/symbol"
)

// CompilePath returns a single path that fills exactly the dark modules of g,
// in module units, shifted by margin modules. Each horizontal run of dark
// modules becomes one rectangle instruction.
func CompilePath(g symbol.Grid, margin int) string {
	var b strings.Builder
	n := g.Size()
	for y := 0; y < n; y++ {
		start := -1
		for x := 0; x < n; x++ {
			dark := g.Dark(x, y)
			if dark && start < 0 {
				start = x
			}
			if start >= 0 && (!dark || x == n-1) {
				end := x
				if dark {
					end = x + 1
				}
				writeRun(&b, start+margin, y+margin, end-start)
				start = -1
			}
		}
	}
	return b.String()
}

// writeRun emits "M{x} {y}h{w}v1H{x}z".
func writeRun(b *strings.Builder, x, y, w int) {
	b.WriteByte('M')
	b.WriteString(strconv.Itoa(x))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(y))
	b.WriteByte('h')
	b.WriteString(strconv.Itoa(w))
	b.WriteString("v1H")
	b.WriteString(strconv.Itoa(x))
	b.WriteByte('z')
}

// RasterizeModules draws g module by module into a new image of
// (size+2*margin)*scale pixels per side: one filled scale×scale square per
// dark module on a bg background. It is the pixel counterpart of CompilePath
// for targets without vector path support.
func RasterizeModules(g symbol.Grid, margin, scale int, fg, bg color.Color) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	side := (g.Size() + 2*margin) * scale
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	fill := &image.Uniform{C: fg}
	for y := 0; y < g.Size(); y++ {
		for x := 0; x < g.Size(); x++ {
			if !g.Dark(x, y) {
				continue
			}
			px := (x + margin) * scale
			py := (y + margin) * scale
			draw.Draw(img, image.Rect(px, py, px+scale, py+scale), fill, image.Point{}, draw.Src)
		}
	}
	return img
}
