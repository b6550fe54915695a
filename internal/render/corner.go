package render

import (
	"strings"

	"github.com/cristianadrielbraun/qrframe/internal/svg"
)

// cornerDot is the radius of a finder dot in modules.
const cornerDot = 1.5

// Corner is one finder pattern position in pixel space.
type Corner struct {
	Name     string
	X, Y     float64 // top-left pixel of the 7×7 block
	Size     float64
	Rotation float64 // degrees, applied to the dot about the corner center
}

// Center returns the pixel center of the corner block.
func (c Corner) Center() (float64, float64) {
	return c.X + c.Size/2, c.Y + c.Size/2
}

// Corners returns the top-left, top-right and bottom-left finder corners of
// a symbol with n modules per side.
func Corners(n, margin int, pixelSize float64) []Corner {
	size := 7 * pixelSize
	near := float64(margin) * pixelSize
	far := float64(n-7+margin) * pixelSize
	return []Corner{
		{Name: "top-left", X: near, Y: near, Size: size, Rotation: 0},
		{Name: "top-right", X: far, Y: near, Size: size, Rotation: 90},
		{Name: "bottom-left", X: near, Y: far, Size: size, Rotation: -90},
	}
}

// CornerPath returns the ornamental ring outline scaled to size pixels with
// its top-left at (offsetX, offsetY).
func CornerPath(offsetX, offsetY, size float64) string {
	k := size / cornerDesignSize
	var b strings.Builder
	for _, op := range cornerRing {
		b.WriteByte(op.cmd)
		if op.cmd == 'V' {
			b.WriteString(svg.Num(op.args[0]*k + offsetY))
			continue
		}
		for i := 0; i+1 < len(op.args); i += 2 {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(svg.Num(op.args[i]*k + offsetX))
			b.WriteByte(' ')
			b.WriteString(svg.Num(op.args[i+1]*k + offsetY))
		}
	}
	return b.String()
}

// cornerNodes renders the ring and dot of c. The ring is painted with eye,
// the dot with dot.
func cornerNodes(c Corner, pixelSize float64, eye, dot string) []*svg.Node {
	cx, cy := c.Center()
	ring := svg.El("path",
		"d", CornerPath(c.X, c.Y, c.Size),
		"fill", eye,
		"fill-rule", "evenodd",
		"clip-rule", "evenodd",
	)
	d := svg.El("circle",
		"cx", svg.Num(cx),
		"cy", svg.Num(cy),
		"r", svg.Num(cornerDot*pixelSize),
		"fill", dot,
	)
	if c.Rotation != 0 {
		d.Set("transform", "rotate("+svg.Num(c.Rotation)+" "+svg.Num(cx)+" "+svg.Num(cy)+")")
	}
	return []*svg.Node{ring, d}
}
