package render

import (
	"math"

	"github.com/cristianadrielbraun/qrframe/internal/symbol"
)

// Excavation is a rectangle of modules cleared to make room for a logo.
type Excavation struct {
	X, Y, W, H int
}

// Contains reports whether module (x, y) is inside the excavation.
func (e Excavation) Contains(x, y int) bool {
	return x >= e.X && x < e.X+e.W && y >= e.Y && y < e.Y+e.H
}

// Placement is a logo footprint in module coordinates, relative to the
// symbol without its margin.
type Placement struct {
	X, Y, W, H float64
	Excavation *Excavation
}

// Pixels converts the placement to pixel space for an image of size pixels
// showing numCells modules (symbol plus margins).
func (p Placement) Pixels(size float64, numCells, margin int) (left, top, width, height float64) {
	ratio := size / float64(numCells)
	return (p.X + float64(margin)) * ratio,
		(p.Y + float64(margin)) * ratio,
		p.W * ratio,
		p.H * ratio
}

// PlaceLogo computes where a logo sits on a symbol of cells modules rendered
// at size pixels. Unset dimensions default to DefaultImageScale of size and
// unset positions center the logo. It returns nil when img is nil.
//
// When img.Excavate is set the result carries the smallest module-aligned
// rectangle covering the footprint, clipped to the grid. Overlap with finder
// patterns is not prevented.
func PlaceLogo(cells int, size float64, img *ImageSettings) *Placement {
	if img == nil || cells <= 0 || size <= 0 {
		return nil
	}
	def := math.Floor(size * DefaultImageScale)
	scale := float64(cells) / size
	w, h := img.Width, img.Height
	if w <= 0 {
		w = def
	}
	if h <= 0 {
		h = def
	}
	p := &Placement{W: snap(w * scale), H: snap(h * scale)}
	if img.X != nil {
		p.X = snap(*img.X * scale)
	} else {
		p.X = snap(float64(cells)/2 - p.W/2)
	}
	if img.Y != nil {
		p.Y = snap(*img.Y * scale)
	} else {
		p.Y = snap(float64(cells)/2 - p.H/2)
	}
	if img.Excavate {
		p.Excavation = excavation(p, cells)
	}
	return p
}

func excavation(p *Placement, cells int) *Excavation {
	x0 := math.Floor(p.X)
	y0 := math.Floor(p.Y)
	x1 := x0 + math.Ceil(p.W+p.X-x0)
	y1 := y0 + math.Ceil(p.H+p.Y-y0)
	clip := func(v float64) int { return int(math.Max(0, math.Min(float64(cells), v))) }
	e := &Excavation{X: clip(x0), Y: clip(y0)}
	e.W = clip(x1) - e.X
	e.H = clip(y1) - e.Y
	return e
}

// snap removes floating point noise so that exact module boundaries such as
// a full-grid logo do not spill into the next module under floor or ceil.
func snap(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}

// Excavate returns a copy of g with every module inside e cleared.
func Excavate(g symbol.Grid, e Excavation) symbol.Grid {
	return g.Map(func(x, y int, dark bool) bool {
		return dark && !e.Contains(x, y)
	})
}
