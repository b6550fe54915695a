// Package symbol turns payload text into a QR module grid.
//
// The grid is produced by one of several encoder backends and is treated as
// immutable once built; callers derive modified copies instead of mutating it.
package symbol

import (
	"fmt"
	"strings"
)

// Grid is a square matrix of QR modules where true marks a dark module.
type Grid struct {
	size  int
	cells []bool
}

// NewGrid copies rows into a Grid. Rows must form a square.
func NewGrid(rows [][]bool) (Grid, error) {
	n := len(rows)
	cells := make([]bool, n*n)
	for y, row := range rows {
		if len(row) != n {
			return Grid{}, fmt.Errorf("row %d has %d modules, want %d", y, len(row), n)
		}
		copy(cells[y*n:(y+1)*n], row)
	}
	return Grid{size: n, cells: cells}, nil
}

// Size returns the number of modules per side.
func (g Grid) Size() int { return g.size }

// Dark reports whether the module at column x, row y is dark.
// Coordinates outside the grid are light.
func (g Grid) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= g.size || y >= g.size {
		return false
	}
	return g.cells[y*g.size+x]
}

// Rows returns a fresh copy of the grid as row slices.
func (g Grid) Rows() [][]bool {
	rows := make([][]bool, g.size)
	for y := range rows {
		rows[y] = make([]bool, g.size)
		copy(rows[y], g.cells[y*g.size:(y+1)*g.size])
	}
	return rows
}

// Map returns a new grid whose modules are f(x, y, dark). The receiver is left untouched.
func (g Grid) Map(f func(x, y int, dark bool) bool) Grid {
	cells := make([]bool, len(g.cells))
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			cells[y*g.size+x] = f(x, y, g.cells[y*g.size+x])
		}
	}
	return Grid{size: g.size, cells: cells}
}

// Equal reports whether both grids hold the same modules.
func (g Grid) Equal(o Grid) bool {
	if g.size != o.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// DarkCount returns the number of dark modules.
func (g Grid) DarkCount() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// String renders the grid with '#' for dark and '.' for light modules.
func (g Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if g.cells[y*g.size+x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
