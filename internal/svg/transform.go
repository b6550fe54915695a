package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Matrix is a 2D affine transform in SVG order: [a c e; b d f; 0 0 1].
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix{A: 1, D: 1}

// Translate returns a translation matrix.
func Translate(x, y float64) Matrix { return Matrix{A: 1, D: 1, E: x, F: y} }

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix { return Matrix{A: sx, D: sy} }

// ScaleBy returns a uniform "scale(k k)" transform attribute. Both factors
// are written: oksvg reads a lone factor as scale(k, 0).
func ScaleBy(k float64) string { return "scale(" + Num(k) + " " + Num(k) + ")" }

// TranslateScale returns "translate(x y) scale(k k)".
func TranslateScale(x, y, k float64) string {
	return "translate(" + Num(x) + " " + Num(y) + ") " + ScaleBy(k)
}

// Rotate returns a rotation by deg degrees about (cx, cy).
func Rotate(deg, cx, cy float64) Matrix {
	r := deg * math.Pi / 180
	sin, cos := math.Sincos(r)
	rot := Matrix{A: cos, B: sin, C: -sin, D: cos}
	return Translate(cx, cy).Mul(rot).Mul(Translate(-cx, -cy))
}

// Mul returns m·o, i.e. o applied first, then m.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F,
	}
}

// Apply maps the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// ParseTransform parses an SVG transform list such as
// "translate(9, 9) scale(0.95)". Supported functions are matrix, translate,
// scale and rotate.
func ParseTransform(s string) (Matrix, error) {
	m := Identity
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		closeIdx := strings.IndexByte(rest, ')')
		if open < 0 || closeIdx < open {
			return Identity, fmt.Errorf("malformed transform %q", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseArgs(rest[open+1 : closeIdx])
		if err != nil {
			return Identity, fmt.Errorf("transform %q: %w", s, err)
		}
		var t Matrix
		switch {
		case name == "matrix" && len(args) == 6:
			t = Matrix{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}
		case name == "translate" && len(args) == 1:
			t = Translate(args[0], 0)
		case name == "translate" && len(args) == 2:
			t = Translate(args[0], args[1])
		case name == "scale" && len(args) == 1:
			t = Scale(args[0], args[0])
		case name == "scale" && len(args) == 2:
			t = Scale(args[0], args[1])
		case name == "rotate" && len(args) == 1:
			t = Rotate(args[0], 0, 0)
		case name == "rotate" && len(args) == 3:
			t = Rotate(args[0], args[1], args[2])
		default:
			return Identity, fmt.Errorf("unsupported transform %s with %d args", name, len(args))
		}
		m = m.Mul(t)
		rest = strings.TrimLeft(rest[closeIdx+1:], " ,\t\n")
	}
	return m, nil
}

func parseArgs(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ViewBox parses a "minX minY width height" viewBox attribute.
func ViewBox(s string) (minX, minY, w, h float64, err error) {
	args, err := parseArgs(s)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if len(args) != 4 || args[2] <= 0 || args[3] <= 0 {
		return 0, 0, 0, 0, fmt.Errorf("invalid viewBox %q", s)
	}
	return args[0], args[1], args[2], args[3], nil
}

// Placed is an element together with the transform from its own coordinates
// to the root viewport.
type Placed struct {
	Node *Node
	CTM  Matrix
}

// Locate walks the tree under root and returns every element with the given
// tag, with its accumulated transform. The root viewBox is mapped onto
// viewport (pixel) dimensions width×height.
func Locate(root *Node, tag string, width, height float64) ([]Placed, error) {
	base := Identity
	if vb, ok := root.Get("viewBox"); ok {
		minX, minY, w, h, err := ViewBox(vb)
		if err != nil {
			return nil, err
		}
		base = Scale(width/w, height/h).Mul(Translate(-minX, -minY))
	}
	var out []Placed
	var visit func(n *Node, ctm Matrix) error
	visit = func(n *Node, ctm Matrix) error {
		if tr, ok := n.Get("transform"); ok {
			t, err := ParseTransform(tr)
			if err != nil {
				return err
			}
			ctm = ctm.Mul(t)
		}
		if n.Tag == tag {
			out = append(out, Placed{Node: n, CTM: ctm})
		}
		for _, c := range n.Children {
			if err := visit(c, ctm); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(root, base); err != nil {
		return nil, err
	}
	return out, nil
}
