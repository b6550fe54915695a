// Package detect finds and decodes a QR code somewhere in a photograph by
// trying a fixed sequence of crops at a bounded working resolution.
package detect

import (
	"fmt"
	"image"
	"math"
)

// Region is a crop of the source image. X and Y are offsets as fractions of
// the natural width and height; Ratio is the crop side as a fraction of both.
type Region struct {
	Name  string  `mapstructure:"name" json:"name" yaml:"name"`
	X     float64 `mapstructure:"x" json:"x" yaml:"x"`
	Y     float64 `mapstructure:"y" json:"y" yaml:"y"`
	Ratio float64 `mapstructure:"ratio" json:"ratio" yaml:"ratio"`
}

// DefaultRegions is the attempt order used when none is configured: the
// whole image, then 65% crops anchored bottom-left, bottom-right and
// top-right, then a centered 65% crop.
var DefaultRegions = []Region{
	{Name: "full", X: 0, Y: 0, Ratio: 1},
	{Name: "bottom", X: 0, Y: 0.35, Ratio: 0.65},
	{Name: "bottom-right", X: 0.35, Y: 0.35, Ratio: 0.65},
	{Name: "top-right", X: 0.35, Y: 0, Ratio: 0.65},
	{Name: "center", X: 0.175, Y: 0.175, Ratio: 0.65},
}

// Validate reports whether r is a usable crop.
func (r Region) Validate() error {
	switch {
	case r.Ratio <= 0 || r.Ratio > 1:
		return fmt.Errorf("region %q: ratio %v outside (0, 1]", r.Name, r.Ratio)
	case r.X < 0 || r.Y < 0 || r.X >= 1 || r.Y >= 1:
		return fmt.Errorf("region %q: offset (%v, %v) outside [0, 1)", r.Name, r.X, r.Y)
	}
	return nil
}

// Source returns the pixel rectangle of r within bounds. Offsets and sizes
// are floored; the rectangle is clipped to bounds.
func (r Region) Source(bounds image.Rectangle) image.Rectangle {
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	x0 := bounds.Min.X + int(math.Floor(r.X*w))
	y0 := bounds.Min.Y + int(math.Floor(r.Y*h))
	rect := image.Rect(x0, y0, x0+int(math.Floor(w*r.Ratio)), y0+int(math.Floor(h*r.Ratio)))
	return rect.Intersect(bounds)
}

// Targets are the working pixel budgets chosen by aspect ratio.
type Targets struct {
	Extreme  float64 `mapstructure:"extreme" json:"extreme" yaml:"extreme"`    // aspect <= 1/3 or >= 3
	Moderate float64 `mapstructure:"moderate" json:"moderate" yaml:"moderate"` // aspect <= 1/2 or >= 2
	Square   float64 `mapstructure:"square" json:"square" yaml:"square"`
}

// DefaultTargets keeps wide and tall images sharper than near-square ones.
var DefaultTargets = Targets{Extreme: 1_200_000, Moderate: 900_000, Square: 640_000}

// Budget returns the working pixel target for a w×h image.
func (t Targets) Budget(w, h int) float64 {
	aspect := float64(w) / float64(h)
	switch {
	case aspect <= 0.33 || aspect >= 3:
		return t.Extreme
	case aspect <= 0.5 || aspect >= 2:
		return t.Moderate
	}
	return t.Square
}

// Decrease returns the factor the natural size is divided by so that the
// whole image covers about Budget(w, h) pixels. It is below 1 for small
// images, which are then enlarged.
func (t Targets) Decrease(w, h int) float64 {
	return math.Sqrt(float64(w) * float64(h) / t.Budget(w, h))
}

// workingSize is the buffer size a region is drawn into at scale step s.
func workingSize(w, h int, r Region, s, decrease float64) (int, int) {
	return int(math.Floor(float64(w) * r.Ratio * s / decrease)),
		int(math.Floor(float64(h) * r.Ratio * s / decrease))
}
