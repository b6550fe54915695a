package detect

import (
	"errors"
	"image"
)

var (
	// ErrNoQR means every region was tried and none decoded. It is an
	// outcome, not a processing failure.
	ErrNoQR = errors.New("no QR code found")
	// ErrImageUnavailable is returned for an image with no pixels.
	ErrImageUnavailable = errors.New("image has no pixels")
)

// NoQR is the external sentinel reported when nothing was found.
const NoQR = "NO_QR"

// Point is a position in image pixels.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Corner indexes of a BoundingBox.
const (
	TopLeft = iota
	TopRight
	BottomLeft
	BottomRight
)

// BoundingBox holds the symbol corners in index order TopLeft, TopRight,
// BottomLeft, BottomRight. That order is not the edge order; use Polygon to
// walk the outline.
type BoundingBox [4]Point

// Polygon returns the corners in outline order: top-left, top-right,
// bottom-right, bottom-left.
func (b BoundingBox) Polygon() []Point {
	return []Point{b[TopLeft], b[TopRight], b[BottomRight], b[BottomLeft]}
}

// Within reports whether every corner lies inside r.
func (b BoundingBox) Within(r image.Rectangle) bool {
	for _, p := range b {
		if p.X < float64(r.Min.X) || p.Y < float64(r.Min.Y) || p.X > float64(r.Max.X) || p.Y > float64(r.Max.Y) {
			return false
		}
	}
	return true
}

// Result is a successful detection.
type Result struct {
	Data        string      `json:"data"`
	BoundingBox BoundingBox `json:"boundingBox"`
	Region      string      `json:"region"`
	Attempt     int         `json:"attempt"` // index into the region table
	Scale       float64     `json:"scale"`
	InBounds    bool        `json:"inBounds"`
}

// Response is the external shape of a detection: the NO_QR sentinel, the
// decoded text, or the text with its geometry.
type Response struct {
	Result      string  `json:"result,omitempty" yaml:"result,omitempty"`
	Data        string  `json:"data,omitempty" yaml:"data,omitempty"`
	BoundingBox []Point `json:"boundingBox,omitempty" yaml:"boundingBox,omitempty"`
	Region      string  `json:"region,omitempty" yaml:"region,omitempty"`
}

// NewResponse shapes res for callers; a nil res reports NoQR. full selects
// text with geometry over text only.
func NewResponse(res *Result, full bool) Response {
	if res == nil {
		return Response{Result: NoQR}
	}
	if !full {
		return Response{Data: res.Data}
	}
	return Response{Data: res.Data, BoundingBox: res.BoundingBox[:], Region: res.Region}
}

// String returns the text-only form: the decoded data or NoQR.
func (r Response) String() string {
	if r.Result != "" {
		return r.Result
	}
	return r.Data
}
