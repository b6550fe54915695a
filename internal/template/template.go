// Package template holds the decorative frames a rendered QR code can be
// placed in. Every frame works in a fixed 300×300 unit design space and
// receives the QR content already scaled to that space.
package template

import (
	"github.com/cristianadrielbraun/qrframe/internal/svg"
)

// DesignSize is the side of every template's coordinate frame.
const DesignSize = 300

// Context carries the request values a frame may use.
type Context struct {
	FgColor    string
	BgColor    string
	CustomText string
}

// Wrapper places content inside a frame and returns the outer <svg> element.
type Wrapper func(content *svg.Node, ctx Context) *svg.Node

// Definition is a registered template.
type Definition struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Wrapper     Wrapper `json:"-" yaml:"-"`
}

var (
	registry = map[string]Definition{}
	order    []string
)

func init() {
	for _, d := range []Definition{defaultFrame, squareBorder, standardBox, caption} {
		registry[d.ID] = d
		order = append(order, d.ID)
	}
}

// Get looks up a template by id. Unknown ids report false.
func Get(id string) (Definition, bool) {
	d, ok := registry[id]
	return d, ok
}

// All returns every template in registration order.
func All() []Definition {
	out := make([]Definition, 0, len(order))
	for _, id := range order {
		out = append(out, registry[id])
	}
	return out
}

// IDs returns the registered ids in registration order.
func IDs() []string {
	return append([]string(nil), order...)
}

// frame is the outer element shared by all templates.
func frame() *svg.Node {
	return svg.Root(DesignSize, DesignSize).
		Set("id", "svgQrWrapper").
		Set("width", "300").
		Set("height", "300").
		Set("style", "width:100%;height:100%")
}

func colorOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}
