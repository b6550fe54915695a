package render

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrframe/internal/log"
	"github.com/cristianadrielbraun/qrframe/internal/svg"
	"github.com/cristianadrielbraun/qrframe/internal/symbol"
	"github.com/cristianadrielbraun/qrframe/internal/template"
)

// ErrNoEncoder is returned by Render when the renderer has no encoder.
var ErrNoEncoder = errors.New("renderer has no encoder")

// TemplateLookup resolves a template id.
type TemplateLookup func(id string) (template.Definition, bool)

// Renderer builds SVG documents from requests. It holds no per-request
// state and is safe for concurrent use.
type Renderer struct {
	enc       symbol.Encoder
	templates TemplateLookup
	log       *logrus.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplates replaces the template registry lookup.
func WithTemplates(lookup TemplateLookup) Option {
	return func(r *Renderer) { r.templates = lookup }
}

// WithLogger sets the logger used for non-fatal warnings.
func WithLogger(l *logrus.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// NewRenderer returns a renderer that encodes with enc.
func NewRenderer(enc symbol.Encoder, opts ...Option) *Renderer {
	r := &Renderer{enc: enc, templates: template.Get}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Document is a rendered QR code.
type Document struct {
	Root      *svg.Node
	Size      int
	Level     symbol.Level // level the symbol was encoded at
	Grid      symbol.Grid  // modules after excavation
	Placement *Placement
	Template  string  // resolved template id, empty when unframed
	Request   Request // normalized request the document was rendered from
}

// SVG serializes the document.
func (d *Document) SVG() string { return d.Root.String() }

// Render encodes req.Value and composes the SVG document. Unknown template
// ids fall back to the unframed rendering and are only logged.
func (r *Renderer) Render(req Request) (*Document, error) {
	if r.enc == nil {
		return nil, ErrNoEncoder
	}
	req = req.normalized()
	level := req.EffectiveLevel()

	grid, err := r.enc.Encode(req.Value, level)
	if err != nil {
		return nil, fmt.Errorf("encode %q at %s: %w", req.Value, level, err)
	}

	size := float64(req.Size)
	numCells := grid.Size() + 2*req.Margin
	place := PlaceLogo(grid.Size(), size, req.Image)
	if place != nil && place.Excavation != nil {
		grid = Excavate(grid, *place.Excavation)
	}

	doc := &Document{Size: req.Size, Level: level, Grid: grid, Placement: place, Request: req}
	content := r.content(req, grid, place, size, numCells)

	if req.TemplateID != "" {
		if def, ok := r.templates(req.TemplateID); ok {
			scaled := svg.El("g", "transform", svg.ScaleBy(template.DesignSize/size)).Append(content...)
			root := def.Wrapper(scaled, template.Context{
				FgColor:    req.FgColor,
				BgColor:    req.BgColor,
				CustomText: req.CustomText,
			})
			dim := strconv.Itoa(req.Size)
			root.Set("width", dim).Set("height", dim).DelStyle("width", "height")
			doc.Root = root
			doc.Template = def.ID
			return doc, nil
		}
		log.Or(r.log).WithFields(log.Fields{
			"component": "render",
			"template":  req.TemplateID,
		}).Warn("unknown template, rendering unframed")
	}

	dim := strconv.Itoa(req.Size)
	root := svg.Root(size, size).Set("width", dim).Set("height", dim)
	root.Append(svg.El("rect", "x", "0", "y", "0", "width", dim, "height", dim, "fill", req.BgColor))
	doc.Root = root.Append(content...)
	return doc, nil
}

// content returns the module, corner and logo elements in pixel space.
func (r *Renderer) content(req Request, grid symbol.Grid, place *Placement, size float64, numCells int) []*svg.Node {
	pixel := size / float64(numCells)
	var out []*svg.Node

	switch req.Style {
	case StyleSquares:
		out = append(out, svg.El("path",
			"d", CompilePath(grid, req.Margin),
			"fill", req.FgColor,
			"transform", svg.ScaleBy(pixel),
			"shape-rendering", "crispEdges",
		))
	default:
		out = append(out, svg.El("g", "fill", req.FgColor).Append(DataCircles(grid, req.Margin, pixel)...))
		for _, c := range Corners(grid.Size(), req.Margin, pixel) {
			out = append(out, cornerNodes(c, pixel, req.EyeColor, req.DotColor)...)
		}
	}

	if place != nil && req.Image.Src != "" {
		left, top, w, h := place.Pixels(size, numCells, req.Margin)
		out = append(out, svg.El("image",
			"href", req.Image.Src,
			"x", svg.Num(left),
			"y", svg.Num(top),
			"width", svg.Num(w),
			"height", svg.Num(h),
			"preserveAspectRatio", "none",
		))
	}
	return out
}
