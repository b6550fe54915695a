package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	_ "golang.org/x/image/webp"

	"github.com/cristianadrielbraun/qrframe/internal/render"
	"github.com/cristianadrielbraun/qrframe/internal/svg"
)

// MaxSurface is the largest raster side accepted.
const MaxSurface = 8192

// newSurface allocates a width×height RGBA buffer, pre-filled with bg when
// bg is not nil.
func newSurface(width, height int, bg color.Color) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || width > MaxSurface || height > MaxSurface {
		return nil, fmt.Errorf("%w: %dx%d", ErrSurfaceUnavailable, width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if bg != nil {
		draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	}
	return img, nil
}

// Rasterize draws SVG markup into a new width×height image, pre-filled with
// bg when bg is not nil.
func Rasterize(markup string, width, height int, bg color.Color) (*image.RGBA, error) {
	img, err := newSurface(width, height, bg)
	if err != nil {
		return nil, err
	}
	if err := drawSVG(img, markup); err != nil {
		return nil, err
	}
	return img, nil
}

// rasterModules paints an unframed StyleSquares document with
// render.RasterizeModules and fits it to size×size with nearest-neighbour
// sampling. ok is false when doc needs the vector route: framed, dotted, or
// with colours the module painter cannot parse.
func rasterModules(doc *render.Document, size int) (img *image.RGBA, ok bool, err error) {
	req := doc.Request
	if doc.Template != "" || req.Style != render.StyleSquares || doc.Grid.Size() == 0 {
		return nil, false, nil
	}
	fg, err := render.ParseHexColor(req.FgColor)
	if err != nil {
		return nil, false, nil
	}
	bg, err := render.ParseHexColor(req.BgColor)
	if err != nil {
		return nil, false, nil
	}
	dst, err := newSurface(size, size, nil)
	if err != nil {
		return nil, false, err
	}
	cells := doc.Grid.Size() + 2*req.Margin
	scale := (size + cells - 1) / cells
	modules := render.RasterizeModules(doc.Grid, req.Margin, scale, fg, bg)
	if modules.Bounds().Dx() == size {
		return modules, true, nil
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), modules, modules.Bounds(), draw.Src, nil)
	return dst, true, nil
}

// drawSVG parses markup and draws it over dst, scaling its viewBox to the
// whole of dst.
func drawSVG(dst *image.RGBA, markup string) error {
	icon, err := oksvg.ReadIconStream(strings.NewReader(markup), oksvg.IgnoreErrorMode)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return fmt.Errorf("%w: no svg viewBox", ErrRasterize)
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return nil
}

// overlayImages draws every <image> of root, which must already carry data
// URIs, at its transformed position. oksvg does not draw images itself.
// Images that fail to decode are reported to skip and left out.
func overlayImages(dst *image.RGBA, root *svg.Node, skip func(error)) error {
	b := dst.Bounds()
	placed, err := svg.Locate(root, "image", float64(b.Dx()), float64(b.Dy()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	for _, p := range placed {
		href, ok := p.Node.Get("href")
		if !ok || !strings.HasPrefix(href, "data:") {
			continue
		}
		rect, ok := deviceRect(p)
		if !ok {
			continue
		}
		src, err := decodeLogo(href, rect.Dx(), rect.Dy())
		if err != nil {
			skip(err)
			continue
		}
		xdraw.CatmullRom.Scale(dst, rect, src, src.Bounds(), draw.Over, nil)
	}
	return nil
}

// deviceRect maps an element's x, y, width and height to pixel space.
func deviceRect(p svg.Placed) (image.Rectangle, bool) {
	x := attrFloat(p.Node, "x")
	y := attrFloat(p.Node, "y")
	w := attrFloat(p.Node, "width")
	h := attrFloat(p.Node, "height")
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	x0, y0 := p.CTM.Apply(x, y)
	x1, y1 := p.CTM.Apply(x+w, y+h)
	r := image.Rect(
		int(math.Round(math.Min(x0, x1))), int(math.Round(math.Min(y0, y1))),
		int(math.Round(math.Max(x0, x1))), int(math.Round(math.Max(y0, y1))),
	)
	return r, !r.Empty()
}

func decodeLogo(uri string, w, h int) (image.Image, error) {
	mime, data, err := decodeDataURI(uri)
	if err != nil {
		return nil, err
	}
	if mime == "image/svg+xml" {
		return Rasterize(string(data), w, h, nil)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

var (
	fontOnce sync.Once
	fonts    map[bool]*opentype.Font
	fontErr  error
)

func fontFace(bold bool, size float64) (font.Face, error) {
	fontOnce.Do(func() {
		fonts = map[bool]*opentype.Font{}
		for b, ttf := range map[bool][]byte{false: goregular.TTF, true: gobold.TTF} {
			f, err := opentype.Parse(ttf)
			if err != nil {
				fontErr = err
				return
			}
			fonts[b] = f
		}
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return opentype.NewFace(fonts[bold], &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// drawText draws every <text> element of root. oksvg has no text support.
func drawText(dst *image.RGBA, root *svg.Node) error {
	b := dst.Bounds()
	placed, err := svg.Locate(root, "text", float64(b.Dx()), float64(b.Dy()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	if len(placed) == 0 {
		return nil
	}
	dc := gg.NewContextForRGBA(dst)
	for _, p := range placed {
		var text strings.Builder
		for _, c := range p.Node.Children {
			text.WriteString(c.Text)
		}
		if strings.TrimSpace(text.String()) == "" {
			continue
		}
		scale := math.Sqrt(math.Abs(p.CTM.A*p.CTM.D - p.CTM.B*p.CTM.C))
		size := attrFloat(p.Node, "font-size")
		if size <= 0 {
			size = 16
		}
		weight, _ := p.Node.Get("font-weight")
		face, err := fontFace(weight == "bold", size*scale)
		if err != nil {
			return fmt.Errorf("%w: font: %v", ErrRasterize, err)
		}
		dc.SetFontFace(face)
		fill, _ := p.Node.Get("fill")
		dc.SetColor(namedColor(fill))

		ax := 0.0
		switch anchor, _ := p.Node.Get("text-anchor"); anchor {
		case "middle":
			ax = 0.5
		case "end":
			ax = 1
		}
		x, y := p.CTM.Apply(attrFloat(p.Node, "x"), attrFloat(p.Node, "y"))
		dc.DrawStringAnchored(text.String(), x, y, ax, 0)
	}
	return nil
}

func namedColor(s string) color.Color {
	switch strings.ToLower(s) {
	case "white":
		return color.White
	case "", "black":
		return color.Black
	}
	if c, err := render.ParseHexColor(s); err == nil {
		return c
	}
	return color.Black
}

func attrFloat(n *svg.Node, name string) float64 {
	v, ok := n.Get(name)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return 0
	}
	return f
}
