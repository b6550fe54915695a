package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrframe/internal/log"
	"github.com/cristianadrielbraun/qrframe/internal/render"
	"github.com/cristianadrielbraun/qrframe/internal/svg"
)

// Format is an export target.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
)

// ParseFormat accepts png, jpeg (or jpg) and svg.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the media type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "image/png"
}

// Exporter inlines logos and converts documents to the export formats.
type Exporter struct {
	fetcher     *Fetcher
	log         *logrus.Logger
	jpegQuality int
}

// Option configures an Exporter.
type Option func(*Exporter)

func WithLogger(l *logrus.Logger) Option { return func(e *Exporter) { e.log = l } }

func WithJPEGQuality(q int) Option { return func(e *Exporter) { e.jpegQuality = q } }

// New returns an Exporter. A nil fetcher only resolves data URIs and built-in assets.
func New(fetcher *Fetcher, opts ...Option) *Exporter {
	if fetcher == nil {
		fetcher = &Fetcher{}
	}
	e := &Exporter{fetcher: fetcher, jpegQuality: 92}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Inline returns a copy of root whose <image> elements carry base64 data
// URIs. An image that cannot be loaded is dropped and logged; it never fails
// the export.
func (e *Exporter) Inline(ctx context.Context, root *svg.Node) *svg.Node {
	out := root.Clone()
	var prune func(n *svg.Node)
	prune = func(n *svg.Node) {
		kept := n.Children[:0]
		for _, c := range n.Children {
			if c.Tag == "image" {
				if !e.inlineImage(ctx, c) {
					continue
				}
			}
			prune(c)
			kept = append(kept, c)
		}
		n.Children = kept
	}
	prune(out)
	return out
}

func (e *Exporter) inlineImage(ctx context.Context, n *svg.Node) bool {
	href, ok := n.Get("href")
	if !ok || href == "" {
		return false
	}
	if strings.HasPrefix(href, "data:") && strings.Contains(href, ";base64,") {
		return true
	}
	uri, err := e.fetcher.Inline(ctx, href)
	if err != nil {
		log.FromContext(ctx, e.log).WithFields(log.Fields{
			"component": "export",
			"error":     err.Error(),
		}).Warn("logo unavailable, exporting without it")
		return false
	}
	n.Set("href", uri)
	return true
}

// SVG returns the self-contained markup of doc.
func (e *Exporter) SVG(ctx context.Context, doc *render.Document) string {
	return e.Inline(ctx, doc.Root).String()
}

// SVGDataURI returns doc as an SVG data URI.
func (e *Exporter) SVGDataURI(ctx context.Context, doc *render.Document) string {
	return SVGDataURI(e.SVG(ctx, doc))
}

// Raster draws doc into a size×size image. JPEG targets are pre-filled with
// opaque white since the format has no alpha channel. Unframed square-module
// documents are painted module by module; everything else goes through the
// SVG rasterizer.
func (e *Exporter) Raster(ctx context.Context, doc *render.Document, format Format, size int) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if size <= 0 {
		size = doc.Size
	}
	var bg color.Color
	if format == FormatJPEG {
		bg = color.White
	}

	root := e.Inline(ctx, doc.Root)
	img, ok, err := rasterModules(doc, size)
	if err != nil {
		return nil, err
	}
	if !ok {
		if img, err = Rasterize(root.String(), size, size, bg); err != nil {
			return nil, err
		}
	}
	skip := func(err error) {
		log.FromContext(ctx, e.log).WithFields(log.Fields{
			"component": "export",
			"error":     err.Error(),
		}).Warn("logo could not be decoded, rasterizing without it")
	}
	if err := overlayImages(img, root, skip); err != nil {
		return nil, err
	}
	if err := drawText(img, root); err != nil {
		return nil, err
	}
	return img, nil
}

// Write encodes doc in format to w.
func (e *Exporter) Write(ctx context.Context, w io.Writer, doc *render.Document, format Format, size int) error {
	if format == FormatSVG {
		_, err := io.WriteString(w, e.SVG(ctx, doc))
		return err
	}
	img, err := e.Raster(ctx, doc, format, size)
	if err != nil {
		return err
	}
	return e.encode(w, img, format)
}

// Bytes returns doc encoded in format.
func (e *Exporter) Bytes(ctx context.Context, doc *render.Document, format Format, size int) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(ctx, &buf, doc, format, size); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURI returns doc encoded in format as a data URI. SVG uses the
// URL-escaped form, raster formats base64.
func (e *Exporter) DataURI(ctx context.Context, doc *render.Document, format Format, size int) (string, error) {
	if format == FormatSVG {
		return e.SVGDataURI(ctx, doc), nil
	}
	b, err := e.Bytes(ctx, doc, format, size)
	if err != nil {
		return "", err
	}
	return DataURI(format.ContentType(), b), nil
}

func (e *Exporter) encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: e.jpegQuality})
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
