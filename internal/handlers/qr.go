package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrframe/internal/export"
	"github.com/cristianadrielbraun/qrframe/internal/log"
	"github.com/cristianadrielbraun/qrframe/internal/render"
	"github.com/cristianadrielbraun/qrframe/internal/symbol"
)

const maxURLLength = 4096

// normalizeHTTPURL validates and normalizes a URL for encoding. A missing
// scheme defaults to https; only http and https with a host are accepted.
func normalizeHTTPURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", errors.New("URL parameter is required")
	}
	if len(v) > maxURLLength {
		return "", errors.New("URL is too long")
	}
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.New("only http and https URLs are supported")
	}
	if u.Hostname() == "" {
		return "", errors.New("URL must include a valid host")
	}
	return u.String(), nil
}

// qrQuery is the query string of the render endpoints.
type qrQuery struct {
	URL      string `form:"url" binding:"required"`
	Fg       string `form:"fg" binding:"omitempty,hexcolor"`
	Bg       string `form:"bg" binding:"omitempty,hexcolor"`
	Eye      string `form:"eye" binding:"omitempty,hexcolor"`
	Dot      string `form:"dot" binding:"omitempty,hexcolor"`
	ShowLogo bool   `form:"showLogo"`
	Logo     string `form:"logo"`
	Template string `form:"template" binding:"omitempty,templateid"`
	Text     string `form:"text" binding:"max=64"`
	Level    string `form:"level" binding:"omitempty,qrlevel"`
	Style    string `form:"style" binding:"omitempty,oneof=dots squares"`
	Format   string `form:"format" binding:"omitempty,oneof=png jpeg jpg svg datauri"`
	As       string `form:"as" binding:"omitempty,oneof=png jpeg jpg svg"`
	Size     int    `form:"size" binding:"omitempty,min=16,max=4096"`
	Margin   *int   `form:"margin" binding:"omitempty,min=0,max=16"`
}

// request maps the query onto a render request the way user input is
// mapped everywhere else, then applies the optional overrides.
func (q qrQuery) request(target string, defaults render.Request) render.Request {
	req := render.FromInput(render.Input{
		URL:        target,
		FgColor:    q.Fg,
		BgColor:    q.Bg,
		EyeColor:   q.Eye,
		DotColor:   q.Dot,
		ShowLogo:   q.ShowLogo,
		Logo:       q.Logo,
		TemplateID: q.Template,
		CustomText: q.Text,
	})
	req.Margin = defaults.Margin
	if q.Margin != nil {
		req.Margin = *q.Margin
	}
	req.Style = defaults.Style
	if q.Style != "" {
		req.Style, _ = render.ParseStyle(q.Style)
	}
	if q.Level != "" {
		req.Level, _ = symbol.ParseLevel(q.Level)
	}
	return req
}

// document binds the query and renders it. It writes the error response
// itself and reports whether rendering succeeded.
func (h *Handler) document(c *gin.Context) (*render.Document, qrQuery, bool) {
	var q qrQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return nil, q, false
	}
	target, err := normalizeHTTPURL(q.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, q, false
	}

	req := q.request(target, h.cfg.RenderDefaults())
	h.entry(c).WithFields(log.Fields{
		"component": "qr",
		"url":       target,
		"format":    q.Format,
		"template":  req.TemplateID,
		"level":     req.EffectiveLevel().String(),
		"style":     req.Style.String(),
		"logo":      req.Image != nil,
	}).Debug("[QR] request start")

	doc, err := h.renderer.Render(req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, symbol.ErrEmptyPayload) || errors.Is(err, symbol.ErrInvalidLevel) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": fmt.Sprintf("Failed to create QR code: %v", err)})
		return nil, q, false
	}
	return doc, q, true
}

// QRCode renders a framed code as PNG, JPEG, SVG or a JSON data URI.
func (h *Handler) QRCode(c *gin.Context) {
	doc, q, ok := h.document(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.Server.RequestTimeout)
	defer cancel()

	format := strings.ToLower(q.Format)
	if format == "" {
		format = "png"
	}
	size := q.Size
	if size == 0 {
		size = doc.Size
	}
	c.Header("X-QR-Debug", fmt.Sprintf("format=%s;size=%d;modules=%d;level=%s;template=%s",
		format, size, doc.Grid.Size(), doc.Level, doc.Template))
	c.Header("Cache-Control", "public, max-age=3600")

	if format == "datauri" {
		as, err := export.ParseFormat(q.As)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		uri, err := h.exporter.DataURI(ctx, doc, as, size)
		if err != nil {
			h.exportFailed(c, err)
			return
		}
		rendersTotal.WithLabelValues("datauri-"+string(as), doc.Template).Inc()
		c.JSON(http.StatusOK, gin.H{"dataUri": uri})
		return
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body, err := h.exporter.Bytes(ctx, doc, f, size)
	if err != nil {
		h.exportFailed(c, err)
		return
	}
	rendersTotal.WithLabelValues(string(f), doc.Template).Inc()
	h.entry(c).WithFields(log.Fields{
		"component": "qr",
		"format":    f,
		"bytes":     len(body),
	}).Debug("[QR] sent")
	c.Data(http.StatusOK, f.ContentType(), body)
}

// QRSVG returns the raw SVG markup, logos inlined, for copying.
func (h *Handler) QRSVG(c *gin.Context) {
	doc, _, ok := h.document(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.Server.RequestTimeout)
	defer cancel()

	markup, err := export.SVGMarkup(h.exporter.SVGDataURI(ctx, doc))
	if err != nil {
		h.exportFailed(c, err)
		return
	}
	rendersTotal.WithLabelValues("svg-markup", doc.Template).Inc()
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", []byte(markup))
}

func (h *Handler) exportFailed(c *gin.Context, err error) {
	h.entry(c).WithError(err).Error("export failed")
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, export.ErrSurfaceUnavailable):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": fmt.Sprintf("Failed to export QR code: %v", err)})
}
