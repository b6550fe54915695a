package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrframe/internal/assets"
	"github.com/cristianadrielbraun/qrframe/internal/log"
	"github.com/cristianadrielbraun/qrframe/internal/svg"
	"github.com/cristianadrielbraun/qrframe/internal/symbol"
	"github.com/cristianadrielbraun/qrframe/internal/template"
)

// countingEncoder records the levels it was asked to encode at.
type countingEncoder struct {
	symbol.Encoder
	levels []symbol.Level
}

func (c *countingEncoder) Encode(text string, level symbol.Level) (symbol.Grid, error) {
	c.levels = append(c.levels, level)
	return c.Encoder.Encode(text, level)
}

func newRenderer(t *testing.T) (*Renderer, *countingEncoder) {
	t.Helper()
	base, err := symbol.New("yeqown")
	require.NoError(t, err)
	enc := &countingEncoder{Encoder: base}
	return NewRenderer(enc, WithLogger(log.Discard())), enc
}

func TestRenderUnframed(t *testing.T) {
	r, _ := newRenderer(t)
	doc, err := r.Render(Request{Value: "https://example.com", Margin: 2})
	require.NoError(t, err)

	assert.Equal(t, DefaultSize, doc.Size)
	assert.Equal(t, symbol.LevelL, doc.Level)
	assert.Empty(t, doc.Template)

	w, _ := doc.Root.Get("width")
	vb, _ := doc.Root.Get("viewBox")
	assert.Equal(t, "128", w)
	assert.Equal(t, "0 0 128 128", vb)

	out := doc.SVG()
	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.Contains(t, out, `fill="#FFFFFF"`)
	assert.Len(t, doc.Root.Find("image"), 0)
	// three rings and three dots plus the data circles
	assert.Len(t, doc.Root.Find("path"), 3)
}

func TestRenderIsDeterministic(t *testing.T) {
	r, _ := newRenderer(t)
	req := Request{Value: "https://example.com", Size: 512, TemplateID: "StandardBox", CustomText: "hi", FgColor: "#123456"}
	a, err := r.Render(req)
	require.NoError(t, err)
	b, err := r.Render(req)
	require.NoError(t, err)
	assert.Equal(t, a.SVG(), b.SVG())
}

func TestRenderUpgradesLevelForExcavatedLogo(t *testing.T) {
	for _, lv := range []symbol.Level{symbol.LevelL, symbol.LevelM} {
		r, enc := newRenderer(t)
		req := Request{
			Value: "https://example.com?qr=1",
			Size:  1024,
			Level: lv,
			Image: &ImageSettings{Src: assets.DefaultLogoSrc, Width: 256, Height: 256, Excavate: true},
		}
		doc, err := r.Render(req)
		require.NoError(t, err)
		assert.Equal(t, []symbol.Level{symbol.LevelQ}, enc.levels, "grid must be requested at Q")
		assert.Equal(t, symbol.LevelQ, doc.Level)

		q, err := enc.Encoder.Encode(req.Value, symbol.LevelQ)
		require.NoError(t, err)
		require.NotNil(t, doc.Placement)
		require.NotNil(t, doc.Placement.Excavation)
		assert.True(t, Excavate(q, *doc.Placement.Excavation).Equal(doc.Grid))
	}

	// Without excavation the requested level is kept.
	r, enc := newRenderer(t)
	_, err := r.Render(Request{Value: "x", Level: symbol.LevelM, Image: &ImageSettings{Src: "x"}})
	require.NoError(t, err)
	assert.Equal(t, []symbol.Level{symbol.LevelM}, enc.levels)

	assert.Equal(t, symbol.LevelH, Request{Level: symbol.LevelH, Image: &ImageSettings{Excavate: true}}.EffectiveLevel())
}

func TestRenderLogoImage(t *testing.T) {
	r, _ := newRenderer(t)
	doc, err := r.Render(FromInput(Input{URL: "https://example.com", ShowLogo: true}))
	require.NoError(t, err)

	imgs := doc.Root.Find("image")
	require.Len(t, imgs, 1)
	href, _ := imgs[0].Get("href")
	assert.Equal(t, assets.DefaultLogoSrc, href)
	w, _ := imgs[0].Get("width")
	assert.Equal(t, "256", w)

	e := doc.Placement.Excavation
	for y := e.Y; y < e.Y+e.H; y++ {
		for x := e.X; x < e.X+e.W; x++ {
			assert.False(t, doc.Grid.Dark(x, y))
		}
	}
}

func TestRenderUnknownTemplateFallsBack(t *testing.T) {
	r, _ := newRenderer(t)
	base := Request{Value: "https://example.com", Size: 400, FgColor: "#112233", BgColor: "#fafafa"}
	plain, err := r.Render(base)
	require.NoError(t, err)

	base.TemplateID = "does-not-exist"
	fallback, err := r.Render(base)
	require.NoError(t, err)

	assert.Equal(t, plain.SVG(), fallback.SVG())
	assert.Empty(t, fallback.Template)
}

func TestRenderWithTemplate(t *testing.T) {
	r, _ := newRenderer(t)
	for _, id := range template.IDs() {
		t.Run(id, func(t *testing.T) {
			doc, err := r.Render(Request{Value: "https://example.com", Size: 640, TemplateID: id, CustomText: "SCAN"})
			require.NoError(t, err)
			assert.Equal(t, id, doc.Template)

			w, _ := doc.Root.Get("width")
			h, _ := doc.Root.Get("height")
			assert.Equal(t, "640", w)
			assert.Equal(t, "640", h)
			vb, _ := doc.Root.Get("viewBox")
			assert.Equal(t, "0 0 300 300", vb)
			_, hasStyle := doc.Root.Get("style")
			assert.False(t, hasStyle, "percentage sizing must be dropped")

			var scaled bool
			doc.Root.Walk(func(n *svg.Node) bool {
				if tr, ok := n.Get("transform"); ok && tr == "scale(0.469 0.469)" {
					scaled = true
				}
				return true
			})
			assert.True(t, scaled, "content must be scaled by 300/size")
		})
	}
}

func TestRenderSquaresStyle(t *testing.T) {
	r, _ := newRenderer(t)
	doc, err := r.Render(Request{Value: "https://example.com", Size: 290, Margin: 4, Style: StyleSquares})
	require.NoError(t, err)

	paths := doc.Root.Find("path")
	require.Len(t, paths, 1)
	d, _ := paths[0].Get("d")
	assert.Equal(t, CompilePath(doc.Grid, 4), d)
	assert.Empty(t, doc.Root.Find("circle"))
}

func TestRenderErrors(t *testing.T) {
	_, err := NewRenderer(nil).Render(Request{Value: "x"})
	assert.ErrorIs(t, err, ErrNoEncoder)

	r, _ := newRenderer(t)
	_, err = r.Render(Request{})
	assert.ErrorIs(t, err, symbol.ErrEmptyPayload)
}

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, StyleDots, s)
	s, err = ParseStyle("Squares")
	require.NoError(t, err)
	assert.Equal(t, "squares", s.String())
	_, err = ParseStyle("hexagons")
	assert.Error(t, err)
}
