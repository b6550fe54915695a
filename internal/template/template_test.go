package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrframe/internal/svg"
)

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"default", "SquareBorder", "StandardBox", "Caption"}, IDs())

	all := All()
	require.Len(t, all, 4)
	for _, d := range all {
		got, ok := Get(d.ID)
		require.True(t, ok)
		assert.Equal(t, d.Name, got.Name)
		assert.NotNil(t, got.Wrapper)
	}

	_, ok := Get("nope")
	assert.False(t, ok)

	ids := IDs()
	ids[0] = "mutated"
	assert.Equal(t, "default", IDs()[0])
}

func TestWrappersFrameContent(t *testing.T) {
	for _, d := range All() {
		t.Run(d.ID, func(t *testing.T) {
			content := svg.El("g", "id", "qr-content")
			root := d.Wrapper(content, Context{FgColor: "#ff0000", BgColor: "#00ff00", CustomText: "Menu"})

			assert.Equal(t, "svg", root.Tag)
			vb, _ := root.Get("viewBox")
			assert.Equal(t, "0 0 300 300", vb)

			found := 0
			root.Walk(func(n *svg.Node) bool {
				if n == content {
					found++
				}
				return true
			})
			assert.Equal(t, 1, found, "content must be placed exactly once")

			placed, err := svg.Locate(root, "g", 300, 300)
			require.NoError(t, err)
			for _, p := range placed {
				if id, _ := p.Node.Get("id"); id != "qr-content" {
					continue
				}
				// the content frame must stay inside the 300 unit design space
				x0, y0 := p.CTM.Apply(0, 0)
				x1, y1 := p.CTM.Apply(DesignSize, DesignSize)
				assert.GreaterOrEqual(t, x0, 0.0)
				assert.GreaterOrEqual(t, y0, 0.0)
				assert.LessOrEqual(t, x1, 300.0)
				assert.LessOrEqual(t, y1, 300.0)
			}
		})
	}
}

func TestFrameColours(t *testing.T) {
	d, _ := Get("SquareBorder")
	out := d.Wrapper(svg.El("g"), Context{FgColor: "#123456"}).String()
	assert.Contains(t, out, `fill="#123456"`)

	out = d.Wrapper(svg.El("g"), Context{}).String()
	assert.Contains(t, out, `fill="black"`)

	box, _ := Get("StandardBox")
	assert.NotContains(t, box.Wrapper(svg.El("g"), Context{}).String(), "<text")
	assert.True(t, strings.Contains(box.Wrapper(svg.El("g"), Context{CustomText: "Hi"}).String(), ">Hi</text>"))

	banner, _ := Get("Caption")
	assert.Contains(t, banner.Wrapper(svg.El("g"), Context{}).String(), ">SCAN ME</text>")
}
