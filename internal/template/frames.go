package template

import (
	"github.com/cristianadrielbraun/qrframe/internal/svg"
)

var defaultFrame = Definition{
	ID:          "default",
	Name:        "Default",
	Description: "Simple QR code without decorative elements",
	Wrapper: func(content *svg.Node, _ Context) *svg.Node {
		return frame().Append(
			svg.El("g", "fill", "none", "transform", svg.TranslateScale(9, 9, 0.95)).Append(content),
		)
	},
}

// squareBorder is drawn on a 316 unit canvas that is fitted into 300.
var squareBorder = Definition{
	ID:          "SquareBorder",
	Name:        "Square Border",
	Description: "QR code with square decorative border",
	Wrapper: func(content *svg.Node, ctx Context) *svg.Node {
		inner := svg.El("g", "transform", svg.ScaleBy(300.0/316.0)).Append(
			svg.El("path",
				"d", "M308 8H8v300h300V8ZM0 0v316h316V0H0Z",
				"fill", colorOr(ctx.FgColor, "black"),
				"fill-rule", "evenodd",
				"clip-rule", "evenodd",
			),
			svg.El("g", "fill", "none", "transform", svg.TranslateScale(20, 20, 0.92)).Append(content),
		)
		return frame().Append(inner)
	},
}

const (
	boxOutline = "M243,1.7h-186a10.25,10.25,0,0,0-10.2,10.12v186A10.13,10.13,0,0,0,57,208H243a10.13,10.13,0,0,0,10.12-10.12v-186A10.13,10.13,0,0,0,243,1.7Zm2.36,193.05a5.46,5.46,0,0,1-5.47,5.47H60.16a5.46,5.46,0,0,1-5.47-5.47V14.93a5.46,5.46,0,0,1,5.47-5.47H239.91a5.46,5.46,0,0,1,5.47,5.47Z"
	boxTab     = "M243.54,238.81H173.61a2.29,2.29,0,0,1-1.62-.67l-20.55-20.55a2.33,2.33,0,0,0-3.25,0l-20.55,20.55a2.29,2.29,0,0,1-1.62.67H56.09A9.15,9.15,0,0,0,46.93,248v41.17a9.16,9.16,0,0,0,9.16,9.16H243.61a9.09,9.09,0,0,0,9.09-9.16V248A9.16,9.16,0,0,0,243.54,238.81Z"
)

var standardBox = Definition{
	ID:          "StandardBox",
	Name:        "Standard Box",
	Description: "QR code in a rounded box with a caption tab",
	Wrapper: func(content *svg.Node, ctx Context) *svg.Node {
		fg := colorOr(ctx.FgColor, "black")
		root := frame().Append(
			svg.El("path", "d", boxOutline, "fill", fg),
			svg.El("path", "d", boxTab, "fill", fg),
			svg.El("g", "fill", "none", "transform", svg.TranslateScale(60, 15, 0.6)).Append(content),
		)
		if ctx.CustomText != "" {
			root.Append(label(ctx.CustomText, 150, 276, 24, colorOr(ctx.BgColor, "white")))
		}
		return root
	},
}

var caption = Definition{
	ID:          "Caption",
	Name:        "Caption",
	Description: "QR code above a text banner",
	Wrapper: func(content *svg.Node, ctx Context) *svg.Node {
		fg := colorOr(ctx.FgColor, "black")
		root := frame().Append(
			svg.El("g", "fill", "none", "transform", svg.TranslateScale(30, 6, 0.8)).Append(content),
			svg.El("rect", "x", "20", "y", "252", "width", "260", "height", "42", "rx", "8", "fill", fg),
		)
		text := ctx.CustomText
		if text == "" {
			text = "SCAN ME"
		}
		return root.Append(label(text, 150, 281, 22, colorOr(ctx.BgColor, "white")))
	},
}

func label(text string, x, y, fontSize float64, fill string) *svg.Node {
	return svg.El("text",
		"x", svg.Num(x),
		"y", svg.Num(y),
		"font-size", svg.Num(fontSize),
		"font-family", "sans-serif",
		"font-weight", "bold",
		"text-anchor", "middle",
		"fill", fill,
	).Append(svg.TextNode(text))
}
