package render

import (
	"fmt"
	"strings"

	"github.com/cristianadrielbraun/qrframe/internal/symbol"
)

// Defaults applied to zero-valued Request fields.
const (
	DefaultSize       = 128
	DefaultLevel      = symbol.LevelL
	DefaultBgColor    = "#FFFFFF"
	DefaultFgColor    = "#000000"
	DefaultImageScale = 0.1
)

// Style selects how data modules are drawn.
type Style int

const (
	// StyleDots draws data modules as circles with ornamental finder corners.
	StyleDots Style = iota
	// StyleSquares draws every module, finders included, as one run-length path.
	StyleSquares
)

// ParseStyle parses "dots" or "squares". The empty string selects StyleDots.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dots":
		return StyleDots, nil
	case "squares", "square":
		return StyleSquares, nil
	}
	return StyleDots, fmt.Errorf("unknown module style %q", s)
}

func (s Style) String() string {
	if s == StyleSquares {
		return "squares"
	}
	return "dots"
}

// ImageSettings describes a centered logo. Width and Height are in pixels of
// the rendered size; X and Y, when set, position the logo's top-left corner.
type ImageSettings struct {
	Src      string
	Width    float64
	Height   float64
	X        *float64
	Y        *float64
	Excavate bool
}

// Request is the immutable input of a render.
type Request struct {
	Value      string
	Size       int
	Level      symbol.Level
	BgColor    string
	FgColor    string
	EyeColor   string
	DotColor   string
	Margin     int
	Image      *ImageSettings
	TemplateID string
	CustomText string
	Style      Style
}

// normalized fills unset fields with their defaults. Level is left alone
// since LevelL is both the zero value and the default.
func (r Request) normalized() Request {
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	if r.BgColor == "" {
		r.BgColor = DefaultBgColor
	}
	if r.FgColor == "" {
		r.FgColor = DefaultFgColor
	}
	if r.EyeColor == "" {
		r.EyeColor = r.FgColor
	}
	if r.DotColor == "" {
		r.DotColor = r.FgColor
	}
	if r.Margin < 0 {
		r.Margin = 0
	}
	return r
}

// EffectiveLevel returns the error correction level the symbol is encoded
// at. An excavated logo lifts L and M to Q.
func (r Request) EffectiveLevel() symbol.Level {
	if r.Image != nil && r.Image.Excavate && r.Level.Weak() {
		return symbol.LevelQ
	}
	return r.Level
}
