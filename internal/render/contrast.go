package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ParseHexColor parses "#rrggbb" or "#rgb" (the leading # is optional) into
// an opaque colour.
func ParseHexColor(s string) (color.RGBA, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	r, err1 := strconv.ParseUint(v[0:2], 16, 8)
	g, err2 := strconv.ParseUint(v[2:4], 16, 8)
	b, err3 := strconv.ParseUint(v[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}, nil
}

// Luminance is the WCAG relative luminance of c.
func Luminance(c color.RGBA) float64 {
	ch := func(v uint8) float64 {
		f := float64(v) / 255
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*ch(c.R) + 0.7152*ch(c.G) + 0.0722*ch(c.B)
}

// ContrastRatio returns the WCAG contrast ratio of two hex colours, in
// [1, 21]. Malformed input yields 1.
func ContrastRatio(a, b string) float64 {
	ca, err := ParseHexColor(a)
	if err != nil {
		return 1
	}
	cb, err := ParseHexColor(b)
	if err != nil {
		return 1
	}
	la, lb := Luminance(ca), Luminance(cb)
	return (math.Max(la, lb) + 0.05) / (math.Min(la, lb) + 0.05)
}

// Contrast is a graded contrast ratio.
type Contrast struct {
	Ratio   float64 `json:"ratio" yaml:"ratio"`
	Level   string  `json:"level" yaml:"level"`
	Warning bool    `json:"warning" yaml:"warning"`
	Message string  `json:"message" yaml:"message"`
}

// ContrastLevel grades a ratio: AAA from 7, AA from 4.5, "AA Large" from 3
// and Fail below. The last two carry a warning.
func ContrastLevel(ratio float64) Contrast {
	c := Contrast{Ratio: ratio}
	switch {
	case ratio >= 7:
		c.Level, c.Message = "AAA", "Excellent contrast"
	case ratio >= 4.5:
		c.Level, c.Message = "AA", "Good contrast"
	case ratio >= 3:
		c.Level, c.Warning, c.Message = "AA Large", true, "Low contrast - may be difficult to scan"
	default:
		c.Level, c.Warning, c.Message = "Fail", true, "Poor contrast - QR code may not scan properly"
	}
	return c
}

// CheckContrast grades the contrast between a foreground and background colour.
func CheckContrast(fg, bg string) Contrast {
	return ContrastLevel(ContrastRatio(fg, bg))
}
