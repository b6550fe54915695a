// Package assets embeds static files shipped with the binary.
package assets

import (
	_ "embed"
	"strings"
)

// DefaultLogoSrc is the logo reference used when a logo is shown but none is given.
const DefaultLogoSrc = "builtin:logo.svg"

//go:embed logo.svg
var logoSVG []byte

// Lookup returns the embedded file behind a "builtin:" reference.
func Lookup(src string) ([]byte, bool) {
	name, ok := strings.CutPrefix(src, "builtin:")
	if !ok {
		return nil, false
	}
	switch name {
	case "logo.svg":
		return append([]byte(nil), logoSVG...), true
	}
	return nil, false
}
