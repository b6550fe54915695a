package render

import (
	"github.com/cristianadrielbraun/qrframe/internal/assets"
	"github.com/cristianadrielbraun/qrframe/internal/symbol"
)

// Values FromInput applies to every request built from user input.
const (
	QueryMarker = "?qr=1"
	InputSize   = 1024
	InputLevel  = symbol.LevelQ
	LogoSize    = 256
)

// Input is the externally visible render form.
type Input struct {
	URL        string `json:"url"`
	FgColor    string `json:"fgColor"`
	BgColor    string `json:"bgColor"`
	EyeColor   string `json:"eyeColor"`
	DotColor   string `json:"dotColor"`
	ShowLogo   bool   `json:"showLogo"`
	Logo       string `json:"logo"`
	TemplateID string `json:"templateId"`
	CustomText string `json:"customText"`
}

// FromInput maps user input to a render request: the URL gets QueryMarker
// appended, the symbol is rendered at InputSize and InputLevel, and a shown
// logo is a LogoSize square excavated from the modules, defaulting to the
// built-in logo.
func FromInput(in Input) Request {
	req := Request{
		Value:      in.URL + QueryMarker,
		Size:       InputSize,
		Level:      InputLevel,
		FgColor:    in.FgColor,
		BgColor:    in.BgColor,
		EyeColor:   in.EyeColor,
		DotColor:   in.DotColor,
		TemplateID: in.TemplateID,
		CustomText: in.CustomText,
	}
	if in.ShowLogo {
		src := in.Logo
		if src == "" {
			src = assets.DefaultLogoSrc
		}
		req.Image = &ImageSettings{
			Src:      src,
			Width:    LogoSize,
			Height:   LogoSize,
			Excavate: true,
		}
	}
	return req
}
