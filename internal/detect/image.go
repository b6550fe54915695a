package detect

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes a photo, applying its EXIF orientation.
func LoadImage(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, ErrImageUnavailable
	}
	return img, nil
}

var overlayRed = color.RGBA{0xff, 0, 0, 0xff}

// DrawOverlay returns a copy of img with box outlined in red along
// top-left, top-right, bottom-right, bottom-left, and each corner marked and
// labelled with its BoundingBox index.
func DrawOverlay(img image.Image, box BoundingBox) image.Image {
	b := img.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)

	off := func(p Point) (float64, float64) { return p.X - float64(b.Min.X), p.Y - float64(b.Min.Y) }

	dc.SetColor(overlayRed)
	dc.SetLineWidth(math.Max(5, float64(min(b.Dx(), b.Dy()))/200))
	for i, p := range box.Polygon() {
		x, y := off(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.Stroke()

	for i, p := range box {
		x, y := off(p)
		dc.SetColor(overlayRed)
		dc.DrawRectangle(x-3, y-3, 6, 6)
		dc.Fill()
		dc.SetColor(color.White)
		dc.DrawString(fmt.Sprint(i), x+5, y-5)
	}
	return dc.Image()
}

// WriteOverlay encodes the overlay of box on img as PNG.
func WriteOverlay(w io.Writer, img image.Image, box BoundingBox) error {
	return imaging.Encode(w, DrawOverlay(img, box), imaging.PNG)
}
