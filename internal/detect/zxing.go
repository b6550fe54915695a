package detect

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"
	"github.com/makiuchi-d/gozxing/qrcode/detector"
)

// Decoded is a decoder hit in working buffer coordinates. Corners follow the
// BoundingBox index order.
type Decoded struct {
	Text    string
	Corners BoundingBox
}

// Decoder finds and decodes one QR code in an image.
type Decoder interface {
	Decode(img image.Image) (*Decoded, error)
}

// ZXingDecoder decodes with gozxing.
type ZXingDecoder struct {
	TryHarder bool
}

// Decode locates the finder patterns, decodes the symbol and extrapolates
// the outer symbol corners from the finder centres.
func (z ZXingDecoder) Decode(img image.Image) (*Decoded, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("binarize: %w", err)
	}
	matrix, err := bmp.GetBlackMatrix()
	if err != nil {
		return nil, fmt.Errorf("black matrix: %w", err)
	}
	hints := map[gozxing.DecodeHintType]interface{}{}
	if z.TryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}

	found, err := detector.NewDetector(matrix).Detect(hints)
	if err != nil {
		return nil, fmt.Errorf("locate: %w", err)
	}
	res, err := decoder.NewDecoder().Decode(found.GetBits(), hints)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	// bottom-left, top-left, top-right, then the alignment pattern if any
	points := found.GetPoints()
	if len(points) < 3 {
		return nil, fmt.Errorf("decode: %d finder points", len(points))
	}
	if md, ok := res.GetOther().(*decoder.QRCodeDecoderMetaData); ok {
		md.ApplyMirroredCorrection(points)
	}
	var align *Point
	if len(points) > 3 && points[3] != nil {
		align = &Point{points[3].GetX(), points[3].GetY()}
	}
	corners := symbolCorners(
		Point{points[1].GetX(), points[1].GetY()},
		Point{points[2].GetX(), points[2].GetY()},
		Point{points[0].GetX(), points[0].GetY()},
		align,
		found.GetBits().GetWidth(),
	)
	return &Decoded{Text: res.GetText(), Corners: corners}, nil
}

// symbolCorners turns finder centres (3.5 modules in from each corner) into
// the outer corners of an n-module symbol. The bottom-right corner comes from
// the alignment pattern (6.5 modules in) when present, otherwise from the
// parallelogram through the other three.
func symbolCorners(tl, tr, bl Point, align *Point, n int) BoundingBox {
	span := float64(n - 7)
	u := Point{(tr.X - tl.X) / span, (tr.Y - tl.Y) / span}
	v := Point{(bl.X - tl.X) / span, (bl.Y - tl.Y) / span}
	at := func(p Point, a, b float64) Point {
		return Point{p.X + a*u.X + b*v.X, p.Y + a*u.Y + b*v.Y}
	}
	var box BoundingBox
	box[TopLeft] = at(tl, -3.5, -3.5)
	box[TopRight] = at(tr, 3.5, -3.5)
	box[BottomLeft] = at(bl, -3.5, 3.5)
	if align != nil {
		box[BottomRight] = at(*align, 6.5, 6.5)
	} else {
		box[BottomRight] = at(box[TopLeft], float64(n), float64(n))
	}
	return box
}
