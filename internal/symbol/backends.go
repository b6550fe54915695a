package symbol

import (
	"fmt"

	bqr "github.com/boombuler/barcode/qr"
	skip2 "github.com/skip2/go-qrcode"
	"github.com/yeqown/go-qrcode/v2"
	rscqr "rsc.io/qr"
)

// yeqownEncoder drives github.com/yeqown/go-qrcode through a Writer that
// captures the raw matrix instead of drawing it.
type yeqownEncoder struct{}

func (yeqownEncoder) Name() string { return "yeqown" }

func (yeqownEncoder) Encode(text string, level Level) (Grid, error) {
	if err := checkInput(text, level); err != nil {
		return Grid{}, err
	}
	var ecl qrcode.EncodeOption
	switch level {
	case LevelL:
		ecl = qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case LevelM:
		ecl = qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	case LevelQ:
		ecl = qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	default:
		ecl = qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	}
	qrc, err := qrcode.NewWith(text, ecl)
	if err != nil {
		return Grid{}, fmt.Errorf("yeqown encode: %w", err)
	}
	w := &matrixWriter{}
	if err := qrc.Save(w); err != nil {
		return Grid{}, fmt.Errorf("yeqown matrix: %w", err)
	}
	return NewGrid(w.rows)
}

// matrixWriter implements qrcode.Writer.
type matrixWriter struct {
	rows [][]bool
}

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	if mat.Width() != mat.Height() {
		return fmt.Errorf("matrix is %dx%d, want square", mat.Width(), mat.Height())
	}
	w.rows = make([][]bool, mat.Height())
	for y := range w.rows {
		w.rows[y] = make([]bool, mat.Width())
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		w.rows[y][x] = v.IsSet()
	})
	return nil
}

func (w *matrixWriter) Close() error { return nil }

type skip2Encoder struct{}

func (skip2Encoder) Name() string { return "skip2" }

func (skip2Encoder) Encode(text string, level Level) (Grid, error) {
	if err := checkInput(text, level); err != nil {
		return Grid{}, err
	}
	// skip2 names the four levels Low, Medium, High, Highest.
	rl := []skip2.RecoveryLevel{skip2.Low, skip2.Medium, skip2.High, skip2.Highest}[level]
	q, err := skip2.New(text, rl)
	if err != nil {
		return Grid{}, fmt.Errorf("skip2 encode: %w", err)
	}
	q.DisableBorder = true
	return NewGrid(q.Bitmap())
}

type boombulerEncoder struct{}

func (boombulerEncoder) Name() string { return "boombuler" }

func (boombulerEncoder) Encode(text string, level Level) (Grid, error) {
	if err := checkInput(text, level); err != nil {
		return Grid{}, err
	}
	ecl := []bqr.ErrorCorrectionLevel{bqr.L, bqr.M, bqr.Q, bqr.H}[level]
	code, err := bqr.Encode(text, ecl, bqr.Auto)
	if err != nil {
		return Grid{}, fmt.Errorf("boombuler encode: %w", err)
	}
	b := code.Bounds()
	rows := make([][]bool, b.Dy())
	for y := range rows {
		rows[y] = make([]bool, b.Dx())
		for x := range rows[y] {
			r, _, _, _ := code.At(b.Min.X+x, b.Min.Y+y).RGBA()
			rows[y][x] = r < 0x8000
		}
	}
	return NewGrid(rows)
}

type rscEncoder struct{}

func (rscEncoder) Name() string { return "rsc" }

func (rscEncoder) Encode(text string, level Level) (Grid, error) {
	if err := checkInput(text, level); err != nil {
		return Grid{}, err
	}
	lv := []rscqr.Level{rscqr.L, rscqr.M, rscqr.Q, rscqr.H}[level]
	code, err := rscqr.Encode(text, lv)
	if err != nil {
		return Grid{}, fmt.Errorf("rsc encode: %w", err)
	}
	rows := make([][]bool, code.Size)
	for y := range rows {
		rows[y] = make([]bool, code.Size)
		for x := range rows[y] {
			rows[y][x] = code.Black(x, y)
		}
	}
	return NewGrid(rows)
}
