package detect

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrframe/internal/log"
)

// redBoxDecoder "decodes" a solid red square that lies fully inside the
// buffer and reports its corners.
type redBoxDecoder struct {
	calls []image.Rectangle
}

func (d *redBoxDecoder) Decode(img image.Image) (*Decoded, error) {
	b := img.Bounds()
	d.calls = append(d.calls, b)
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, -1, -1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r>>8 > 200 && g>>8 < 60 && bl>>8 < 60 {
				minX, minY = min(minX, x), min(minY, y)
				maxX, maxY = max(maxX, x), max(maxY, y)
			}
		}
	}
	if maxX < 0 {
		return nil, errors.New("nothing red")
	}
	if minX == b.Min.X || minY == b.Min.Y || maxX == b.Max.X-1 || maxY == b.Max.Y-1 {
		return nil, errors.New("red box is cut off")
	}
	x0, y0, x1, y1 := float64(minX), float64(minY), float64(maxX+1), float64(maxY+1)
	return &Decoded{
		Text:    "red",
		Corners: BoundingBox{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}},
	}, nil
}

func canvasWithBox(w, h int, boxes ...image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	for _, box := range boxes {
		draw.Draw(img, box, &image.Uniform{C: color.RGBA{255, 0, 0, 255}}, image.Point{}, draw.Src)
	}
	return img
}

var quadrants = []Region{
	{Name: "top-left", X: 0, Y: 0, Ratio: 0.5},
	{Name: "top-right", X: 0.5, Y: 0, Ratio: 0.5},
	{Name: "bottom-right", X: 0.5, Y: 0.5, Ratio: 0.5},
	{Name: "bottom-left", X: 0, Y: 0.5, Ratio: 0.5},
}

func newTestDetector(dec Decoder, regions []Region) *Detector {
	return New(dec, Options{Regions: regions, NoSettle: true}, log.Discard())
}

func TestRegionOrderAndShortCircuit(t *testing.T) {
	dec := &redBoxDecoder{}
	img := canvasWithBox(1000, 1000, image.Rect(800, 800, 900, 900))

	res, err := newTestDetector(dec, quadrants).Detect(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempt)
	assert.Equal(t, "bottom-right", res.Region)
	assert.Len(t, dec.calls, 3, "must stop at the first decode")
	assert.True(t, res.InBounds)

	want := BoundingBox{{800, 800}, {900, 800}, {800, 900}, {900, 900}}
	for i := range want {
		assert.InDelta(t, want[i].X, res.BoundingBox[i].X, 3, "corner %d x", i)
		assert.InDelta(t, want[i].Y, res.BoundingBox[i].Y, 3, "corner %d y", i)
	}
}

// Red clutter touching a crop's edge spoils that crop for redBoxDecoder, so
// each case leaves exactly one region of the default table able to decode.
func TestDefaultRegionOrder(t *testing.T) {
	leftStrip := image.Rect(0, 400, 50, 500)
	rightStrip := image.Rect(950, 400, 1000, 500)
	tests := []struct {
		name    string
		box     image.Rectangle
		clutter []image.Rectangle
		attempt int
	}{
		{"full", image.Rect(450, 450, 550, 550), nil, 0},
		{"bottom", image.Rect(100, 800, 200, 900), []image.Rectangle{image.Rect(950, 100, 1000, 200)}, 1},
		{"bottom-right", image.Rect(800, 800, 900, 900), []image.Rectangle{image.Rect(0, 100, 50, 200)}, 2},
		{"top-right", image.Rect(800, 100, 900, 200), []image.Rectangle{image.Rect(0, 800, 50, 900)}, 3},
		{"center", image.Rect(450, 450, 550, 550), []image.Rectangle{leftStrip, rightStrip}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := &redBoxDecoder{}
			img := canvasWithBox(1000, 1000, append([]image.Rectangle{tt.box}, tt.clutter...)...)

			res, err := newTestDetector(dec, nil).Detect(context.Background(), img)
			require.NoError(t, err)
			assert.Equal(t, tt.attempt, res.Attempt)
			assert.Equal(t, DefaultRegions[tt.attempt].Name, res.Region)
			assert.Len(t, dec.calls, tt.attempt+1, "regions before the winner are each tried once")

			want := BoundingBox{
				{float64(tt.box.Min.X), float64(tt.box.Min.Y)},
				{float64(tt.box.Max.X), float64(tt.box.Min.Y)},
				{float64(tt.box.Min.X), float64(tt.box.Max.Y)},
				{float64(tt.box.Max.X), float64(tt.box.Max.Y)},
			}
			for i := range want {
				assert.InDelta(t, want[i].X, res.BoundingBox[i].X, 3, "corner %d x", i)
				assert.InDelta(t, want[i].Y, res.BoundingBox[i].Y, 3, "corner %d y", i)
			}
		})
	}
}

func TestNoQROutsideAllRegions(t *testing.T) {
	dec := &redBoxDecoder{}
	img := canvasWithBox(1000, 1000, image.Rect(100, 700, 200, 800))
	topOnly := quadrants[:2]

	_, err := newTestDetector(dec, topOnly).Detect(context.Background(), img)
	assert.ErrorIs(t, err, ErrNoQR)
	assert.Len(t, dec.calls, 2, "every region is tried once")
}

func TestWorkingBufferSizes(t *testing.T) {
	dec := &redBoxDecoder{}
	// 2000×1000 has aspect 2, so the budget is 900k pixels.
	img := canvasWithBox(2000, 1000, image.Rect(0, 0, 1, 1))
	d := New(dec, Options{Regions: DefaultRegions, ScaleSteps: []float64{1, 0.5}, NoSettle: true}, log.Discard())

	_, err := d.Detect(context.Background(), img)
	assert.ErrorIs(t, err, ErrNoQR)
	require.Len(t, dec.calls, 10)
	// decrease = sqrt(2e6/9e5) = 1.4907
	assert.Equal(t, image.Rect(0, 0, 1341, 670), dec.calls[0])
	assert.Equal(t, image.Rect(0, 0, 670, 335), dec.calls[1])
	assert.Equal(t, image.Rect(0, 0, 872, 436), dec.calls[2])
}

func TestDefaultRegionGeometry(t *testing.T) {
	b := image.Rect(0, 0, 1000, 800)
	want := []image.Rectangle{
		image.Rect(0, 0, 1000, 800),
		image.Rect(0, 280, 650, 800),
		image.Rect(350, 280, 1000, 800),
		image.Rect(350, 0, 1000, 520),
		image.Rect(175, 140, 825, 660),
	}
	require.Len(t, DefaultRegions, len(want))
	for i, r := range DefaultRegions {
		require.NoError(t, r.Validate())
		assert.Equal(t, want[i], r.Source(b), r.Name)
	}

	assert.Error(t, Region{Name: "x", Ratio: 0}.Validate())
	assert.Error(t, Region{Name: "x", X: 1, Ratio: 0.5}.Validate())
}

func TestTargets(t *testing.T) {
	tests := []struct {
		w, h int
		want float64
	}{
		{1000, 1000, 640_000},
		{1900, 1000, 640_000},
		{2000, 1000, 900_000},
		{1000, 2000, 900_000},
		{3000, 1000, 1_200_000},
		{1000, 3100, 1_200_000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultTargets.Budget(tt.w, tt.h), "%dx%d", tt.w, tt.h)
	}
	assert.InDelta(t, 1.25, DefaultTargets.Decrease(1000, 1000), 1e-9)
	assert.Less(t, DefaultTargets.Decrease(400, 400), 1.0, "small images are enlarged")
}

func TestSettleDelayHonoursContext(t *testing.T) {
	d := New(&redBoxDecoder{}, Options{SettleDelay: time.Hour}, log.Discard())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := d.Detect(ctx, canvasWithBox(10, 10, image.Rect(0, 0, 1, 1)))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestDetectEmptyImage(t *testing.T) {
	_, err := newTestDetector(&redBoxDecoder{}, nil).Detect(context.Background(), image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, ErrImageUnavailable)
}

func TestDefaults(t *testing.T) {
	d := New(&redBoxDecoder{}, Options{}, nil)
	assert.Equal(t, DefaultRegions, d.Regions())
	assert.Equal(t, DefaultSettleDelay, d.opts.SettleDelay)
	assert.Equal(t, []float64{1}, d.opts.ScaleSteps)
}

func TestOutOfBoundsIsFlagged(t *testing.T) {
	dec := decoderFunc(func(img image.Image) (*Decoded, error) {
		b := img.Bounds()
		return &Decoded{Text: "edge", Corners: BoundingBox{
			{-4, 0}, {float64(b.Dx()), 0}, {0, float64(b.Dy())}, {float64(b.Dx()), float64(b.Dy())},
		}}, nil
	})
	res, err := newTestDetector(dec, nil).Detect(context.Background(), canvasWithBox(100, 100, image.Rect(0, 0, 1, 1)))
	require.NoError(t, err)
	assert.Equal(t, "edge", res.Data)
	assert.False(t, res.InBounds)
}

type decoderFunc func(image.Image) (*Decoded, error)

func (f decoderFunc) Decode(img image.Image) (*Decoded, error) { return f(img) }

func TestResponse(t *testing.T) {
	assert.Equal(t, Response{Result: NoQR}, NewResponse(nil, true))
	assert.Equal(t, NoQR, NewResponse(nil, false).String())

	res := &Result{Data: "hello", Region: "full", BoundingBox: BoundingBox{{1, 2}, {3, 4}, {5, 6}, {7, 8}}}
	assert.Equal(t, "hello", NewResponse(res, false).String())
	assert.Empty(t, NewResponse(res, false).BoundingBox)

	full := NewResponse(res, true)
	assert.Equal(t, []Point{{1, 2}, {3, 4}, {5, 6}, {7, 8}}, full.BoundingBox)
	assert.Equal(t, "full", full.Region)
}

func TestSymbolCorners(t *testing.T) {
	// version 1, 10px modules, symbol at the origin
	tl, tr, bl := Point{35, 35}, Point{175, 35}, Point{35, 175}
	box := symbolCorners(tl, tr, bl, nil, 21)
	assert.Equal(t, BoundingBox{{0, 0}, {210, 0}, {0, 210}, {210, 210}}, box)

	// version 2 with an alignment pattern centred 6.5 modules from the corner
	box = symbolCorners(Point{35, 35}, Point{215, 35}, Point{35, 215}, &Point{185, 185}, 25)
	assert.InDelta(t, 250, box[BottomRight].X, 1e-9)
	assert.InDelta(t, 250, box[BottomRight].Y, 1e-9)
}
