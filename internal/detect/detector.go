package detect

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"

	"github.com/cristianadrielbraun/qrframe/internal/log"
)

// DefaultSettleDelay is waited before the first attempt.
const DefaultSettleDelay = 100 * time.Millisecond

// Options tunes a Detector. Zero values select the defaults.
type Options struct {
	Regions     []Region
	ScaleSteps  []float64
	Targets     Targets
	SettleDelay time.Duration
	// NoSettle skips the settle delay entirely.
	NoSettle bool
	// DumpDir, when set, receives every working buffer as a PNG.
	DumpDir string
}

// Detector runs the region search. It keeps no state between calls; every
// attempt draws into its own buffer, so one Detector may serve concurrent
// callers.
type Detector struct {
	dec  Decoder
	opts Options
	log  *logrus.Logger
}

// New returns a Detector decoding with dec.
func New(dec Decoder, opts Options, logger *logrus.Logger) *Detector {
	if len(opts.Regions) == 0 {
		opts.Regions = DefaultRegions
	}
	if len(opts.ScaleSteps) == 0 {
		opts.ScaleSteps = []float64{1}
	}
	if opts.Targets == (Targets{}) {
		opts.Targets = DefaultTargets
	}
	if opts.SettleDelay == 0 && !opts.NoSettle {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.NoSettle {
		opts.SettleDelay = 0
	}
	return &Detector{dec: dec, opts: opts, log: logger}
}

// Regions returns the attempt order.
func (d *Detector) Regions() []Region {
	return append([]Region(nil), d.opts.Regions...)
}

// Detect searches img region by region, in order, and returns the first
// decode. Corners are mapped back to img coordinates. A box reaching outside
// img is flagged through Result.InBounds and logged, never rejected. When no
// region decodes the error is ErrNoQR.
func (d *Detector) Detect(ctx context.Context, img image.Image) (*Result, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrImageUnavailable
	}
	logger := log.FromContext(ctx, d.log).WithField("component", "detect")

	if d.opts.SettleDelay > 0 {
		t := time.NewTimer(d.opts.SettleDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	b := img.Bounds()
	decrease := d.opts.Targets.Decrease(b.Dx(), b.Dy())

	for i, r := range d.opts.Regions {
		for _, s := range d.opts.ScaleSteps {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := d.attempt(img, r, s, decrease, i)
			if err != nil {
				logger.WithFields(log.Fields{
					"region": r.Name,
					"scale":  s,
					"error":  err.Error(),
				}).Debug("region did not decode")
				continue
			}
			if !res.InBounds {
				logger.WithFields(log.Fields{
					"region": r.Name,
					"box":    res.BoundingBox,
				}).Warn("decoded box reaches outside the image")
			}
			return res, nil
		}
	}
	return nil, ErrNoQR
}

func (d *Detector) attempt(img image.Image, r Region, s, decrease float64, index int) (*Result, error) {
	b := img.Bounds()
	src := r.Source(b)
	ww, wh := workingSize(b.Dx(), b.Dy(), r, s, decrease)
	if src.Empty() || ww < 1 || wh < 1 {
		return nil, fmt.Errorf("region %q is empty at scale %v", r.Name, s)
	}

	buf := image.NewRGBA(image.Rect(0, 0, ww, wh))
	draw.Draw(buf, buf.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(buf, buf.Bounds(), img, src, draw.Over, nil)

	if d.opts.DumpDir != "" {
		name := fmt.Sprintf("qr_processed_%dx%d_region%d_scale%g.png", ww, wh, index, s)
		if err := imaging.Save(buf, filepath.Join(d.opts.DumpDir, name)); err != nil {
			log.Or(d.log).WithError(err).Warn("could not dump working buffer")
		}
	}

	hit, err := d.dec.Decode(buf)
	if err != nil {
		return nil, err
	}
	if hit == nil || hit.Text == "" {
		return nil, fmt.Errorf("empty decode")
	}

	sx := float64(src.Dx()) / float64(ww)
	sy := float64(src.Dy()) / float64(wh)
	var box BoundingBox
	for i, p := range hit.Corners {
		box[i] = Point{
			X: p.X*sx + float64(src.Min.X),
			Y: p.Y*sy + float64(src.Min.Y),
		}
	}
	return &Result{
		Data:        hit.Text,
		BoundingBox: box,
		Region:      r.Name,
		Attempt:     index,
		Scale:       s,
		InBounds:    box.Within(b),
	}, nil
}
