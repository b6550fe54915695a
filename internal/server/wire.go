package server

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrframe/internal/config"
	"github.com/cristianadrielbraun/qrframe/internal/detect"
	"github.com/cristianadrielbraun/qrframe/internal/export"
	"github.com/cristianadrielbraun/qrframe/internal/render"
	"github.com/cristianadrielbraun/qrframe/internal/symbol"
	"github.com/cristianadrielbraun/qrframe/internal/template"
)

// Components are the pipeline stages built from one configuration. The
// CLI uses them directly; the server wraps them in handlers.
type Components struct {
	Renderer *render.Renderer
	Exporter *export.Exporter
	Detector *detect.Detector
}

// NewComponents builds the renderer, exporter and detector for cfg.
func NewComponents(cfg *config.Config, logger *logrus.Logger) (*Components, error) {
	enc, err := symbol.New(cfg.Render.Encoder)
	if err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}
	fetcher := &export.Fetcher{
		Client:   &http.Client{Timeout: cfg.Render.LogoTimeout},
		AssetDir: cfg.Render.AssetDir,
	}
	return &Components{
		Renderer: render.NewRenderer(enc,
			render.WithTemplates(template.Get),
			render.WithLogger(logger),
		),
		Exporter: export.New(fetcher,
			export.WithLogger(logger),
			export.WithJPEGQuality(cfg.Render.JPEGQuality),
		),
		Detector: detect.New(detect.ZXingDecoder{TryHarder: cfg.Detect.TryHarder}, cfg.Detect.Options(), logger),
	}, nil
}
