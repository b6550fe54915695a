// Package config holds the qrframe configuration: defaults, validation and
// the conversions into the option types of the other packages.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrframe/internal/detect"
	"github.com/cristianadrielbraun/qrframe/internal/log"
	"github.com/cristianadrielbraun/qrframe/internal/render"
	"github.com/cristianadrielbraun/qrframe/internal/symbol"
)

// Config is the complete configuration of the service and the CLI.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server" json:"server"`
	Log     LogConfig     `mapstructure:"log" yaml:"log" json:"log"`
	Render  RenderConfig  `mapstructure:"render" yaml:"render" json:"render"`
	Detect  DetectConfig  `mapstructure:"detect" yaml:"detect" json:"detect"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host           string        `mapstructure:"host" yaml:"host" json:"host"`
	Port           int           `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin     string        `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout" json:"request_timeout"`
	DetectTimeout  time.Duration `mapstructure:"detect_timeout" yaml:"detect_timeout" json:"detect_timeout"`
	MaxUploadMB    int           `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	// DetectRate is the per-client detection allowance in requests per
	// second; zero disables limiting.
	DetectRate  float64 `mapstructure:"detect_rate" yaml:"detect_rate" json:"detect_rate"`
	DetectBurst int     `mapstructure:"detect_burst" yaml:"detect_burst" json:"detect_burst"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level    string `mapstructure:"level" yaml:"level" json:"level"`
	File     string `mapstructure:"file" yaml:"file" json:"file"`
	NoColors bool   `mapstructure:"no_colors" yaml:"no_colors" json:"no_colors"`
	Caller   bool   `mapstructure:"caller" yaml:"caller" json:"caller"`
}

// Options converts c for log.New.
func (c LogConfig) Options() log.Options {
	return log.Options{Level: c.Level, File: c.File, NoColors: c.NoColors, Caller: c.Caller}
}

// RenderConfig configures symbol generation and export.
type RenderConfig struct {
	Encoder     string        `mapstructure:"encoder" yaml:"encoder" json:"encoder"`
	Size        int           `mapstructure:"size" yaml:"size" json:"size"`
	Margin      int           `mapstructure:"margin" yaml:"margin" json:"margin"`
	Level       string        `mapstructure:"level" yaml:"level" json:"level"`
	Style       string        `mapstructure:"style" yaml:"style" json:"style"`
	JPEGQuality int           `mapstructure:"jpeg_quality" yaml:"jpeg_quality" json:"jpeg_quality"`
	LogoTimeout time.Duration `mapstructure:"logo_timeout" yaml:"logo_timeout" json:"logo_timeout"`
	AssetDir    string        `mapstructure:"asset_dir" yaml:"asset_dir" json:"asset_dir"`
}

// DetectConfig configures the region search.
type DetectConfig struct {
	SettleDelay time.Duration   `mapstructure:"settle_delay" yaml:"settle_delay" json:"settle_delay"`
	ScaleSteps  []float64       `mapstructure:"scale_steps" yaml:"scale_steps" json:"scale_steps"`
	Targets     detect.Targets  `mapstructure:"targets" yaml:"targets" json:"targets"`
	Regions     []detect.Region `mapstructure:"regions" yaml:"regions" json:"regions"`
	TryHarder   bool            `mapstructure:"try_harder" yaml:"try_harder" json:"try_harder"`
	DumpDir     string          `mapstructure:"dump_dir" yaml:"dump_dir" json:"dump_dir"`
}

// Options converts c for detect.New. A zero settle delay disables it.
func (c DetectConfig) Options() detect.Options {
	return detect.Options{
		Regions:     c.Regions,
		ScaleSteps:  c.ScaleSteps,
		Targets:     c.Targets,
		SettleDelay: c.SettleDelay,
		NoSettle:    c.SettleDelay == 0,
		DumpDir:     c.DumpDir,
	}
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Path    string `mapstructure:"path" yaml:"path" json:"path"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			CORSOrigin:     "*",
			RequestTimeout: 30 * time.Second,
			DetectTimeout:  10 * time.Second,
			MaxUploadMB:    20,
			DetectRate:     5,
			DetectBurst:    10,
		},
		Log: LogConfig{Level: "info"},
		Render: RenderConfig{
			Encoder:     symbol.DefaultEncoder,
			Size:        render.DefaultSize,
			Margin:      0,
			Level:       render.DefaultLevel.String(),
			Style:       render.StyleDots.String(),
			JPEGQuality: 92,
			LogoTimeout: 5 * time.Second,
		},
		Detect: DetectConfig{
			SettleDelay: detect.DefaultSettleDelay,
			ScaleSteps:  []float64{1},
			Targets:     detect.DefaultTargets,
			Regions:     append([]detect.Region(nil), detect.DefaultRegions...),
		},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		add("server.port %d outside 1-65535", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		add("server.request_timeout must be positive")
	}
	if c.Server.DetectTimeout <= 0 {
		add("server.detect_timeout must be positive")
	}
	if c.Server.MaxUploadMB <= 0 {
		add("server.max_upload_mb must be positive")
	}
	if c.Server.DetectRate < 0 || (c.Server.DetectRate > 0 && c.Server.DetectBurst < 1) {
		add("server.detect_rate %v with burst %d is not a usable limit", c.Server.DetectRate, c.Server.DetectBurst)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		add("log.level: %w", err)
	}

	if _, err := symbol.New(c.Render.Encoder); err != nil {
		add("render.encoder: %w", err)
	}
	if c.Render.Size <= 0 {
		add("render.size must be positive")
	}
	if c.Render.Margin < 0 {
		add("render.margin must not be negative")
	}
	if _, err := symbol.ParseLevel(c.Render.Level); err != nil {
		add("render.level: %w", err)
	}
	if _, err := render.ParseStyle(c.Render.Style); err != nil {
		add("render.style: %w", err)
	}
	if c.Render.JPEGQuality < 1 || c.Render.JPEGQuality > 100 {
		add("render.jpeg_quality %d outside 1-100", c.Render.JPEGQuality)
	}

	if c.Detect.SettleDelay < 0 {
		add("detect.settle_delay must not be negative")
	}
	for _, s := range c.Detect.ScaleSteps {
		if s <= 0 || s > 1 {
			add("detect.scale_steps: %v outside (0, 1]", s)
		}
	}
	t := c.Detect.Targets
	if t.Extreme <= 0 || t.Moderate <= 0 || t.Square <= 0 {
		add("detect.targets must all be positive")
	}
	for _, r := range c.Detect.Regions {
		if err := r.Validate(); err != nil {
			add("detect.regions: %w", err)
		}
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		add("metrics.path %q must start with /", c.Metrics.Path)
	}
	return errors.Join(errs...)
}

// RenderDefaults returns the request defaults taken from the render section.
// Call it on a validated Config.
func (c *Config) RenderDefaults() render.Request {
	level, _ := symbol.ParseLevel(c.Render.Level)
	style, _ := render.ParseStyle(c.Render.Style)
	return render.Request{Size: c.Render.Size, Margin: c.Render.Margin, Level: level, Style: style}
}
