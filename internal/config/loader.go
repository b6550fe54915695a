package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// FileName is the base name of the configuration file.
	FileName = "qrframe"
	// EnvPrefix prefixes every environment override, e.g. QRFRAME_SERVER_PORT.
	EnvPrefix = "QRFRAME"
)

// Loader reads configuration from defaults, an optional YAML file and the
// environment, in increasing precedence.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader with its own viper instance.
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// Viper exposes the underlying instance so commands can bind flags.
func (l *Loader) Viper() *viper.Viper { return l.v }

// ConfigFileUsed returns the file that was read, if any.
func (l *Loader) ConfigFileUsed() string { return l.v.ConfigFileUsed() }

// Load reads file when given, otherwise searches SearchPaths for
// qrframe.yaml. A missing searched file is not an error; a missing explicit
// file is. The result is validated.
func (l *Loader) Load(file string) (*Config, error) {
	l.setDefaults()
	l.setupEnvironment()

	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, fmt.Errorf("config file %s: %w", file, err)
		}
		l.v.SetConfigFile(file)
	} else {
		l.v.SetConfigName(FileName)
		l.v.SetConfigType("yaml")
		for _, p := range SearchPaths() {
			l.v.AddConfigPath(p)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadEnvFile loads KEY=value pairs from a dotenv file into the process
// environment without overriding variables already set. A missing file is
// ignored.
func LoadEnvFile(name string) error {
	if name == "" {
		name = ".env"
	}
	if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

// SearchPaths lists the directories searched for qrframe.yaml.
func SearchPaths() []string {
	paths := []string{"."}
	if dir, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		paths = append(paths, filepath.Join(dir, FileName))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", FileName))
	}
	return append(paths, filepath.Join("/etc", FileName))
}

func (l *Loader) setupEnvironment() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	l.v.AutomaticEnv()
	// PORT is what most hosting platforms inject.
	_ = l.v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
}

func (l *Loader) setDefaults() {
	d := Default()

	l.v.SetDefault("server.host", d.Server.Host)
	l.v.SetDefault("server.port", d.Server.Port)
	l.v.SetDefault("server.cors_origin", d.Server.CORSOrigin)
	l.v.SetDefault("server.request_timeout", d.Server.RequestTimeout)
	l.v.SetDefault("server.detect_timeout", d.Server.DetectTimeout)
	l.v.SetDefault("server.max_upload_mb", d.Server.MaxUploadMB)
	l.v.SetDefault("server.detect_rate", d.Server.DetectRate)
	l.v.SetDefault("server.detect_burst", d.Server.DetectBurst)

	l.v.SetDefault("log.level", d.Log.Level)
	l.v.SetDefault("log.file", d.Log.File)
	l.v.SetDefault("log.no_colors", d.Log.NoColors)
	l.v.SetDefault("log.caller", d.Log.Caller)

	l.v.SetDefault("render.encoder", d.Render.Encoder)
	l.v.SetDefault("render.size", d.Render.Size)
	l.v.SetDefault("render.margin", d.Render.Margin)
	l.v.SetDefault("render.level", d.Render.Level)
	l.v.SetDefault("render.style", d.Render.Style)
	l.v.SetDefault("render.jpeg_quality", d.Render.JPEGQuality)
	l.v.SetDefault("render.logo_timeout", d.Render.LogoTimeout)
	l.v.SetDefault("render.asset_dir", d.Render.AssetDir)

	l.v.SetDefault("detect.settle_delay", d.Detect.SettleDelay)
	l.v.SetDefault("detect.scale_steps", d.Detect.ScaleSteps)
	l.v.SetDefault("detect.targets.extreme", d.Detect.Targets.Extreme)
	l.v.SetDefault("detect.targets.moderate", d.Detect.Targets.Moderate)
	l.v.SetDefault("detect.targets.square", d.Detect.Targets.Square)
	l.v.SetDefault("detect.regions", d.Detect.Regions)
	l.v.SetDefault("detect.try_harder", d.Detect.TryHarder)
	l.v.SetDefault("detect.dump_dir", d.Detect.DumpDir)

	l.v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	l.v.SetDefault("metrics.path", d.Metrics.Path)
}
