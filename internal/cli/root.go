// Package cli is the qrframe command line: the HTTP server plus offline
// render, detect, template and contrast commands.
package cli

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrframe/internal/config"
	"github.com/cristianadrielbraun/qrframe/internal/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Build information, set with -ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// app is the state shared by every command of one invocation.
type app struct {
	loader  *config.Loader
	cfgFile string
	envFile string
	cfg     *config.Config
	log     *logrus.Logger
}

// NewRootCommand returns the qrframe command tree.
func NewRootCommand() *cobra.Command {
	a := &app{loader: config.NewLoader()}

	root := &cobra.Command{
		Use:   "qrframe",
		Short: "Render framed QR codes and find them in photos",
		Long: `qrframe renders QR codes as SVG, PNG or JPEG with ornamental corners,
logos and decorative frames, and locates and decodes QR codes in photos.

Examples:
  qrframe serve --port 8080
  qrframe render example.com --template Caption --text "SCAN ME" -o code.png
  qrframe detect photo.jpg --json --overlay boxed.png`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: qrframe.yaml in ., $XDG_CONFIG_HOME/qrframe or ~/.config/qrframe, /etc/qrframe)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the configuration")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "also write logs to this file, rotated")
	_ = a.loader.Viper().BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.loader.Viper().BindPFlag("log.file", flags.Lookup("log-file"))

	root.AddCommand(
		newServeCommand(a),
		newRenderCommand(a),
		newDetectCommand(a),
		newTemplatesCommand(a),
		newContrastCommand(a),
	)
	return root
}

func (a *app) init() error {
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return err
	}
	cfg, err := a.loader.Load(a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := log.Setup(cfg.Log.Options())
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, logger
	if used := a.loader.ConfigFileUsed(); used != "" {
		logger.WithField("file", used).Debug("configuration loaded")
	}
	return nil
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
