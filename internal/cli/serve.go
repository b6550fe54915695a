package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrframe/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Endpoints:
  GET  /api/qr            render a code (png, jpeg, svg or a data URI)
  GET  /api/qr/svg        raw SVG markup
  GET  /api/templates     available frames
  GET  /api/contrast      WCAG contrast of two colours
  POST /api/detect        find a code in an uploaded photo
  POST /api/detect/overlay  the photo with the detected box drawn
  GET  /api/detect/ws     live scanning over a websocket
  GET  /healthz, /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.log.IsLevelEnabled(logrus.DebugLevel) {
				gin.SetMode(gin.ReleaseMode)
			}
			srv, err := server.New(a.cfg, a.log)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().String("host", "", "listen host")
	cmd.Flags().Int("port", 0, "listen port (also PORT)")
	_ = a.loader.Viper().BindPFlag("server.host", cmd.Flags().Lookup("host"))
	_ = a.loader.Viper().BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}
