package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrframe/internal/config"
	"github.com/cristianadrielbraun/qrframe/internal/detect"
	"github.com/cristianadrielbraun/qrframe/internal/export"
	"github.com/cristianadrielbraun/qrframe/internal/log"
	"github.com/cristianadrielbraun/qrframe/internal/render"
	"github.com/cristianadrielbraun/qrframe/internal/template"
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	renderer *render.Renderer
	exporter *export.Exporter
	detector *detect.Detector
	cfg      config.Config
	log      *logrus.Logger
	started  time.Time
}

// New returns a Handler. cfg is copied.
func New(cfg *config.Config, r *render.Renderer, e *export.Exporter, d *detect.Detector, logger *logrus.Logger) *Handler {
	return &Handler{
		renderer: r,
		exporter: e,
		detector: d,
		cfg:      *cfg,
		log:      log.Or(logger),
		started:  time.Now(),
	}
}

// entry returns the request-scoped logger.
func (h *Handler) entry(c *gin.Context) *logrus.Entry {
	return log.FromContext(c.Request.Context(), h.log)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// Templates lists the available frames.
func (h *Handler) Templates(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, template.All())
}

type contrastQuery struct {
	Fg string `form:"fg" binding:"required,hexcolor"`
	Bg string `form:"bg" binding:"required,hexcolor"`
}

// Contrast reports the WCAG contrast of fg on bg.
func (h *Handler) Contrast(c *gin.Context) {
	var q contrastQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}
	c.JSON(http.StatusOK, render.CheckContrast(q.Fg, q.Bg))
}
