package handlers

import (
	"bytes"
	"context"
	"errors"
	"image"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrframe/internal/detect"
	"github.com/cristianadrielbraun/qrframe/internal/log"
)

// readImage decodes the multipart "image" field, writing the error response
// itself on failure.
func (h *Handler) readImage(c *gin.Context) (image.Image, bool) {
	limit := int64(h.cfg.Server.MaxUploadMB) << 20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	fh, err := c.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds the upload limit"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return nil, false
	}
	uploadSizeBytes.Observe(float64(fh.Size))

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	defer f.Close()

	img, err := detect.LoadImage(f)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return nil, false
	}
	return img, true
}

// scan runs the detector under the configured timeout and records metrics.
// ErrNoQR is returned as is; callers branch on it.
func (h *Handler) scan(ctx context.Context, img image.Image) (*detect.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, h.cfg.Server.DetectTimeout)
	defer cancel()

	start := time.Now()
	res, err := h.detector.Detect(ctx, img)
	switch {
	case err == nil:
		observeDetection(start, "found", res.Region)
	case errors.Is(err, detect.ErrNoQR):
		observeDetection(start, "no_qr", "")
	default:
		observeDetection(start, "error", "")
	}
	return res, err
}

func detectStatus(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, detect.ErrImageUnavailable):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Detect finds a QR code in the uploaded image. With full=true the reply
// carries the bounding box and winning region as well as the text.
func (h *Handler) Detect(c *gin.Context) {
	img, ok := h.readImage(c)
	if !ok {
		return
	}
	full, _ := strconv.ParseBool(c.DefaultPostForm("full", c.DefaultQuery("full", "false")))

	res, err := h.scan(c.Request.Context(), img)
	if err != nil && !errors.Is(err, detect.ErrNoQR) {
		h.entry(c).WithError(err).Error("detection failed")
		c.JSON(detectStatus(err), gin.H{"error": err.Error()})
		return
	}
	h.entry(c).WithFields(log.Fields{
		"component": "detect",
		"found":     res != nil,
		"width":     img.Bounds().Dx(),
		"height":    img.Bounds().Dy(),
	}).Debug("detection finished")
	c.JSON(http.StatusOK, detect.NewResponse(res, full))
}

// DetectOverlay returns the uploaded image as PNG with the detected box
// drawn on it.
func (h *Handler) DetectOverlay(c *gin.Context) {
	img, ok := h.readImage(c)
	if !ok {
		return
	}
	res, err := h.scan(c.Request.Context(), img)
	switch {
	case errors.Is(err, detect.ErrNoQR):
		c.JSON(http.StatusNotFound, detect.NewResponse(nil, false))
		return
	case err != nil:
		h.entry(c).WithError(err).Error("detection failed")
		c.JSON(detectStatus(err), gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := detect.WriteOverlay(&buf, img, res.BoundingBox); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("X-QR-Data", strconv.Quote(res.Data))
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
