package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"

	"github.com/cristianadrielbraun/qrframe/internal/detect"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	wsReadTimeout  = 60 * time.Second
	wsPingInterval = 30 * time.Second
	wsWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// scanReply is one live-scan answer.
type scanReply struct {
	Seq   int              `json:"seq"`
	Error string           `json:"error,omitempty"`
	Scan  *detect.Response `json:"scan,omitempty"`
}

// DetectStream upgrades to a websocket and runs detection on every binary
// message, which must hold one encoded frame. Replies are JSON, in order.
func (h *Handler) DetectStream(c *gin.Context) {
	full, _ := strconv.ParseBool(c.DefaultQuery("full", "true"))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.entry(c).WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	limit := int64(h.cfg.Server.MaxUploadMB) << 20
	conn.SetReadLimit(limit)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(wsPingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
					return
				}
			}
		}
	}()

	entry := h.entry(c).WithField("component", "live-scan")
	entry.Info("live scan connected")
	for seq := 0; ; seq++ {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				entry.WithError(err).Warn("live scan closed unexpectedly")
			}
			return
		}
		websocketMessagesTotal.WithLabelValues("received").Inc()
		_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		reply := scanReply{Seq: seq}
		if kind != websocket.BinaryMessage {
			reply.Error = "frames must be sent as binary messages"
		} else {
			reply.Scan, reply.Error = h.scanFrame(c, data, full)
		}
		if err := h.sendReply(conn, reply); err != nil {
			entry.WithError(err).Warn("live scan reply failed")
			return
		}
	}
}

func (h *Handler) scanFrame(c *gin.Context, data []byte, full bool) (*detect.Response, string) {
	img, err := detect.LoadImage(bytes.NewReader(data))
	if err != nil {
		return nil, err.Error()
	}
	res, err := h.scan(c.Request.Context(), img)
	if err != nil && !errors.Is(err, detect.ErrNoQR) {
		return nil, err.Error()
	}
	resp := detect.NewResponse(res, full)
	return &resp, ""
}

func (h *Handler) sendReply(conn *websocket.Conn, reply scanReply) error {
	b, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return err
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
	return nil
}
