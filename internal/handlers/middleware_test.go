package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrframe/internal/log"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RateLimit(0.001, 2, log.Discard()), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, get(r, "/x").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "buckets are per client")
}

func TestRateLimitDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RateLimit(0, 0, nil), func(c *gin.Context) { c.Status(http.StatusOK) })
	for range 20 {
		require.Equal(t, http.StatusOK, get(r, "/x").Code)
	}
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS("https://app.example"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(r, "/x")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-QR-Debug")
}

func TestLoggerRecordsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var out strings.Builder
	l := log.Discard()
	l.SetOutput(&out)
	l.SetLevel(logrus.InfoLevel)

	r := gin.New()
	r.Use(RequestID(), Logger(l))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, out.String(), "Client error")
	assert.Contains(t, out.String(), "req-42")
}

func TestInstrumentAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Instrument())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", Metrics())

	get(r, "/ping")
	w := get(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `qrframe_http_requests_total{method="GET",route="/ping",status="200"}`)
}

func TestDetectStream(t *testing.T) {
	srv := httptest.NewServer(newTestEngine(t))
	defer srv.Close()

	qr := get(newTestEngine(t), "/api/qr?url=example.com&size=600&margin=4")
	require.Equal(t, http.StatusOK, qr.Code)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/detect/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(30*time.Second)))

	var reply scanReply

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, qr.Body.Bytes()))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, 0, reply.Seq)
	assert.Empty(t, reply.Error)
	require.NotNil(t, reply.Scan)
	assert.Equal(t, "https://example.com?qr=1", reply.Scan.Data)
	assert.Len(t, reply.Scan.BoundingBox, 4)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, blankPNG(t, 200, 200)))
	reply = scanReply{}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, 1, reply.Seq)
	require.NotNil(t, reply.Scan)
	assert.Equal(t, "NO_QR", reply.Scan.Result)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	reply = scanReply{}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, 2, reply.Seq)
	assert.Contains(t, reply.Error, "binary")
}
