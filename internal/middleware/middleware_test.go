package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openedx/programs-admin/internal/pkg/metrics"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(zerolog.New(&buf)), RequestLogger())
	r.GET("/programs/:id", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("handler")
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/programs/7", nil))

	id := w.Header().Get(RequestIDHeader)
	require.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, id, entry["requestID"])
	assert.Equal(t, "/programs/7", entry["path"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "info", entry["level"])
}

func TestRequestID_ReusesInboundHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(zerolog.Nop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "upstream-1", w.Header().Get(RequestIDHeader))
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(zerolog.New(&buf)), RequestLogger())
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(zerolog.Nop()), Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SRV_001")
}

func TestMetrics_LabelsByRouteTemplate(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/programs/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/programs/7", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/programs/8", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/programs/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "<no-route>", "404")))
}
