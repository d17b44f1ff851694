package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func serve(e *echo.Echo, target, remoteAddr string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name          string
		handler       echo.HandlerFunc
		expectedLevel zapcore.Level
		expectedCode  int64
	}{
		{
			name:          "success logged at info",
			handler:       okHandler,
			expectedLevel: zapcore.InfoLevel,
			expectedCode:  http.StatusOK,
		},
		{
			name: "client error logged at warn",
			handler: func(c echo.Context) error {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid raceId param")
			},
			expectedLevel: zapcore.WarnLevel,
			expectedCode:  http.StatusBadRequest,
		},
		{
			name: "server error logged at error",
			handler: func(c echo.Context) error {
				return echo.NewHTTPError(http.StatusInternalServerError)
			},
			expectedLevel: zapcore.ErrorLevel,
			expectedCode:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)

			e := echo.New()
			e.Use(RequestLogger(zap.New(core)))
			e.GET("/swims/search", tt.handler)

			serve(e, "/swims/search?surname=smith", "")

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expectedLevel, entries[0].Level)
			assert.Equal(t, "http request", entries[0].Message)

			fields := entries[0].ContextMap()
			assert.Equal(t, tt.expectedCode, fields["status"])
			assert.Equal(t, http.MethodGet, fields["method"])
			assert.Equal(t, "/swims/search?surname=smith", fields["uri"])
		})
	}
}

func TestMetrics(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/races/:id", okHandler)
	e.GET("/teapot", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot)
	})

	ok := httpRequestsTotal.WithLabelValues(http.MethodGet, "/races/:id", "200")
	teapot := httpRequestsTotal.WithLabelValues(http.MethodGet, "/teapot", "418")
	okBefore := testutil.ToFloat64(ok)
	teapotBefore := testutil.ToFloat64(teapot)

	serve(e, "/races/1", "")
	serve(e, "/races/2", "")
	rec := serve(e, "/teapot", "")

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.InDelta(t, okBefore+2, testutil.ToFloat64(ok), 0)
	assert.InDelta(t, teapotBefore+1, testutil.ToFloat64(teapot), 0)
}

func TestMetrics_CountsRecoveredPanics(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.Use(echomw.Recover())
	e.GET("/explode", func(c echo.Context) error {
		panic("boom")
	})

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/explode", "500")
	before := testutil.ToFloat64(counter)

	rec := serve(e, "/explode", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.InDelta(t, before+1, testutil.ToFloat64(counter), 0)
}

func TestRateLimit(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(2, "/healthz"))
	e.GET("/races", okHandler)
	e.GET("/healthz", okHandler)

	assert.Equal(t, http.StatusOK, serve(e, "/races", "192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusOK, serve(e, "/races", "192.0.2.1:1001").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(e, "/races", "192.0.2.1:1002").Code)

	// Budgets are per client IP.
	assert.Equal(t, http.StatusOK, serve(e, "/races", "192.0.2.2:1000").Code)

	for range 5 {
		assert.Equal(t, http.StatusOK, serve(e, "/healthz", "192.0.2.1:1003").Code)
	}
}

func TestRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	e := echo.New()
	e.IPExtractor = echo.ExtractIPDirect()
	e.Use(RateLimit(2))
	e.GET("/races", okHandler)

	codes := make([]int, 0, 6)
	for i := range 6 {
		spoofed := "203.0.113." + strconv.Itoa(i+1)
		rec := serve(e, "/races", "192.0.2.9:4000",
			echo.HeaderXForwardedFor, spoofed, echo.HeaderXRealIP, spoofed)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{
		http.StatusOK, http.StatusOK,
		http.StatusTooManyRequests, http.StatusTooManyRequests,
		http.StatusTooManyRequests, http.StatusTooManyRequests,
	}, codes)
}
