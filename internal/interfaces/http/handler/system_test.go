package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHealthChecker struct {
	err error
}

func (f *fakeHealthChecker) Ping() error { return f.err }

func newSystemRouter(db HealthChecker) *gin.Engine {
	h := NewSystemHandler(db)
	engine := gin.New()
	g := engine.Group("/system")
	g.GET("/info", h.GetSystemInfo)
	g.GET("/ping", h.Ping)
	g.GET("/health", h.Health)
	return engine
}

func systemGet(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestSystemHandlerPing(t *testing.T) {
	engine := newSystemRouter(nil)

	w := systemGet(t, engine, "/system/ping")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "pong", data["message"])
}

func TestSystemHandlerInfo(t *testing.T) {
	engine := newSystemRouter(nil)

	w := systemGet(t, engine, "/system/info")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "Stockroom API", data["name"])
	assert.NotEmpty(t, data["go_version"])
}

func TestSystemHandlerHealth(t *testing.T) {
	t.Run("healthy database", func(t *testing.T) {
		engine := newSystemRouter(&fakeHealthChecker{})

		w := systemGet(t, engine, "/system/health")

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "ok", data["status"])
		assert.Equal(t, "ok", data["database"])
	})

	t.Run("unreachable database", func(t *testing.T) {
		engine := newSystemRouter(&fakeHealthChecker{err: errors.New("connection refused")})

		w := systemGet(t, engine, "/system/health")

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "degraded", data["status"])
		assert.Equal(t, "unreachable", data["database"])
	})

	t.Run("no database configured", func(t *testing.T) {
		engine := newSystemRouter(nil)

		w := systemGet(t, engine, "/system/health")

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "not configured", data["database"])
	})
}
