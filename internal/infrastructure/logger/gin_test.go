package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupRouter(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware...)
	return r
}

func TestGinMiddlewareLogsRequest(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	r := setupRouter(GinMiddleware(zap.New(core)))
	r.GET("/batches", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/batches?outlet=main", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 1, recorded.Len())
	entry := recorded.All()[0]
	assert.Equal(t, "HTTP Request", entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/batches", fields["path"])
	assert.Equal(t, "outlet=main", fields["query"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestGinMiddlewareWarnsOnClientError(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	r := setupRouter(GinMiddleware(zap.New(core)))
	r.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, zapcore.WarnLevel, recorded.All()[0].Level)
}

func TestGinMiddlewareErrorsOnServerError(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	r := setupRouter(GinMiddleware(zap.New(core)))
	r.GET("/broken", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))

	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, zapcore.ErrorLevel, recorded.All()[0].Level)
}

func TestRecoveryLogsPanic(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	r := setupRouter(Recovery(zap.New(core)))
	r.GET("/panic", func(c *gin.Context) {
		panic("something went sideways")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "Panic recovered", recorded.All()[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns stored logger", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("logger", zap.New(core))

		GetGinLogger(c).Info("from handler")

		assert.Equal(t, 1, recorded.Len())
	})

	t.Run("returns no-op when unset", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		l := GetGinLogger(c)

		require.NotNil(t, l)
		l.Info("ignored")
	})
}
