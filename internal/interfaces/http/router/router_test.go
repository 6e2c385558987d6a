package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func TestRouterDefaultVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(NewDomainGroup("inventory", "/inventory").GET("/batches", okHandler))
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/inventory/batches", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterCustomVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))
	r.Register(NewDomainGroup("system", "/system").GET("/ping", okHandler))
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/system/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/ping", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDomainGroupMethods(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	dg := NewDomainGroup("deliveries", "/deliveries").
		GET("", okHandler).
		POST("", okHandler).
		PUT("/:id", okHandler).
		DELETE("/:id", okHandler)
	r.Register(dg).Setup()

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/deliveries"},
		{http.MethodPost, "/api/v1/deliveries"},
		{http.MethodPut, "/api/v1/deliveries/42"},
		{http.MethodDelete, "/api/v1/deliveries/42"},
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestDomainGroupSubgroupAndMiddleware(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	called := false
	dg := NewDomainGroup("catalog", "/catalog").Use(func(c *gin.Context) {
		called = true
		c.Next()
	})
	dg.Group("products", "/products").GET("", okHandler)
	r.Register(dg).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
	assert.Equal(t, "catalog", dg.Name())
	assert.Equal(t, "/catalog", dg.Prefix())
}
