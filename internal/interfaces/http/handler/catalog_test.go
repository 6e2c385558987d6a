package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/stockroom/backend/internal/application/catalog"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	*inventoryFixture
	products  *fakeProductRepository
	outlets   *fakeOutletRepository
	locations *fakeLocationRepository
	vendors   *fakeVendorRepository
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()

	inv := newInventoryFixture(t)
	products := &fakeProductRepository{products: map[uuid.UUID]*catalog.Product{inv.product.ID: inv.product}}
	outlets := &fakeOutletRepository{outlets: map[uuid.UUID]*catalog.Outlet{inv.outlet.ID: inv.outlet}}
	locations := &fakeLocationRepository{locations: map[uuid.UUID]*catalog.Location{inv.location.ID: inv.location}}
	vendors := &fakeVendorRepository{vendors: map[uuid.UUID]*catalog.Vendor{}}

	service := catalogapp.NewCatalogService(products, outlets, locations, vendors)
	h := NewCatalogHandler(service)

	g := inv.engine.Group("/catalog")
	g.POST("/products", h.CreateProduct)
	g.GET("/products", h.ListProducts)
	g.GET("/products/:id", h.GetProduct)
	g.PUT("/products/:id", h.UpdateProduct)
	g.POST("/products/:id/archive", h.ArchiveProduct)
	g.POST("/products/:id/restore", h.RestoreProduct)
	g.POST("/outlets", h.CreateOutlet)
	g.GET("/outlets", h.ListOutlets)
	g.GET("/outlets/:id", h.GetOutlet)
	g.PUT("/outlets/:id", h.UpdateOutlet)
	g.POST("/locations", h.CreateLocation)
	g.GET("/locations", h.ListLocations)
	g.GET("/locations/:id", h.GetLocation)
	g.PUT("/locations/:id", h.UpdateLocation)
	g.POST("/locations/:id/archive", h.ArchiveLocation)
	g.POST("/locations/:id/restore", h.RestoreLocation)
	g.POST("/vendors", h.CreateVendor)
	g.GET("/vendors", h.ListVendors)
	g.GET("/vendors/:id", h.GetVendor)
	g.PUT("/vendors/:id", h.UpdateVendor)
	g.POST("/vendors/:id/archive", h.ArchiveVendor)
	g.POST("/vendors/:id/restore", h.RestoreVendor)

	return &catalogFixture{
		inventoryFixture: inv,
		products:         products,
		outlets:          outlets,
		locations:        locations,
		vendors:          vendors,
	}
}

func TestCatalogHandlerCreateProduct(t *testing.T) {
	fx := newCatalogFixture(t)

	w := fx.do(t, http.MethodPost, "/catalog/products", gin.H{
		"name":          "Fries",
		"brand":         "McCain",
		"outlet_id":     fx.outlet.ID,
		"location_id":   fx.location.ID,
		"uom":           "kg",
		"reorder_level": "5",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "Fries", data["name"])
	assert.Equal(t, "kg", data["uom"])
	assert.Equal(t, "5", data["reorder_level"])
	assert.Len(t, fx.products.products, 2)
}

func TestCatalogHandlerCreateProductUnknownOutlet(t *testing.T) {
	fx := newCatalogFixture(t)

	w := fx.do(t, http.MethodPost, "/catalog/products", gin.H{
		"name":        "Fries",
		"outlet_id":   uuid.New(),
		"location_id": fx.location.ID,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, fx.products.products, 1)
}

func TestCatalogHandlerCreateProductMissingName(t *testing.T) {
	fx := newCatalogFixture(t)

	w := fx.do(t, http.MethodPost, "/catalog/products", gin.H{
		"outlet_id":   fx.outlet.ID,
		"location_id": fx.location.ID,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandlerArchiveProductHidesFromList(t *testing.T) {
	fx := newCatalogFixture(t)

	w := fx.do(t, http.MethodPost, "/catalog/products/"+fx.product.ID.String()+"/archive", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, fx.product.Active)

	w = fx.do(t, http.MethodGet, "/catalog/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeResponse(t, w).Data)

	// Archived products stay reachable by ID.
	w = fx.do(t, http.MethodGet, "/catalog/products/"+fx.product.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, false, data["active"])

	// And the list shows them again when asked.
	w = fx.do(t, http.MethodGet, "/catalog/products?include_archived=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w).Data, 1)
}

func TestCatalogHandlerRestoreProduct(t *testing.T) {
	fx := newCatalogFixture(t)
	fx.product.Archive()

	w := fx.do(t, http.MethodPost, "/catalog/products/"+fx.product.ID.String()+"/restore", nil)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, fx.product.Active)
}

func TestCatalogHandlerUpdateProduct(t *testing.T) {
	fx := newCatalogFixture(t)

	w := fx.do(t, http.MethodPut, "/catalog/products/"+fx.product.ID.String(), gin.H{
		"name":          "Chicken Wings Jumbo",
		"reorder_level": "10",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "Chicken Wings Jumbo", data["name"])
	assert.Equal(t, "10", data["reorder_level"])
}

func TestCatalogHandlerCreateOutlet(t *testing.T) {
	fx := newCatalogFixture(t)

	w := fx.do(t, http.MethodPost, "/catalog/outlets", gin.H{
		"name":        "Airport Kiosk",
		"description": "Terminal 2",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, fx.outlets.outlets, 2)
}

func TestCatalogHandlerCreateLocationBadType(t *testing.T) {
	fx := newCatalogFixture(t)

	w := fx.do(t, http.MethodPost, "/catalog/locations", gin.H{
		"name": "Back Shelf",
		"type": "attic",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, fx.locations.locations, 1)
}

func TestCatalogHandlerVendorLifecycle(t *testing.T) {
	fx := newCatalogFixture(t)

	w := fx.do(t, http.MethodPost, "/catalog/vendors", gin.H{"name": "Fresh Farms"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decodeResponse(t, w).Data.(map[string]any)["id"].(string)

	w = fx.do(t, http.MethodPost, "/catalog/vendors/"+id+"/archive", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = fx.do(t, http.MethodGet, "/catalog/vendors", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeResponse(t, w).Data)

	w = fx.do(t, http.MethodPost, "/catalog/vendors/"+id+"/restore", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = fx.do(t, http.MethodGet, "/catalog/vendors", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w).Data, 1)
}

func TestCatalogHandlerGetVendorBadID(t *testing.T) {
	fx := newCatalogFixture(t)

	w := fx.do(t, http.MethodGet, "/catalog/vendors/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
