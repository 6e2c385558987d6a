package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	inventoryapp "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Map-backed repository fakes for driving handlers through the real service.

type fakeBatchRepository struct {
	batches map[uuid.UUID]*inventory.Batch
}

func newFakeBatchRepository() *fakeBatchRepository {
	return &fakeBatchRepository{batches: make(map[uuid.UUID]*inventory.Batch)}
}

func (f *fakeBatchRepository) FindByID(_ context.Context, id uuid.UUID) (*inventory.Batch, error) {
	if b, ok := f.batches[id]; ok {
		return b, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeBatchRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeBatchRepository) FindByKey(_ context.Context, key inventory.BatchKey) (*inventory.Batch, error) {
	for _, b := range f.batches {
		if !b.Active {
			continue
		}
		if b.ProductID != key.ProductID || b.OutletID != key.OutletID || b.LocationID != key.LocationID {
			continue
		}
		if key.ExpiryDate == nil && b.ExpiryDate == nil {
			return b, nil
		}
		if key.ExpiryDate != nil && b.ExpiryDate != nil && key.ExpiryDate.Equal(*b.ExpiryDate) {
			return b, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeBatchRepository) FindByKeyForUpdate(ctx context.Context, key inventory.BatchKey) (*inventory.Batch, error) {
	return f.FindByKey(ctx, key)
}

func (f *fakeBatchRepository) FindAll(_ context.Context, _ shared.Filter) ([]*inventory.Batch, error) {
	out := make([]*inventory.Batch, 0, len(f.batches))
	for _, b := range f.batches {
		if b.Active {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBatchRepository) FindByProduct(_ context.Context, productID uuid.UUID, _ shared.Filter) ([]*inventory.Batch, error) {
	var out []*inventory.Batch
	for _, b := range f.batches {
		if b.Active && b.ProductID == productID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBatchRepository) FindByOutlet(_ context.Context, outletID uuid.UUID, _ shared.Filter) ([]*inventory.Batch, error) {
	var out []*inventory.Batch
	for _, b := range f.batches {
		if b.Active && b.OutletID == outletID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBatchRepository) FindExpiringSoon(_ context.Context, withinDays int, _ shared.Filter) ([]*inventory.Batch, error) {
	cutoff := time.Now().AddDate(0, 0, withinDays)
	var out []*inventory.Batch
	for _, b := range f.batches {
		if b.Active && b.HasStock() && b.ExpiryDate != nil && !b.ExpiryDate.After(cutoff) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBatchRepository) FindBelowReorder(_ context.Context, _ shared.Filter) ([]*inventory.ReorderAlert, error) {
	return nil, nil
}

func (f *fakeBatchRepository) Save(_ context.Context, batch *inventory.Batch) error {
	f.batches[batch.ID] = batch
	return nil
}

func (f *fakeBatchRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	var n int64
	for _, b := range f.batches {
		if b.Active {
			n++
		}
	}
	return n, nil
}

type fakeProductRepository struct {
	products map[uuid.UUID]*catalog.Product
}

func (f *fakeProductRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeProductRepository) FindAll(_ context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range f.products {
		if p.Active || filter.IncludeArchived {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProductRepository) FindByOutlet(_ context.Context, outletID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range f.products {
		if p.Active && p.OutletID == outletID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProductRepository) Save(_ context.Context, p *catalog.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.products)), nil
}

type fakeOutletRepository struct {
	outlets map[uuid.UUID]*catalog.Outlet
}

func (f *fakeOutletRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Outlet, error) {
	if o, ok := f.outlets[id]; ok {
		return o, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeOutletRepository) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Outlet, error) {
	var out []catalog.Outlet
	for _, o := range f.outlets {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeOutletRepository) Save(_ context.Context, o *catalog.Outlet) error {
	f.outlets[o.ID] = o
	return nil
}

func (f *fakeOutletRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.outlets)), nil
}

type fakeLocationRepository struct {
	locations map[uuid.UUID]*catalog.Location
}

func (f *fakeLocationRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Location, error) {
	if l, ok := f.locations[id]; ok {
		return l, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeLocationRepository) FindAll(_ context.Context, filter shared.Filter) ([]catalog.Location, error) {
	var out []catalog.Location
	for _, l := range f.locations {
		if l.Active || filter.IncludeArchived {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeLocationRepository) Save(_ context.Context, l *catalog.Location) error {
	f.locations[l.ID] = l
	return nil
}

func (f *fakeLocationRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.locations)), nil
}

// inventoryFixture wires the real ledger service over fakes and mounts the
// handler's routes the way the server does.
type inventoryFixture struct {
	engine   *gin.Engine
	batches  *fakeBatchRepository
	product  *catalog.Product
	outlet   *catalog.Outlet
	location *catalog.Location
}

func newInventoryFixture(t *testing.T) *inventoryFixture {
	t.Helper()

	outlet, err := catalog.NewOutlet("Main Kitchen", "")
	require.NoError(t, err)
	location, err := catalog.NewLocation("Walk-in Freezer", catalog.LocationTypeFreezer1, "")
	require.NoError(t, err)
	product, err := catalog.NewProduct("Chicken Wings", "", outlet.ID, location.ID, catalog.UomKilogram)
	require.NoError(t, err)

	batches := newFakeBatchRepository()
	service := inventoryapp.NewLedgerService(
		batches,
		&fakeProductRepository{products: map[uuid.UUID]*catalog.Product{product.ID: product}},
		&fakeOutletRepository{outlets: map[uuid.UUID]*catalog.Outlet{outlet.ID: outlet}},
		&fakeLocationRepository{locations: map[uuid.UUID]*catalog.Location{location.ID: location}},
		inventoryapp.NewNoOpTransactionScope(batches),
	)

	h := NewInventoryHandler(service, 7)
	engine := gin.New()
	g := engine.Group("/inventory")
	g.GET("/batches", h.ListBatches)
	g.GET("/batches/expiring", h.ListExpiringSoon)
	g.GET("/batches/:id", h.GetBatch)
	g.POST("/batches/add-stock", h.AddStock)
	g.POST("/batches/:id/remove-stock", h.RemoveStock)
	g.POST("/batches/:id/archive", h.ArchiveBatch)
	g.GET("/reorder-alerts", h.ListReorderAlerts)

	return &inventoryFixture{
		engine:   engine,
		batches:  batches,
		product:  product,
		outlet:   outlet,
		location: location,
	}
}

func (fx *inventoryFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fx.engine.ServeHTTP(w, req)
	return w
}

func (fx *inventoryFixture) seedBatch(t *testing.T, quantity string, expiry *time.Time) *inventory.Batch {
	t.Helper()
	key := inventory.NewBatchKey(fx.product.ID, fx.outlet.ID, fx.location.ID, expiry)
	batch, err := inventory.NewBatch(key, decimal.RequireFromString(quantity), nil)
	require.NoError(t, err)
	require.NoError(t, fx.batches.Save(context.Background(), batch))
	return batch
}

func TestInventoryHandlerAddStockCreatesBatch(t *testing.T) {
	fx := newInventoryFixture(t)

	w := fx.do(t, http.MethodPost, "/inventory/batches/add-stock", gin.H{
		"product_id":  fx.product.ID,
		"outlet_id":   fx.outlet.ID,
		"location_id": fx.location.ID,
		"quantity":    "5.5",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "5.5", data["quantity"])
	assert.Equal(t, "Chicken Wings", data["product_name"])
	assert.Len(t, fx.batches.batches, 1)
}

func TestInventoryHandlerAddStockMergesSameKey(t *testing.T) {
	fx := newInventoryFixture(t)
	existing := fx.seedBatch(t, "4", nil)

	w := fx.do(t, http.MethodPost, "/inventory/batches/add-stock", gin.H{
		"product_id":  fx.product.ID,
		"outlet_id":   fx.outlet.ID,
		"location_id": fx.location.ID,
		"quantity":    "6",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, fx.batches.batches, 1)
	assert.True(t, fx.batches.batches[existing.ID].Quantity.Equal(decimal.NewFromInt(10)))
}

func TestInventoryHandlerAddStockDistinctExpiryCreatesNewBatch(t *testing.T) {
	fx := newInventoryFixture(t)
	fx.seedBatch(t, "4", nil)

	expiry := time.Now().AddDate(0, 0, 14).UTC().Truncate(24 * time.Hour)
	w := fx.do(t, http.MethodPost, "/inventory/batches/add-stock", gin.H{
		"product_id":  fx.product.ID,
		"outlet_id":   fx.outlet.ID,
		"location_id": fx.location.ID,
		"quantity":    "6",
		"expiry_date": expiry.Format(time.RFC3339),
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, fx.batches.batches, 2)
}

func TestInventoryHandlerAddStockMissingBody(t *testing.T) {
	fx := newInventoryFixture(t)

	w := fx.do(t, http.MethodPost, "/inventory/batches/add-stock", gin.H{
		"quantity": "5",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, decodeResponse(t, w).Error.Code)
}

func TestInventoryHandlerAddStockUnknownProduct(t *testing.T) {
	fx := newInventoryFixture(t)

	w := fx.do(t, http.MethodPost, "/inventory/batches/add-stock", gin.H{
		"product_id":  uuid.New(),
		"outlet_id":   fx.outlet.ID,
		"location_id": fx.location.ID,
		"quantity":    "5",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInventoryHandlerRemoveStock(t *testing.T) {
	fx := newInventoryFixture(t)
	batch := fx.seedBatch(t, "10", nil)

	w := fx.do(t, http.MethodPost, "/inventory/batches/"+batch.ID.String()+"/remove-stock", gin.H{
		"quantity": "4",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, fx.batches.batches[batch.ID].Quantity.Equal(decimal.NewFromInt(6)))
}

func TestInventoryHandlerRemoveStockInsufficient(t *testing.T) {
	fx := newInventoryFixture(t)
	batch := fx.seedBatch(t, "2", nil)

	w := fx.do(t, http.MethodPost, "/inventory/batches/"+batch.ID.String()+"/remove-stock", gin.H{
		"quantity": "5",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
	// Failed removal must not change the batch.
	assert.True(t, fx.batches.batches[batch.ID].Quantity.Equal(decimal.NewFromInt(2)))
}

func TestInventoryHandlerRemoveStockBadID(t *testing.T) {
	fx := newInventoryFixture(t)

	w := fx.do(t, http.MethodPost, "/inventory/batches/not-a-uuid/remove-stock", gin.H{
		"quantity": "1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInventoryHandlerGetBatchNotFound(t *testing.T) {
	fx := newInventoryFixture(t)

	w := fx.do(t, http.MethodGet, "/inventory/batches/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decodeResponse(t, w).Error.Code)
}

func TestInventoryHandlerListBatches(t *testing.T) {
	fx := newInventoryFixture(t)
	fx.seedBatch(t, "3", nil)

	w := fx.do(t, http.MethodGet, "/inventory/batches", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestInventoryHandlerListExpiring(t *testing.T) {
	fx := newInventoryFixture(t)
	soon := time.Now().AddDate(0, 0, 3)
	far := time.Now().AddDate(0, 0, 60)
	fx.seedBatch(t, "3", &soon)
	fx.seedBatch(t, "3", &far)

	w := fx.do(t, http.MethodGet, "/inventory/batches/expiring?within_days=7", nil)

	require.Equal(t, http.StatusOK, w.Code)
	items := decodeResponse(t, w).Data.([]any)
	assert.Len(t, items, 1)
}

func TestInventoryHandlerListExpiringRejectsNegativeWindow(t *testing.T) {
	fx := newInventoryFixture(t)

	w := fx.do(t, http.MethodGet, "/inventory/batches/expiring?within_days=-1", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInventoryHandlerArchiveEmptyBatch(t *testing.T) {
	fx := newInventoryFixture(t)
	batch := fx.seedBatch(t, "5", nil)
	require.NoError(t, batch.Remove(decimal.NewFromInt(5)))

	w := fx.do(t, http.MethodPost, "/inventory/batches/"+batch.ID.String()+"/archive", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, fx.batches.batches[batch.ID].Active)
}
