package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/stockroom/backend/internal/application/inventory"
)

// InventoryHandler handles stock batch API endpoints
type InventoryHandler struct {
	BaseHandler
	ledgerService     *inventoryapp.LedgerService
	expiryWarningDays int
}

// NewInventoryHandler creates a new InventoryHandler. expiryWarningDays is
// the default window for the expiring-soon report when the request does not
// override it.
func NewInventoryHandler(ledgerService *inventoryapp.LedgerService, expiryWarningDays int) *InventoryHandler {
	if expiryWarningDays <= 0 {
		expiryWarningDays = 7
	}
	return &InventoryHandler{
		ledgerService:     ledgerService,
		expiryWarningDays: expiryWarningDays,
	}
}

// AddStock godoc
// @Summary      Add stock
// @Description  Records received stock, merging into the active batch for the same product, outlet, location and expiry date
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.AddStockRequest true "Stock to add"
// @Success      200 {object} dto.Response{data=inventoryapp.BatchResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/batches/add-stock [post]
func (h *InventoryHandler) AddStock(c *gin.Context) {
	var req inventoryapp.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.ledgerService.AddStock(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batch)
}

// RemoveStock godoc
// @Summary      Remove stock from a batch
// @Description  Decrements a batch's quantity; fails when the batch holds less than requested
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Batch ID" format(uuid)
// @Param        request body inventoryapp.RemoveStockRequest true "Quantity to remove"
// @Success      200 {object} dto.Response{data=inventoryapp.BatchResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/batches/{id}/remove-stock [post]
func (h *InventoryHandler) RemoveStock(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	var req inventoryapp.RemoveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.ledgerService.RemoveStock(c.Request.Context(), batchID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batch)
}

// GetBatch godoc
// @Summary      Get a batch
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Batch ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.BatchResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/batches/{id} [get]
func (h *InventoryHandler) GetBatch(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	batch, err := h.ledgerService.GetBatch(c.Request.Context(), batchID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batch)
}

// ListBatches godoc
// @Summary      List batches
// @Description  Lists active batches ordered by expiry date, soonest first
// @Tags         inventory
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field"
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]inventoryapp.BatchResponse,meta=dto.Meta}
// @Router       /inventory/batches [get]
func (h *InventoryHandler) ListBatches(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.ledgerService.ListBatches(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListBatchesByProduct godoc
// @Summary      List batches for a product
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]inventoryapp.BatchResponse}
// @Router       /inventory/products/{id}/batches [get]
func (h *InventoryHandler) ListBatchesByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batches, err := h.ledgerService.ListBatchesByProduct(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batches)
}

// ListBatchesByOutlet godoc
// @Summary      List batches for an outlet
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Outlet ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]inventoryapp.BatchResponse}
// @Router       /inventory/outlets/{id}/batches [get]
func (h *InventoryHandler) ListBatchesByOutlet(c *gin.Context) {
	outletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid outlet ID")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batches, err := h.ledgerService.ListBatchesByOutlet(c.Request.Context(), outletID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batches)
}

// ListExpiringSoon godoc
// @Summary      List batches expiring soon
// @Description  Lists active batches with stock whose expiry date falls within the given window
// @Tags         inventory
// @Produce      json
// @Param        within_days query int false "Window in days" default(7)
// @Success      200 {object} dto.Response{data=[]inventoryapp.BatchResponse}
// @Router       /inventory/batches/expiring [get]
func (h *InventoryHandler) ListExpiringSoon(c *gin.Context) {
	withinDays := h.expiryWarningDays
	if raw := c.Query("within_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "within_days must be a non-negative integer")
			return
		}
		withinDays = parsed
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batches, err := h.ledgerService.ListExpiringSoon(c.Request.Context(), withinDays, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batches)
}

// ListReorderAlerts godoc
// @Summary      List reorder alerts
// @Description  Lists products whose on-hand total is at or below their reorder level
// @Tags         inventory
// @Produce      json
// @Success      200 {object} dto.Response{data=[]inventoryapp.ReorderAlertResponse}
// @Router       /inventory/reorder-alerts [get]
func (h *InventoryHandler) ListReorderAlerts(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	alerts, err := h.ledgerService.ListBelowReorder(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, alerts)
}

// ArchiveBatch godoc
// @Summary      Archive a batch
// @Description  Hides an empty batch from listings; batches with stock cannot be archived
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Batch ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/batches/{id}/archive [post]
func (h *InventoryHandler) ArchiveBatch(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	if err := h.ledgerService.ArchiveBatch(c.Request.Context(), batchID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
