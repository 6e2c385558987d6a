package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/stockroom/backend/internal/application/catalog"
)

// CatalogHandler handles reference data API endpoints for products, outlets,
// locations and vendors.
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// parseIDParam parses the named path parameter as a UUID
func (h *CatalogHandler) parseIDParam(c *gin.Context, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// ==================== Products ====================

// CreateProduct godoc
// @Summary      Create a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product to create"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalogService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetProduct godoc
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := h.parseIDParam(c, "product")
	if !ok {
		return
	}

	resp, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListProducts godoc
// @Summary      List products
// @Description  Archived products are excluded unless include_archived is set
// @Tags         catalog
// @Produce      json
// @Param        outlet_id query string false "Filter by outlet" format(uuid)
// @Param        search query string false "Search by name or brand"
// @Param        include_archived query bool false "Include archived products"
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Router       /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if raw := c.Query("outlet_id"); raw != "" {
		outletID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid outlet ID")
			return
		}
		items, err := h.catalogService.ListProductsByOutlet(c.Request.Context(), outletID, filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, items)
		return
	}

	result, err := h.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateProduct godoc
// @Summary      Update a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateProductRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.parseIDParam(c, "product")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalogService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ArchiveProduct godoc
// @Summary      Archive a product
// @Description  Hides the product from pickers; existing batches and history keep referencing it
// @Tags         catalog
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{id}/archive [post]
func (h *CatalogHandler) ArchiveProduct(c *gin.Context) {
	id, ok := h.parseIDParam(c, "product")
	if !ok {
		return
	}

	if err := h.catalogService.ArchiveProduct(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RestoreProduct godoc
// @Summary      Restore an archived product
// @Tags         catalog
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{id}/restore [post]
func (h *CatalogHandler) RestoreProduct(c *gin.Context) {
	id, ok := h.parseIDParam(c, "product")
	if !ok {
		return
	}

	if err := h.catalogService.RestoreProduct(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ==================== Outlets ====================

// CreateOutlet godoc
// @Summary      Create an outlet
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateOutletRequest true "Outlet to create"
// @Success      201 {object} dto.Response{data=catalogapp.OutletResponse}
// @Router       /catalog/outlets [post]
func (h *CatalogHandler) CreateOutlet(c *gin.Context) {
	var req catalogapp.CreateOutletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalogService.CreateOutlet(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetOutlet godoc
// @Summary      Get an outlet
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Outlet ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.OutletResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/outlets/{id} [get]
func (h *CatalogHandler) GetOutlet(c *gin.Context) {
	id, ok := h.parseIDParam(c, "outlet")
	if !ok {
		return
	}

	resp, err := h.catalogService.GetOutlet(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListOutlets godoc
// @Summary      List outlets
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.OutletResponse}
// @Router       /catalog/outlets [get]
func (h *CatalogHandler) ListOutlets(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.catalogService.ListOutlets(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// UpdateOutlet godoc
// @Summary      Update an outlet
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Outlet ID" format(uuid)
// @Param        request body catalogapp.UpdateOutletRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=catalogapp.OutletResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/outlets/{id} [put]
func (h *CatalogHandler) UpdateOutlet(c *gin.Context) {
	id, ok := h.parseIDParam(c, "outlet")
	if !ok {
		return
	}

	var req catalogapp.UpdateOutletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalogService.UpdateOutlet(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ==================== Locations ====================

// CreateLocation godoc
// @Summary      Create a storage location
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateLocationRequest true "Location to create"
// @Success      201 {object} dto.Response{data=catalogapp.LocationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/locations [post]
func (h *CatalogHandler) CreateLocation(c *gin.Context) {
	var req catalogapp.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalogService.CreateLocation(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetLocation godoc
// @Summary      Get a storage location
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.LocationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/locations/{id} [get]
func (h *CatalogHandler) GetLocation(c *gin.Context) {
	id, ok := h.parseIDParam(c, "location")
	if !ok {
		return
	}

	resp, err := h.catalogService.GetLocation(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListLocations godoc
// @Summary      List storage locations
// @Tags         catalog
// @Produce      json
// @Param        include_archived query bool false "Include archived locations"
// @Success      200 {object} dto.Response{data=[]catalogapp.LocationResponse}
// @Router       /catalog/locations [get]
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.catalogService.ListLocations(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// UpdateLocation godoc
// @Summary      Update a storage location
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Param        request body catalogapp.UpdateLocationRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=catalogapp.LocationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/locations/{id} [put]
func (h *CatalogHandler) UpdateLocation(c *gin.Context) {
	id, ok := h.parseIDParam(c, "location")
	if !ok {
		return
	}

	var req catalogapp.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalogService.UpdateLocation(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ArchiveLocation godoc
// @Summary      Archive a storage location
// @Tags         catalog
// @Param        id path string true "Location ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/locations/{id}/archive [post]
func (h *CatalogHandler) ArchiveLocation(c *gin.Context) {
	id, ok := h.parseIDParam(c, "location")
	if !ok {
		return
	}

	if err := h.catalogService.ArchiveLocation(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RestoreLocation godoc
// @Summary      Restore an archived storage location
// @Tags         catalog
// @Param        id path string true "Location ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/locations/{id}/restore [post]
func (h *CatalogHandler) RestoreLocation(c *gin.Context) {
	id, ok := h.parseIDParam(c, "location")
	if !ok {
		return
	}

	if err := h.catalogService.RestoreLocation(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ==================== Vendors ====================

// CreateVendor godoc
// @Summary      Create a vendor
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateVendorRequest true "Vendor to create"
// @Success      201 {object} dto.Response{data=catalogapp.VendorResponse}
// @Router       /catalog/vendors [post]
func (h *CatalogHandler) CreateVendor(c *gin.Context) {
	var req catalogapp.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalogService.CreateVendor(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetVendor godoc
// @Summary      Get a vendor
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.VendorResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/vendors/{id} [get]
func (h *CatalogHandler) GetVendor(c *gin.Context) {
	id, ok := h.parseIDParam(c, "vendor")
	if !ok {
		return
	}

	resp, err := h.catalogService.GetVendor(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListVendors godoc
// @Summary      List vendors
// @Tags         catalog
// @Produce      json
// @Param        include_archived query bool false "Include archived vendors"
// @Success      200 {object} dto.Response{data=[]catalogapp.VendorResponse}
// @Router       /catalog/vendors [get]
func (h *CatalogHandler) ListVendors(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.catalogService.ListVendors(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// UpdateVendor godoc
// @Summary      Update a vendor
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        request body catalogapp.UpdateVendorRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=catalogapp.VendorResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/vendors/{id} [put]
func (h *CatalogHandler) UpdateVendor(c *gin.Context) {
	id, ok := h.parseIDParam(c, "vendor")
	if !ok {
		return
	}

	var req catalogapp.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalogService.UpdateVendor(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ArchiveVendor godoc
// @Summary      Archive a vendor
// @Tags         catalog
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/vendors/{id}/archive [post]
func (h *CatalogHandler) ArchiveVendor(c *gin.Context) {
	id, ok := h.parseIDParam(c, "vendor")
	if !ok {
		return
	}

	if err := h.catalogService.ArchiveVendor(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RestoreVendor godoc
// @Summary      Restore an archived vendor
// @Tags         catalog
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/vendors/{id}/restore [post]
func (h *CatalogHandler) RestoreVendor(c *gin.Context) {
	id, ok := h.parseIDParam(c, "vendor")
	if !ok {
		return
	}

	if err := h.catalogService.RestoreVendor(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
