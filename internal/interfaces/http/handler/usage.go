package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	usageapp "github.com/stockroom/backend/internal/application/usage"
)

// UsageHandler handles consumption record API endpoints
type UsageHandler struct {
	BaseHandler
	usageService *usageapp.UsageService
}

// NewUsageHandler creates a new UsageHandler
func NewUsageHandler(usageService *usageapp.UsageService) *UsageHandler {
	return &UsageHandler{usageService: usageService}
}

// Create godoc
// @Summary      Record consumption
// @Description  Creates a usage record and draws down each referenced batch in one transaction
// @Tags         usages
// @Accept       json
// @Produce      json
// @Param        request body usageapp.CreateUsageRequest true "Usage to record"
// @Success      201 {object} dto.Response{data=usageapp.UsageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /usages [post]
func (h *UsageHandler) Create(c *gin.Context) {
	var req usageapp.CreateUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.usageService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get godoc
// @Summary      Get a usage record
// @Tags         usages
// @Produce      json
// @Param        id path string true "Usage ID" format(uuid)
// @Success      200 {object} dto.Response{data=usageapp.UsageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /usages/{id} [get]
func (h *UsageHandler) Get(c *gin.Context) {
	usageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid usage ID")
		return
	}

	resp, err := h.usageService.GetByID(c.Request.Context(), usageID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary      List usage records
// @Tags         usages
// @Produce      json
// @Param        outlet_id query string false "Filter by outlet" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]usageapp.UsageResponse,meta=dto.Meta}
// @Router       /usages [get]
func (h *UsageHandler) List(c *gin.Context) {
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
		items, err := h.usageService.ListByOutlet(c.Request.Context(), outletID, filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, items)
		return
	}

	result, err := h.usageService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @Summary      Update a usage record's header
// @Tags         usages
// @Accept       json
// @Produce      json
// @Param        id path string true "Usage ID" format(uuid)
// @Param        request body usageapp.UpdateUsageRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=usageapp.UsageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /usages/{id} [put]
func (h *UsageHandler) Update(c *gin.Context) {
	usageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid usage ID")
		return
	}

	var req usageapp.UpdateUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.usageService.Update(c.Request.Context(), usageID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// AddLine godoc
// @Summary      Add a line to a usage record
// @Description  Draws the quantity down from the batch in the same transaction
// @Tags         usages
// @Accept       json
// @Produce      json
// @Param        id path string true "Usage ID" format(uuid)
// @Param        request body usageapp.UsageLineRequest true "Line to add"
// @Success      200 {object} dto.Response{data=usageapp.UsageResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /usages/{id}/lines [post]
func (h *UsageHandler) AddLine(c *gin.Context) {
	usageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid usage ID")
		return
	}

	var req usageapp.UsageLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.usageService.AddLine(c.Request.Context(), usageID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveLine godoc
// @Summary      Remove a line from a usage record
// @Description  Restores the drawn quantity back to the batch
// @Tags         usages
// @Produce      json
// @Param        id path string true "Usage ID" format(uuid)
// @Param        line_id path string true "Line ID" format(uuid)
// @Success      200 {object} dto.Response{data=usageapp.UsageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /usages/{id}/lines/{line_id} [delete]
func (h *UsageHandler) RemoveLine(c *gin.Context) {
	usageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid usage ID")
		return
	}
	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	resp, err := h.usageService.RemoveLine(c.Request.Context(), usageID, lineID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @Summary      Delete a usage record
// @Description  Restores every line's quantity back to its batch before deleting
// @Tags         usages
// @Produce      json
// @Param        id path string true "Usage ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /usages/{id} [delete]
func (h *UsageHandler) Delete(c *gin.Context) {
	usageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid usage ID")
		return
	}

	if err := h.usageService.Delete(c.Request.Context(), usageID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CheckQuantity godoc
// @Summary      Check a draw-down quantity
// @Description  Advisory check; reports a warning when the quantity exceeds the batch's stock but never blocks
// @Tags         usages
// @Accept       json
// @Produce      json
// @Param        request body usageapp.CheckQuantityRequest true "Batch and quantity to check"
// @Success      200 {object} dto.Response{data=usageapp.CheckQuantityResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /usages/check-quantity [post]
func (h *UsageHandler) CheckQuantity(c *gin.Context) {
	var req usageapp.CheckQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.usageService.CheckQuantity(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
