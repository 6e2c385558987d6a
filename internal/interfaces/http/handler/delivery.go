package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	deliveryapp "github.com/stockroom/backend/internal/application/delivery"
	"github.com/stockroom/backend/internal/domain/delivery"
)

// DeliveryHandler handles delivery record API endpoints
type DeliveryHandler struct {
	BaseHandler
	deliveryService *deliveryapp.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveryService *deliveryapp.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// Create godoc
// @Summary      Create a draft delivery
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        request body deliveryapp.CreateDeliveryRequest true "Delivery to create"
// @Success      201 {object} dto.Response{data=deliveryapp.DeliveryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /deliveries [post]
func (h *DeliveryHandler) Create(c *gin.Context) {
	var req deliveryapp.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.deliveryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get godoc
// @Summary      Get a delivery
// @Tags         deliveries
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Success      200 {object} dto.Response{data=deliveryapp.DeliveryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /deliveries/{id} [get]
func (h *DeliveryHandler) Get(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	resp, err := h.deliveryService.GetByID(c.Request.Context(), deliveryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary      List deliveries
// @Tags         deliveries
// @Produce      json
// @Param        status query string false "Filter by status" Enums(DRAFT, CONFIRMED, CANCELLED)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]deliveryapp.DeliveryResponse,meta=dto.Meta}
// @Router       /deliveries [get]
func (h *DeliveryHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if raw := c.Query("status"); raw != "" {
		status := delivery.DeliveryStatus(strings.ToUpper(raw))
		if !status.IsValid() {
			h.BadRequest(c, "Invalid delivery status: "+raw)
			return
		}
		items, err := h.deliveryService.ListByStatus(c.Request.Context(), status, filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, items)
		return
	}

	result, err := h.deliveryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @Summary      Update a draft delivery's header
// @Description  Confirmed and cancelled deliveries reject all edits
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Param        request body deliveryapp.UpdateDeliveryRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=deliveryapp.DeliveryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /deliveries/{id} [put]
func (h *DeliveryHandler) Update(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	var req deliveryapp.UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.deliveryService.Update(c.Request.Context(), deliveryID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// AddLine godoc
// @Summary      Add a line to a draft delivery
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Param        request body deliveryapp.DeliveryLineRequest true "Line to add"
// @Success      200 {object} dto.Response{data=deliveryapp.DeliveryResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /deliveries/{id}/lines [post]
func (h *DeliveryHandler) AddLine(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	var req deliveryapp.DeliveryLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.deliveryService.AddLine(c.Request.Context(), deliveryID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateLine godoc
// @Summary      Update a line on a draft delivery
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Param        line_id path string true "Line ID" format(uuid)
// @Param        request body deliveryapp.UpdateDeliveryLineRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=deliveryapp.DeliveryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /deliveries/{id}/lines/{line_id} [put]
func (h *DeliveryHandler) UpdateLine(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}
	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	var req deliveryapp.UpdateDeliveryLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.deliveryService.UpdateLine(c.Request.Context(), deliveryID, lineID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveLine godoc
// @Summary      Remove a line from a draft delivery
// @Tags         deliveries
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Param        line_id path string true "Line ID" format(uuid)
// @Success      200 {object} dto.Response{data=deliveryapp.DeliveryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /deliveries/{id}/lines/{line_id} [delete]
func (h *DeliveryHandler) RemoveLine(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}
	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	resp, err := h.deliveryService.RemoveLine(c.Request.Context(), deliveryID, lineID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Review godoc
// @Summary      Review a delivery before confirming
// @Description  Returns the delivery's lines with product details and any warnings that would block confirmation. Read-only.
// @Tags         deliveries
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Success      200 {object} dto.Response{data=deliveryapp.ReviewResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /deliveries/{id}/review [get]
func (h *DeliveryHandler) Review(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	resp, err := h.deliveryService.Review(c.Request.Context(), deliveryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Confirm godoc
// @Summary      Confirm a delivery
// @Description  Posts every line to the stock ledger and locks the record. All lines post or none do.
// @Tags         deliveries
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Success      200 {object} dto.Response{data=deliveryapp.DeliveryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /deliveries/{id}/confirm [post]
func (h *DeliveryHandler) Confirm(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	resp, err := h.deliveryService.Confirm(c.Request.Context(), deliveryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel godoc
// @Summary      Cancel a draft delivery
// @Tags         deliveries
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Success      200 {object} dto.Response{data=deliveryapp.DeliveryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /deliveries/{id}/cancel [post]
func (h *DeliveryHandler) Cancel(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	resp, err := h.deliveryService.Cancel(c.Request.Context(), deliveryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @Summary      Delete a draft delivery
// @Description  Confirmed deliveries are locked and cannot be deleted
// @Tags         deliveries
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	if err := h.deliveryService.Delete(c.Request.Context(), deliveryID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
