package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garmentflow/wms/internal/logistics/repository"
	"github.com/garmentflow/wms/internal/logistics/service"
)

// DeliveryHandler serves the /deliveries routes.
type DeliveryHandler struct {
	svc *service.DeliveryService
}

func NewDeliveryHandler(svc *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{svc: svc}
}

// List deliveries
// GET /api/deliveries?status=Pending&paymentStatus=Unpaid&search=xxx
func (h *DeliveryHandler) List(c *gin.Context) {
	deliveries, err := h.svc.List(c.Request.Context(), repository.DeliveryFilters{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("paymentStatus"),
		Search:        c.Query("search"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, deliveries)
}

// Get one delivery, by row id or deliveryId
// GET /api/deliveries/:ref
func (h *DeliveryHandler) Get(c *gin.Context) {
	delivery, err := h.svc.Get(c.Request.Context(), c.Param("ref"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, delivery)
}

// Create a delivery
// POST /api/deliveries
func (h *DeliveryHandler) Create(c *gin.Context) {
	var req service.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	delivery, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, delivery)
}

// Update a delivery
// PUT /api/deliveries/:ref
func (h *DeliveryHandler) Update(c *gin.Context) {
	var req service.UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	delivery, err := h.svc.Update(c.Request.Context(), c.Param("ref"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, delivery)
}

// Delete a delivery
// DELETE /api/deliveries/:ref
func (h *DeliveryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("ref")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}
