package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garmentflow/wms/internal/logistics/service"
)

// TrackingHandler serves the /tracking routes.
type TrackingHandler struct {
	svc *service.TrackingService
}

func NewTrackingHandler(svc *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{svc: svc}
}

// Track appends a GPS fix and refreshes the delivery's cached location.
// POST /api/tracking/:deliveryId  {"lat":6.9271,"lng":79.8612,"speed":32}
func (h *TrackingHandler) Track(c *gin.Context) {
	var req service.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.Track(c.Request.Context(), c.Param("deliveryId"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, event)
}

// History lists a delivery's GPS fixes ascending by time.
// GET /api/tracking/:deliveryId/history
func (h *TrackingHandler) History(c *gin.Context) {
	events, err := h.svc.History(c.Request.Context(), c.Param("deliveryId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, events)
}
