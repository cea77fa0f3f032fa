package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garmentflow/wms/internal/logistics/service"
)

// DriverHandler serves the /drivers routes.
type DriverHandler struct {
	svc *service.DriverService
}

func NewDriverHandler(svc *service.DriverService) *DriverHandler {
	return &DriverHandler{svc: svc}
}

// List drivers
// GET /api/drivers?status=Available&q=xxx
func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.svc.List(c.Request.Context(), c.Query("status"), c.Query("q"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, drivers)
}

// Get one driver, by row id or driverId
// GET /api/drivers/:ref
func (h *DriverHandler) Get(c *gin.Context) {
	driver, err := h.svc.Get(c.Request.Context(), c.Param("ref"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, driver)
}

// Create a driver
// POST /api/drivers
func (h *DriverHandler) Create(c *gin.Context) {
	var req service.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	driver, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, driver)
}

// Update a driver
// PUT /api/drivers/:ref
func (h *DriverHandler) Update(c *gin.Context) {
	var req service.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	driver, err := h.svc.Update(c.Request.Context(), c.Param("ref"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, driver)
}

// Delete a driver
// DELETE /api/drivers/:ref
func (h *DriverHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("ref")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}
