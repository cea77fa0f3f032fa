package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garmentflow/wms/internal/warehouse/service"
)

// SupplierHandler serves the /suppliers routes. Suppliers are addressed
// by their sequential number, not the row id.
type SupplierHandler struct {
	svc *service.SupplierService
}

func NewSupplierHandler(svc *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

func supplierNumber(c *gin.Context) (int64, bool) {
	n, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil || n <= 0 {
		BadRequest(c, "Invalid supplier number")
		return 0, false
	}
	return n, true
}

// List suppliers
// GET /api/suppliers?status=active&search=xxx
func (h *SupplierHandler) List(c *gin.Context) {
	filters := map[string]string{
		"status": c.Query("status"),
		"search": c.Query("search"),
	}

	suppliers, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, suppliers)
}

// Get one supplier
// GET /api/suppliers/:number
func (h *SupplierHandler) Get(c *gin.Context) {
	number, ok := supplierNumber(c)
	if !ok {
		return
	}

	supplier, err := h.svc.Get(c.Request.Context(), number)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, supplier)
}

// Create a supplier
// POST /api/suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req service.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	supplier, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, supplier)
}

// Update a supplier
// PUT /api/suppliers/:number
func (h *SupplierHandler) Update(c *gin.Context) {
	number, ok := supplierNumber(c)
	if !ok {
		return
	}

	var req service.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	supplier, err := h.svc.Update(c.Request.Context(), number, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, supplier)
}

// UpdateStatus patches only the supplier status.
// PATCH /api/suppliers/:number/status  {"status": "blacklisted"}
func (h *SupplierHandler) UpdateStatus(c *gin.Context) {
	number, ok := supplierNumber(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "status is required")
		return
	}

	supplier, err := h.svc.UpdateStatus(c.Request.Context(), number, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, supplier)
}

// Delete a supplier
// DELETE /api/suppliers/:number
func (h *SupplierHandler) Delete(c *gin.Context) {
	number, ok := supplierNumber(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), number); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}
