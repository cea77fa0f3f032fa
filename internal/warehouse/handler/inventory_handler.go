package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garmentflow/wms/internal/warehouse/repository"
	"github.com/garmentflow/wms/internal/warehouse/service"
)

// InventoryHandler serves the /inventory routes.
type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// List inventory items
// GET /api/inventory?type=xxx&search=xxx&minQty=n&sort=-updatedAt&page=1&pageSize=20
func (h *InventoryHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := repository.ItemFilters{
		Type:   c.Query("type"),
		Search: c.Query("search"),
	}
	if mq := c.Query("minQty"); mq != "" {
		if v, err := strconv.Atoi(mq); err == nil {
			filters.MinQty = &v
		}
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, c.Query("sort"), filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	Success(c, ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	})
}

// Get one item
// GET /api/inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, item)
}

// Create an item
// POST /api/inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, item)
}

// Update an item; nil fields are left alone, so PATCH and PUT share it
// PUT|PATCH /api/inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	var req service.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, item)
}

// Delete an item
// DELETE /api/inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// LowStock reports items at or below their reorder level, each with a
// suggested reorder quantity.
// GET /api/inventory/low-stock?type=RawMaterial
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.svc.LowStock(c.Request.Context(), c.Query("type"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, items)
}

// Categories lists the distinct raw-material categories in use.
// GET /api/inventory/categories
func (h *InventoryHandler) Categories(c *gin.Context) {
	categories, err := h.svc.RawMaterialCategories(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, categories)
}

// Adjust applies a signed quantity delta to one item. Reason and note
// are accepted but not persisted.
// PATCH /api/inventory/:id/adjust  {"amount": -5, "reason": "damage"}
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req struct {
		Amount *int   `json:"amount" binding:"required"`
		Reason string `json:"reason"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "amount is required")
		return
	}

	item, err := h.svc.Adjust(c.Request.Context(), c.Param("id"), *req.Amount)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, item)
}
