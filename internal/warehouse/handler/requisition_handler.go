package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/garmentflow/wms/internal/warehouse/entity"
	"github.com/garmentflow/wms/internal/warehouse/service"
)

// RequisitionHandler serves the /purchase-requisitions routes.
type RequisitionHandler struct {
	svc *service.RequisitionService
}

func NewRequisitionHandler(svc *service.RequisitionService) *RequisitionHandler {
	return &RequisitionHandler{svc: svc}
}

// List requisitions, newest first
// GET /api/purchase-requisitions?status=Draft&q=PR-2026
func (h *RequisitionHandler) List(c *gin.Context) {
	prs, err := h.svc.List(c.Request.Context(), c.Query("status"), c.Query("q"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, prs)
}

// Get one requisition with its lines
// GET /api/purchase-requisitions/:id
func (h *RequisitionHandler) Get(c *gin.Context) {
	pr, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, pr)
}

// Create a requisition
// POST /api/purchase-requisitions
func (h *RequisitionHandler) Create(c *gin.Context) {
	var req service.CreateRequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if req.CreatedBy == "" {
		req.CreatedBy = GetUserID(c)
	}

	pr, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, pr)
}

// Update a Draft or Submitted requisition
// PUT /api/purchase-requisitions/:id
func (h *RequisitionHandler) Update(c *gin.Context) {
	var req service.UpdateRequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	pr, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, pr)
}

func (h *RequisitionHandler) transition(c *gin.Context, action string) {
	pr, err := h.svc.Transition(c.Request.Context(), c.Param("id"), action)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, pr)
}

// Submit moves Draft → Submitted.
// POST /api/purchase-requisitions/:id/submit
func (h *RequisitionHandler) Submit(c *gin.Context) {
	h.transition(c, entity.PRActionSubmit)
}

// Approve moves Submitted → Approved.
// POST /api/purchase-requisitions/:id/approve
func (h *RequisitionHandler) Approve(c *gin.Context) {
	h.transition(c, entity.PRActionApprove)
}

// Order moves Approved → Ordered.
// POST /api/purchase-requisitions/:id/order
func (h *RequisitionHandler) Order(c *gin.Context) {
	h.transition(c, entity.PRActionOrder)
}

// Cancel moves any pre-receipt state → Cancelled.
// POST /api/purchase-requisitions/:id/cancel
func (h *RequisitionHandler) Cancel(c *gin.Context) {
	h.transition(c, entity.PRActionCancel)
}

// Receive books goods into inventory. An empty body or an empty lines
// array receives every line in full; a populated lines array books a
// partial receipt.
// POST /api/purchase-requisitions/:id/receive  {"lines":[{"item":"...","qty":3}]}
func (h *RequisitionHandler) Receive(c *gin.Context) {
	var req struct {
		Lines []service.ReceiveLineRequest `json:"lines"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	pr, err := h.svc.Receive(c.Request.Context(), c.Param("id"), req.Lines)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, pr)
}
