package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garmentflow/wms/internal/warehouse/service"
)

// Handlers bundles every warehouse-side HTTP handler.
type Handlers struct {
	Inventory   *InventoryHandler
	Supplier    *SupplierHandler
	Requisition *RequisitionHandler
	Auth        *AuthHandler
}

func NewHandlers(
	inventorySvc *service.InventoryService,
	supplierSvc *service.SupplierService,
	requisitionSvc *service.RequisitionService,
	authSvc *service.AuthService,
) *Handlers {
	return &Handlers{
		Inventory:   NewInventoryHandler(inventorySvc),
		Supplier:    NewSupplierHandler(supplierSvc),
		Requisition: NewRequisitionHandler(requisitionSvc),
		Auth:        NewAuthHandler(authSvc),
	}
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}

// HandleError maps a service error to the wire. Not-found on a directly
// addressed resource is 404; a dangling nested reference inside a write
// is a caller mistake and comes back 400.
func HandleError(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		referenceErr  *service.ReferenceError
		notFoundErr   *service.NotFoundError
		constraintErr *service.ConstraintError
		stockErr      *service.InsufficientStockError
		transitionErr *service.TransitionError
		duplicateErr  *service.DuplicateError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: validationErr.Message,
			Errors:  validationErr.Fields,
		})
	case errors.As(err, &referenceErr):
		BadRequest(c, referenceErr.Error())
	case errors.As(err, &notFoundErr):
		if notFoundErr.Nested {
			BadRequest(c, notFoundErr.Error())
		} else {
			NotFound(c, notFoundErr.Error())
		}
	case errors.As(err, &constraintErr):
		BadRequest(c, constraintErr.Error())
	case errors.As(err, &stockErr):
		BadRequest(c, stockErr.Error())
	case errors.As(err, &transitionErr):
		BadRequest(c, transitionErr.Error())
	case errors.As(err, &duplicateErr):
		BadRequest(c, duplicateErr.Error())
	default:
		InternalError(c, err.Error())
	}
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("pageSize"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}
