package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garmentflow/wms/internal/logistics/service"
)

// Handlers bundles the logistics-side HTTP handlers.
type Handlers struct {
	Delivery *DeliveryHandler
	Driver   *DriverHandler
	Tracking *TrackingHandler
}

func NewHandlers(
	deliverySvc *service.DeliveryService,
	driverSvc *service.DriverService,
	trackingSvc *service.TrackingService,
) *Handlers {
	return &Handlers{
		Delivery: NewDeliveryHandler(deliverySvc),
		Driver:   NewDriverHandler(driverSvc),
		Tracking: NewTrackingHandler(trackingSvc),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
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

// HandleError maps logistics service errors to the wire. Duplicate
// external identifiers come back 409.
func HandleError(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		duplicateErr  *service.DuplicateError
	)

	switch {
	case errors.As(err, &validationErr):
		Fail(c, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		Fail(c, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &duplicateErr):
		Fail(c, http.StatusConflict, duplicateErr.Error())
	default:
		Fail(c, http.StatusInternalServerError, err.Error())
	}
}
