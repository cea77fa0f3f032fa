package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/garmentflow/wms/internal/logistics/entity"
	"github.com/garmentflow/wms/internal/logistics/repository"
)

// DeliveryService owns delivery CRUD. Deliveries are addressed by row id
// or by their external deliveryId interchangeably.
type DeliveryService struct {
	repo *repository.DeliveryRepository
}

func NewDeliveryService(repo *repository.DeliveryRepository) *DeliveryService {
	return &DeliveryService{repo: repo}
}

type CreateDeliveryRequest struct {
	DeliveryID string `json:"deliveryId" binding:"required,min=3,max=64"`
	OrderID    string `json:"orderId" binding:"required,min=1,max=64"`

	ReceiverName    string `json:"receiverName"`
	ReceiverAddress string `json:"receiverAddress"`
	ReceiverPhone   string `json:"receiverPhone"`
	CourierName     string `json:"courierName"`
	CourierPhone    string `json:"courierPhone"`

	ItemDescription string           `json:"itemDescription"`
	Quantity        int              `json:"quantity"`
	Weight          *decimal.Decimal `json:"weight"`

	DeliveryDate  *time.Time `json:"deliveryDate"`
	Status        string     `json:"status" binding:"omitempty,oneof=Pending 'In Transit' Delivered Cancelled"`
	PaymentStatus string     `json:"paymentStatus" binding:"omitempty,oneof=Unpaid Paid"`
}

type UpdateDeliveryRequest struct {
	OrderID *string `json:"orderId"`

	ReceiverName    *string `json:"receiverName"`
	ReceiverAddress *string `json:"receiverAddress"`
	ReceiverPhone   *string `json:"receiverPhone"`
	CourierName     *string `json:"courierName"`
	CourierPhone    *string `json:"courierPhone"`

	ItemDescription *string          `json:"itemDescription"`
	Quantity        *int             `json:"quantity"`
	Weight          *decimal.Decimal `json:"weight"`

	DeliveryDate  *time.Time `json:"deliveryDate"`
	Status        *string    `json:"status"`
	PaymentStatus *string    `json:"paymentStatus"`
}

func (s *DeliveryService) List(ctx context.Context, f repository.DeliveryFilters) ([]entity.Delivery, error) {
	return s.repo.FindAll(ctx, f)
}

func (s *DeliveryService) Get(ctx context.Context, ref string) (*entity.Delivery, error) {
	delivery, err := s.repo.FindByRef(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: "Delivery", Ref: ref}
	}
	return delivery, err
}

func (s *DeliveryService) Create(ctx context.Context, req *CreateDeliveryRequest) (*entity.Delivery, error) {
	delivery := &entity.Delivery{
		ID:              entity.NewID(),
		DeliveryID:      strings.TrimSpace(req.DeliveryID),
		OrderID:         strings.TrimSpace(req.OrderID),
		ReceiverName:    req.ReceiverName,
		ReceiverAddress: req.ReceiverAddress,
		ReceiverPhone:   req.ReceiverPhone,
		CourierName:     req.CourierName,
		CourierPhone:    req.CourierPhone,
		ItemDescription: req.ItemDescription,
		Quantity:        req.Quantity,
		DeliveryDate:    req.DeliveryDate,
		Status:          req.Status,
		PaymentStatus:   req.PaymentStatus,
	}
	if delivery.Quantity <= 0 {
		delivery.Quantity = 1
	}
	if req.Weight != nil {
		delivery.Weight = *req.Weight
	}
	if delivery.Status == "" {
		delivery.Status = entity.DeliveryStatusPending
	}
	if delivery.PaymentStatus == "" {
		delivery.PaymentStatus = entity.PaymentStatusUnpaid
	}

	if err := s.repo.Create(ctx, delivery); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, &DuplicateError{Key: "deliveryId", Value: delivery.DeliveryID}
		}
		return nil, err
	}
	return delivery, nil
}

func (s *DeliveryService) Update(ctx context.Context, ref string, req *UpdateDeliveryRequest) (*entity.Delivery, error) {
	delivery, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	if req.OrderID != nil {
		delivery.OrderID = strings.TrimSpace(*req.OrderID)
	}
	if req.ReceiverName != nil {
		delivery.ReceiverName = *req.ReceiverName
	}
	if req.ReceiverAddress != nil {
		delivery.ReceiverAddress = *req.ReceiverAddress
	}
	if req.ReceiverPhone != nil {
		delivery.ReceiverPhone = *req.ReceiverPhone
	}
	if req.CourierName != nil {
		delivery.CourierName = *req.CourierName
	}
	if req.CourierPhone != nil {
		delivery.CourierPhone = *req.CourierPhone
	}
	if req.ItemDescription != nil {
		delivery.ItemDescription = *req.ItemDescription
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, &ValidationError{Message: "quantity must be > 0"}
		}
		delivery.Quantity = *req.Quantity
	}
	if req.Weight != nil {
		delivery.Weight = *req.Weight
	}
	if req.DeliveryDate != nil {
		delivery.DeliveryDate = req.DeliveryDate
	}
	if req.Status != nil {
		if !entity.IsValidDeliveryStatus(*req.Status) {
			return nil, &ValidationError{Message: "Invalid status value"}
		}
		delivery.Status = *req.Status
	}
	if req.PaymentStatus != nil {
		if *req.PaymentStatus != entity.PaymentStatusUnpaid && *req.PaymentStatus != entity.PaymentStatusPaid {
			return nil, &ValidationError{Message: "Invalid payment status value"}
		}
		delivery.PaymentStatus = *req.PaymentStatus
	}

	if err := s.repo.Save(ctx, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}

func (s *DeliveryService) Delete(ctx context.Context, ref string) error {
	delivery, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, delivery.ID)
}
