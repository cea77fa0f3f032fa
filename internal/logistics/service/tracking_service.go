package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/garmentflow/wms/internal/logistics/entity"
	"github.com/garmentflow/wms/internal/logistics/repository"
)

// TrackingService appends GPS fixes and serves a delivery's history.
// Events are immutable; only the delivery row's cached location changes.
type TrackingService struct {
	repo         *repository.TrackingRepository
	deliveryRepo *repository.DeliveryRepository
}

func NewTrackingService(repo *repository.TrackingRepository, deliveryRepo *repository.DeliveryRepository) *TrackingService {
	return &TrackingService{repo: repo, deliveryRepo: deliveryRepo}
}

type TrackRequest struct {
	Lat   *float64   `json:"lat" binding:"required,gte=-90,lte=90"`
	Lng   *float64   `json:"lng" binding:"required,gte=-180,lte=180"`
	Speed float64    `json:"speed" binding:"omitempty,gte=0"`
	At    *time.Time `json:"at"`
}

// Track appends an event for the delivery (addressed by its external
// deliveryId) and overwrites the delivery's cached location in the same
// transaction. The delivery is forced into In Transit.
func (s *TrackingService) Track(ctx context.Context, deliveryID string, req *TrackRequest) (*entity.TrackingEvent, error) {
	delivery, err := s.deliveryRepo.FindByRef(ctx, deliveryID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: "Delivery", Ref: deliveryID}
	}
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if req.At != nil {
		at = *req.At
	}

	event := &entity.TrackingEvent{
		ID:         entity.NewID(),
		DeliveryID: delivery.DeliveryID,
		Lat:        *req.Lat,
		Lng:        *req.Lng,
		Speed:      req.Speed,
		At:         at,
	}

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, event); err != nil {
			return err
		}
		return s.deliveryRepo.UpdateLocationTx(tx, delivery.DeliveryID, event.Lat, event.Lng, event.At)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// History returns a delivery's events ascending by time.
func (s *TrackingService) History(ctx context.Context, deliveryID string) ([]entity.TrackingEvent, error) {
	delivery, err := s.deliveryRepo.FindByRef(ctx, deliveryID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: "Delivery", Ref: deliveryID}
	}
	if err != nil {
		return nil, err
	}
	return s.repo.History(ctx, delivery.DeliveryID)
}
