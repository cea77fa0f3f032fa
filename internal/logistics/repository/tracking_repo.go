package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/garmentflow/wms/internal/logistics/entity"
)

type TrackingRepository struct {
	db *gorm.DB
}

func NewTrackingRepository(db *gorm.DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

// History returns a delivery's tracking events ascending by time.
func (r *TrackingRepository) History(ctx context.Context, deliveryID string) ([]entity.TrackingEvent, error) {
	var events []entity.TrackingEvent
	err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID).
		Order("at ASC").
		Find(&events).Error
	return events, translate(err)
}

func (r *TrackingRepository) CreateTx(tx *gorm.DB, event *entity.TrackingEvent) error {
	return translate(tx.Create(event).Error)
}

// Transaction runs fn atomically.
func (r *TrackingRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
