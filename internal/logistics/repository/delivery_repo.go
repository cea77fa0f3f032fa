package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/garmentflow/wms/internal/logistics/entity"
)

type DeliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// DeliveryFilters narrows a delivery listing.
type DeliveryFilters struct {
	Status        string
	PaymentStatus string
	Search        string
}

func (r *DeliveryRepository) FindAll(ctx context.Context, f DeliveryFilters) ([]entity.Delivery, error) {
	query := r.db.WithContext(ctx).Model(&entity.Delivery{})

	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		query = query.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where(
			"delivery_id ILIKE ? OR order_id ILIKE ? OR receiver_name ILIKE ? OR courier_name ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var deliveries []entity.Delivery
	err := query.Order("created_at DESC").Find(&deliveries).Error
	return deliveries, translate(err)
}

// FindByRef resolves a delivery by row id or by its external deliveryId.
func (r *DeliveryRepository) FindByRef(ctx context.Context, ref string) (*entity.Delivery, error) {
	var delivery entity.Delivery
	err := r.db.WithContext(ctx).
		Where("id = ? OR delivery_id = ?", ref, ref).
		First(&delivery).Error
	if err != nil {
		return nil, translate(err)
	}
	return &delivery, nil
}

func (r *DeliveryRepository) Create(ctx context.Context, delivery *entity.Delivery) error {
	return translate(r.db.WithContext(ctx).Create(delivery).Error)
}

func (r *DeliveryRepository) Save(ctx context.Context, delivery *entity.Delivery) error {
	return translate(r.db.WithContext(ctx).Save(delivery).Error)
}

func (r *DeliveryRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.Delivery{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateLocationTx overwrites the cached location from a tracking event
// and forces the delivery into In Transit.
func (r *DeliveryRepository) UpdateLocationTx(tx *gorm.DB, deliveryID string, lat, lng float64, at time.Time) error {
	res := tx.Model(&entity.Delivery{}).
		Where("delivery_id = ?", deliveryID).
		Updates(map[string]interface{}{
			"current_lat":    lat,
			"current_lng":    lng,
			"last_update_at": at,
			"status":         entity.DeliveryStatusInTransit,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
