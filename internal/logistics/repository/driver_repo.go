package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/garmentflow/wms/internal/logistics/entity"
)

type DriverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) FindAll(ctx context.Context, status, search string) ([]entity.Driver, error) {
	query := r.db.WithContext(ctx).Model(&entity.Driver{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"driver_id ILIKE ? OR name ILIKE ? OR phone ILIKE ? OR vehicle_plate ILIKE ? OR license_number ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	var drivers []entity.Driver
	err := query.Order("created_at DESC").Find(&drivers).Error
	return drivers, translate(err)
}

// FindByRef resolves a driver by row id or by its external driverId.
func (r *DriverRepository) FindByRef(ctx context.Context, ref string) (*entity.Driver, error) {
	var driver entity.Driver
	err := r.db.WithContext(ctx).
		Where("id = ? OR driver_id = ?", ref, ref).
		First(&driver).Error
	if err != nil {
		return nil, translate(err)
	}
	return &driver, nil
}

func (r *DriverRepository) Create(ctx context.Context, driver *entity.Driver) error {
	return translate(r.db.WithContext(ctx).Create(driver).Error)
}

func (r *DriverRepository) Save(ctx context.Context, driver *entity.Driver) error {
	return translate(r.db.WithContext(ctx).Save(driver).Error)
}

func (r *DriverRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.Driver{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
