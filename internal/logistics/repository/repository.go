package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Repositories bundles the logistics-side data access.
type Repositories struct {
	Delivery *DeliveryRepository
	Driver   *DriverRepository
	Tracking *TrackingRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Delivery: NewDeliveryRepository(db),
		Driver:   NewDriverRepository(db),
		Tracking: NewTrackingRepository(db),
	}
}

// translate maps gorm errors to the package sentinels. Requires the
// connection to be opened with TranslateError.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	default:
		return err
	}
}
