package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Repositories is the warehouse repository collection.
type Repositories struct {
	Inventory   *InventoryRepository
	Supplier    *SupplierRepository
	Requisition *RequisitionRepository
	Sequence    *SequenceRepository
	User        *UserRepository
}

// NewRepositories creates the warehouse repository collection.
func NewRepositories(db *gorm.DB) *Repositories {
	seq := NewSequenceRepository(db)
	return &Repositories{
		Inventory:   NewInventoryRepository(db),
		Supplier:    NewSupplierRepository(db, seq),
		Requisition: NewRequisitionRepository(db, seq),
		Sequence:    seq,
		User:        NewUserRepository(db),
	}
}

// translate maps gorm errors onto the repository sentinels. Requires the
// connection to be opened with TranslateError so unique violations come
// back as gorm.ErrDuplicatedKey.
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
