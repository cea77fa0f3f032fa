package repository

import (
	"context"

	"github.com/garmentflow/wms/internal/warehouse/entity"
	"gorm.io/gorm"
)

// SupplierRepository persists suppliers.
type SupplierRepository struct {
	db  *gorm.DB
	seq *SequenceRepository
}

func NewSupplierRepository(db *gorm.DB, seq *SequenceRepository) *SupplierRepository {
	return &SupplierRepository{db: db, seq: seq}
}

// FindAll lists suppliers, newest first, optionally filtered by status or
// a name/material/email search.
func (r *SupplierRepository) FindAll(ctx context.Context, filters map[string]string) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier

	query := r.db.WithContext(ctx).Model(&entity.Supplier{})
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if search := filters["search"]; search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR material ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	err := query.Order("created_at DESC").Find(&suppliers).Error
	return suppliers, err
}

// FindByNumber fetches one supplier by its numeric display identifier.
func (r *SupplierRepository) FindByNumber(ctx context.Context, number int64) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).Where("number = ?", number).First(&supplier).Error
	if err != nil {
		return nil, translate(err)
	}
	return &supplier, nil
}

// FindByID fetches one supplier by its generated identifier.
func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&supplier).Error
	if err != nil {
		return nil, translate(err)
	}
	return &supplier, nil
}

// Create inserts a supplier after allocating its display number from the
// supplier sequence. A duplicate email surfaces as ErrDuplicateKey.
func (r *SupplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := r.seq.NextTx(tx, SeqSupplier)
		if err != nil {
			return err
		}
		supplier.Number = number
		return tx.Create(supplier).Error
	}))
}

// Save writes every field of an existing supplier.
func (r *SupplierRepository) Save(ctx context.Context, supplier *entity.Supplier) error {
	return translate(r.db.WithContext(ctx).Save(supplier).Error)
}

// UpdateStatus changes only the status column.
func (r *SupplierRepository) UpdateStatus(ctx context.Context, number int64, status string) (*entity.Supplier, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Supplier{}).
		Where("number = ?", number).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByNumber(ctx, number)
}

// Delete removes a supplier by display number; ErrNotFound when nothing
// matched.
func (r *SupplierRepository) Delete(ctx context.Context, number int64) error {
	res := r.db.WithContext(ctx).Where("number = ?", number).Delete(&entity.Supplier{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
