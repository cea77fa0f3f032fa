package repository

import (
	"context"

	"gorm.io/gorm"
)

// Sequence names
const (
	SeqSupplier = "supplier"
	SeqPRPrefix = "pr:" // per-year scope, e.g. pr:2026
)

// SequenceRepository allocates monotonic numbers from named counters.
type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next increments the named counter and returns its new value. The upsert
// runs as a single statement, so concurrent callers never see the same
// value.
func (r *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	return r.NextTx(r.db.WithContext(ctx), name)
}

// NextTx is Next bound to an existing transaction handle.
func (r *SequenceRepository) NextTx(tx *gorm.DB, name string) (int64, error) {
	var value int64
	err := tx.Raw(
		`INSERT INTO sequences (name, value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		 RETURNING value`, name,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
