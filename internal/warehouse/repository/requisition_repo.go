package repository

import (
	"context"
	"time"

	"github.com/garmentflow/wms/internal/warehouse/entity"
	"gorm.io/gorm"
)

// listCap bounds the requisition list endpoint.
const listCap = 200

// RequisitionRepository persists purchase requisitions and their lines.
type RequisitionRepository struct {
	db  *gorm.DB
	seq *SequenceRepository
}

func NewRequisitionRepository(db *gorm.DB, seq *SequenceRepository) *RequisitionRepository {
	return &RequisitionRepository{db: db, seq: seq}
}

// FindAll lists requisitions newest first, capped at 200 rows. The free
// text query matches the PR number, notes and the snapshot sku/item name
// on any line.
func (r *RequisitionRepository) FindAll(ctx context.Context, status, q string) ([]entity.PurchaseRequisition, error) {
	var prs []entity.PurchaseRequisition

	query := r.db.WithContext(ctx).Model(&entity.PurchaseRequisition{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if q != "" {
		pattern := "%" + q + "%"
		query = query.Where(
			`pr_number ILIKE ? OR notes ILIKE ? OR EXISTS (
				SELECT 1 FROM requisition_lines l
				WHERE l.requisition_id = purchase_requisitions.id
				AND (l.sku ILIKE ? OR l.item_name ILIKE ?))`,
			pattern, pattern, pattern, pattern,
		)
	}

	err := query.
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Supplier", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "number", "name", "status")
		}).
		Order("created_at DESC").
		Limit(listCap).
		Find(&prs).Error
	return prs, err
}

// FindByID fetches one requisition with its lines and a trimmed supplier
// (name and status only).
func (r *RequisitionRepository) FindByID(ctx context.Context, id string) (*entity.PurchaseRequisition, error) {
	var pr entity.PurchaseRequisition
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Supplier", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "number", "name", "status")
		}).
		Where("id = ?", id).
		First(&pr).Error
	if err != nil {
		return nil, translate(err)
	}
	return &pr, nil
}

// Create inserts a requisition and its lines in one transaction, assigning
// the PR number from the year-scoped sequence. Either everything is
// written or nothing is.
func (r *RequisitionRepository) Create(ctx context.Context, pr *entity.PurchaseRequisition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := r.nextPRNumber(tx)
		if err != nil {
			return err
		}
		pr.PRNumber = number
		return tx.Create(pr).Error
	})
}

// Save rewrites the requisition header and wholesale replaces its lines.
func (r *RequisitionRepository) Save(ctx context.Context, pr *entity.PurchaseRequisition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("requisition_id = ?", pr.ID).Delete(&entity.RequisitionLine{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(pr).Error
	})
}

// UpdateStatus changes only the status column.
func (r *RequisitionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.updateStatusTx(r.db.WithContext(ctx), id, status)
}

func (r *RequisitionRepository) updateStatusTx(tx *gorm.DB, id, status string) error {
	res := tx.Model(&entity.PurchaseRequisition{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Transaction exposes the underlying transaction helper so the service
// can run receive as one atomic unit.
func (r *RequisitionRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// ReceiveLineTx bumps a line's received quantity inside a transaction.
func (r *RequisitionRepository) ReceiveLineTx(tx *gorm.DB, lineID string, qty int) error {
	return tx.Model(&entity.RequisitionLine{}).
		Where("id = ?", lineID).
		Update("received_qty", gorm.Expr("received_qty + ?", qty)).Error
}

// SetStatusTx writes the requisition status inside a transaction.
func (r *RequisitionRepository) SetStatusTx(tx *gorm.DB, id, status string) error {
	return r.updateStatusTx(tx, id, status)
}

// nextPRNumber allocates the next number for the current year, formatted
// like PR-2026-00012.
func (r *RequisitionRepository) nextPRNumber(tx *gorm.DB) (string, error) {
	year := time.Now().Year()
	seq, err := r.seq.NextTx(tx, SeqPRPrefix+time.Now().Format("2006"))
	if err != nil {
		return "", err
	}
	return entity.FormatPRNumber(year, seq), nil
}
