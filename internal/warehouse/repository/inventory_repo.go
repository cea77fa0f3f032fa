package repository

import (
	"context"
	"time"

	"github.com/garmentflow/wms/internal/warehouse/entity"
	"gorm.io/gorm"
)

// InventoryRepository persists inventory items.
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// ItemFilters narrows FindAll results.
type ItemFilters struct {
	Type   string
	Search string
	MinQty *int
}

// FindAll lists items with filtering, pagination and sorting. Search
// matches item name, sku, category, color, size and location.
func (r *InventoryRepository) FindAll(ctx context.Context, page, pageSize int, sort string, f ItemFilters) ([]entity.InventoryItem, int64, error) {
	var items []entity.InventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.InventoryItem{})

	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if f.MinQty != nil {
		query = query.Where("quantity >= ?", *f.MinQty)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where(
			"item_name ILIKE ? OR sku ILIKE ? OR category ILIKE ? OR color ILIKE ? OR size ILIKE ? OR location ILIKE ?",
			pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "updated_at DESC"
	switch sort {
	case "itemName":
		order = "item_name ASC"
	case "-itemName":
		order = "item_name DESC"
	case "quantity":
		order = "quantity ASC"
	case "-quantity":
		order = "quantity DESC"
	case "updatedAt":
		order = "updated_at ASC"
	case "-updatedAt", "":
		order = "updated_at DESC"
	}

	offset := (page - 1) * pageSize
	err := query.Order(order).Offset(offset).Limit(pageSize).Find(&items).Error
	return items, total, err
}

// FindByID fetches one item by identifier.
func (r *InventoryRepository) FindByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// Create inserts a new item. A duplicate sku surfaces as ErrDuplicateKey.
func (r *InventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

// Save writes every field of an existing item.
func (r *InventoryRepository) Save(ctx context.Context, item *entity.InventoryItem) error {
	return translate(r.db.WithContext(ctx).Save(item).Error)
}

// Delete removes an item; ErrNotFound when nothing matched.
func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.InventoryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindLowStock lists items at or below their reorder level, lowest
// quantity first, optionally narrowed by type.
func (r *InventoryRepository) FindLowStock(ctx context.Context, itemType string) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	query := r.db.WithContext(ctx).Where("quantity <= reorder_level")
	if itemType != "" {
		query = query.Where("type = ?", itemType)
	}
	err := query.Order("quantity ASC").Find(&items).Error
	return items, err
}

// DistinctRawMaterialCategories lists the categories in use across raw
// material items.
func (r *InventoryRepository) DistinctRawMaterialCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&entity.InventoryItem{}).
		Where("type = ? AND category <> ''", entity.ItemTypeRawMaterial).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

// AdjustQuantity applies a signed delta as one conditional update: the
// quantity only changes when the result stays non-negative. The returned
// flag is false when the row exists but the adjustment would go negative.
func (r *InventoryRepository) AdjustQuantity(ctx context.Context, id string, delta int) (bool, error) {
	return r.AdjustQuantityTx(r.db.WithContext(ctx), id, delta)
}

// AdjustQuantityTx is AdjustQuantity bound to an existing transaction.
func (r *InventoryRepository) AdjustQuantityTx(tx *gorm.DB, id string, delta int) (bool, error) {
	res := tx.Model(&entity.InventoryItem{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
