package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item types
const (
	ItemTypeRawMaterial  = "RawMaterial"
	ItemTypeFinishedGood = "FinishedGood"
)

// InventoryItem is a stocked warehouse item. Quantity is only mutated
// through the conditional adjustment in the repository, never by direct
// field writes on the receiving path.
type InventoryItem struct {
	ID       string `json:"id" gorm:"primaryKey;size:32"`
	SKU      string `json:"sku" gorm:"column:sku;size:64;uniqueIndex;not null"`
	ItemName string `json:"itemName" gorm:"size:200;not null"`
	Type     string `json:"type" gorm:"size:20;not null;index:idx_items_type_category"` // RawMaterial/FinishedGood

	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category" gorm:"size:100;index:idx_items_type_category"`
	Size        string `json:"size" gorm:"size:20"`
	Color       string `json:"color" gorm:"size:50"`

	Quantity int    `json:"quantity" gorm:"not null;default:0;index"`
	Unit     string `json:"unit" gorm:"size:20;default:pcs"`

	ReorderLevel int `json:"reorderLevel" gorm:"default:0"`
	ReorderQty   int `json:"reorderQty" gorm:"default:0"`

	Location   string  `json:"location" gorm:"size:50"`
	SupplierID *string `json:"supplier" gorm:"size:32"`

	CostPerUnit  decimal.Decimal `json:"costPerUnit" gorm:"type:decimal(12,2);default:0"`
	SellingPrice decimal.Decimal `json:"sellingPrice" gorm:"type:decimal(12,2);default:0"`

	LotNumber  string     `json:"lotNumber" gorm:"size:50"`
	ExpiryDate *time.Time `json:"expiryDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// SuggestedReorderQty returns the quantity a low-stock item should be
// reordered at: whichever is larger of the shortfall against the reorder
// level and the configured reorder quantity, never less than 1.
func (i *InventoryItem) SuggestedReorderQty() int {
	suggested := i.ReorderLevel - i.Quantity
	if i.ReorderQty > suggested {
		suggested = i.ReorderQty
	}
	if suggested < 1 {
		suggested = 1
	}
	return suggested
}
