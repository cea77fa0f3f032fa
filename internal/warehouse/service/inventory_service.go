package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/garmentflow/wms/internal/warehouse/entity"
	"github.com/garmentflow/wms/internal/warehouse/repository"
	"github.com/shopspring/decimal"
)

// InventoryService owns item CRUD, the low-stock query and the stock
// adjustment path.
type InventoryService struct {
	repo *repository.InventoryRepository
}

func NewInventoryService(repo *repository.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// CreateItemRequest carries a new inventory item.
type CreateItemRequest struct {
	ItemName     string           `json:"itemName" binding:"required"`
	SKU          string           `json:"sku" binding:"required"`
	Type         string           `json:"type" binding:"required,oneof=RawMaterial FinishedGood"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Size         string           `json:"size"`
	Color        string           `json:"color"`
	Quantity     int              `json:"quantity" binding:"gte=0"`
	Unit         string           `json:"unit"`
	ReorderLevel int              `json:"reorderLevel" binding:"gte=0"`
	ReorderQty   int              `json:"reorderQty" binding:"gte=0"`
	Location     string           `json:"location"`
	SupplierID   *string          `json:"supplier"`
	CostPerUnit  *decimal.Decimal `json:"costPerUnit"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	LotNumber    string           `json:"lotNumber"`
	ExpiryDate   *time.Time       `json:"expiryDate"`
}

// UpdateItemRequest carries a partial item update; nil fields are left
// alone. Quantity is deliberately absent: it only moves through Adjust.
type UpdateItemRequest struct {
	ItemName     *string          `json:"itemName"`
	SKU          *string          `json:"sku"`
	Type         *string          `json:"type"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	Size         *string          `json:"size"`
	Color        *string          `json:"color"`
	Quantity     *int             `json:"quantity"`
	Unit         *string          `json:"unit"`
	ReorderLevel *int             `json:"reorderLevel"`
	ReorderQty   *int             `json:"reorderQty"`
	Location     *string          `json:"location"`
	SupplierID   *string          `json:"supplier"`
	CostPerUnit  *decimal.Decimal `json:"costPerUnit"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	LotNumber    *string          `json:"lotNumber"`
	ExpiryDate   *time.Time       `json:"expiryDate"`
}

// List returns items plus the total row count for pagination.
func (s *InventoryService) List(ctx context.Context, page, pageSize int, sort string, f repository.ItemFilters) ([]entity.InventoryItem, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, sort, f)
}

// Get fetches one item by id.
func (s *InventoryService) Get(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if !entity.IsValidID(id) {
		return nil, &ReferenceError{ID: id}
	}
	item, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: "Item"}
	}
	return item, err
}

// Create validates and inserts a new item.
func (s *InventoryService) Create(ctx context.Context, req *CreateItemRequest) (*entity.InventoryItem, error) {
	item := &entity.InventoryItem{
		ID:           entity.NewID(),
		SKU:          strings.TrimSpace(req.SKU),
		ItemName:     strings.TrimSpace(req.ItemName),
		Type:         req.Type,
		Description:  req.Description,
		Category:     req.Category,
		Size:         req.Size,
		Color:        req.Color,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		ReorderLevel: req.ReorderLevel,
		ReorderQty:   req.ReorderQty,
		Location:     req.Location,
		SupplierID:   req.SupplierID,
		LotNumber:    req.LotNumber,
		ExpiryDate:   req.ExpiryDate,
	}

	if item.Unit == "" {
		item.Unit = "pcs"
	}
	if req.CostPerUnit != nil {
		item.CostPerUnit = *req.CostPerUnit
	}
	if req.SellingPrice != nil {
		item.SellingPrice = *req.SellingPrice
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, &DuplicateError{Key: "SKU", Value: item.SKU}
		}
		return nil, err
	}
	return item, nil
}

// Update applies the non-nil fields of req to an existing item.
func (s *InventoryService) Update(ctx context.Context, id string, req *UpdateItemRequest) (*entity.InventoryItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ItemName != nil {
		item.ItemName = strings.TrimSpace(*req.ItemName)
	}
	if req.SKU != nil {
		item.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.Type != nil {
		if *req.Type != entity.ItemTypeRawMaterial && *req.Type != entity.ItemTypeFinishedGood {
			return nil, &ValidationError{Message: "Validation failed", Fields: []string{`type must be "RawMaterial" or "FinishedGood"`}}
		}
		item.Type = *req.Type
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Size != nil {
		item.Size = *req.Size
	}
	if req.Color != nil {
		item.Color = *req.Color
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, &ValidationError{Message: "Validation failed", Fields: []string{"quantity must be >= 0"}}
		}
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.ReorderQty != nil {
		item.ReorderQty = *req.ReorderQty
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.SupplierID != nil {
		item.SupplierID = req.SupplierID
	}
	if req.CostPerUnit != nil {
		item.CostPerUnit = *req.CostPerUnit
	}
	if req.SellingPrice != nil {
		item.SellingPrice = *req.SellingPrice
	}
	if req.LotNumber != nil {
		item.LotNumber = *req.LotNumber
	}
	if req.ExpiryDate != nil {
		item.ExpiryDate = req.ExpiryDate
	}

	if err := s.repo.Save(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, &DuplicateError{Key: "SKU", Value: item.SKU}
		}
		return nil, err
	}
	return item, nil
}

// Delete removes an item.
func (s *InventoryService) Delete(ctx context.Context, id string) error {
	if !entity.IsValidID(id) {
		return &ReferenceError{ID: id}
	}
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Kind: "Item"}
	}
	return err
}

// LowStockItem is an item at or below its reorder level together with the
// dashboard's suggested reorder quantity.
type LowStockItem struct {
	entity.InventoryItem
	SuggestedQty int `json:"suggestedQty"`
}

// LowStock lists items where quantity <= reorderLevel, lowest first.
func (s *InventoryService) LowStock(ctx context.Context, itemType string) ([]LowStockItem, error) {
	items, err := s.repo.FindLowStock(ctx, itemType)
	if err != nil {
		return nil, err
	}
	result := make([]LowStockItem, 0, len(items))
	for i := range items {
		result = append(result, LowStockItem{
			InventoryItem: items[i],
			SuggestedQty:  items[i].SuggestedReorderQty(),
		})
	}
	return result, nil
}

// RawMaterialCategories lists the distinct categories across raw
// materials.
func (s *InventoryService) RawMaterialCategories(ctx context.Context) ([]string, error) {
	return s.repo.DistinctRawMaterialCategories(ctx)
}

// Adjust applies a signed delta to an item's quantity. The change runs as
// one conditional update, so a result below zero never reaches the row.
// When the update applies to nothing, a refetch decides between a missing
// item and an insufficient balance.
func (s *InventoryService) Adjust(ctx context.Context, id string, delta int) (*entity.InventoryItem, error) {
	if !entity.IsValidID(id) {
		return nil, &ReferenceError{ID: id}
	}

	applied, err := s.repo.AdjustQuantity(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if !applied {
		item, err := s.repo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "Item"}
		}
		if err != nil {
			return nil, err
		}
		return nil, &InsufficientStockError{Current: item.Quantity, Change: delta}
	}
	return s.repo.FindByID(ctx, id)
}
