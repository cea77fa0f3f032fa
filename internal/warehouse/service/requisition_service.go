package service

import (
	"context"
	"errors"
	"time"

	"github.com/garmentflow/wms/internal/warehouse/entity"
	"github.com/garmentflow/wms/internal/warehouse/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RequisitionService owns the purchase-requisition lifecycle: creation
// with line hydration, editing, status transitions and receiving into
// inventory.
type RequisitionService struct {
	repo          *repository.RequisitionRepository
	inventoryRepo *repository.InventoryRepository
	supplierRepo  *repository.SupplierRepository
}

func NewRequisitionService(
	repo *repository.RequisitionRepository,
	inventoryRepo *repository.InventoryRepository,
	supplierRepo *repository.SupplierRepository,
) *RequisitionService {
	return &RequisitionService{
		repo:          repo,
		inventoryRepo: inventoryRepo,
		supplierRepo:  supplierRepo,
	}
}

// CreateLineRequest is one candidate line on an incoming requisition.
type CreateLineRequest struct {
	Item     string           `json:"item" binding:"required"`
	Qty      int              `json:"qty"`
	UnitCost *decimal.Decimal `json:"unitCost"`
	Notes    string           `json:"notes"`
}

// CreateRequisitionRequest carries a new requisition.
type CreateRequisitionRequest struct {
	Supplier     *string             `json:"supplier"`
	Status       string              `json:"status"`
	ExpectedDate *time.Time          `json:"expectedDate"`
	Currency     string              `json:"currency"`
	Notes        string              `json:"notes"`
	CreatedBy    string              `json:"createdBy"`
	Lines        []CreateLineRequest `json:"lines"`
}

// UpdateRequisitionRequest carries a requisition edit. Lines, when
// present, wholesale replace the existing set; expectedDate and notes are
// patchable on their own.
type UpdateRequisitionRequest struct {
	Supplier     *string             `json:"supplier"`
	ExpectedDate *time.Time          `json:"expectedDate"`
	Notes        *string             `json:"notes"`
	Lines        []CreateLineRequest `json:"lines"`
}

// ReceiveLineRequest is one entry of a partial receipt.
type ReceiveLineRequest struct {
	Item string `json:"item"`
	Qty  int    `json:"qty"`
}

// List returns requisitions, newest first, capped at 200.
func (s *RequisitionService) List(ctx context.Context, status, q string) ([]entity.PurchaseRequisition, error) {
	return s.repo.FindAll(ctx, status, q)
}

// Get fetches one requisition with lines and its trimmed supplier.
func (s *RequisitionService) Get(ctx context.Context, id string) (*entity.PurchaseRequisition, error) {
	if !entity.IsValidID(id) {
		return nil, &ReferenceError{ID: id}
	}
	pr, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: "Requisition"}
	}
	return pr, err
}

// Create validates and persists a new requisition. Lines are hydrated
// from the live inventory records, totals are computed and the PR number
// is allocated; nothing is written unless every line passes.
func (s *RequisitionService) Create(ctx context.Context, req *CreateRequisitionRequest) (*entity.PurchaseRequisition, error) {
	if len(req.Lines) == 0 {
		return nil, &ValidationError{Message: "At least one line is required"}
	}

	supplier, err := s.resolveSupplier(ctx, req.Supplier)
	if err != nil {
		return nil, err
	}
	if supplier != nil {
		if err := s.checkMaterialMatch(ctx, supplier, lineItemIDs(req.Lines)); err != nil {
			return nil, err
		}
	}

	lines, err := s.hydrateLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	pr := &entity.PurchaseRequisition{
		ID:           entity.NewID(),
		Status:       entity.PRStatusDraft,
		ExpectedDate: req.ExpectedDate,
		Currency:     req.Currency,
		Lines:        lines,
		CreatedBy:    req.CreatedBy,
		Notes:        req.Notes,
	}
	if req.Status == entity.PRStatusSubmitted {
		pr.Status = entity.PRStatusSubmitted
	}
	if pr.Currency == "" {
		pr.Currency = "LKR"
	}
	if pr.CreatedBy == "" {
		pr.CreatedBy = "system"
	}
	if supplier != nil {
		pr.SupplierID = &supplier.ID
	}
	for i := range pr.Lines {
		pr.Lines[i].RequisitionID = pr.ID
	}
	pr.Subtotal, pr.Tax, pr.Total = entity.ComputeTotals(pr.Lines)

	if err := s.repo.Create(ctx, pr); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, pr.ID)
}

// Update edits a requisition. Only Draft and Submitted requisitions may
// change. Supplier reassignment re-runs the material match against the
// replacement lines, or the existing ones when no replacement is sent.
func (s *RequisitionService) Update(ctx context.Context, id string, req *UpdateRequisitionRequest) (*entity.PurchaseRequisition, error) {
	pr, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.Editable(pr.Status) {
		return nil, &TransitionError{
			Action:   "edit",
			Required: []string{entity.PRStatusDraft, entity.PRStatusSubmitted},
		}
	}

	if req.Supplier != nil && *req.Supplier != "" {
		supplier, err := s.resolveSupplier(ctx, req.Supplier)
		if err != nil {
			return nil, err
		}
		itemIDs := lineItemIDs(req.Lines)
		if len(itemIDs) == 0 {
			for _, l := range pr.Lines {
				itemIDs = append(itemIDs, l.ItemID)
			}
		}
		if err := s.checkMaterialMatch(ctx, supplier, itemIDs); err != nil {
			return nil, err
		}
		pr.SupplierID = &supplier.ID
		pr.Supplier = nil
	}

	if req.ExpectedDate != nil {
		pr.ExpectedDate = req.ExpectedDate
	}
	if req.Notes != nil {
		pr.Notes = *req.Notes
	}

	if req.Lines != nil {
		if len(req.Lines) == 0 {
			return nil, &ValidationError{Message: "At least one line is required"}
		}
		lines, err := s.hydrateLines(ctx, req.Lines)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			lines[i].RequisitionID = pr.ID
		}
		pr.Lines = lines
	}
	pr.Subtotal, pr.Tax, pr.Total = entity.ComputeTotals(pr.Lines)

	if err := s.repo.Save(ctx, pr); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, pr.ID)
}

// Transition fires a non-receiving lifecycle action (submit, approve,
// order, cancel). The wrong source state fails loudly and leaves the
// status untouched, so a retried action never applies twice.
func (s *RequisitionService) Transition(ctx context.Context, id, action string) (*entity.PurchaseRequisition, error) {
	pr, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	target, sources, ok := entity.TransitionTarget(action, pr.Status)
	if !ok {
		return nil, &TransitionError{Action: action, Required: sources}
	}

	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	pr.Status = target
	return pr, nil
}

// Receive books goods against an Ordered or PartiallyReceived
// requisition. With no explicit lines, absent or an empty array, every
// line's outstanding quantity is received in full. Each receipt is applied to inventory through the
// conditional stock adjustment, received quantities are clamped to the
// ordered quantity, and the requisition lands in Received only once no
// line is short; otherwise it stays PartiallyReceived. The whole receipt
// runs in one transaction.
func (s *RequisitionService) Receive(ctx context.Context, id string, incoming []ReceiveLineRequest) (*entity.PurchaseRequisition, error) {
	pr, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, sources, ok := entity.TransitionTarget(entity.PRActionReceive, pr.Status); !ok {
		return nil, &TransitionError{Action: entity.PRActionReceive, Required: sources}
	}

	if len(incoming) == 0 {
		for _, l := range pr.Lines {
			incoming = append(incoming, ReceiveLineRequest{Item: l.ItemID, Qty: l.Qty - l.ReceivedQty})
		}
	}

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		for _, rec := range incoming {
			if !entity.IsValidID(rec.Item) || rec.Qty <= 0 {
				continue
			}
			line := outstandingLine(pr.Lines, rec.Item)
			if line == nil {
				continue
			}
			qty := rec.Qty
			if remaining := line.Qty - line.ReceivedQty; qty > remaining {
				qty = remaining
			}

			applied, err := s.inventoryRepo.AdjustQuantityTx(tx, rec.Item, qty)
			if err != nil {
				return err
			}
			if !applied {
				// Item deleted since the line was created.
				continue
			}

			if err := s.repo.ReceiveLineTx(tx, line.ID, qty); err != nil {
				return err
			}
			line.ReceivedQty += qty
		}

		status := entity.PRStatusReceived
		for _, l := range pr.Lines {
			if l.ReceivedQty < l.Qty {
				status = entity.PRStatusPartiallyReceived
				break
			}
		}
		return s.repo.SetStatusTx(tx, pr.ID, status)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, pr.ID)
}

// resolveSupplier looks up an optional supplier reference.
func (s *RequisitionService) resolveSupplier(ctx context.Context, ref *string) (*entity.Supplier, error) {
	if ref == nil || *ref == "" {
		return nil, nil
	}
	supplier, err := s.supplierRepo.FindByID(ctx, *ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: "Selected supplier", Nested: true}
	}
	return supplier, err
}

// checkMaterialMatch verifies every referenced item's category equals the
// supplier's declared material.
func (s *RequisitionService) checkMaterialMatch(ctx context.Context, supplier *entity.Supplier, itemIDs []string) error {
	for _, itemID := range itemIDs {
		if !entity.IsValidID(itemID) {
			return &ReferenceError{ID: itemID}
		}
		item, err := s.inventoryRepo.FindByID(ctx, itemID)
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Kind: "Inventory item", ID: itemID, Nested: true}
		}
		if err != nil {
			return err
		}
		if item.Category != supplier.Material {
			return &ConstraintError{ItemName: item.ItemName, Material: supplier.Material}
		}
	}
	return nil
}

// hydrateLines resolves every candidate line against the live inventory
// record and freezes the sku, item name and unit of measure into the
// line. The unit cost falls back to the item's current cost per unit.
func (s *RequisitionService) hydrateLines(ctx context.Context, raw []CreateLineRequest) ([]entity.RequisitionLine, error) {
	lines := make([]entity.RequisitionLine, 0, len(raw))
	for i, rl := range raw {
		if !entity.IsValidID(rl.Item) {
			return nil, &ReferenceError{ID: rl.Item}
		}
		item, err := s.inventoryRepo.FindByID(ctx, rl.Item)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "Inventory item", ID: rl.Item, Nested: true}
		}
		if err != nil {
			return nil, err
		}
		if rl.Qty <= 0 {
			return nil, &ValidationError{Message: "Line qty must be > 0"}
		}

		uom := item.Unit
		if uom == "" {
			uom = "pcs"
		}
		unitCost := item.CostPerUnit
		if rl.UnitCost != nil {
			unitCost = *rl.UnitCost
		}
		if unitCost.IsNegative() {
			return nil, &ValidationError{Message: "Line unitCost must be >= 0"}
		}

		lines = append(lines, entity.RequisitionLine{
			ID:        entity.NewID(),
			ItemID:    item.ID,
			SKU:       item.SKU,
			ItemName:  item.ItemName,
			UoM:       uom,
			Qty:       rl.Qty,
			UnitCost:  unitCost,
			Notes:     rl.Notes,
			SortOrder: i + 1,
		})
	}
	return lines, nil
}

func lineItemIDs(lines []CreateLineRequest) []string {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.Item)
	}
	return ids
}

// outstandingLine finds the first line for an item that still has
// quantity outstanding.
func outstandingLine(lines []entity.RequisitionLine, itemID string) *entity.RequisitionLine {
	for i := range lines {
		if lines[i].ItemID == itemID && lines[i].ReceivedQty < lines[i].Qty {
			return &lines[i]
		}
	}
	return nil
}
