package entity

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// PR statuses
const (
	PRStatusDraft             = "Draft"
	PRStatusSubmitted         = "Submitted"
	PRStatusApproved          = "Approved"
	PRStatusOrdered           = "Ordered"
	PRStatusPartiallyReceived = "PartiallyReceived"
	PRStatusReceived          = "Received"
	PRStatusCancelled         = "Cancelled"
)

// PR lifecycle actions
const (
	PRActionSubmit  = "submit"
	PRActionApprove = "approve"
	PRActionOrder   = "order"
	PRActionReceive = "receive"
	PRActionCancel  = "cancel"
)

// PRNumberPattern matches the human-readable requisition number.
var PRNumberPattern = regexp.MustCompile(`^PR-\d{4}-\d{5}$`)

// FormatPRNumber renders a requisition number like PR-2026-00012.
func FormatPRNumber(year int, seq int64) string {
	return fmt.Sprintf("PR-%d-%05d", year, seq)
}

// PurchaseRequisition is a procurement request that moves through the
// Draft → Submitted → Approved → Ordered → PartiallyReceived/Received
// lifecycle. PRNumber is assigned once at creation and never changes.
type PurchaseRequisition struct {
	ID       string `json:"id" gorm:"primaryKey;size:32"`
	PRNumber string `json:"prNumber" gorm:"column:pr_number;size:20;uniqueIndex;not null"`

	SupplierID *string   `json:"supplierId" gorm:"size:32"`
	Supplier   *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`

	Status       string     `json:"status" gorm:"size:20;default:Draft;index"`
	ExpectedDate *time.Time `json:"expectedDate"`
	Currency     string     `json:"currency" gorm:"size:10;default:LKR"`

	Lines []RequisitionLine `json:"lines" gorm:"foreignKey:RequisitionID"`

	Subtotal decimal.Decimal `json:"subtotal" gorm:"type:decimal(15,2);default:0"`
	Tax      decimal.Decimal `json:"tax" gorm:"type:decimal(15,2);default:0"`
	Total    decimal.Decimal `json:"total" gorm:"type:decimal(15,2);default:0"`

	CreatedBy string `json:"createdBy" gorm:"size:100;default:system"`
	Notes     string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PurchaseRequisition) TableName() string {
	return "purchase_requisitions"
}

// RequisitionLine is one item/quantity/cost entry on a requisition. SKU,
// ItemName and UoM are snapshots of the inventory item taken when the
// line was created; they are never re-synced.
type RequisitionLine struct {
	ID            string `json:"-" gorm:"primaryKey;size:32"`
	RequisitionID string `json:"-" gorm:"size:32;not null;index"`

	ItemID   string `json:"item" gorm:"size:32;not null"`
	SKU      string `json:"sku" gorm:"column:sku;size:64;not null"`
	ItemName string `json:"itemName" gorm:"size:200;not null"`
	UoM      string `json:"uom" gorm:"column:uom;size:20;default:pcs"`

	Qty         int             `json:"qty" gorm:"not null"`
	UnitCost    decimal.Decimal `json:"unitCost" gorm:"type:decimal(12,2);default:0"`
	LineTotal   decimal.Decimal `json:"lineTotal" gorm:"type:decimal(15,2);default:0"`
	ReceivedQty int             `json:"receivedQty" gorm:"default:0"`

	Notes     string `json:"notes,omitempty" gorm:"type:text"`
	SortOrder int    `json:"-" gorm:"default:0"`
}

func (RequisitionLine) TableName() string {
	return "requisition_lines"
}

// prFlow maps each lifecycle action to the source states it may fire from
// and the state it leads to. The receive target is provisional; the
// service downgrades it to PartiallyReceived while any line is short.
var prFlow = map[string]struct {
	Sources []string
	Target  string
}{
	PRActionSubmit:  {Sources: []string{PRStatusDraft}, Target: PRStatusSubmitted},
	PRActionApprove: {Sources: []string{PRStatusSubmitted}, Target: PRStatusApproved},
	PRActionOrder:   {Sources: []string{PRStatusApproved}, Target: PRStatusOrdered},
	PRActionReceive: {Sources: []string{PRStatusOrdered, PRStatusPartiallyReceived}, Target: PRStatusReceived},
	PRActionCancel: {
		Sources: []string{PRStatusDraft, PRStatusSubmitted, PRStatusApproved, PRStatusOrdered, PRStatusPartiallyReceived},
		Target:  PRStatusCancelled,
	},
}

// TransitionTarget resolves a lifecycle action fired from current. When
// the action is not permitted from current, ok is false and sources names
// the states the action requires.
func TransitionTarget(action, current string) (target string, sources []string, ok bool) {
	flow, known := prFlow[action]
	if !known {
		return "", nil, false
	}
	for _, s := range flow.Sources {
		if s == current {
			return flow.Target, flow.Sources, true
		}
	}
	return "", flow.Sources, false
}

// Editable reports whether a requisition in the given status may still
// have its supplier, lines or fields changed.
func Editable(status string) bool {
	return status == PRStatusDraft || status == PRStatusSubmitted
}

// ComputeTotals recomputes every line total and returns the requisition
// subtotal, tax and grand total. Tax is fixed at zero.
func ComputeTotals(lines []RequisitionLine) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for i := range lines {
		lines[i].LineTotal = lines[i].UnitCost.Mul(decimal.NewFromInt(int64(lines[i].Qty)))
		subtotal = subtotal.Add(lines[i].LineTotal)
	}
	tax = decimal.Zero
	total = subtotal.Add(tax)
	return subtotal, tax, total
}
