package entity

import "time"

// Supplier statuses
const (
	SupplierStatusPreferred   = "preferred"
	SupplierStatusActive      = "active"
	SupplierStatusInactive    = "inactive"
	SupplierStatusBlacklisted = "blacklisted"
)

// SupplierStatuses lists every accepted supplier status value.
var SupplierStatuses = []string{
	SupplierStatusPreferred,
	SupplierStatusActive,
	SupplierStatusInactive,
	SupplierStatusBlacklisted,
}

// IsValidSupplierStatus reports whether s is an accepted status value.
func IsValidSupplierStatus(s string) bool {
	for _, v := range SupplierStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Supplier is a vendor record. Number is the human-facing display identifier,
// allocated from the "supplier" sequence so it stays unique and
// monotonic under concurrent creation.
type Supplier struct {
	ID     string `json:"id" gorm:"primaryKey;size:32"`
	Number int64  `json:"number" gorm:"uniqueIndex;not null"`

	Name          string `json:"name" gorm:"size:50;not null"`
	Person        string `json:"person" gorm:"size:50;not null"`
	ContactNumber string `json:"contactNumber" gorm:"size:15;not null"`
	Email         string `json:"email" gorm:"size:200;uniqueIndex;not null"`
	Material      string `json:"material" gorm:"size:100;not null"`
	Status        string `json:"status" gorm:"size:20;default:active"`
	Address       string `json:"address" gorm:"size:200;not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
