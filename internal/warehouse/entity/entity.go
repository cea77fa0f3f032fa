package entity

import (
	"regexp"

	"github.com/google/uuid"
)

var idPattern = regexp.MustCompile(`^[0-9a-f][0-9a-f-]{30}[0-9a-f]$`)

// NewID returns a 32-character entity identifier.
func NewID() string {
	return uuid.New().String()[:32]
}

// IsValidID reports whether id has the shape of a generated identifier.
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Sequence is a named atomic counter row. PR numbers and supplier numbers
// are allocated from it with a single upsert-increment statement.
type Sequence struct {
	Name  string `json:"name" gorm:"primaryKey;size:64"`
	Value int64  `json:"value" gorm:"not null;default:0"`
}

func (Sequence) TableName() string {
	return "sequences"
}
