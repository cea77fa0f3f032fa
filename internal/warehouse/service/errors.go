package service

import (
	"fmt"
	"strings"
)

// ValidationError is a rejected request: a missing field, a bad enum value
// or a non-positive quantity.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return e.Message + ": " + strings.Join(e.Fields, "; ")
	}
	return e.Message
}

// ReferenceError is a malformed entity identifier.
type ReferenceError struct {
	ID string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("Invalid item id: %s", e.ID)
}

// NotFoundError is a referenced entity that does not exist. Direct fetches
// of a primary resource surface it as 404, nested reference resolution as
// 400.
type NotFoundError struct {
	Kind   string
	ID     string
	Nested bool
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
	}
	return e.Kind + " not found"
}

// ConstraintError is a requisition line whose item category does not match
// the supplier's declared material.
type ConstraintError struct {
	ItemName string
	Material string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("Item %q does not match supplier material %q", e.ItemName, e.Material)
}

// InsufficientStockError is a stock adjustment that would drive the
// quantity negative. The item is left untouched.
type InsufficientStockError struct {
	Current int
	Change  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Current=%d, attempted change=%d", e.Current, e.Change)
}

// TransitionError is a lifecycle action fired from a state it is not
// permitted in. Required names the source states the action needs.
type TransitionError struct {
	Action   string
	Required []string
}

func (e *TransitionError) Error() string {
	if len(e.Required) == 0 {
		return fmt.Sprintf("transition %q is not defined", e.Action)
	}
	return fmt.Sprintf("%s requires status %s", e.Action, strings.Join(e.Required, "/"))
}

// DuplicateError is a unique-constraint violation naming the offending
// key.
type DuplicateError struct {
	Key   string
	Value string
}

func (e *DuplicateError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s already exists: %s", e.Key, e.Value)
	}
	return e.Key + " already exists"
}
