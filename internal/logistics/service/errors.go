package service

import "fmt"

// ValidationError is a rejected request body.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError is a delivery or driver that does not exist.
type NotFoundError struct {
	Kind string
	Ref  string
}

func (e *NotFoundError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s not found: %s", e.Kind, e.Ref)
	}
	return e.Kind + " not found"
}

// DuplicateError is a unique-constraint violation on an external
// identifier (deliveryId, driverId, licenseNumber).
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
