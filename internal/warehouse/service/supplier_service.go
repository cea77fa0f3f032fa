package service

import (
	"context"
	"errors"
	"strings"

	"github.com/garmentflow/wms/internal/warehouse/entity"
	"github.com/garmentflow/wms/internal/warehouse/repository"
)

// SupplierService owns supplier CRUD and the status-only update.
type SupplierService struct {
	repo *repository.SupplierRepository
}

func NewSupplierService(repo *repository.SupplierRepository) *SupplierService {
	return &SupplierService{repo: repo}
}

// CreateSupplierRequest carries a new supplier. Field bounds follow the
// record rules: digits-only contact number of 7 to 15 characters, valid
// unique email, bounded name/person/material/address lengths.
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required,min=3,max=50"`
	Person        string `json:"person" binding:"required,min=3,max=50"`
	ContactNumber string `json:"contactNumber" binding:"required,numeric,min=7,max=15"`
	Email         string `json:"email" binding:"required,email"`
	Material      string `json:"material" binding:"required,min=2,max=100"`
	Status        string `json:"status" binding:"omitempty,oneof=preferred active inactive blacklisted"`
	Address       string `json:"address" binding:"required,min=5,max=200"`
}

// UpdateSupplierRequest carries a partial supplier update.
type UpdateSupplierRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=3,max=50"`
	Person        *string `json:"person" binding:"omitempty,min=3,max=50"`
	ContactNumber *string `json:"contactNumber" binding:"omitempty,numeric,min=7,max=15"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Material      *string `json:"material" binding:"omitempty,min=2,max=100"`
	Status        *string `json:"status" binding:"omitempty,oneof=preferred active inactive blacklisted"`
	Address       *string `json:"address" binding:"omitempty,min=5,max=200"`
}

// List returns suppliers, newest first.
func (s *SupplierService) List(ctx context.Context, filters map[string]string) ([]entity.Supplier, error) {
	return s.repo.FindAll(ctx, filters)
}

// Get fetches one supplier by display number.
func (s *SupplierService) Get(ctx context.Context, number int64) (*entity.Supplier, error) {
	supplier, err := s.repo.FindByNumber(ctx, number)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: "Supplier"}
	}
	return supplier, err
}

// Create inserts a supplier, allocating the next display number.
func (s *SupplierService) Create(ctx context.Context, req *CreateSupplierRequest) (*entity.Supplier, error) {
	status := req.Status
	if status == "" {
		status = entity.SupplierStatusActive
	}

	supplier := &entity.Supplier{
		ID:            entity.NewID(),
		Name:          strings.TrimSpace(req.Name),
		Person:        strings.TrimSpace(req.Person),
		ContactNumber: req.ContactNumber,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Material:      strings.TrimSpace(req.Material),
		Status:        status,
		Address:       strings.TrimSpace(req.Address),
	}

	if err := s.repo.Create(ctx, supplier); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, &DuplicateError{Key: "email", Value: supplier.Email}
		}
		return nil, err
	}
	return supplier, nil
}

// Update applies the non-nil fields of req to an existing supplier.
func (s *SupplierService) Update(ctx context.Context, number int64, req *UpdateSupplierRequest) (*entity.Supplier, error) {
	supplier, err := s.Get(ctx, number)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = strings.TrimSpace(*req.Name)
	}
	if req.Person != nil {
		supplier.Person = strings.TrimSpace(*req.Person)
	}
	if req.ContactNumber != nil {
		supplier.ContactNumber = *req.ContactNumber
	}
	if req.Email != nil {
		supplier.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Material != nil {
		supplier.Material = strings.TrimSpace(*req.Material)
	}
	if req.Status != nil {
		supplier.Status = *req.Status
	}
	if req.Address != nil {
		supplier.Address = strings.TrimSpace(*req.Address)
	}

	if err := s.repo.Save(ctx, supplier); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, &DuplicateError{Key: "email", Value: supplier.Email}
		}
		return nil, err
	}
	return supplier, nil
}

// UpdateStatus changes only the status field.
func (s *SupplierService) UpdateStatus(ctx context.Context, number int64, status string) (*entity.Supplier, error) {
	if !entity.IsValidSupplierStatus(status) {
		return nil, &ValidationError{Message: "Invalid status value"}
	}
	supplier, err := s.repo.UpdateStatus(ctx, number, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: "Supplier"}
	}
	return supplier, err
}

// Delete removes a supplier. A missing supplier surfaces as NotFound
// rather than the silent success of earlier revisions.
func (s *SupplierService) Delete(ctx context.Context, number int64) error {
	err := s.repo.Delete(ctx, number)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Kind: "Supplier"}
	}
	return err
}
