package service

import (
	"context"
	"errors"
	"strings"

	"github.com/garmentflow/wms/internal/logistics/entity"
	"github.com/garmentflow/wms/internal/logistics/repository"
)

// DriverService owns driver CRUD.
type DriverService struct {
	repo *repository.DriverRepository
}

func NewDriverService(repo *repository.DriverRepository) *DriverService {
	return &DriverService{repo: repo}
}

type CreateDriverRequest struct {
	DriverID      string `json:"driverId" binding:"required,min=3,max=64"`
	Name          string `json:"name" binding:"required,min=3,max=100"`
	Phone         string `json:"phone" binding:"required,min=7,max=15"`
	VehicleType   string `json:"vehicleType" binding:"omitempty,oneof=Bike Tuk Car Van Truck Other"`
	VehiclePlate  string `json:"vehiclePlate"`
	LicenseNumber string `json:"licenseNumber" binding:"required,min=3,max=64"`
	Status        string `json:"status" binding:"omitempty,oneof=Available 'On Duty' 'On Leave' Inactive"`
}

type UpdateDriverRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	VehicleType   *string `json:"vehicleType"`
	VehiclePlate  *string `json:"vehiclePlate"`
	LicenseNumber *string `json:"licenseNumber"`
	Status        *string `json:"status"`
}

func (s *DriverService) List(ctx context.Context, status, search string) ([]entity.Driver, error) {
	return s.repo.FindAll(ctx, status, search)
}

func (s *DriverService) Get(ctx context.Context, ref string) (*entity.Driver, error) {
	driver, err := s.repo.FindByRef(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: "Driver", Ref: ref}
	}
	return driver, err
}

func (s *DriverService) Create(ctx context.Context, req *CreateDriverRequest) (*entity.Driver, error) {
	driver := &entity.Driver{
		ID:            entity.NewID(),
		DriverID:      strings.TrimSpace(req.DriverID),
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		VehicleType:   req.VehicleType,
		VehiclePlate:  strings.TrimSpace(req.VehiclePlate),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		Status:        req.Status,
	}
	if driver.VehicleType == "" {
		driver.VehicleType = "Other"
	}
	if driver.Status == "" {
		driver.Status = entity.DriverStatusAvailable
	}

	if err := s.repo.Create(ctx, driver); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, &DuplicateError{Key: "driverId or licenseNumber"}
		}
		return nil, err
	}
	return driver, nil
}

func (s *DriverService) Update(ctx context.Context, ref string, req *UpdateDriverRequest) (*entity.Driver, error) {
	driver, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		driver.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		driver.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.VehicleType != nil {
		if !entity.IsValidVehicleType(*req.VehicleType) {
			return nil, &ValidationError{Message: "Invalid vehicle type"}
		}
		driver.VehicleType = *req.VehicleType
	}
	if req.VehiclePlate != nil {
		driver.VehiclePlate = strings.TrimSpace(*req.VehiclePlate)
	}
	if req.LicenseNumber != nil {
		driver.LicenseNumber = strings.TrimSpace(*req.LicenseNumber)
	}
	if req.Status != nil {
		if !entity.IsValidDriverStatus(*req.Status) {
			return nil, &ValidationError{Message: "Invalid status value"}
		}
		driver.Status = *req.Status
	}

	if err := s.repo.Save(ctx, driver); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, &DuplicateError{Key: "licenseNumber"}
		}
		return nil, err
	}
	return driver, nil
}

func (s *DriverService) Delete(ctx context.Context, ref string) error {
	driver, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, driver.ID)
}
