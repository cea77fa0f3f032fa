package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewID returns a 32-char row id.
func NewID() string {
	return uuid.New().String()[:32]
}

// Delivery statuses
const (
	DeliveryStatusPending   = "Pending"
	DeliveryStatusInTransit = "In Transit"
	DeliveryStatusDelivered = "Delivered"
	DeliveryStatusCancelled = "Cancelled"
)

// Payment statuses
const (
	PaymentStatusUnpaid = "Unpaid"
	PaymentStatusPaid   = "Paid"
)

// Driver statuses
const (
	DriverStatusAvailable = "Available"
	DriverStatusOnDuty    = "On Duty"
	DriverStatusOnLeave   = "On Leave"
	DriverStatusInactive  = "Inactive"
)

func IsValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusInTransit, DeliveryStatusDelivered, DeliveryStatusCancelled:
		return true
	}
	return false
}

func IsValidDriverStatus(s string) bool {
	switch s {
	case DriverStatusAvailable, DriverStatusOnDuty, DriverStatusOnLeave, DriverStatusInactive:
		return true
	}
	return false
}

func IsValidVehicleType(s string) bool {
	switch s {
	case "Bike", "Tuk", "Car", "Van", "Truck", "Other":
		return true
	}
	return false
}

// Delivery is one consignment. DeliveryID is the external, human-facing
// code; tracking events address deliveries through it. CurrentLat/Lng
// cache the latest tracking event.
type Delivery struct {
	ID         string `json:"id" gorm:"primaryKey;size:32"`
	DeliveryID string `json:"deliveryId" gorm:"column:delivery_id;size:64;uniqueIndex;not null"`
	OrderID    string `json:"orderId" gorm:"column:order_id;size:64;not null"`

	ReceiverName    string `json:"receiverName" gorm:"size:100"`
	ReceiverAddress string `json:"receiverAddress" gorm:"size:300"`
	ReceiverPhone   string `json:"receiverPhone" gorm:"size:20"`

	CourierName  string `json:"courierName" gorm:"size:100"`
	CourierPhone string `json:"courierPhone" gorm:"size:20"`

	ItemDescription string          `json:"itemDescription" gorm:"type:text"`
	Quantity        int             `json:"quantity" gorm:"default:1"`
	Weight          decimal.Decimal `json:"weight" gorm:"type:decimal(10,2);default:0"`

	DeliveryDate  *time.Time `json:"deliveryDate"`
	Status        string     `json:"status" gorm:"size:20;default:Pending;index"`
	PaymentStatus string     `json:"paymentStatus" gorm:"size:20;default:Unpaid"`

	CurrentLat   *float64   `json:"currentLat" gorm:"column:current_lat"`
	CurrentLng   *float64   `json:"currentLng" gorm:"column:current_lng"`
	LastUpdateAt *time.Time `json:"lastUpdateAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Delivery) TableName() string {
	return "deliveries"
}

// Driver is a courier who can be assigned to deliveries.
type Driver struct {
	ID       string `json:"id" gorm:"primaryKey;size:32"`
	DriverID string `json:"driverId" gorm:"column:driver_id;size:64;uniqueIndex;not null"`

	Name  string `json:"name" gorm:"size:100;not null"`
	Phone string `json:"phone" gorm:"size:20;not null"`

	VehicleType   string `json:"vehicleType" gorm:"size:20;default:Other"`
	VehiclePlate  string `json:"vehiclePlate" gorm:"size:20"`
	LicenseNumber string `json:"licenseNumber" gorm:"size:64;uniqueIndex;not null"`

	Status string `json:"status" gorm:"size:20;default:Available;index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Driver) TableName() string {
	return "drivers"
}

// TrackingEvent is an append-only GPS fix for a delivery. Events are
// never updated or deleted; the delivery row only caches the latest one.
type TrackingEvent struct {
	ID         string `json:"id" gorm:"primaryKey;size:32"`
	DeliveryID string `json:"deliveryId" gorm:"column:delivery_id;size:64;not null;index"`

	Lat   float64 `json:"lat" gorm:"not null"`
	Lng   float64 `json:"lng" gorm:"not null"`
	Speed float64 `json:"speed" gorm:"default:0"`

	At time.Time `json:"at" gorm:"index;not null"`

	CreatedAt time.Time `json:"createdAt"`
}

func (TrackingEvent) TableName() string {
	return "tracking_events"
}
