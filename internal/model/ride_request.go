package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RequestStatus is the lifecycle state of a ride request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusApproved RequestStatus = "APPROVED"
	StatusRejected RequestStatus = "REJECTED"
)

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Location is an embedded pickup or destination point.
type Location struct {
	Address   string  `json:"address"`
	City      string  `json:"city" gorm:"size:128;index"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// RideRequest is a rider's booking request. A vehicle is bound to it by an
// admin before approval; requests are never physically deleted.
type RideRequest struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Model         string          `json:"model" gorm:"size:64"` // desired fleet segment, free text from the rider
	PickupDate    Date            `json:"pickup_date" gorm:"type:date;index"`
	ReturnDate    Date            `json:"return_date" gorm:"type:date"`
	Pickup        Location        `json:"pickup" gorm:"embedded;embeddedPrefix:pickup_"`
	Destination   Location        `json:"destination" gorm:"embedded;embeddedPrefix:destination_"`
	Status        RequestStatus   `json:"status" gorm:"type:varchar(10);not null;default:'PENDING';index"`
	VehicleID     *uint           `json:"vehicle_id" gorm:"index"`
	UserID        uint            `json:"user_id" gorm:"not null;index"`
	EstimatedCost decimal.Decimal `json:"estimated_cost" gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	User    User     `json:"user" gorm:"foreignKey:UserID"`
}

// RentalDays is the inclusive number of billable days between pickup and
// return. A same-day rental bills one day.
func (r *RideRequest) RentalDays() int64 {
	if r.PickupDate.IsZero() || r.ReturnDate.IsZero() || r.ReturnDate.Before(r.PickupDate) {
		return 0
	}
	return int64(r.ReturnDate.Sub(r.PickupDate.Time).Hours()/24) + 1
}
