package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VehicleModel is the fleet segment a vehicle belongs to.
type VehicleModel string

const (
	ModelSedan     VehicleModel = "SEDAN"
	ModelSUV       VehicleModel = "SUV"
	ModelVan       VehicleModel = "VAN"
	ModelHatchback VehicleModel = "HATCHBACK"
	ModelLuxury    VehicleModel = "LUXURY"
)

// Valid reports whether m is a known fleet segment.
func (m VehicleModel) Valid() bool {
	switch m {
	case ModelSedan, ModelSUV, ModelVan, ModelHatchback, ModelLuxury:
		return true
	}
	return false
}

// Vehicle is a fleet vehicle. NextAvailable is the single date from which
// the vehicle can next be booked; assignment advances it to the ride's
// return date.
type Vehicle struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"size:255;not null"`
	Model         VehicleModel    `json:"model" gorm:"type:varchar(20);not null;index"`
	PlateNumber   string          `json:"plate_number" gorm:"uniqueIndex;size:20;not null"`
	NextAvailable Date            `json:"next_available" gorm:"type:date"`
	DailyRate     decimal.Decimal `json:"daily_rate" gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
}
