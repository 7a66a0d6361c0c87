package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"carrental/internal/model"
)

// VehicleRepository defines persistence operations for fleet vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	Save(ctx context.Context, vehicle *model.Vehicle) error
	FindByID(ctx context.Context, id uint) (*model.Vehicle, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Vehicle, error)
	FindByPlateNumber(ctx context.Context, plate string) (*model.Vehicle, error)
	SearchByPlateNumber(ctx context.Context, plate string) ([]model.Vehicle, error)
	FindAll(ctx context.Context) ([]model.Vehicle, error)
	FindAllByModel(ctx context.Context, m model.VehicleModel) ([]model.Vehicle, error)
	FindAllAvailableBy(ctx context.Context, date model.Date) ([]model.Vehicle, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository builds a GORM-backed repository.
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleRepository) Save(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uint) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindByIDForUpdate locks the vehicle row so a concurrent assignment on the
// same vehicle serializes against this one.
func (r *vehicleRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&vehicle, id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) FindByPlateNumber(ctx context.Context, plate string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).Where("plate_number = ?", plate).First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// SearchByPlateNumber matches partial plate numbers case-insensitively.
func (r *vehicleRepository) SearchByPlateNumber(ctx context.Context, plate string) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).
		Where("LOWER(plate_number) LIKE ?", "%"+strings.ToLower(plate)+"%").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) FindAll(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) FindAllByModel(ctx context.Context, m model.VehicleModel) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).Where("model = ?", m).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindAllAvailableBy lists vehicles whose next available date is on or
// before the given date.
func (r *vehicleRepository) FindAllAvailableBy(ctx context.Context, date model.Date) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).
		Where("next_available IS NULL OR next_available <= ?", date).
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}
