package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"carrental/internal/cache"
	apperrors "carrental/internal/errors"
	"carrental/internal/model"
	"carrental/internal/repository"
)

const vehicleCacheTTL = 5 * time.Minute

// UpdateVehicleParams carries a vehicle update. The plate number is the
// lookup key and cannot itself be changed here.
type UpdateVehicleParams struct {
	PlateNumber   string
	Name          string
	Model         model.VehicleModel
	NextAvailable model.Date
	DailyRate     string
}

// VehicleService exposes fleet inventory operations.
type VehicleService interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	Update(ctx context.Context, params UpdateVehicleParams) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	Get(ctx context.Context, id uint) (*model.Vehicle, error)
	GetByPlateNumber(ctx context.Context, plate string) (*model.Vehicle, error)
	SearchByPlateNumber(ctx context.Context, plate string) ([]model.Vehicle, error)
	ListByModel(ctx context.Context, m model.VehicleModel) ([]model.Vehicle, error)
	ListAvailableBy(ctx context.Context, date model.Date) ([]model.Vehicle, error)
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	cache       *cache.Client
	log         *logrus.Logger
}

// NewVehicleService builds a VehicleService with repository and cache.
func NewVehicleService(vehicleRepo repository.VehicleRepository, cache *cache.Client, log *logrus.Logger) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo, cache: cache, log: log}
}

func (s *vehicleService) cacheKey(id uint) string {
	return fmt.Sprintf("vehicle:%d", id)
}

// Create registers a new fleet vehicle. The plate number must be free.
func (s *vehicleService) Create(ctx context.Context, vehicle *model.Vehicle) error {
	if !vehicle.Model.Valid() {
		return apperrors.ErrInvalidModel
	}

	_, err := s.vehicleRepo.FindByPlateNumber(ctx, vehicle.PlateNumber)
	if err == nil {
		return apperrors.ErrDuplicatePlateNumber
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check plate number: %w", err)
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}

	s.log.WithField("plate_number", vehicle.PlateNumber).Info("vehicle registered")
	return nil
}

// Update rewrites a vehicle looked up by its plate number.
func (s *vehicleService) Update(ctx context.Context, params UpdateVehicleParams) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByPlateNumber(ctx, params.PlateNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}

	if params.Name != "" {
		vehicle.Name = params.Name
	}
	if params.Model != "" {
		if !params.Model.Valid() {
			return nil, apperrors.ErrInvalidModel
		}
		vehicle.Model = params.Model
	}
	if !params.NextAvailable.IsZero() {
		vehicle.NextAvailable = params.NextAvailable
	}
	if params.DailyRate != "" {
		rate, err := parseRate(params.DailyRate)
		if err != nil {
			return nil, err
		}
		vehicle.DailyRate = rate
	}

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(vehicle.ID))
	s.log.WithField("plate_number", vehicle.PlateNumber).Info("vehicle updated")
	return vehicle, nil
}

func (s *vehicleService) List(ctx context.Context) ([]model.Vehicle, error) {
	return s.vehicleRepo.FindAll(ctx)
}

func (s *vehicleService) Get(ctx context.Context, id uint) (*model.Vehicle, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Vehicle
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVehicleNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(vehicle); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, vehicleCacheTTL)
	}
	return vehicle, nil
}

func (s *vehicleService) GetByPlateNumber(ctx context.Context, plate string) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByPlateNumber(ctx, plate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) SearchByPlateNumber(ctx context.Context, plate string) ([]model.Vehicle, error) {
	return s.vehicleRepo.SearchByPlateNumber(ctx, plate)
}

func (s *vehicleService) ListByModel(ctx context.Context, m model.VehicleModel) ([]model.Vehicle, error) {
	if !m.Valid() {
		return nil, apperrors.ErrInvalidModel
	}
	return s.vehicleRepo.FindAllByModel(ctx, m)
}

func (s *vehicleService) ListAvailableBy(ctx context.Context, date model.Date) ([]model.Vehicle, error) {
	return s.vehicleRepo.FindAllAvailableBy(ctx, date)
}

func parseRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid daily rate %q", raw)
	}
	return rate, nil
}
