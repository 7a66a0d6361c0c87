package repository

import (
	"context"

	"gorm.io/gorm"

	"carrental/internal/model"
)

// RideRequestRepository defines persistence operations for ride requests.
type RideRequestRepository interface {
	Create(ctx context.Context, req *model.RideRequest) error
	Save(ctx context.Context, req *model.RideRequest) error
	FindByID(ctx context.Context, id uint) (*model.RideRequest, error)
	FindAll(ctx context.Context) ([]model.RideRequest, error)
	FindAllByStatus(ctx context.Context, status model.RequestStatus) ([]model.RideRequest, error)
	FindAllByUserID(ctx context.Context, userID uint) ([]model.RideRequest, error)
	FindAllByCities(ctx context.Context, pickupCity, destinationCity string) ([]model.RideRequest, error)
	FindAllByPickupDate(ctx context.Context, date model.Date) ([]model.RideRequest, error)
	FindAllByPickupDateBetween(ctx context.Context, start, end model.Date) ([]model.RideRequest, error)

	// WithTransaction runs fn against transactional repositories so the
	// vehicle row lock taken inside fn holds until commit.
	WithTransaction(ctx context.Context, fn func(requests RideRequestRepository, vehicles VehicleRepository) error) error
}

type rideRequestRepository struct {
	db *gorm.DB
}

// NewRideRequestRepository builds a GORM-backed repository.
func NewRideRequestRepository(db *gorm.DB) RideRequestRepository {
	return &rideRequestRepository{db: db}
}

func (r *rideRequestRepository) Create(ctx context.Context, req *model.RideRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *rideRequestRepository) Save(ctx context.Context, req *model.RideRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *rideRequestRepository) FindByID(ctx context.Context, id uint) (*model.RideRequest, error) {
	var req model.RideRequest
	if err := r.preloaded(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *rideRequestRepository) FindAll(ctx context.Context) ([]model.RideRequest, error) {
	var reqs []model.RideRequest
	if err := r.preloaded(ctx).Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *rideRequestRepository) FindAllByStatus(ctx context.Context, status model.RequestStatus) ([]model.RideRequest, error) {
	var reqs []model.RideRequest
	if err := r.preloaded(ctx).Where("status = ?", status).Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *rideRequestRepository) FindAllByUserID(ctx context.Context, userID uint) ([]model.RideRequest, error) {
	var reqs []model.RideRequest
	if err := r.preloaded(ctx).Where("user_id = ?", userID).Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *rideRequestRepository) FindAllByCities(ctx context.Context, pickupCity, destinationCity string) ([]model.RideRequest, error) {
	var reqs []model.RideRequest
	if err := r.preloaded(ctx).
		Where("pickup_city = ? AND destination_city = ?", pickupCity, destinationCity).
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *rideRequestRepository) FindAllByPickupDate(ctx context.Context, date model.Date) ([]model.RideRequest, error) {
	var reqs []model.RideRequest
	if err := r.preloaded(ctx).Where("pickup_date = ?", date).Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *rideRequestRepository) FindAllByPickupDateBetween(ctx context.Context, start, end model.Date) ([]model.RideRequest, error) {
	var reqs []model.RideRequest
	if err := r.preloaded(ctx).
		Where("pickup_date BETWEEN ? AND ?", start, end).
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *rideRequestRepository) WithTransaction(ctx context.Context, fn func(requests RideRequestRepository, vehicles VehicleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&rideRequestRepository{db: tx}, &vehicleRepository{db: tx})
	})
}

func (r *rideRequestRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Vehicle").Preload("User")
}
