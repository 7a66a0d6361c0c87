package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"carrental/internal/cache"
	apperrors "carrental/internal/errors"
	"carrental/internal/mail"
	"carrental/internal/model"
	"carrental/internal/repository"
)

// RideRequestService drives the booking workflow: riders file requests,
// admins assign vehicles and approve or reject.
type RideRequestService interface {
	Create(ctx context.Context, req *model.RideRequest) error
	Update(ctx context.Context, req *model.RideRequest) error
	UpdateStatus(ctx context.Context, id uint, status model.RequestStatus) error
	AssignVehicle(ctx context.Context, id, vehicleID uint) error

	Get(ctx context.Context, id uint) (*model.RideRequest, error)
	List(ctx context.Context) ([]model.RideRequest, error)
	ListByStatus(ctx context.Context, status model.RequestStatus) ([]model.RideRequest, error)
	ListByUser(ctx context.Context, userID uint) ([]model.RideRequest, error)
	ListByCities(ctx context.Context, pickupCity, destinationCity string) ([]model.RideRequest, error)
	ListByPickupDate(ctx context.Context, date model.Date) ([]model.RideRequest, error)
	ListByPickupDateRange(ctx context.Context, start, end model.Date) ([]model.RideRequest, error)
}

type rideRequestService struct {
	requestRepo repository.RideRequestRepository
	userRepo    repository.UserRepository
	cache       *cache.Client
	mailer      mail.Mailer
	log         *logrus.Logger
}

// NewRideRequestService builds the workflow service.
func NewRideRequestService(
	requestRepo repository.RideRequestRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
	mailer mail.Mailer,
	log *logrus.Logger,
) RideRequestService {
	return &rideRequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		cache:       cache,
		mailer:      mailer,
		log:         log,
	}
}

// Create files a new request. The referenced user must exist; the request
// always starts PENDING with no vehicle bound.
func (s *rideRequestService) Create(ctx context.Context, req *model.RideRequest) error {
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	req.Status = model.StatusPending
	req.VehicleID = nil
	req.Vehicle = nil
	req.EstimatedCost = decimal.Zero

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return fmt.Errorf("create ride request: %w", err)
	}

	s.log.WithFields(logrus.Fields{"request_id": req.ID, "user_id": req.UserID}).Info("ride request created")
	return nil
}

// Update rewrites the rider-editable fields of a request. Status, user and
// vehicle binding are preserved from the stored record.
func (s *rideRequestService) Update(ctx context.Context, req *model.RideRequest) error {
	stored, err := s.requestRepo.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRequestNotFound
		}
		return fmt.Errorf("find ride request: %w", err)
	}

	stored.Model = req.Model
	stored.PickupDate = req.PickupDate
	stored.ReturnDate = req.ReturnDate
	stored.Pickup = req.Pickup
	stored.Destination = req.Destination

	if err := s.requestRepo.Save(ctx, stored); err != nil {
		return fmt.Errorf("update ride request: %w", err)
	}
	*req = *stored
	return nil
}

// UpdateStatus moves a request to APPROVED or REJECTED. Approval requires
// an assigned vehicle; the rider is notified by email with the vehicle's
// plate number. A notification failure is logged, never fatal.
func (s *rideRequestService) UpdateStatus(ctx context.Context, id uint, status model.RequestStatus) error {
	if !status.Valid() {
		return apperrors.ErrInvalidStatus
	}

	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRequestNotFound
		}
		return fmt.Errorf("find ride request: %w", err)
	}

	if status == model.StatusApproved && req.Vehicle == nil {
		return apperrors.ErrVehicleNotAssigned
	}

	req.Status = status
	if err := s.requestRepo.Save(ctx, req); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	s.log.WithFields(logrus.Fields{"request_id": id, "status": status}).Info("ride request status updated")

	if status == model.StatusApproved {
		s.notifyApproval(req)
	}
	return nil
}

// AssignVehicle binds a vehicle to a request when the vehicle is free on
// the pickup date, advancing its next available date to the return date.
// The read-check-write runs in one transaction with the vehicle row locked.
func (s *rideRequestService) AssignVehicle(ctx context.Context, id, vehicleID uint) error {
	var assignedVehicleID uint

	err := s.requestRepo.WithTransaction(ctx, func(requests repository.RideRequestRepository, vehicles repository.VehicleRepository) error {
		req, err := requests.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRequestNotFound
			}
			return fmt.Errorf("find ride request: %w", err)
		}

		vehicle, err := vehicles.FindByIDForUpdate(ctx, vehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrVehicleNotFound
			}
			return fmt.Errorf("find vehicle: %w", err)
		}

		if vehicle.NextAvailable.After(req.PickupDate) {
			return apperrors.ErrVehicleUnavailable
		}

		req.VehicleID = &vehicle.ID
		req.Vehicle = vehicle
		req.EstimatedCost = vehicle.DailyRate.Mul(decimal.NewFromInt(req.RentalDays()))
		vehicle.NextAvailable = req.ReturnDate

		if err := vehicles.Save(ctx, vehicle); err != nil {
			return fmt.Errorf("save vehicle: %w", err)
		}
		if err := requests.Save(ctx, req); err != nil {
			return fmt.Errorf("save ride request: %w", err)
		}

		assignedVehicleID = vehicle.ID
		return nil
	})
	if err != nil {
		return err
	}

	// Cached vehicle now carries a stale availability date.
	_ = s.cache.Delete(ctx, fmt.Sprintf("vehicle:%d", assignedVehicleID))

	s.log.WithFields(logrus.Fields{"request_id": id, "vehicle_id": vehicleID}).Info("vehicle assigned")
	return nil
}

func (s *rideRequestService) Get(ctx context.Context, id uint) (*model.RideRequest, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *rideRequestService) List(ctx context.Context) ([]model.RideRequest, error) {
	return s.requestRepo.FindAll(ctx)
}

func (s *rideRequestService) ListByStatus(ctx context.Context, status model.RequestStatus) ([]model.RideRequest, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}
	return s.requestRepo.FindAllByStatus(ctx, status)
}

func (s *rideRequestService) ListByUser(ctx context.Context, userID uint) ([]model.RideRequest, error) {
	return s.requestRepo.FindAllByUserID(ctx, userID)
}

func (s *rideRequestService) ListByCities(ctx context.Context, pickupCity, destinationCity string) ([]model.RideRequest, error) {
	return s.requestRepo.FindAllByCities(ctx, pickupCity, destinationCity)
}

func (s *rideRequestService) ListByPickupDate(ctx context.Context, date model.Date) ([]model.RideRequest, error) {
	return s.requestRepo.FindAllByPickupDate(ctx, date)
}

func (s *rideRequestService) ListByPickupDateRange(ctx context.Context, start, end model.Date) ([]model.RideRequest, error) {
	return s.requestRepo.FindAllByPickupDateBetween(ctx, start, end)
}

func (s *rideRequestService) notifyApproval(req *model.RideRequest) {
	body := fmt.Sprintf(
		"Your ride request #%d has been approved.\nVehicle plate number: %s\nPickup: %s\nReturn: %s\n",
		req.ID, req.Vehicle.PlateNumber, req.PickupDate, req.ReturnDate,
	)
	if err := s.mailer.Send(req.User.Email, "Ride request approved", body); err != nil {
		s.log.WithError(err).WithField("request_id", req.ID).Warn("approval notification failed")
	}
}
