package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "carrental/internal/errors"
	"carrental/internal/model"
)

func TestVehicleService_Create(t *testing.T) {
	tests := []struct {
		name          string
		vehicle       *model.Vehicle
		setupMock     func(*MockVehicleRepository)
		expectedError error
	}{
		{
			name:    "successful registration",
			vehicle: &model.Vehicle{Name: "Toyota Corolla", Model: model.ModelSedan, PlateNumber: "CAR-1001"},
			setupMock: func(m *MockVehicleRepository) {
				m.On("FindByPlateNumber", mock.Anything, "CAR-1001").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Vehicle")).Return(nil)
			},
		},
		{
			name:    "duplicate plate number",
			vehicle: &model.Vehicle{Name: "Toyota Corolla", Model: model.ModelSedan, PlateNumber: "CAR-1001"},
			setupMock: func(m *MockVehicleRepository) {
				m.On("FindByPlateNumber", mock.Anything, "CAR-1001").Return(&model.Vehicle{PlateNumber: "CAR-1001"}, nil)
			},
			expectedError: apperrors.ErrDuplicatePlateNumber,
		},
		{
			name:          "unknown model",
			vehicle:       &model.Vehicle{Name: "Hover Car", Model: model.VehicleModel("HOVERCRAFT"), PlateNumber: "CAR-1002"},
			setupMock:     func(m *MockVehicleRepository) {},
			expectedError: apperrors.ErrInvalidModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockVehicleRepository)
			tt.setupMock(mockRepo)

			service := NewVehicleService(mockRepo, nil, testLogger())
			err := service.Create(context.Background(), tt.vehicle)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestVehicleService_Update(t *testing.T) {
	t.Run("updates fields matched by plate number", func(t *testing.T) {
		stored := &model.Vehicle{
			ID:          5,
			Name:        "Toyota Corolla",
			Model:       model.ModelSedan,
			PlateNumber: "CAR-1001",
			DailyRate:   decimal.NewFromInt(45),
		}

		mockRepo := new(MockVehicleRepository)
		mockRepo.On("FindByPlateNumber", mock.Anything, "CAR-1001").Return(stored, nil)
		mockRepo.On("Save", mock.Anything, stored).Return(nil)

		service := NewVehicleService(mockRepo, nil, testLogger())
		vehicle, err := service.Update(context.Background(), UpdateVehicleParams{
			PlateNumber:   "CAR-1001",
			Name:          "Toyota Corolla Hybrid",
			DailyRate:     "52.50",
			NextAvailable: model.NewDate(2026, time.September, 15),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Toyota Corolla Hybrid", vehicle.Name)
		assert.True(t, vehicle.DailyRate.Equal(decimal.RequireFromString("52.50")))
		assert.Equal(t, model.NewDate(2026, time.September, 15), vehicle.NextAvailable)
		// model untouched when the update leaves it out
		assert.Equal(t, model.ModelSedan, vehicle.Model)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown plate number", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("FindByPlateNumber", mock.Anything, "NOPE-1").Return(nil, gorm.ErrRecordNotFound)

		service := NewVehicleService(mockRepo, nil, testLogger())
		_, err := service.Update(context.Background(), UpdateVehicleParams{PlateNumber: "NOPE-1"})

		assert.Equal(t, apperrors.ErrVehicleNotFound, err)
	})

	t.Run("negative daily rate", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("FindByPlateNumber", mock.Anything, "CAR-1001").Return(&model.Vehicle{PlateNumber: "CAR-1001"}, nil)

		service := NewVehicleService(mockRepo, nil, testLogger())
		_, err := service.Update(context.Background(), UpdateVehicleParams{PlateNumber: "CAR-1001", DailyRate: "-10"})

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestVehicleService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Vehicle{ID: 5, PlateNumber: "CAR-1001"}, nil)

		service := NewVehicleService(mockRepo, nil, testLogger())
		vehicle, err := service.Get(context.Background(), 5)

		assert.NoError(t, err)
		assert.Equal(t, "CAR-1001", vehicle.PlateNumber)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		service := NewVehicleService(mockRepo, nil, testLogger())
		_, err := service.Get(context.Background(), 5)

		assert.Equal(t, apperrors.ErrVehicleNotFound, err)
	})
}

func TestVehicleService_ListByModel(t *testing.T) {
	t.Run("valid model", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("FindAllByModel", mock.Anything, model.ModelSUV).
			Return([]model.Vehicle{{ID: 1}, {ID: 2}}, nil)

		service := NewVehicleService(mockRepo, nil, testLogger())
		vehicles, err := service.ListByModel(context.Background(), model.ModelSUV)

		assert.NoError(t, err)
		assert.Len(t, vehicles, 2)
	})

	t.Run("invalid model", func(t *testing.T) {
		service := NewVehicleService(new(MockVehicleRepository), nil, testLogger())
		_, err := service.ListByModel(context.Background(), model.VehicleModel("TRUCK"))

		assert.Equal(t, apperrors.ErrInvalidModel, err)
	})
}
