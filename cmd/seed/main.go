package main

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"carrental/internal/config"
	"carrental/internal/db"
	"carrental/internal/logger"
	"carrental/internal/model"
	"carrental/internal/repository"
)

// Seeds the initial admin account and a small demo fleet. Safe to run
// repeatedly: existing records are left alone.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogFile)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, log)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Admin{}, &model.Vehicle{}, &model.RideRequest{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	adminRepo := repository.NewAdminRepository(gormDB)
	vehicleRepo := repository.NewVehicleRepository(gormDB)

	seedAdmin(ctx, adminRepo, cfg.SeedAdminUsername, cfg.SeedAdminPassword, log)
	seedFleet(ctx, vehicleRepo, log)
}

func seedAdmin(ctx context.Context, repo repository.AdminRepository, username, password string, log *logrus.Logger) {
	if _, err := repo.FindByUsername(ctx, username); err == nil {
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("check admin: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	if err := repo.Create(ctx, &model.Admin{Username: username, Password: string(hashed)}); err != nil {
		log.Fatalf("create admin: %v", err)
	}
}

func seedFleet(ctx context.Context, repo repository.VehicleRepository, log *logrus.Logger) {
	fleet := []model.Vehicle{
		{Name: "Toyota Corolla", Model: model.ModelSedan, PlateNumber: "CAR-1001", DailyRate: decimal.NewFromInt(45)},
		{Name: "Toyota RAV4", Model: model.ModelSUV, PlateNumber: "CAR-1002", DailyRate: decimal.NewFromInt(70)},
		{Name: "Honda Fit", Model: model.ModelHatchback, PlateNumber: "CAR-1003", DailyRate: decimal.NewFromInt(38)},
		{Name: "Mercedes V-Class", Model: model.ModelVan, PlateNumber: "CAR-1004", DailyRate: decimal.NewFromInt(110)},
		{Name: "BMW 5 Series", Model: model.ModelLuxury, PlateNumber: "CAR-1005", DailyRate: decimal.NewFromInt(150)},
	}

	for i := range fleet {
		if _, err := repo.FindByPlateNumber(ctx, fleet[i].PlateNumber); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("check vehicle: %v", err)
		}
		if err := repo.Create(ctx, &fleet[i]); err != nil {
			log.Fatalf("create vehicle: %v", err)
		}
	}
}
