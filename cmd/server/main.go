package main

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "carrental/docs" // swagger docs

	"carrental/internal/auth"
	"carrental/internal/cache"
	"carrental/internal/config"
	"carrental/internal/db"
	"carrental/internal/handler"
	"carrental/internal/logger"
	"carrental/internal/mail"
	"carrental/internal/model"
	"carrental/internal/repository"
	"carrental/internal/router"
	"carrental/internal/service"
)

// @title Car Rental API
// @version 1.0
// @description Car rental backend with vehicle inventory, ride-request workflow, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogFile)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, log)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.RideRequest{},
			&model.Vehicle{},
			&model.Admin{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.WithError(err).Warn("drop table failed, may not exist")
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Admin{},
		&model.Vehicle{},
		&model.RideRequest{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.WithError(err).Warn("redis unreachable, caching disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	adminRepo := repository.NewAdminRepository(gormDB)
	vehicleRepo := repository.NewVehicleRepository(gormDB)
	requestRepo := repository.NewRideRequestRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, log)

	// Initialize services
	authService := service.NewAuthService(userRepo, adminRepo, jwtService, tokenStore, log)
	userService := service.NewUserService(userRepo, adminRepo, cacheClient, log)
	vehicleService := service.NewVehicleService(vehicleRepo, cacheClient, log)
	requestService := service.NewRideRequestService(requestRepo, userRepo, cacheClient, mailer, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	requestHandler := handler.NewRideRequestHandler(requestService)

	// Register routes
	router.Register(e, cfg, authHandler, userHandler, vehicleHandler, requestHandler)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.Infof("swagger ui at %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
