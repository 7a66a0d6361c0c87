package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"carrental/internal/auth"
	"carrental/internal/config"
	"carrental/internal/handler"
	"carrental/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	vehicleHandler *handler.VehicleHandler,
	requestHandler *handler.RideRequestHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes: JWT verified, claims lifted into a principal.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}), principalMiddleware)

	adminOnly := requireRole(model.RoleAdmin)
	shared := requireRole(model.RoleAdmin, model.RoleUser)

	// User directory
	secured.PUT("/user", userHandler.UpdateAccount, requireRole(model.RoleUser))
	secured.GET("/user/all", userHandler.ListUsers, adminOnly)
	secured.GET("/user/:id", userHandler.GetUser, adminOnly)
	secured.DELETE("/user/:id", userHandler.DeleteUser, adminOnly)

	// Vehicle inventory. Listing is open to riders so they can browse the fleet.
	secured.GET("/vehicle", vehicleHandler.List, shared)
	secured.POST("/vehicle", vehicleHandler.Create, adminOnly)
	secured.PUT("/vehicle", vehicleHandler.Update, adminOnly)
	secured.GET("/vehicle/platenumber", vehicleHandler.ByPlateNumber, adminOnly)
	secured.GET("/vehicle/model", vehicleHandler.ByModel, adminOnly)
	secured.GET("/vehicle/date", vehicleHandler.AvailableByDate, adminOnly)
	secured.GET("/vehicle/:id", vehicleHandler.GetOne, adminOnly)

	// Ride-request workflow
	secured.GET("/request", requestHandler.List, adminOnly)
	secured.POST("/request", requestHandler.Create, requireRole(model.RoleUser))
	secured.PUT("/request", requestHandler.Update, shared)
	secured.GET("/request/status/:status", requestHandler.ListByStatus, adminOnly)
	secured.GET("/request/locations", requestHandler.ListByLocations, adminOnly)
	secured.GET("/request/date", requestHandler.ListByDate, adminOnly)
	secured.GET("/request/dates", requestHandler.ListByDateRange, adminOnly)
	secured.GET("/request/all/:id", requestHandler.ListByUser, shared)
	secured.GET("/request/:id", requestHandler.GetOne, shared)
	secured.PATCH("/request/:id", requestHandler.UpdateStatus, adminOnly)
	secured.PUT("/request/:id", requestHandler.AssignVehicle, adminOnly)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
