package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"carrental/internal/model"
	"carrental/internal/service"
)

// VehicleHandler bundles fleet inventory endpoints.
type VehicleHandler struct {
	svc service.VehicleService
}

// NewVehicleHandler creates a handler layer.
func NewVehicleHandler(svc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{svc: svc}
}

// VehicleRequest is the create/update payload. On update the plate number
// is the lookup key.
type VehicleRequest struct {
	Name          string     `json:"name" validate:"required"`
	Model         string     `json:"model" validate:"required"`
	PlateNumber   string     `json:"plate_number" validate:"required"`
	NextAvailable model.Date `json:"next_available"`
	DailyRate     string     `json:"daily_rate"`
}

// Create godoc
// @Summary Register a new fleet vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VehicleRequest true "Vehicle data"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /vehicle [post]
func (h *VehicleHandler) Create(c echo.Context) error {
	var req VehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rate := decimal.Zero
	if req.DailyRate != "" {
		parsed, err := decimal.NewFromString(req.DailyRate)
		if err != nil || parsed.IsNegative() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid daily rate")
		}
		rate = parsed
	}

	vehicle := &model.Vehicle{
		Name:          req.Name,
		Model:         model.VehicleModel(req.Model),
		PlateNumber:   req.PlateNumber,
		NextAvailable: req.NextAvailable,
		DailyRate:     rate,
	}
	if err := h.svc.Create(c.Request().Context(), vehicle); err != nil {
		return domainError(err)
	}
	return created(c, "vehicle is successfully saved", vehicle)
}

// Update godoc
// @Summary Update a vehicle looked up by plate number
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VehicleRequest true "Vehicle data"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /vehicle [put]
func (h *VehicleHandler) Update(c echo.Context) error {
	var req VehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PlateNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "plate_number is required")
	}

	vehicle, err := h.svc.Update(c.Request().Context(), service.UpdateVehicleParams{
		PlateNumber:   req.PlateNumber,
		Name:          req.Name,
		Model:         model.VehicleModel(req.Model),
		NextAvailable: req.NextAvailable,
		DailyRate:     req.DailyRate,
	})
	if err != nil {
		return domainError(err)
	}
	return ok(c, "vehicle is successfully updated", vehicle)
}

// List godoc
// @Summary List all vehicles
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /vehicle [get]
func (h *VehicleHandler) List(c echo.Context) error {
	vehicles, err := h.svc.List(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving all vehicles", vehicles)
}

// GetOne godoc
// @Summary Get a vehicle by id
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /vehicle/{id} [get]
func (h *VehicleHandler) GetOne(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	vehicle, err := h.svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving vehicle by ID", vehicle)
}

// ByPlateNumber godoc
// @Summary Find vehicles by plate number
// @Description Partial, case-insensitive match by default; exact=true switches to an exact lookup.
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param plateNumber query string true "Plate number"
// @Param exact query bool false "Exact match"
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /vehicle/platenumber [get]
func (h *VehicleHandler) ByPlateNumber(c echo.Context) error {
	plate := c.QueryParam("plateNumber")
	if plate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "plateNumber is required")
	}

	if c.QueryParam("exact") == "true" {
		vehicle, err := h.svc.GetByPlateNumber(c.Request().Context(), plate)
		if err != nil {
			return domainError(err)
		}
		return ok(c, "retrieving vehicle by plate number", vehicle)
	}

	vehicles, err := h.svc.SearchByPlateNumber(c.Request().Context(), plate)
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving vehicles by plate number", vehicles)
}

// ByModel godoc
// @Summary List vehicles of a fleet segment
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param model query string true "Vehicle model"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /vehicle/model [get]
func (h *VehicleHandler) ByModel(c echo.Context) error {
	m := c.QueryParam("model")
	if m == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "model is required")
	}
	vehicles, err := h.svc.ListByModel(c.Request().Context(), model.VehicleModel(m))
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving vehicles by model", vehicles)
}

// AvailableByDate godoc
// @Summary List vehicles available on a date
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /vehicle/date [get]
func (h *VehicleHandler) AvailableByDate(c echo.Context) error {
	date, err := model.ParseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	vehicles, err := h.svc.ListAvailableBy(c.Request().Context(), date)
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving available vehicles by date", vehicles)
}
