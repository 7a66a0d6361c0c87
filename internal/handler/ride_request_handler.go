package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"carrental/internal/model"
	"carrental/internal/service"
)

// RideRequestHandler bundles booking workflow endpoints.
type RideRequestHandler struct {
	svc service.RideRequestService
}

// NewRideRequestHandler creates a handler layer.
func NewRideRequestHandler(svc service.RideRequestService) *RideRequestHandler {
	return &RideRequestHandler{svc: svc}
}

// RideRequestPayload is the create/update payload. ID is only read on
// update; user_id only on create.
type RideRequestPayload struct {
	ID          uint           `json:"id"`
	Model       string         `json:"model"`
	PickupDate  model.Date     `json:"pickup_date"`
	ReturnDate  model.Date     `json:"return_date"`
	Pickup      model.Location `json:"pickup"`
	Destination model.Location `json:"destination"`
	UserID      uint           `json:"user_id"`
}

func (p *RideRequestPayload) validateDates() error {
	if p.PickupDate.IsZero() || p.ReturnDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "pickup_date and return_date are required (YYYY-MM-DD)")
	}
	if p.ReturnDate.Before(p.PickupDate) {
		return echo.NewHTTPError(http.StatusBadRequest, "return_date must not be before pickup_date")
	}
	return nil
}

// Create godoc
// @Summary File a new ride request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RideRequestPayload true "Ride request"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /request [post]
func (h *RideRequestHandler) Create(c echo.Context) error {
	var payload RideRequestPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := payload.validateDates(); err != nil {
		return err
	}
	if payload.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	req := &model.RideRequest{
		Model:       payload.Model,
		PickupDate:  payload.PickupDate,
		ReturnDate:  payload.ReturnDate,
		Pickup:      payload.Pickup,
		Destination: payload.Destination,
		UserID:      payload.UserID,
	}
	if err := h.svc.Create(c.Request().Context(), req); err != nil {
		return domainError(err)
	}
	return created(c, "request sent successfully", req)
}

// Update godoc
// @Summary Update a ride request's rider-editable fields
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RideRequestPayload true "Ride request"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /request [put]
func (h *RideRequestHandler) Update(c echo.Context) error {
	var payload RideRequestPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if payload.ID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	if err := payload.validateDates(); err != nil {
		return err
	}

	req := &model.RideRequest{
		ID:          payload.ID,
		Model:       payload.Model,
		PickupDate:  payload.PickupDate,
		ReturnDate:  payload.ReturnDate,
		Pickup:      payload.Pickup,
		Destination: payload.Destination,
	}
	if err := h.svc.Update(c.Request().Context(), req); err != nil {
		return domainError(err)
	}
	return ok(c, "request updated successfully", req)
}

// UpdateStatus godoc
// @Summary Approve or reject a ride request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param status query string true "New status (APPROVED or REJECTED)"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /request/{id} [patch]
func (h *RideRequestHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	status := model.RequestStatus(c.QueryParam("status"))

	if err := h.svc.UpdateStatus(c.Request().Context(), uint(id), status); err != nil {
		return domainError(err)
	}
	return ok(c, "request status has been updated successfully", nil)
}

// AssignVehicle godoc
// @Summary Assign a vehicle to a ride request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param vehicleId query int true "Vehicle ID"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /request/{id} [put]
func (h *RideRequestHandler) AssignVehicle(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	vehicleID, err := strconv.Atoi(c.QueryParam("vehicleId"))
	if err != nil || vehicleID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid vehicleId")
	}

	if err := h.svc.AssignVehicle(c.Request().Context(), uint(id), uint(vehicleID)); err != nil {
		return domainError(err)
	}
	return ok(c, "vehicle assigned to the ride request successfully", nil)
}

// List godoc
// @Summary List all ride requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /request [get]
func (h *RideRequestHandler) List(c echo.Context) error {
	reqs, err := h.svc.List(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving all ride requests", reqs)
}

// GetOne godoc
// @Summary Get a ride request by id
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /request/{id} [get]
func (h *RideRequestHandler) GetOne(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	req, err := h.svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving ride request by ID", req)
}

// ListByUser godoc
// @Summary List ride requests filed by a user
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Response
// @Router /request/all/{id} [get]
func (h *RideRequestHandler) ListByUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	reqs, err := h.svc.ListByUser(c.Request().Context(), uint(id))
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving all ride requests for the user", reqs)
}

// ListByStatus godoc
// @Summary List ride requests in a lifecycle state
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param status path string true "Status (PENDING, APPROVED or REJECTED)"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /request/status/{status} [get]
func (h *RideRequestHandler) ListByStatus(c echo.Context) error {
	status := model.RequestStatus(c.Param("status"))
	reqs, err := h.svc.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving ride requests by status", reqs)
}

// ListByLocations godoc
// @Summary List ride requests between a pickup and destination city
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param pickupCity query string true "Pickup city"
// @Param destinationCity query string true "Destination city"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /request/locations [get]
func (h *RideRequestHandler) ListByLocations(c echo.Context) error {
	pickup := c.QueryParam("pickupCity")
	destination := c.QueryParam("destinationCity")
	if pickup == "" || destination == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "pickupCity and destinationCity are required")
	}
	reqs, err := h.svc.ListByCities(c.Request().Context(), pickup, destination)
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving ride requests by locations", reqs)
}

// ListByDate godoc
// @Summary List ride requests with an exact pickup date
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param date query string true "Pickup date (YYYY-MM-DD)"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /request/date [get]
func (h *RideRequestHandler) ListByDate(c echo.Context) error {
	date, err := model.ParseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	reqs, err := h.svc.ListByPickupDate(c.Request().Context(), date)
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving ride requests by pickup date", reqs)
}

// ListByDateRange godoc
// @Summary List ride requests within a pickup date range
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /request/dates [get]
func (h *RideRequestHandler) ListByDateRange(c echo.Context) error {
	start, err := model.ParseDate(c.QueryParam("startDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid startDate, expected YYYY-MM-DD")
	}
	end, err := model.ParseDate(c.QueryParam("endDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid endDate, expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return echo.NewHTTPError(http.StatusBadRequest, "endDate must not be before startDate")
	}
	reqs, err := h.svc.ListByPickupDateRange(c.Request().Context(), start, end)
	if err != nil {
		return domainError(err)
	}
	return ok(c, "retrieving ride requests by pickup date range", reqs)
}
