package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user lookup fails.
	ErrUserNotFound = errors.New("user not found")
	// ErrRequestNotFound is returned when a ride request lookup fails.
	ErrRequestNotFound = errors.New("ride request not found")
	// ErrVehicleNotFound is returned when a vehicle lookup fails.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrDuplicatePlateNumber is returned when a vehicle with the same plate number is already registered.
	ErrDuplicatePlateNumber = errors.New("vehicle with this plate number already exists")
	// ErrVehicleUnavailable is returned when the vehicle is not available on the requested pickup date.
	ErrVehicleUnavailable = errors.New("vehicle is not available on the requested pickup date")
	// ErrVehicleNotAssigned is returned when a request is approved without a vehicle bound to it.
	ErrVehicleNotAssigned = errors.New("no vehicle assigned to the ride request")
	// ErrInvalidStatus is returned when a status value is outside the known set.
	ErrInvalidStatus = errors.New("invalid request status")
	// ErrInvalidModel is returned when a vehicle model is outside the known set.
	ErrInvalidModel = errors.New("invalid vehicle model")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Credential failures are
// mapped by the auth handler directly; everything unrecognized collapses to
// a generic 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrRequestNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REQUEST_NOT_FOUND")
	case errors.Is(err, ErrVehicleNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "VEHICLE_NOT_FOUND")
	case errors.Is(err, ErrDuplicatePlateNumber):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_PLATE_NUMBER")
	case errors.Is(err, ErrVehicleUnavailable):
		return NewHTTPError(http.StatusConflict, err.Error(), "VEHICLE_UNAVAILABLE")
	case errors.Is(err, ErrVehicleNotAssigned):
		return NewHTTPError(http.StatusConflict, err.Error(), "VEHICLE_NOT_ASSIGNED")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrInvalidModel):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_MODEL")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
