package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"carrental/internal/auth"
	apperrors "carrental/internal/errors"
)

// Response is the success envelope used across the API.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Body    interface{} `json:"body,omitempty"`
}

func ok(c echo.Context, message string, body interface{}) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message, Body: body})
}

func created(c echo.Context, message string, body interface{}) error {
	return c.JSON(http.StatusCreated, Response{Success: true, Message: message, Body: body})
}

// domainError maps a service error onto its HTTP status and error body.
func domainError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// currentPrincipal returns the authenticated identity the JWT middleware
// stored on the request context.
func currentPrincipal(c echo.Context) (auth.Principal, bool) {
	p, ok := c.Get("principal").(auth.Principal)
	return p, ok
}
