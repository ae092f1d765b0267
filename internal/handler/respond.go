package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/model"
)

// respondError maps a service error to an echo HTTP error. Internal errors are
// logged with the request and answered without detail.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(code, msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

func invalidBody() error {
	return badRequest("INVALID_REQUEST", "invalid request body")
}

func validationFailed(err error) error {
	return badRequest("VALIDATION_FAILED", errors.NewValidationError(err).Error())
}

// claimsOf returns the authenticated caller, or nil on public requests.
func claimsOf(c echo.Context) *auth.Claims {
	return auth.ClaimsFromContext(c.Request().Context())
}

// cartOwner resolves whose cart a request targets. A signed-in caller always
// gets their own cart; otherwise cartID names a guest cart.
func cartOwner(c echo.Context, cartID string) model.CartOwner {
	if claims := claimsOf(c); claims != nil {
		return model.UserOwner(claims.UserID)
	}
	return model.GuestOwner(cartID)
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
