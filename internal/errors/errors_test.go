package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"duplicate user", ErrUserAlreadyExists, http.StatusBadRequest, "USER_ALREADY_EXISTS", "user already exists"},
		{"bad credentials", ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS", "invalid email or password"},
		{"wrapped not found", fmt.Errorf("load order: %w", ErrOrderNotFound), http.StatusNotFound, "ORDER_NOT_FOUND", "order not found"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED", ErrUnauthorized.Error()},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN", "access denied"},
		{"empty order", ErrEmptyOrder, http.StatusBadRequest, "EMPTY_ORDER", "cart is empty"},
		{"unknown error is hidden", errors.New("dial tcp 10.0.0.1: refused"), http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
			assert.Equal(t, ErrorResponse{Error: tt.wantMsg, Code: tt.wantCode}, httpErr.ToErrorResponse())
		})
	}
}

func TestValidationError(t *testing.T) {
	type input struct {
		Email string `validate:"required,email"`
		Qty   int    `validate:"min=1"`
	}

	err := validator.New().Struct(input{Qty: 0})
	verr := NewValidationError(err)

	assert.ElementsMatch(t, []string{"Email", "Qty"}, verr.Fields)
	assert.Contains(t, verr.Error(), "Email is required")
	assert.Contains(t, verr.Error(), "Qty must be at least 1")

	httpErr := MapErrorToHTTP(fmt.Errorf("register: %w", verr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", httpErr.Code)
}
