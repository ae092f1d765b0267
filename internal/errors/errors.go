package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole is returned for roles outside customer/admin.
	ErrInvalidRole = errors.New("invalid role")
	// ErrProductNotFound is returned when a product id does not resolve.
	ErrProductNotFound = errors.New("product not found")
	// ErrCartNotFound is returned when the owner has no cart.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound is returned when the product is not in the cart.
	ErrCartItemNotFound = errors.New("item not found")
	// ErrCartOwnerRequired is returned when neither a user nor a guest cart id is known.
	ErrCartOwnerRequired = errors.New("cart owner required")
	// ErrInvalidQuantity is returned for non-positive quantities.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrEmptyOrder is returned when placing an order without items.
	ErrEmptyOrder = errors.New("cart is empty")
	// ErrTotalMismatch is returned when a client supplied total disagrees with the computed one.
	ErrTotalMismatch = errors.New("total price mismatch")
	// ErrOrderNotFound is returned when an order id does not resolve.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidStatus is returned for statuses outside the known set.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrMessageNotFound is returned when a contact message id does not resolve.
	ErrMessageNotFound = errors.New("message not found")
	// ErrMissingFields is returned when a contact form field is blank.
	ErrMissingFields = errors.New("all fields are required")
	// ErrInvalidID is returned for malformed document ids.
	ErrInvalidID = errors.New("invalid id")
	// ErrUnauthorized is returned when a token is missing, invalid, expired or revoked.
	ErrUnauthorized = errors.New("not authorized, token missing or invalid")
	// ErrForbidden is returned when the caller lacks the required role or ownership.
	ErrForbidden = errors.New("access denied")
)

// ValidationError wraps validator failures with a readable message.
type ValidationError struct {
	Fields []string
	msg    string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidationError converts a validator error into a ValidationError.
// Errors that are not validator errors are wrapped verbatim.
func NewValidationError(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{msg: err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		parts = append(parts, describe(fe))
	}
	return &ValidationError{Fields: fields, msg: strings.Join(parts, "; ")}
}

// NewFieldError builds a ValidationError for a single field.
func NewFieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: []string{field}, msg: msg}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email", "storeemail":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "fullname":
		return fmt.Sprintf("%s may only contain letters, digits and spaces", fe.Field())
	case "password":
		return fmt.Sprintf("%s must be 6-20 characters with upper and lower case letters, a digit and one of @$!%%*?&", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

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

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrUserAlreadyExists, http.StatusBadRequest, "USER_ALREADY_EXISTS"},
	{ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS"},
	{ErrInvalidRole, http.StatusBadRequest, "INVALID_ROLE"},
	{ErrCartOwnerRequired, http.StatusBadRequest, "CART_OWNER_REQUIRED"},
	{ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY"},
	{ErrEmptyOrder, http.StatusBadRequest, "EMPTY_ORDER"},
	{ErrTotalMismatch, http.StatusBadRequest, "TOTAL_MISMATCH"},
	{ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
	{ErrMissingFields, http.StatusBadRequest, "MISSING_FIELDS"},
	{ErrInvalidID, http.StatusBadRequest, "INVALID_ID"},
	{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{ErrCartNotFound, http.StatusNotFound, "CART_NOT_FOUND"},
	{ErrCartItemNotFound, http.StatusNotFound, "ITEM_NOT_FOUND"},
	{ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND"},
	{ErrMessageNotFound, http.StatusNotFound, "MESSAGE_NOT_FOUND"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unknown becomes a
// 500 without leaking the underlying message.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return NewHTTPError(http.StatusBadRequest, verr.Error(), "VALIDATION_FAILED")
	}
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
