package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	cartService service.CartService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, userService service.UserService, cartService service.CartService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		cartService: cartService,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request. CartID names a guest cart to
// merge into the user's cart.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	CartID   string `json:"cartId,omitempty"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// UsersResponse wraps a user listing.
type UsersResponse struct {
	Message string       `json:"message"`
	Users   []model.User `json:"users"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/registeruser [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	result, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		User:    result.User,
		Token:   result.Token,
	})
}

// Login godoc
// @Summary Login user
// @Description Signs the user in. A guest cartId in the body is merged into the user's cart.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/loginuser [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	ctx := c.Request().Context()
	result, err := h.authService.Login(ctx, service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return respondError(c, err)
	}

	if req.CartID != "" {
		if _, err := h.cartService.MergeGuestCart(ctx, result.User.ID, req.CartID); err != nil {
			// a failed merge leaves the guest cart in place; login still succeeds
			c.Logger().Warnf("merge guest cart %s: %v", req.CartID, err)
		}
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful",
		User:    result.User,
		Token:   result.Token,
	})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims := claimsOf(c)
	if claims == nil {
		return respondError(c, errors.ErrUnauthorized)
	}

	user, err := h.userService.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.MapErrorToHTTP(err).StatusCode == http.StatusNotFound {
			// the account was deleted after the token was issued
			return respondError(c, errors.ErrUnauthorized)
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, UserResponse{
		Message: "User fetched successfully",
		User:    user,
	})
}

// Logout godoc
// @Summary Logout user
// @Description Revokes the presented token until it expires.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), claimsOf(c)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}
