package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/service"
)

// CartHandler handles guest and user cart endpoints. Signed-in callers always
// work on their own cart; guests name theirs with cartId.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// CartItemRequest targets one line of a cart.
type CartItemRequest struct {
	CartID    string `json:"cartId,omitempty"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity,omitempty"`
}

// CartRequest targets a whole cart.
type CartRequest struct {
	CartID string `json:"cartId,omitempty"`
}

// CartResponse lists the populated cart items.
type CartResponse struct {
	Message   string           `json:"message,omitempty"`
	CartItems []model.CartItem `json:"cartItems"`
}

// GuestIDResponse carries a freshly minted guest cart id.
type GuestIDResponse struct {
	CartID string `json:"cartId"`
}

func cartResponse(msg string, cart *model.Cart) CartResponse {
	items := cart.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return CartResponse{Message: msg, CartItems: items}
}

// GetCart godoc
// @Summary Get a cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param cartId query string false "Guest cart id, ignored when signed in"
// @Success 200 {object} CartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /cart/get-cart [get]
func (h *CartHandler) GetCart(c echo.Context) error {
	cart, err := h.cartService.GetCart(c.Request().Context(), cartOwner(c, c.QueryParam("cartId")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cartResponse("", cart))
}

// AddToCart godoc
// @Summary Add a product to a cart
// @Description Quantity defaults to 1. Adding a product already in the cart sums the quantities.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CartItemRequest true "Cart line"
// @Success 200 {object} CartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cart/add-to-cart [post]
func (h *CartHandler) AddToCart(c echo.Context) error {
	var req CartItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	cart, err := h.cartService.AddItem(c.Request().Context(), cartOwner(c, req.CartID), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cartResponse("Item added to cart", cart))
}

// UpdateQuantity godoc
// @Summary Set the quantity of a cart line
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CartItemRequest true "Cart line"
// @Success 200 {object} CartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cart/update-qty [post]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req CartItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	cart, err := h.cartService.UpdateQuantity(c.Request().Context(), cartOwner(c, req.CartID), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cartResponse("", cart))
}

// RemoveItem godoc
// @Summary Remove a cart line
// @Description Removing a product that is not in the cart is not an error.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CartItemRequest true "Cart line"
// @Success 200 {object} CartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /cart/remove-item [post]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	var req CartItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	cart, err := h.cartService.RemoveItem(c.Request().Context(), cartOwner(c, req.CartID), req.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cartResponse("", cart))
}

// ClearCart godoc
// @Summary Empty a cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CartRequest false "Guest cart"
// @Success 200 {object} CartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /cart/clear [post]
func (h *CartHandler) ClearCart(c echo.Context) error {
	var req CartRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if req.CartID == "" {
		req.CartID = c.QueryParam("cartId")
	}

	if err := h.cartService.ClearCart(c.Request().Context(), cartOwner(c, req.CartID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, CartResponse{Message: "Cart cleared", CartItems: []model.CartItem{}})
}

// MergeCart godoc
// @Summary Merge a guest cart into the caller's cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CartRequest true "Guest cart"
// @Success 200 {object} CartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /cart/merge [post]
func (h *CartHandler) MergeCart(c echo.Context) error {
	claims := claimsOf(c)
	if claims == nil {
		return respondError(c, errors.ErrUnauthorized)
	}

	var req CartRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	cart, err := h.cartService.MergeGuestCart(c.Request().Context(), claims.UserID, req.CartID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cartResponse("Cart merged", cart))
}

// NewGuestID godoc
// @Summary Mint a guest cart id
// @Tags cart
// @Produce json
// @Success 201 {object} GuestIDResponse
// @Router /cart/guest-id [post]
func (h *CartHandler) NewGuestID(c echo.Context) error {
	return c.JSON(http.StatusCreated, GuestIDResponse{CartID: h.cartService.NewGuestCartID()})
}
