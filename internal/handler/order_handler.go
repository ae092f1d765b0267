package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/model"
	"storefront/internal/service"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CheckoutRequest orders the contents of a cart.
type CheckoutRequest struct {
	CartID          string                `json:"cartId,omitempty"`
	ShippingDetails model.ShippingDetails `json:"shippingDetails"`
}

// UpdateStatusRequest carries the new order status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderResponse wraps a single order.
type OrderResponse struct {
	Message string       `json:"message,omitempty"`
	Order   *model.Order `json:"order"`
}

// OrdersResponse wraps an order listing.
type OrdersResponse struct {
	Orders []model.Order `json:"orders"`
}

// OrdersWithUserResponse wraps the admin order listing.
type OrdersWithUserResponse struct {
	Orders []model.OrderWithUser `json:"orders"`
}

// PlaceOrder godoc
// @Summary Place an order
// @Description Prices come from the catalog. A totalPrice that differs from the computed total is rejected.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PlaceOrderInput true "Order"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /order/place-order [post]
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req service.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	var userID string
	if claims := claimsOf(c); claims != nil {
		userID = claims.UserID
	}

	order, err := h.orderService.PlaceOrder(c.Request().Context(), userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, OrderResponse{
		Message: "Order placed successfully",
		Order:   order,
	})
}

// Checkout godoc
// @Summary Order the contents of a cart
// @Description Places an order from the caller's cart, or the guest cart named by cartId, then empties it.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckoutRequest true "Checkout"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /order/checkout [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	order, err := h.orderService.Checkout(c.Request().Context(), cartOwner(c, req.CartID), req.ShippingDetails)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, OrderResponse{
		Message: "Order placed successfully",
		Order:   order,
	})
}

// ListOrders godoc
// @Summary List all orders
// @Description Newest first, each with the buyer's name and email.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} OrdersWithUserResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /order/all-orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderService.ListOrders(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, OrdersWithUserResponse{Orders: orders})
}

// MyOrders godoc
// @Summary List the caller's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} OrdersResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /order/my-orders [get]
func (h *OrderHandler) MyOrders(c echo.Context) error {
	orders, err := h.orderService.ListUserOrders(c.Request().Context(), claimsOf(c), "")
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, OrdersResponse{Orders: orders})
}

// GetOrder godoc
// @Summary Get an order
// @Description Visible to the buyer and to admins.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} OrderResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /order/{id} [get]
func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orderService.GetOrder(c.Request().Context(), claimsOf(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, OrderResponse{Order: order})
}

// UpdateStatus godoc
// @Summary Update an order's status
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body UpdateStatusRequest true "Pending, Shipped, Delivered or Cancelled"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /order/update-status/{id} [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	order, err := h.orderService.UpdateStatus(c.Request().Context(), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, OrderResponse{
		Message: "Order status updated",
		Order:   order,
	})
}

// DeleteOrder godoc
// @Summary Delete an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /order/delete/{id} [delete]
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	if err := h.orderService.DeleteOrder(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: "Order deleted successfully",
	})
}
