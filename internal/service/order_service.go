package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/auth"
	apperr "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// OrderLine is one requested product and quantity.
type OrderLine struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// PlaceOrderInput is an order request. TotalPrice is optional and only checked.
type PlaceOrderInput struct {
	Items           []OrderLine           `json:"items" validate:"dive"`
	ShippingDetails model.ShippingDetails `json:"shippingDetails"`
	TotalPrice      *float64              `json:"totalPrice,omitempty"`
}

// OrderService handles order placement and administration.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*model.Order, error)
	Checkout(ctx context.Context, owner model.CartOwner, shipping model.ShippingDetails) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.OrderWithUser, error)
	ListUserOrders(ctx context.Context, caller *auth.Claims, userID string) ([]model.Order, error)
	GetOrder(ctx context.Context, caller *auth.Claims, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	carts    CartService
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	carts CartService,
) OrderService {
	return &orderService{
		orders:   orders,
		products: products,
		users:    users,
		carts:    carts,
	}
}

// PlaceOrder prices every line from the catalog and stores a Pending order.
// An empty userID places a guest order.
func (s *orderService) PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperr.ErrEmptyOrder
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	for _, line := range input.Items {
		if err := checkID(line.ProductID); err != nil {
			return nil, err
		}
	}

	ids := make([]string, 0, len(input.Items))
	for _, line := range input.Items {
		ids = append(ids, line.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]model.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, apperr.ErrProductNotFound
		}
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
	}

	total := orderTotal(items)
	if input.TotalPrice != nil && !decimal.NewFromFloat(*input.TotalPrice).Round(2).Equal(total) {
		return nil, apperr.ErrTotalMismatch
	}

	order := &model.Order{
		Items:           items,
		TotalPrice:      total.InexactFloat64(),
		ShippingDetails: input.ShippingDetails,
		Status:          model.StatusPending,
	}
	if userID != "" {
		order.UserID = &userID
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// orderTotal sums price*quantity and rounds to cents.
func orderTotal(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// Checkout places an order from the owner's cart and empties the cart. The
// owner's cart stays locked from the read until it is emptied.
func (s *orderService) Checkout(ctx context.Context, owner model.CartOwner, shipping model.ShippingDetails) (*model.Order, error) {
	var userID string
	if owner.IsUser() {
		userID = owner.ID()
	}

	var order *model.Order
	err := s.carts.Drain(ctx, owner, func(cart *model.Cart) error {
		if len(cart.Items) == 0 {
			return apperr.ErrEmptyOrder
		}
		input := PlaceOrderInput{ShippingDetails: shipping}
		for _, item := range cart.Items {
			input.Items = append(input.Items, OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		placed, err := s.PlaceOrder(ctx, userID, input)
		if err != nil {
			return err
		}
		order = placed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns every order with its buyer, resolved in one batch.
func (s *orderService) ListOrders(ctx context.Context) ([]model.OrderWithUser, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, o := range orders {
		if o.UserID != nil && !seen[*o.UserID] {
			seen[*o.UserID] = true
			ids = append(ids, *o.UserID)
		}
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load buyers: %w", err)
	}
	buyers := make(map[string]*model.UserSummary, len(users))
	for _, u := range users {
		buyers[u.ID] = &model.UserSummary{Fullname: u.Fullname, Email: u.Email}
	}

	out := make([]model.OrderWithUser, 0, len(orders))
	for _, o := range orders {
		row := model.OrderWithUser{Order: o}
		if o.UserID != nil {
			row.User = buyers[*o.UserID]
		}
		out = append(out, row)
	}
	return out, nil
}

// ListUserOrders returns userID's orders. Only that user or an admin may ask.
func (s *orderService) ListUserOrders(ctx context.Context, caller *auth.Claims, userID string) ([]model.Order, error) {
	if caller == nil {
		return nil, apperr.ErrUnauthorized
	}
	if userID == "" {
		userID = caller.UserID
	}
	if userID != caller.UserID && !caller.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one order to its buyer or an admin.
func (s *orderService) GetOrder(ctx context.Context, caller *auth.Claims, id string) (*model.Order, error) {
	if caller == nil {
		return nil, apperr.ErrUnauthorized
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperr.ErrOrderNotFound)
	}
	if !caller.IsAdmin() && !order.OwnedBy(caller.UserID) {
		return nil, apperr.ErrForbidden
	}
	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, apperr.ErrInvalidStatus
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, notFound(err, apperr.ErrOrderNotFound)
	}
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return notFound(err, apperr.ErrOrderNotFound)
	}
	return nil
}
