package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/auth"
	apperr "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/repository/memory"
)

var shipping = model.ShippingDetails{
	FullName: "Jane Doe",
	Email:    "jane@example.com",
	Phone:    "555-0100",
	City:     "Springfield",
	Address:  "1 Main St",
}

func newOrderFixture(t *testing.T) (repository.Set, CartService, OrderService) {
	t.Helper()
	repos := memory.NewSet()
	carts := NewCartService(repos.Carts, repos.Products)
	orders := NewOrderService(repos.Orders, repos.Products, repos.Users, carts)
	return repos, carts, orders
}

func floatPtr(f float64) *float64 { return &f }

func TestOrderService_PlaceOrder(t *testing.T) {
	ctx := context.Background()
	repos, _, svc := newOrderFixture(t)
	p1 := seedProduct(t, repos, "P1", 10, "/p1.png")
	p2 := seedProduct(t, repos, "P2", 0.1, "/p2.png")

	tests := []struct {
		name          string
		input         PlaceOrderInput
		expectedErr   error
		validation    bool
		expectedTotal float64
	}{
		{
			name:        "empty items",
			input:       PlaceOrderInput{ShippingDetails: shipping},
			expectedErr: apperr.ErrEmptyOrder,
		},
		{
			name: "computed total",
			input: PlaceOrderInput{
				Items:           []OrderLine{{ProductID: p1.ID, Quantity: 2}, {ProductID: p2.ID, Quantity: 3}},
				ShippingDetails: shipping,
			},
			expectedTotal: 20.3,
		},
		{
			name: "matching client total",
			input: PlaceOrderInput{
				Items:           []OrderLine{{ProductID: p1.ID, Quantity: 1}},
				ShippingDetails: shipping,
				TotalPrice:      floatPtr(10),
			},
			expectedTotal: 10,
		},
		{
			name: "client total mismatch",
			input: PlaceOrderInput{
				Items:           []OrderLine{{ProductID: p1.ID, Quantity: 1}},
				ShippingDetails: shipping,
				TotalPrice:      floatPtr(1),
			},
			expectedErr: apperr.ErrTotalMismatch,
		},
		{
			name: "unknown product",
			input: PlaceOrderInput{
				Items:           []OrderLine{{ProductID: model.NewID(), Quantity: 1}},
				ShippingDetails: shipping,
			},
			expectedErr: apperr.ErrProductNotFound,
		},
		{
			name: "zero quantity",
			input: PlaceOrderInput{
				Items:           []OrderLine{{ProductID: p1.ID, Quantity: 0}},
				ShippingDetails: shipping,
			},
			validation: true,
		},
		{
			name: "missing shipping address",
			input: PlaceOrderInput{
				Items:           []OrderLine{{ProductID: p1.ID, Quantity: 1}},
				ShippingDetails: model.ShippingDetails{FullName: "Jane", Email: "jane@example.com"},
			},
			validation: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := svc.PlaceOrder(ctx, "", tt.input)
			switch {
			case tt.validation:
				var verr *apperr.ValidationError
				assert.ErrorAs(t, err, &verr)
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, order)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expectedTotal, order.TotalPrice)
				assert.Equal(t, model.StatusPending, order.Status)
				assert.Nil(t, order.UserID)

				stored, err := repos.Orders.FindByID(ctx, order.ID)
				require.NoError(t, err)
				assert.Equal(t, tt.expectedTotal, stored.TotalPrice)
			}
		})
	}
}

func TestOrderService_GuestCheckout(t *testing.T) {
	ctx := context.Background()
	repos, carts, svc := newOrderFixture(t)
	p1 := seedProduct(t, repos, "P1", 10, "/p1.png")
	p2 := seedProduct(t, repos, "P2", 5, "/p2.png")
	guest := model.GuestOwner("guest-checkout")

	_, err := carts.AddItem(ctx, guest, p1.ID, 2)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, guest, p2.ID, 1)
	require.NoError(t, err)

	order, err := svc.Checkout(ctx, guest, shipping)
	require.NoError(t, err)
	assert.Equal(t, 25.0, order.TotalPrice)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.Len(t, order.Items, 2)
	assert.Nil(t, order.UserID)

	cart, err := carts.GetCart(ctx, guest)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.Checkout(ctx, guest, shipping)
	assert.ErrorIs(t, err, apperr.ErrEmptyOrder)
}

// racingOrders runs onCreate while an order is being stored.
type racingOrders struct {
	repository.OrderRepository
	onCreate func()
	err      error
}

func (r *racingOrders) Create(ctx context.Context, order *model.Order) error {
	if r.onCreate != nil {
		r.onCreate()
	}
	if r.err != nil {
		return r.err
	}
	return r.OrderRepository.Create(ctx, order)
}

func TestOrderService_CheckoutKeepsConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewSet()
	carts := NewCartService(repos.Carts, repos.Products)
	p1 := seedProduct(t, repos, "P1", 10, "/p1.png")
	p2 := seedProduct(t, repos, "P2", 5, "/p2.png")
	owner := model.UserOwner(model.NewID())

	_, err := carts.AddItem(ctx, owner, p1.ID, 1)
	require.NoError(t, err)

	added := make(chan error, 1)
	orders := &racingOrders{
		OrderRepository: repos.Orders,
		onCreate: func() {
			go func() {
				_, err := carts.AddItem(ctx, owner, p2.ID, 1)
				added <- err
			}()
			// give the add time to reach the cart lock
			time.Sleep(50 * time.Millisecond)
		},
	}
	svc := NewOrderService(orders, repos.Products, repos.Users, carts)

	order, err := svc.Checkout(ctx, owner, shipping)
	require.NoError(t, err)
	require.NoError(t, <-added)
	require.Len(t, order.Items, 1)
	assert.Equal(t, p1.ID, order.Items[0].ProductID)

	cart, err := carts.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, p2.ID, cart.Items[0].ProductID)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestOrderService_FailedCheckoutKeepsCart(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewSet()
	carts := NewCartService(repos.Carts, repos.Products)
	p1 := seedProduct(t, repos, "P1", 10, "/p1.png")
	guest := model.GuestOwner("guest-retry")

	_, err := carts.AddItem(ctx, guest, p1.ID, 3)
	require.NoError(t, err)

	orders := &racingOrders{OrderRepository: repos.Orders, err: errors.New("disk full")}
	svc := NewOrderService(orders, repos.Products, repos.Users, carts)

	_, err = svc.Checkout(ctx, guest, shipping)
	assert.Error(t, err)

	cart, err := carts.GetCart(ctx, guest)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestOrderService_ListOrdersJoinsUsers(t *testing.T) {
	ctx := context.Background()
	repos, _, svc := newOrderFixture(t)
	p1 := seedProduct(t, repos, "P1", 10, "/p1.png")

	buyer := &model.User{ID: model.NewID(), Fullname: "Buyer", Email: "buyer@example.com", Role: model.RoleCustomer}
	require.NoError(t, repos.Users.Create(ctx, buyer))

	line := []OrderLine{{ProductID: p1.ID, Quantity: 1}}
	first, err := svc.PlaceOrder(ctx, buyer.ID, PlaceOrderInput{Items: line, ShippingDetails: shipping})
	require.NoError(t, err)
	second, err := svc.PlaceOrder(ctx, "", PlaceOrderInput{Items: line, ShippingDetails: shipping})
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Nil(t, orders[0].User)
	assert.Equal(t, first.ID, orders[1].ID)
	require.NotNil(t, orders[1].User)
	assert.Equal(t, "Buyer", orders[1].User.Fullname)
	assert.Equal(t, "buyer@example.com", orders[1].User.Email)
}

func TestOrderService_Access(t *testing.T) {
	ctx := context.Background()
	repos, _, svc := newOrderFixture(t)
	p1 := seedProduct(t, repos, "P1", 10, "/p1.png")
	ownerID := model.NewID()

	order, err := svc.PlaceOrder(ctx, ownerID, PlaceOrderInput{
		Items:           []OrderLine{{ProductID: p1.ID, Quantity: 1}},
		ShippingDetails: shipping,
	})
	require.NoError(t, err)

	owner := &auth.Claims{UserID: ownerID, Role: string(model.RoleCustomer)}
	stranger := &auth.Claims{UserID: model.NewID(), Role: string(model.RoleCustomer)}
	admin := &auth.Claims{UserID: model.NewID(), Role: string(model.RoleAdmin)}

	tests := []struct {
		name        string
		caller      *auth.Claims
		id          string
		expectedErr error
	}{
		{name: "owner", caller: owner, id: order.ID},
		{name: "admin", caller: admin, id: order.ID},
		{name: "stranger", caller: stranger, id: order.ID, expectedErr: apperr.ErrForbidden},
		{name: "anonymous", caller: nil, id: order.ID, expectedErr: apperr.ErrUnauthorized},
		{name: "missing", caller: admin, id: model.NewID(), expectedErr: apperr.ErrOrderNotFound},
		{name: "malformed", caller: admin, id: "123", expectedErr: apperr.ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetOrder(ctx, tt.caller, tt.id)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, order.ID, got.ID)
		})
	}

	mine, err := svc.ListUserOrders(ctx, owner, "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = svc.ListUserOrders(ctx, stranger, ownerID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	theirs, err := svc.ListUserOrders(ctx, admin, ownerID)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestOrderService_StatusAndDelete(t *testing.T) {
	ctx := context.Background()
	repos, _, svc := newOrderFixture(t)
	p1 := seedProduct(t, repos, "P1", 10, "/p1.png")
	order, err := svc.PlaceOrder(ctx, "", PlaceOrderInput{
		Items:           []OrderLine{{ProductID: p1.ID, Quantity: 1}},
		ShippingDetails: shipping,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, order.ID, model.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, updated.Status)

	// no transition rules
	updated, err = svc.UpdateStatus(ctx, order.ID, model.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, updated.Status)

	_, err = svc.UpdateStatus(ctx, order.ID, model.OrderStatus("Lost"))
	assert.ErrorIs(t, err, apperr.ErrInvalidStatus)
	_, err = svc.UpdateStatus(ctx, model.NewID(), model.StatusShipped)
	assert.ErrorIs(t, err, apperr.ErrOrderNotFound)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID))
	assert.ErrorIs(t, svc.DeleteOrder(ctx, order.ID), apperr.ErrOrderNotFound)
}
