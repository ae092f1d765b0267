package gql

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/repository/memory"
	"storefront/internal/service"
)

type fixture struct {
	schema *graphql.Schema
	repos  repository.Set
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewSet()
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	tokens := auth.NewTokenStore(nil)
	carts := service.NewCartService(repos.Carts, repos.Products)

	schema, err := NewSchema(Services{
		Auth:     service.NewAuthService(repos.Users, jwtService, tokens),
		Users:    service.NewUserService(repos.Users, nil),
		Products: service.NewProductService(repos.Products, nil),
		Carts:    carts,
		Orders:   service.NewOrderService(repos.Orders, repos.Products, repos.Users, carts),
		Contacts: service.NewContactService(repos.Contacts),
	})
	require.NoError(t, err)
	return &fixture{schema: schema, repos: repos}
}

func (f *fixture) exec(ctx context.Context, query string, vars map[string]interface{}) (map[string]interface{}, []map[string]interface{}) {
	resp := f.schema.Exec(ctx, query, "", vars)
	var data map[string]interface{}
	if len(resp.Data) > 0 {
		_ = json.Unmarshal(resp.Data, &data)
	}
	var errs []map[string]interface{}
	for _, e := range resp.Errors {
		errs = append(errs, map[string]interface{}{
			"message":    e.Message,
			"extensions": e.Extensions,
		})
	}
	return data, errs
}

func (f *fixture) product(t *testing.T, name string, price float64) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:             name,
		Category:         "Decor",
		Price:            price,
		Description:      name,
		ShortDescription: name,
		Images:           model.ProductImages{Thumbnail: "/" + name + ".png", Gallery: []string{}},
		Availability:     model.InStock,
	}
	require.NoError(t, f.repos.Products.Create(context.Background(), p))
	return p
}

func asAdmin() context.Context {
	return auth.WithClaims(context.Background(), &auth.Claims{UserID: model.NewID(), Role: string(model.RoleAdmin)})
}

func asCustomer(id string) context.Context {
	return auth.WithClaims(context.Background(), &auth.Claims{UserID: id, Role: string(model.RoleCustomer)})
}

func errorCode(errs []map[string]interface{}) string {
	if len(errs) == 0 {
		return ""
	}
	ext, _ := errs[0]["extensions"].(map[string]interface{})
	code, _ := ext["code"].(string)
	return code
}

func TestSchemaParses(t *testing.T) {
	_, err := NewHandler(Services{})
	assert.NoError(t, err)
}

func TestLoggedInUserRequiresToken(t *testing.T) {
	f := newFixture(t)

	_, errs := f.exec(context.Background(), `{ loggedInUser { _id email } }`, nil)
	require.NotEmpty(t, errs)
	assert.Equal(t, "UNAUTHORIZED", errorCode(errs))
}

func TestSignupAndLoggedInUser(t *testing.T) {
	f := newFixture(t)

	data, errs := f.exec(context.Background(), `
		mutation($in: UserInput!) {
			signupUser(userNew: $in) { token role user { _id email } }
		}`, map[string]interface{}{
		"in": map[string]interface{}{"fullname": "Jane Doe", "email": "jane@example.com", "password": "Secret1!"},
	})
	require.Empty(t, errs)
	payload := data["signupUser"].(map[string]interface{})
	assert.Equal(t, "customer", payload["role"])
	assert.NotEmpty(t, payload["token"])
	id := payload["user"].(map[string]interface{})["_id"].(string)

	data, errs = f.exec(asCustomer(id), `{ loggedInUser { email role } }`, nil)
	require.Empty(t, errs)
	assert.Equal(t, "jane@example.com", data["loggedInUser"].(map[string]interface{})["email"])

	_, errs = f.exec(context.Background(), `
		mutation($in: UserInput!) { signupUser(userNew: $in) { token } }`, map[string]interface{}{
		"in": map[string]interface{}{"fullname": "Jane Doe", "email": "jane@example.com", "password": "Secret1!"},
	})
	assert.Equal(t, "USER_ALREADY_EXISTS", errorCode(errs))
}

func TestAdminOnlyFields(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		ctx   context.Context
		query string
		code  string
	}{
		{name: "anonymous users", ctx: context.Background(), query: `{ users { _id } }`, code: "UNAUTHORIZED"},
		{name: "customer users", ctx: asCustomer(model.NewID()), query: `{ users { _id } }`, code: "FORBIDDEN"},
		{name: "admin users", ctx: asAdmin(), query: `{ users { _id } }`},
		{name: "customer orders", ctx: asCustomer(model.NewID()), query: `{ getOrders { _id } }`, code: "FORBIDDEN"},
		{name: "customer messages", ctx: asCustomer(model.NewID()), query: `{ getContactMessages { _id } }`, code: "FORBIDDEN"},
		{name: "invalid role", ctx: asAdmin(), query: `mutation { updateUserRole(userId: "` + model.NewID() + `", role: "root") { _id } }`, code: "INVALID_ROLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := f.exec(tt.ctx, tt.query, nil)
			assert.Equal(t, tt.code, errorCode(errs))
		})
	}
}

func TestGuestCartCheckout(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "vase", 10)
	p2 := f.product(t, "candle", 5)
	ctx := context.Background()

	add := `mutation($cart: String, $item: CartItemInput!) {
		addToCart(cartId: $cart, item: $item) { cartId cartItems { productId quantity } }
	}`
	_, errs := f.exec(ctx, add, map[string]interface{}{
		"cart": "g-1",
		"item": map[string]interface{}{"productId": p1.ID, "quantity": 2},
	})
	require.Empty(t, errs)
	data, errs := f.exec(ctx, add, map[string]interface{}{
		"cart": "g-1",
		"item": map[string]interface{}{"productId": p2.ID},
	})
	require.Empty(t, errs)
	cart := data["addToCart"].(map[string]interface{})
	assert.Equal(t, "g-1", cart["cartId"])
	assert.Len(t, cart["cartItems"], 2)

	data, errs = f.exec(ctx, `mutation($ship: ShippingInput!) {
		checkout(cartId: "g-1", shippingDetails: $ship) { totalPrice status userId items { productId } }
	}`, map[string]interface{}{
		"ship": map[string]interface{}{
			"fullName": "Guest", "email": "guest@example.com", "phone": "1", "city": "X", "address": "Y",
		},
	})
	require.Empty(t, errs)
	order := data["checkout"].(map[string]interface{})
	assert.Equal(t, 25.0, order["totalPrice"])
	assert.Equal(t, "Pending", order["status"])
	assert.Nil(t, order["userId"])
	assert.Len(t, order["items"], 2)

	data, errs = f.exec(ctx, `{ getCart(cartId: "g-1") { cartItems { productId } } }`, nil)
	require.Empty(t, errs)
	assert.Empty(t, data["getCart"].(map[string]interface{})["cartItems"])

	_, errs = f.exec(ctx, `{ getCart { cartItems { productId } } }`, nil)
	assert.Equal(t, "CART_OWNER_REQUIRED", errorCode(errs))
}

func TestCreateOrderRejectsWrongTotal(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "lamp", 12.5)

	_, errs := f.exec(asCustomer(model.NewID()), `mutation($items: [OrderItemInput!]!, $ship: ShippingInput!) {
		createOrder(items: $items, totalPrice: 1, shippingDetails: $ship) { _id }
	}`, map[string]interface{}{
		"items": []interface{}{map[string]interface{}{"productId": p.ID, "quantity": 2}},
		"ship": map[string]interface{}{
			"fullName": "A", "email": "a@example.com", "phone": "1", "city": "X", "address": "Y",
		},
	})
	assert.Equal(t, "TOTAL_MISMATCH", errorCode(errs))
}

func TestGetUserOrdersOwnership(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "rug", 40)
	buyer := model.NewID()

	_, errs := f.exec(asCustomer(buyer), `mutation($items: [OrderItemInput!]!, $ship: ShippingInput!) {
		createOrder(items: $items, shippingDetails: $ship) { _id }
	}`, map[string]interface{}{
		"items": []interface{}{map[string]interface{}{"productId": p.ID, "quantity": 1}},
		"ship": map[string]interface{}{
			"fullName": "A", "email": "a@example.com", "phone": "1", "city": "X", "address": "Y",
		},
	})
	require.Empty(t, errs)

	query := `query($id: ID) { getUserOrders(userId: $id) { totalPrice } }`
	data, errs := f.exec(asCustomer(buyer), query, map[string]interface{}{"id": buyer})
	require.Empty(t, errs)
	assert.Len(t, data["getUserOrders"], 1)

	_, errs = f.exec(asCustomer(model.NewID()), query, map[string]interface{}{"id": buyer})
	assert.Equal(t, "FORBIDDEN", errorCode(errs))

	data, errs = f.exec(asAdmin(), query, map[string]interface{}{"id": buyer})
	require.Empty(t, errs)
	assert.Len(t, data["getUserOrders"], 1)
}
