// Package gql exposes the storefront services over GraphQL. It shares the
// service layer, authorization rules and error mapping with the REST API.
package gql

import (
	"context"
	_ "embed"
	"log"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"storefront/internal/auth"
	apperr "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/service"
)

//go:embed schema.graphql
var schemaSDL string

const maxQueryDepth = 10

// Services are the dependencies of the resolvers.
type Services struct {
	Auth     service.AuthService
	Users    service.UserService
	Products service.ProductService
	Carts    service.CartService
	Orders   service.OrderService
	Contacts service.ContactService
}

// Resolver is the root resolver for both queries and mutations.
type Resolver struct {
	svc Services
}

// NewSchema parses the schema against a root resolver built from svc.
func NewSchema(svc Services) (*graphql.Schema, error) {
	return graphql.ParseSchema(schemaSDL, &Resolver{svc: svc}, graphql.MaxDepth(maxQueryDepth))
}

// NewHandler returns the POST /graphql handler. Callers are identified by the
// claims already stored in the request context.
func NewHandler(svc Services) (http.Handler, error) {
	schema, err := NewSchema(svc)
	if err != nil {
		return nil, err
	}
	return &relay.Handler{Schema: schema}, nil
}

// Error is a resolver error carrying the same code and status as the REST API.
type Error struct {
	Message string
	Code    string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions implements the graphql-go extensions hook.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code":   e.Code,
		"status": e.Status,
	}
}

func resolverError(err error) error {
	httpErr := apperr.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Printf("graphql: %v", err)
	}
	return &Error{Message: httpErr.Message, Code: httpErr.Code, Status: httpErr.StatusCode}
}

func authClaims(ctx context.Context) *auth.Claims {
	return auth.ClaimsFromContext(ctx)
}

func requireUser(ctx context.Context) (*auth.Claims, error) {
	claims := authClaims(ctx)
	if claims == nil {
		return nil, resolverError(apperr.ErrUnauthorized)
	}
	return claims, nil
}

func requireAdmin(ctx context.Context) (*auth.Claims, error) {
	claims, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !claims.IsAdmin() {
		return nil, resolverError(apperr.ErrForbidden)
	}
	return claims, nil
}

// cartOwner mirrors the REST rule: a signed-in caller owns their cart, guests
// name theirs with cartId.
func cartOwner(ctx context.Context, cartID *string) model.CartOwner {
	if claims := authClaims(ctx); claims != nil {
		return model.UserOwner(claims.UserID)
	}
	if cartID == nil {
		return model.CartOwner{}
	}
	return model.GuestOwner(*cartID)
}
