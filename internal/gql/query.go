package gql

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"
)

func (r *Resolver) Users(ctx context.Context) ([]*userResolver, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	users, err := r.svc.Users.ListUsers(ctx)
	if err != nil {
		return nil, resolverError(err)
	}
	out := make([]*userResolver, 0, len(users))
	for i := range users {
		out = append(out, &userResolver{&users[i]})
	}
	return out, nil
}

// LoggedInUser fails with UNAUTHORIZED rather than resolving to null.
func (r *Resolver) LoggedInUser(ctx context.Context) (*userResolver, error) {
	claims, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	user, err := r.svc.Users.GetUser(ctx, claims.UserID)
	if err != nil {
		return nil, resolverError(err)
	}
	return &userResolver{user}, nil
}

func (r *Resolver) Products(ctx context.Context, args struct{ Category *string }) ([]*productResolver, error) {
	var category string
	if args.Category != nil {
		category = *args.Category
	}
	products, err := r.svc.Products.ListProducts(ctx, category)
	if err != nil {
		return nil, resolverError(err)
	}
	out := make([]*productResolver, 0, len(products))
	for i := range products {
		out = append(out, &productResolver{&products[i]})
	}
	return out, nil
}

func (r *Resolver) Product(ctx context.Context, args struct{ ProductID graphql.ID }) (*productResolver, error) {
	product, err := r.svc.Products.GetProduct(ctx, string(args.ProductID))
	if err != nil {
		return nil, resolverError(err)
	}
	return &productResolver{product}, nil
}

func (r *Resolver) ProductCategories(ctx context.Context) ([]string, error) {
	categories, err := r.svc.Products.Categories(ctx)
	if err != nil {
		return nil, resolverError(err)
	}
	return categories, nil
}

func (r *Resolver) GetCart(ctx context.Context, args struct{ CartID *string }) (*cartResolver, error) {
	cart, err := r.svc.Carts.GetCart(ctx, cartOwner(ctx, args.CartID))
	if err != nil {
		return nil, resolverError(err)
	}
	return &cartResolver{cart}, nil
}

func (r *Resolver) GetOrders(ctx context.Context) ([]*orderResolver, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	orders, err := r.svc.Orders.ListOrders(ctx)
	if err != nil {
		return nil, resolverError(err)
	}
	out := make([]*orderResolver, 0, len(orders))
	for i := range orders {
		out = append(out, &orderResolver{o: &orders[i].Order, user: orders[i].User})
	}
	return out, nil
}

// GetUserOrders defaults to the caller's own orders.
func (r *Resolver) GetUserOrders(ctx context.Context, args struct{ UserID *graphql.ID }) ([]*orderResolver, error) {
	var userID string
	if args.UserID != nil {
		userID = string(*args.UserID)
	}
	orders, err := r.svc.Orders.ListUserOrders(ctx, authClaims(ctx), userID)
	if err != nil {
		return nil, resolverError(err)
	}
	return orderResolvers(orders), nil
}

func (r *Resolver) GetOrderByID(ctx context.Context, args struct{ OrderID graphql.ID }) (*orderResolver, error) {
	order, err := r.svc.Orders.GetOrder(ctx, authClaims(ctx), string(args.OrderID))
	if err != nil {
		return nil, resolverError(err)
	}
	return &orderResolver{o: order}, nil
}

func (r *Resolver) GetContactMessages(ctx context.Context) ([]*contactResolver, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	msgs, err := r.svc.Contacts.ListMessages(ctx)
	if err != nil {
		return nil, resolverError(err)
	}
	out := make([]*contactResolver, 0, len(msgs))
	for i := range msgs {
		out = append(out, &contactResolver{&msgs[i]})
	}
	return out, nil
}

func (r *Resolver) GetContactMessageByID(ctx context.Context, args struct{ MessageID graphql.ID }) (*contactResolver, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	msg, err := r.svc.Contacts.GetMessage(ctx, string(args.MessageID))
	if err != nil {
		return nil, resolverError(err)
	}
	return &contactResolver{msg}, nil
}
