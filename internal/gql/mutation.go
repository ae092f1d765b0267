package gql

import (
	"context"
	"log"

	graphql "github.com/graph-gophers/graphql-go"

	"storefront/internal/model"
	"storefront/internal/service"
)

type userInput struct {
	Fullname string
	Email    string
	Password string
}

type signinInput struct {
	Email    string
	Password string
}

type imageInput struct {
	Thumbnail   string
	Gallery     *[]string
	DetailImage *string
}

type specificationInput struct {
	Material *string
	Height   *string
	Width    *string
	Weight   *string
	Color    *string
	Capacity *string
}

type productInput struct {
	Name             string
	Category         string
	Price            float64
	Rating           *float64
	Description      string
	ShortDescription string
	Images           imageInput
	Specifications   *specificationInput
	Availability     *string
}

type cartItemInput struct {
	ProductID graphql.ID
	Quantity  *int32
}

type orderItemInput struct {
	ProductID graphql.ID
	Quantity  int32
}

type shippingInput struct {
	FullName string
	Email    string
	Phone    string
	City     string
	Address  string
}

type contactInput struct {
	FullName string
	Email    string
	Subject  string
	Message  string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (in productInput) toService() service.ProductInput {
	out := service.ProductInput{
		Name:             in.Name,
		Category:         in.Category,
		Price:            in.Price,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Images: service.ImageInput{
			Thumbnail:   in.Images.Thumbnail,
			DetailImage: deref(in.Images.DetailImage),
		},
		Availability: model.Availability(deref(in.Availability)),
	}
	if in.Rating != nil {
		out.Rating = *in.Rating
	}
	if in.Images.Gallery != nil {
		out.Images.Gallery = *in.Images.Gallery
	}
	if s := in.Specifications; s != nil {
		out.Specifications = model.Specifications{
			Material: deref(s.Material),
			Height:   deref(s.Height),
			Width:    deref(s.Width),
			Weight:   deref(s.Weight),
			Color:    deref(s.Color),
			Capacity: deref(s.Capacity),
		}
	}
	return out
}

func (in shippingInput) toModel() model.ShippingDetails {
	return model.ShippingDetails{
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
		City:     in.City,
		Address:  in.Address,
	}
}

func (r *Resolver) SignupUser(ctx context.Context, args struct{ UserNew userInput }) (*authPayloadResolver, error) {
	result, err := r.svc.Auth.Register(ctx, service.RegisterInput{
		Fullname: args.UserNew.Fullname,
		Email:    args.UserNew.Email,
		Password: args.UserNew.Password,
	})
	if err != nil {
		return nil, resolverError(err)
	}
	return &authPayloadResolver{token: result.Token, user: result.User}, nil
}

// SigninUser merges the guest cart named by cartId into the user's cart.
func (r *Resolver) SigninUser(ctx context.Context, args struct {
	UserSignin signinInput
	CartID     *string
}) (*authPayloadResolver, error) {
	result, err := r.svc.Auth.Login(ctx, service.LoginInput{
		Email:    args.UserSignin.Email,
		Password: args.UserSignin.Password,
	})
	if err != nil {
		return nil, resolverError(err)
	}
	if args.CartID != nil && *args.CartID != "" {
		if _, err := r.svc.Carts.MergeGuestCart(ctx, result.User.ID, *args.CartID); err != nil {
			log.Printf("graphql: merge guest cart %s: %v", *args.CartID, err)
		}
	}
	return &authPayloadResolver{token: result.Token, user: result.User}, nil
}

func (r *Resolver) LogoutUser(ctx context.Context) (*statusResolver, error) {
	claims, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Auth.Logout(ctx, claims); err != nil {
		return nil, resolverError(err)
	}
	return &statusResolver{success: true, message: "Logged out successfully"}, nil
}

func (r *Resolver) AddProduct(ctx context.Context, args struct{ ProductNew productInput }) (*productResolver, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	product, err := r.svc.Products.CreateProduct(ctx, args.ProductNew.toService())
	if err != nil {
		return nil, resolverError(err)
	}
	return &productResolver{product}, nil
}

func (r *Resolver) UpdateProduct(ctx context.Context, args struct {
	ProductID     graphql.ID
	ProductUpdate productInput
}) (*productResolver, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	product, err := r.svc.Products.UpdateProduct(ctx, string(args.ProductID), args.ProductUpdate.toService())
	if err != nil {
		return nil, resolverError(err)
	}
	return &productResolver{product}, nil
}

func (r *Resolver) DeleteProduct(ctx context.Context, args struct{ ProductID graphql.ID }) (string, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return "", err
	}
	if err := r.svc.Products.DeleteProduct(ctx, string(args.ProductID)); err != nil {
		return "", resolverError(err)
	}
	return "Product deleted successfully", nil
}

func (r *Resolver) UpdateUserRole(ctx context.Context, args struct {
	UserID graphql.ID
	Role   string
}) (*userResolver, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	user, err := r.svc.Users.UpdateRole(ctx, string(args.UserID), model.Role(args.Role))
	if err != nil {
		return nil, resolverError(err)
	}
	return &userResolver{user}, nil
}

func (r *Resolver) DeleteUser(ctx context.Context, args struct{ UserID graphql.ID }) (string, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return "", err
	}
	if err := r.svc.Users.DeleteUser(ctx, string(args.UserID)); err != nil {
		return "", resolverError(err)
	}
	return "User deleted successfully", nil
}

func (r *Resolver) AddToCart(ctx context.Context, args struct {
	CartID *string
	Item   cartItemInput
}) (*cartResolver, error) {
	var quantity int
	if args.Item.Quantity != nil {
		quantity = int(*args.Item.Quantity)
	}
	cart, err := r.svc.Carts.AddItem(ctx, cartOwner(ctx, args.CartID), string(args.Item.ProductID), quantity)
	if err != nil {
		return nil, resolverError(err)
	}
	return &cartResolver{cart}, nil
}

func (r *Resolver) UpdateCartItem(ctx context.Context, args struct {
	CartID    *string
	ProductID graphql.ID
	Quantity  int32
}) (*cartResolver, error) {
	cart, err := r.svc.Carts.UpdateQuantity(ctx, cartOwner(ctx, args.CartID), string(args.ProductID), int(args.Quantity))
	if err != nil {
		return nil, resolverError(err)
	}
	return &cartResolver{cart}, nil
}

func (r *Resolver) RemoveCartItem(ctx context.Context, args struct {
	CartID    *string
	ProductID graphql.ID
}) (*cartResolver, error) {
	cart, err := r.svc.Carts.RemoveItem(ctx, cartOwner(ctx, args.CartID), string(args.ProductID))
	if err != nil {
		return nil, resolverError(err)
	}
	return &cartResolver{cart}, nil
}

func (r *Resolver) ClearCart(ctx context.Context, args struct{ CartID *string }) (*statusResolver, error) {
	if err := r.svc.Carts.ClearCart(ctx, cartOwner(ctx, args.CartID)); err != nil {
		return nil, resolverError(err)
	}
	return &statusResolver{success: true, message: "Cart cleared"}, nil
}

// CreateOrder prices the items from the catalog. totalPrice, when given, must match.
func (r *Resolver) CreateOrder(ctx context.Context, args struct {
	Items           []orderItemInput
	TotalPrice      *float64
	ShippingDetails shippingInput
}) (*orderResolver, error) {
	input := service.PlaceOrderInput{
		ShippingDetails: args.ShippingDetails.toModel(),
		TotalPrice:      args.TotalPrice,
	}
	for _, item := range args.Items {
		input.Items = append(input.Items, service.OrderLine{
			ProductID: string(item.ProductID),
			Quantity:  int(item.Quantity),
		})
	}

	var userID string
	if claims := authClaims(ctx); claims != nil {
		userID = claims.UserID
	}
	order, err := r.svc.Orders.PlaceOrder(ctx, userID, input)
	if err != nil {
		return nil, resolverError(err)
	}
	return &orderResolver{o: order}, nil
}

func (r *Resolver) Checkout(ctx context.Context, args struct {
	CartID          *string
	ShippingDetails shippingInput
}) (*orderResolver, error) {
	order, err := r.svc.Orders.Checkout(ctx, cartOwner(ctx, args.CartID), args.ShippingDetails.toModel())
	if err != nil {
		return nil, resolverError(err)
	}
	return &orderResolver{o: order}, nil
}

func (r *Resolver) UpdateOrderStatus(ctx context.Context, args struct {
	OrderID graphql.ID
	Status  string
}) (*orderResolver, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	order, err := r.svc.Orders.UpdateStatus(ctx, string(args.OrderID), model.OrderStatus(args.Status))
	if err != nil {
		return nil, resolverError(err)
	}
	return &orderResolver{o: order}, nil
}

func (r *Resolver) DeleteOrder(ctx context.Context, args struct{ OrderID graphql.ID }) (string, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return "", err
	}
	if err := r.svc.Orders.DeleteOrder(ctx, string(args.OrderID)); err != nil {
		return "", resolverError(err)
	}
	return "Order deleted successfully", nil
}

func (r *Resolver) AddContactMessage(ctx context.Context, args struct{ ContactInput contactInput }) (*contactResolver, error) {
	var createdBy string
	if claims := authClaims(ctx); claims != nil {
		createdBy = claims.UserID
	}
	msg, err := r.svc.Contacts.SubmitMessage(ctx, service.ContactInput{
		FullName: args.ContactInput.FullName,
		Email:    args.ContactInput.Email,
		Subject:  args.ContactInput.Subject,
		Message:  args.ContactInput.Message,
	}, createdBy)
	if err != nil {
		return nil, resolverError(err)
	}
	return &contactResolver{msg}, nil
}

func (r *Resolver) DeleteContactMessage(ctx context.Context, args struct{ MessageID graphql.ID }) (string, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return "", err
	}
	if err := r.svc.Contacts.DeleteMessage(ctx, string(args.MessageID)); err != nil {
		return "", resolverError(err)
	}
	return "Message deleted successfully", nil
}
