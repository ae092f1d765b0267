package gql

import (
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"storefront/internal/model"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func optionalID(s *string) *graphql.ID {
	if s == nil || *s == "" {
		return nil
	}
	id := graphql.ID(*s)
	return &id
}

type userResolver struct{ u *model.User }

func (r *userResolver) ID() graphql.ID    { return graphql.ID(r.u.ID) }
func (r *userResolver) Fullname() string  { return r.u.Fullname }
func (r *userResolver) Email() string     { return r.u.Email }
func (r *userResolver) Role() string      { return string(r.u.Role) }
func (r *userResolver) CreatedAt() string { return formatTime(r.u.CreatedAt) }

type authPayloadResolver struct {
	token string
	user  *model.User
}

func (r *authPayloadResolver) Token() string       { return r.token }
func (r *authPayloadResolver) Role() string        { return string(r.user.Role) }
func (r *authPayloadResolver) User() *userResolver { return &userResolver{r.user} }

type statusResolver struct {
	success bool
	message string
}

func (r *statusResolver) Success() bool   { return r.success }
func (r *statusResolver) Message() string { return r.message }

type productResolver struct{ p *model.Product }

func (r *productResolver) ID() graphql.ID           { return graphql.ID(r.p.ID) }
func (r *productResolver) Name() string             { return r.p.Name }
func (r *productResolver) Category() string         { return r.p.Category }
func (r *productResolver) Price() float64           { return r.p.Price }
func (r *productResolver) Rating() float64          { return r.p.Rating }
func (r *productResolver) Description() string      { return r.p.Description }
func (r *productResolver) ShortDescription() string { return r.p.ShortDescription }
func (r *productResolver) Availability() string     { return string(r.p.Availability) }
func (r *productResolver) CreatedAt() string        { return formatTime(r.p.CreatedAt) }
func (r *productResolver) UpdatedAt() string        { return formatTime(r.p.UpdatedAt) }

func (r *productResolver) Images() *imageResolver {
	return &imageResolver{r.p.Images}
}

func (r *productResolver) Specifications() *specificationResolver {
	return &specificationResolver{r.p.Specifications}
}

type imageResolver struct{ i model.ProductImages }

func (r *imageResolver) Thumbnail() string   { return r.i.Thumbnail }
func (r *imageResolver) DetailImage() string { return r.i.DetailImage }

func (r *imageResolver) Gallery() []string {
	if r.i.Gallery == nil {
		return []string{}
	}
	return r.i.Gallery
}

type specificationResolver struct{ s model.Specifications }

func (r *specificationResolver) Material() string { return r.s.Material }
func (r *specificationResolver) Height() string   { return r.s.Height }
func (r *specificationResolver) Width() string    { return r.s.Width }
func (r *specificationResolver) Weight() string   { return r.s.Weight }
func (r *specificationResolver) Color() string    { return r.s.Color }
func (r *specificationResolver) Capacity() string { return r.s.Capacity }

type cartResolver struct{ c *model.Cart }

func (r *cartResolver) ID() *graphql.ID {
	return optionalID(&r.c.ID)
}

func (r *cartResolver) UserID() *graphql.ID {
	if !r.c.Owner.IsUser() {
		return nil
	}
	id := r.c.Owner.ID()
	return optionalID(&id)
}

func (r *cartResolver) CartID() *string {
	if !r.c.Owner.IsGuest() {
		return nil
	}
	id := r.c.Owner.ID()
	return &id
}

func (r *cartResolver) CartItems() []*cartItemResolver {
	out := make([]*cartItemResolver, 0, len(r.c.Items))
	for i := range r.c.Items {
		out = append(out, &cartItemResolver{r.c.Items[i]})
	}
	return out
}

type cartItemResolver struct{ i model.CartItem }

func (r *cartItemResolver) ProductID() graphql.ID { return graphql.ID(r.i.ProductID) }
func (r *cartItemResolver) Name() string          { return r.i.Name }
func (r *cartItemResolver) Price() float64        { return r.i.Price }
func (r *cartItemResolver) Quantity() int32       { return int32(r.i.Quantity) }

func (r *cartItemResolver) Images() *cartImageResolver {
	return &cartImageResolver{r.i.Images.Thumbnail}
}

type cartImageResolver struct{ thumbnail string }

func (r *cartImageResolver) Thumbnail() string { return r.thumbnail }

type orderResolver struct {
	o    *model.Order
	user *model.UserSummary
}

func (r *orderResolver) ID() graphql.ID      { return graphql.ID(r.o.ID) }
func (r *orderResolver) UserID() *graphql.ID { return optionalID(r.o.UserID) }
func (r *orderResolver) TotalPrice() float64 { return r.o.TotalPrice }
func (r *orderResolver) Status() string      { return string(r.o.Status) }
func (r *orderResolver) CreatedAt() string   { return formatTime(r.o.CreatedAt) }
func (r *orderResolver) UpdatedAt() string   { return formatTime(r.o.UpdatedAt) }

func (r *orderResolver) User() *orderUserResolver {
	if r.user == nil {
		return nil
	}
	return &orderUserResolver{r.user}
}

func (r *orderResolver) Items() []*orderItemResolver {
	out := make([]*orderItemResolver, 0, len(r.o.Items))
	for i := range r.o.Items {
		out = append(out, &orderItemResolver{r.o.Items[i]})
	}
	return out
}

func (r *orderResolver) ShippingDetails() *shippingResolver {
	return &shippingResolver{r.o.ShippingDetails}
}

type orderItemResolver struct{ i model.OrderItem }

func (r *orderItemResolver) ProductID() graphql.ID { return graphql.ID(r.i.ProductID) }
func (r *orderItemResolver) Name() string          { return r.i.Name }
func (r *orderItemResolver) Price() float64        { return r.i.Price }
func (r *orderItemResolver) Quantity() int32       { return int32(r.i.Quantity) }

type shippingResolver struct{ s model.ShippingDetails }

func (r *shippingResolver) FullName() string { return r.s.FullName }
func (r *shippingResolver) Email() string    { return r.s.Email }
func (r *shippingResolver) Phone() string    { return r.s.Phone }
func (r *shippingResolver) City() string     { return r.s.City }
func (r *shippingResolver) Address() string  { return r.s.Address }

type orderUserResolver struct{ u *model.UserSummary }

func (r *orderUserResolver) FullName() string { return r.u.Fullname }
func (r *orderUserResolver) Email() string    { return r.u.Email }

type contactResolver struct{ m *model.ContactMessage }

func (r *contactResolver) ID() graphql.ID         { return graphql.ID(r.m.ID) }
func (r *contactResolver) FullName() string       { return r.m.FullName }
func (r *contactResolver) Email() string          { return r.m.Email }
func (r *contactResolver) Subject() string        { return r.m.Subject }
func (r *contactResolver) Message() string        { return r.m.Message }
func (r *contactResolver) CreatedBy() *graphql.ID { return optionalID(r.m.CreatedBy) }
func (r *contactResolver) CreatedAt() string      { return formatTime(r.m.CreatedAt) }
func (r *contactResolver) UpdatedAt() string      { return formatTime(r.m.UpdatedAt) }

func orderResolvers(orders []model.Order) []*orderResolver {
	out := make([]*orderResolver, 0, len(orders))
	for i := range orders {
		out = append(out, &orderResolver{o: &orders[i]})
	}
	return out
}
