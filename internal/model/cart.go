package model

import (
	"encoding/json"
	"time"
)

// OwnerKind tells which branch of CartOwner is populated.
type OwnerKind string

const (
	OwnerUser  OwnerKind = "user"
	OwnerGuest OwnerKind = "guest"
)

// CartOwner identifies whose cart it is: either a registered user or a guest
// holding an opaque client-side cart id. The zero value owns nothing.
type CartOwner struct {
	kind OwnerKind
	id   string
}

// UserOwner returns the owner for the cart of a logged-in user.
func UserOwner(userID string) CartOwner {
	return CartOwner{kind: OwnerUser, id: userID}
}

// GuestOwner returns the owner for a guest cart.
func GuestOwner(cartID string) CartOwner {
	return CartOwner{kind: OwnerGuest, id: cartID}
}

func (o CartOwner) Kind() OwnerKind { return o.kind }
func (o CartOwner) ID() string      { return o.id }
func (o CartOwner) IsUser() bool    { return o.kind == OwnerUser && o.id != "" }
func (o CartOwner) IsGuest() bool   { return o.kind == OwnerGuest && o.id != "" }
func (o CartOwner) IsZero() bool    { return !o.IsUser() && !o.IsGuest() }

func (o CartOwner) String() string {
	if o.IsZero() {
		return "none"
	}
	return string(o.kind) + ":" + o.id
}

// MarshalJSON renders the owner as {"type": ..., "id": ...}.
func (o CartOwner) MarshalJSON() ([]byte, error) {
	if o.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		Type OwnerKind `json:"type"`
		ID   string    `json:"id"`
	}{o.kind, o.id})
}

// CartItemImages holds the item thumbnail shown in the cart.
type CartItemImages struct {
	Thumbnail string `json:"thumbnail" bson:"thumbnail"`
}

// CartItem is one product line in a cart.
type CartItem struct {
	ProductID string         `json:"productId" bson:"productId"`
	Name      string         `json:"name" bson:"name"`
	Price     float64        `json:"price" bson:"price"`
	Quantity  int            `json:"quantity" bson:"quantity"`
	Images    CartItemImages `json:"images" bson:"images"`
}

// Cart is a shopping cart. Storage drivers flatten Owner into a userId or a
// cartId column.
type Cart struct {
	ID        string     `json:"_id"`
	Owner     CartOwner  `json:"owner"`
	Items     []CartItem `json:"cartItems"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewCart returns an empty cart for owner.
func NewCart(owner CartOwner) *Cart {
	return &Cart{ID: NewID(), Owner: owner, Items: []CartItem{}}
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Item returns the line for productID, if present.
func (c *Cart) Item(productID string) (CartItem, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Items[i], true
	}
	return CartItem{}, false
}

// AddItem adds item to the cart. A product already in the cart has its
// quantity increased instead of getting a second line.
func (c *Cart) AddItem(item CartItem) {
	if i := c.indexOf(item.ProductID); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// SetQuantity sets the absolute quantity of a line. It returns false when the
// product is not in the cart.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.Items[i].Quantity = quantity
	return true
}

// RemoveItem drops the line for productID and reports whether one was removed.
func (c *Cart) RemoveItem(productID string) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// ProductIDs lists the product ids referenced by the cart.
func (c *Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
