package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartOwner(t *testing.T) {
	tests := []struct {
		name    string
		owner   CartOwner
		isUser  bool
		isGuest bool
		str     string
	}{
		{name: "user", owner: UserOwner("u1"), isUser: true, str: "user:u1"},
		{name: "guest", owner: GuestOwner("g1"), isGuest: true, str: "guest:g1"},
		{name: "empty guest id", owner: GuestOwner(""), str: "none"},
		{name: "zero value", owner: CartOwner{}, str: "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isUser, tt.owner.IsUser())
			assert.Equal(t, tt.isGuest, tt.owner.IsGuest())
			assert.Equal(t, !tt.isUser && !tt.isGuest, tt.owner.IsZero())
			assert.Equal(t, tt.str, tt.owner.String())
		})
	}
}

func TestCartOwner_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(GuestOwner("abc"))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"type":"guest","id":"abc"}`, string(b))

	b, err = json.Marshal(CartOwner{})
	assert.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestCart_AddItemMergesSameProduct(t *testing.T) {
	cart := NewCart(GuestOwner("g1"))
	cart.AddItem(CartItem{ProductID: "p1", Quantity: 2})
	cart.AddItem(CartItem{ProductID: "p2", Quantity: 1})
	cart.AddItem(CartItem{ProductID: "p1", Quantity: 3})

	assert.Len(t, cart.Items, 2)
	item, ok := cart.Item("p1")
	assert.True(t, ok)
	assert.Equal(t, 5, item.Quantity)
}

func TestCart_SetQuantity(t *testing.T) {
	cart := NewCart(UserOwner("u1"))
	cart.AddItem(CartItem{ProductID: "p1", Quantity: 1})

	assert.True(t, cart.SetQuantity("p1", 7))
	assert.False(t, cart.SetQuantity("missing", 2))

	item, _ := cart.Item("p1")
	assert.Equal(t, 7, item.Quantity)
}

func TestCart_RemoveItem(t *testing.T) {
	cart := NewCart(UserOwner("u1"))
	cart.AddItem(CartItem{ProductID: "p1", Quantity: 1})
	cart.AddItem(CartItem{ProductID: "p2", Quantity: 1})

	assert.False(t, cart.RemoveItem("missing"))
	assert.Len(t, cart.Items, 2)

	assert.True(t, cart.RemoveItem("p1"))
	assert.Equal(t, []string{"p2"}, cart.ProductIDs())

	cart.Clear()
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestEnums(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, OrderStatus("Lost").Valid())
	assert.True(t, OutOfStock.Valid())
	assert.False(t, Availability("Soon").Valid())
	assert.True(t, ValidID(NewID()))
	assert.False(t, ValidID("not-an-id"))
}
