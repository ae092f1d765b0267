package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/db"
	"storefront/internal/model"
)

// openTestDB connects to MYSQL_TEST_DSN and recreates the tables. The DSN must
// point at a throwaway database and set parseTime=True.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}

	gormDB, err := db.NewMySQL(dsn)
	require.NoError(t, err)
	drop := func() {
		for _, table := range Models() {
			_ = gormDB.Migrator().DropTable(table)
		}
	}
	drop()
	require.NoError(t, gormDB.AutoMigrate(Models()...))

	t.Cleanup(func() {
		drop()
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

func TestGormCartRepository_SaveByOwner(t *testing.T) {
	set := NewGormSet(openTestDB(t))
	ctx := context.Background()
	guest := model.GuestOwner("guest-1")

	_, err := set.Carts.FindByOwner(ctx, guest)
	assert.ErrorIs(t, err, ErrNotFound)

	cart := model.NewCart(guest)
	cart.AddItem(model.CartItem{ProductID: "p1", Quantity: 2})
	require.NoError(t, set.Carts.Save(ctx, cart))
	firstID := cart.ID

	// a second save updates the items of the existing row
	cart.AddItem(model.CartItem{ProductID: "p1", Quantity: 1})
	cart.AddItem(model.CartItem{ProductID: "p2", Quantity: 4})
	require.NoError(t, set.Carts.Save(ctx, cart))

	got, err := set.Carts.FindByOwner(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, firstID, got.ID)
	assert.True(t, got.Owner.IsGuest())
	assert.Equal(t, "guest-1", got.Owner.ID())
	require.Len(t, got.Items, 2)
	assert.Equal(t, 3, got.Items[0].Quantity)

	userID := model.NewID()
	userCart := model.NewCart(model.UserOwner(userID))
	require.NoError(t, set.Carts.Save(ctx, userCart))
	got, err = set.Carts.FindByOwner(ctx, model.UserOwner(userID))
	require.NoError(t, err)
	assert.True(t, got.Owner.IsUser())
	assert.Empty(t, got.Items)

	// clearing stores an empty list, not NULL
	cart.Clear()
	require.NoError(t, set.Carts.Save(ctx, cart))
	got, err = set.Carts.FindByOwner(ctx, guest)
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)

	require.NoError(t, set.Carts.Delete(ctx, guest))
	assert.ErrorIs(t, set.Carts.Delete(ctx, guest), ErrNotFound)
	_, err = set.Carts.FindByOwner(ctx, model.UserOwner(userID))
	assert.NoError(t, err)
}

func TestGormUserRepository(t *testing.T) {
	set := NewGormSet(openTestDB(t))
	ctx := context.Background()

	user := &model.User{Fullname: "Ann Smith", Email: "ann.smith@example.com", PasswordHash: "x", Role: model.RoleCustomer}
	require.NoError(t, set.Users.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	err := set.Users.Create(ctx, &model.User{Fullname: "Dup", Email: "ann.smith@example.com", PasswordHash: "y", Role: model.RoleCustomer})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	got, err := set.Users.FindByEmail(ctx, "ann.smith@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	tests := []struct {
		name        string
		id          string
		role        model.Role
		expectedErr error
	}{
		{name: "promote", id: user.ID, role: model.RoleAdmin},
		{name: "unchanged role", id: user.ID, role: model.RoleAdmin},
		{name: "missing user", id: model.NewID(), role: model.RoleAdmin, expectedErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := set.Users.UpdateRole(ctx, tt.id, tt.role)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, updated.Role)
		})
	}

	require.NoError(t, set.Users.Delete(ctx, user.ID))
	assert.ErrorIs(t, set.Users.Delete(ctx, user.ID), ErrNotFound)
}

func TestGormProductRepository(t *testing.T) {
	set := NewGormSet(openTestDB(t))
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)

	var ids []string
	for i, c := range []string{"Mugs", "Bowls", "Mugs"} {
		p := &model.Product{
			Name:      c,
			Category:  c,
			Price:     float64(i + 1),
			Images:    model.ProductImages{Thumbnail: "/t.png", Gallery: []string{"/g.png"}},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, set.Products.Create(ctx, p))
		ids = append(ids, p.ID)
	}

	cats, err := set.Products.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bowls", "Mugs"}, cats)

	mugs, err := set.Products.List(ctx, ProductFilter{Category: "Mugs"})
	require.NoError(t, err)
	require.Len(t, mugs, 2)
	assert.Equal(t, ids[2], mugs[0].ID)
	assert.Equal(t, []string{"/g.png"}, mugs[0].Images.Gallery)

	p, err := set.Products.FindByID(ctx, ids[1])
	require.NoError(t, err)
	p.Price = 42
	require.NoError(t, set.Products.Update(ctx, p))
	p, err = set.Products.FindByID(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, 42.0, p.Price)

	assert.ErrorIs(t, set.Products.Update(ctx, &model.Product{ID: model.NewID()}), ErrNotFound)

	found, err := set.Products.FindByIDs(ctx, []string{ids[0], model.NewID()})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, set.Products.Delete(ctx, ids[0]))
	assert.ErrorIs(t, set.Products.Delete(ctx, ids[0]), ErrNotFound)
}

func TestGormOrderRepository(t *testing.T) {
	set := NewGormSet(openTestDB(t))
	ctx := context.Background()
	buyer := model.NewID()
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)

	newOrder := func(userID *string, at time.Time) *model.Order {
		return &model.Order{
			UserID:          userID,
			Items:           []model.OrderItem{{ProductID: model.NewID(), Name: "Mug", Price: 5, Quantity: 2}},
			TotalPrice:      10,
			ShippingDetails: model.ShippingDetails{FullName: "Jane Doe", Email: "jane@example.com", Phone: "1", City: "X", Address: "Y"},
			Status:          model.StatusPending,
			CreatedAt:       at,
		}
	}
	older := newOrder(&buyer, base)
	newer := newOrder(&buyer, base.Add(time.Minute))
	guest := newOrder(nil, base.Add(2*time.Minute))
	for _, o := range []*model.Order{older, newer, guest} {
		require.NoError(t, set.Orders.Create(ctx, o))
	}

	mine, err := set.Orders.ListByUser(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newer.ID, mine[0].ID)
	assert.Equal(t, 2, mine[0].Items[0].Quantity)
	assert.Equal(t, "Jane Doe", mine[0].ShippingDetails.FullName)

	all, err := set.Orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, guest.ID, all[0].ID)
	assert.Nil(t, all[0].UserID)

	updated, err := set.Orders.UpdateStatus(ctx, older.ID, model.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipped, updated.Status)

	_, err = set.Orders.UpdateStatus(ctx, model.NewID(), model.StatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, set.Orders.Delete(ctx, older.ID))
	assert.ErrorIs(t, set.Orders.Delete(ctx, older.ID), ErrNotFound)
}

func TestGormContactRepository(t *testing.T) {
	set := NewGormSet(openTestDB(t))
	ctx := context.Background()
	sender := model.NewID()

	msg := &model.ContactMessage{FullName: "Visitor", Email: "visitor@example.com", Subject: "Hi", Message: "Hello", CreatedBy: &sender}
	require.NoError(t, set.Contacts.Create(ctx, msg))

	got, err := set.Contacts.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, sender, *got.CreatedBy)

	msgs, err := set.Contacts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	require.NoError(t, set.Contacts.Delete(ctx, msg.ID))
	_, err = set.Contacts.FindByID(ctx, msg.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
