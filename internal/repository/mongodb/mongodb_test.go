package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/model"
	"storefront/internal/repository"
)

// openTestDatabase connects to MONGO_TEST_URI and returns a throwaway database.
func openTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	db := client.Database("storefront_test_" + model.NewID())
	require.NoError(t, EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestCartRepository_SaveUpsertsByOwner(t *testing.T) {
	set := NewSet(openTestDatabase(t))
	ctx := context.Background()
	owner := model.GuestOwner("guest-1")

	_, err := set.Carts.FindByOwner(ctx, owner)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	cart := model.NewCart(owner)
	cart.AddItem(model.CartItem{ProductID: "p1", Quantity: 2})
	require.NoError(t, set.Carts.Save(ctx, cart))
	firstID := cart.ID

	cart.AddItem(model.CartItem{ProductID: "p1", Quantity: 1})
	require.NoError(t, set.Carts.Save(ctx, cart))

	got, err := set.Carts.FindByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, firstID, got.ID)
	assert.True(t, got.Owner.IsGuest())
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)

	// a user cart with the same raw id is a different owner
	_, err = set.Carts.FindByOwner(ctx, model.UserOwner("guest-1"))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, set.Carts.Delete(ctx, owner))
	assert.ErrorIs(t, set.Carts.Delete(ctx, owner), repository.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	set := NewSet(openTestDatabase(t))
	ctx := context.Background()

	require.NoError(t, set.Users.Create(ctx, &model.User{Fullname: "A", Email: "a@example.com", PasswordHash: "x"}))
	err := set.Users.Create(ctx, &model.User{Fullname: "B", Email: "a@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}

func TestProductRepository_Categories(t *testing.T) {
	set := NewSet(openTestDatabase(t))
	ctx := context.Background()

	for _, c := range []string{"Mugs", "Bowls", "Mugs"} {
		require.NoError(t, set.Products.Create(ctx, &model.Product{Name: "n", Category: c, Price: 1}))
	}
	cats, err := set.Products.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bowls", "Mugs"}, cats)
}
