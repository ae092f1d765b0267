package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/model"
	"storefront/internal/repository"
)

// cartDocument is the stored shape of a cart. Only one of UserID and CartID is
// present; the partial unique indexes key on whichever it is.
type cartDocument struct {
	ID        string           `bson:"_id"`
	UserID    string           `bson:"userId,omitempty"`
	CartID    string           `bson:"cartId,omitempty"`
	Items     []model.CartItem `bson:"cartItems"`
	CreatedAt time.Time        `bson:"createdAt"`
	UpdatedAt time.Time        `bson:"updatedAt"`
}

func (d *cartDocument) toModel() *model.Cart {
	cart := &model.Cart{
		ID:        d.ID,
		Items:     d.Items,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.UserID != "" {
		cart.Owner = model.UserOwner(d.UserID)
	} else {
		cart.Owner = model.GuestOwner(d.CartID)
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart
}

func ownerFilter(owner model.CartOwner) bson.M {
	if owner.IsUser() {
		return bson.M{"userId": owner.ID()}
	}
	return bson.M{"cartId": owner.ID()}
}

type cartRepository struct {
	coll *mongo.Collection
}

func (r *cartRepository) FindByOwner(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	if owner.IsZero() {
		return nil, repository.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc cartDocument
	if err := r.coll.FindOne(ctx, ownerFilter(owner)).Decode(&doc); err != nil {
		return nil, translate("find cart", err)
	}
	return doc.toModel(), nil
}

// Save upserts by owner. The id and creation time are only written on insert.
func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	if cart.Owner.IsZero() {
		return repository.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if cart.ID == "" {
		cart.ID = model.NewID()
	}
	items := cart.Items
	if items == nil {
		items = []model.CartItem{}
	}
	now := time.Now().UTC()

	// an upsert copies the owner key from the filter into the new document
	update := bson.M{
		"$set":         bson.M{"cartItems": items, "updatedAt": now},
		"$setOnInsert": bson.M{"_id": cart.ID, "createdAt": now},
	}

	var doc cartDocument
	err := r.coll.FindOneAndUpdate(ctx, ownerFilter(cart.Owner), update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return translate("save cart", err)
	}
	cart.ID, cart.CreatedAt, cart.UpdatedAt = doc.ID, doc.CreatedAt, doc.UpdatedAt
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, owner model.CartOwner) error {
	if owner.IsZero() {
		return repository.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, ownerFilter(owner))
	if err != nil {
		return translate("delete cart", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
