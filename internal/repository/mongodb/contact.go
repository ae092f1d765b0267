package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/model"
	"storefront/internal/repository"
)

type contactRepository struct {
	coll *mongo.Collection
}

func (r *contactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if msg.ID == "" {
		msg.ID = model.NewID()
	}
	now := time.Now().UTC()
	msg.CreatedAt, msg.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, msg)
	return translate("insert contact message", err)
}

func (r *contactRepository) FindByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var msg model.ContactMessage
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&msg); err != nil {
		return nil, translate("find contact message", err)
	}
	return &msg, nil
}

func (r *contactRepository) List(ctx context.Context) ([]model.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	msgs, err := findAll[model.ContactMessage](ctx, r.coll, bson.M{}, newestFirst)
	return msgs, translate("list contact messages", err)
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate("delete contact message", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
