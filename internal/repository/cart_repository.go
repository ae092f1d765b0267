package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"storefront/internal/model"
)

// cartRecord is the row layout of a cart. Exactly one of UserID and CartID is
// set; both columns are unique and NULLs do not collide.
type cartRecord struct {
	ID        string           `gorm:"type:char(24);primaryKey"`
	UserID    *string          `gorm:"type:char(24);uniqueIndex"`
	CartID    *string          `gorm:"size:64;uniqueIndex"`
	Items     []model.CartItem `gorm:"type:json;serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (cartRecord) TableName() string { return "carts" }

func (rec *cartRecord) toModel() *model.Cart {
	cart := &model.Cart{
		ID:        rec.ID,
		Items:     rec.Items,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if rec.UserID != nil {
		cart.Owner = model.UserOwner(*rec.UserID)
	} else if rec.CartID != nil {
		cart.Owner = model.GuestOwner(*rec.CartID)
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new GORM-backed cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func ownerScope(owner model.CartOwner) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if owner.IsUser() {
			return db.Where("user_id = ?", owner.ID())
		}
		return db.Where("cart_id = ?", owner.ID())
	}
}

func (r *cartRepository) find(ctx context.Context, owner model.CartOwner) (*cartRecord, error) {
	if owner.IsZero() {
		return nil, ErrNotFound
	}
	var rec cartRecord
	if err := r.db.WithContext(ctx).Scopes(ownerScope(owner)).First(&rec).Error; err != nil {
		return nil, translate("find cart", err)
	}
	return &rec, nil
}

func (r *cartRepository) FindByOwner(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	rec, err := r.find(ctx, owner)
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	existing, err := r.find(ctx, cart.Owner)
	if err == ErrNotFound {
		rec := cartRecord{ID: cart.ID, Items: cart.Items}
		if rec.ID == "" {
			rec.ID = model.NewID()
		}
		id := cart.Owner.ID()
		if cart.Owner.IsUser() {
			rec.UserID = &id
		} else {
			rec.CartID = &id
		}
		if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
			return translate("create cart", err)
		}
		cart.ID, cart.CreatedAt, cart.UpdatedAt = rec.ID, rec.CreatedAt, rec.UpdatedAt
		return nil
	}
	if err != nil {
		return err
	}

	update := cartRecord{Items: cart.Items, UpdatedAt: time.Now()}
	if update.Items == nil {
		update.Items = []model.CartItem{}
	}
	err = r.db.WithContext(ctx).Model(&cartRecord{ID: existing.ID}).
		Select("Items", "UpdatedAt").
		Updates(&update).Error
	if err != nil {
		return translate("update cart", err)
	}
	cart.ID, cart.CreatedAt, cart.UpdatedAt = existing.ID, existing.CreatedAt, update.UpdatedAt
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, owner model.CartOwner) error {
	if owner.IsZero() {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Scopes(ownerScope(owner)).Delete(&cartRecord{})
	if res.Error != nil {
		return translate("delete cart", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
