package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/model"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new GORM-backed contact message repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	return translate("create contact message", r.db.WithContext(ctx).Create(msg).Error)
}

func (r *contactRepository) FindByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	var msg model.ContactMessage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, translate("find contact message", err)
	}
	return &msg, nil
}

func (r *contactRepository) List(ctx context.Context) ([]model.ContactMessage, error) {
	msgs := []model.ContactMessage{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&msgs).Error; err != nil {
		return nil, translate("list contact messages", err)
	}
	return msgs, nil
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ContactMessage{})
	if res.Error != nil {
		return translate("delete contact message", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
