package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/model"
)

// NewGormSet builds a GORM-backed repository set.
func NewGormSet(db *gorm.DB) Set {
	return Set{
		Users:    NewUserRepository(db),
		Products: NewProductRepository(db),
		Carts:    NewCartRepository(db),
		Orders:   NewOrderRepository(db),
		Contacts: NewContactRepository(db),
	}
}

// Models lists the tables managed by the GORM repositories, in drop-safe order.
func Models() []interface{} {
	return []interface{}{
		&model.ContactMessage{},
		&model.Order{},
		&cartRecord{},
		&model.Product{},
		&model.User{},
	}
}

// translate maps GORM errors onto the package sentinels. The DB must be opened
// with TranslateError so duplicate keys surface as gorm.ErrDuplicatedKey.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
