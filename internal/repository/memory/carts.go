package memory

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/repository"
)

type cartRepository struct{ s *Store }

func cloneCart(c model.Cart) model.Cart {
	items := make([]model.CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}

func (r *cartRepository) FindByOwner(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	if owner.IsZero() {
		return nil, repository.ErrNotFound
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.carts[owner.String()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c = cloneCart(c)
	return &c, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	if cart.Owner.IsZero() {
		return repository.ErrNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	key := cart.Owner.String()
	if existing, ok := r.s.carts[key]; ok {
		cart.ID, cart.CreatedAt = existing.ID, existing.CreatedAt
	} else {
		if cart.ID == "" {
			cart.ID = model.NewID()
		}
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	r.s.carts[key] = cloneCart(*cart)
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, owner model.CartOwner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := owner.String()
	if _, ok := r.s.carts[key]; !ok || owner.IsZero() {
		return repository.ErrNotFound
	}
	delete(r.s.carts, key)
	return nil
}
