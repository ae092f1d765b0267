package memory

import (
	"context"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"
)

type orderRepository struct{ s *Store }

func cloneOrder(o model.Order) model.Order {
	items := make([]model.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	if o.UserID != nil {
		id := *o.UserID
		o.UserID = &id
	}
	return o
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if order.ID == "" {
		order.ID = model.NewID()
	}
	now := r.s.now()
	order.CreatedAt, order.UpdatedAt = now, now
	r.s.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *orderRepository) list(match func(model.Order) bool) []model.Order {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	orders := []model.Order{}
	for _, o := range r.s.orders {
		if match(o) {
			orders = append(orders, cloneOrder(o))
		}
	}
	return newestFirst(orders, func(o model.Order) time.Time { return o.CreatedAt })
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	return r.list(func(model.Order) bool { return true }), nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return r.list(func(o model.Order) bool { return o.OwnedBy(userID) }), nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = r.s.now()
	r.s.orders[id] = o
	o = cloneOrder(o)
	return &o, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.orders, id)
	return nil
}
