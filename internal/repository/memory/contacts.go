package memory

import (
	"context"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"
)

type contactRepository struct{ s *Store }

func (r *contactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if msg.ID == "" {
		msg.ID = model.NewID()
	}
	now := r.s.now()
	msg.CreatedAt, msg.UpdatedAt = now, now
	r.s.contacts[msg.ID] = *msg
	return nil
}

func (r *contactRepository) FindByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.contacts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *contactRepository) List(ctx context.Context) ([]model.ContactMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	msgs := make([]model.ContactMessage, 0, len(r.s.contacts))
	for _, m := range r.s.contacts {
		msgs = append(msgs, m)
	}
	return newestFirst(msgs, func(m model.ContactMessage) time.Time { return m.CreatedAt }), nil
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.contacts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.contacts, id)
	return nil
}
