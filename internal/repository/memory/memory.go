// Package memory implements the repository interfaces in process memory. It
// backs STORE_DRIVER=memory and the test suites.
package memory

import (
	"sort"
	"sync"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"
)

// Store holds every collection behind one lock.
type Store struct {
	mu       sync.RWMutex
	users    map[string]model.User
	products map[string]model.Product
	carts    map[string]model.Cart // keyed by owner.String()
	orders   map[string]model.Order
	contacts map[string]model.ContactMessage
	now      func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	last := time.Time{}
	return &Store{
		users:    map[string]model.User{},
		products: map[string]model.Product{},
		carts:    map[string]model.Cart{},
		orders:   map[string]model.Order{},
		contacts: map[string]model.ContactMessage{},
		// strictly increasing so newest-first ordering is deterministic
		now: func() time.Time {
			t := time.Now().UTC()
			if !t.After(last) {
				t = last.Add(time.Microsecond)
			}
			last = t
			return t
		},
	}
}

// NewSet returns a repository set over a fresh store.
func NewSet() repository.Set {
	return NewStore().Set()
}

// Set exposes the store through the repository interfaces.
func (s *Store) Set() repository.Set {
	return repository.Set{
		Users:    &userRepository{s},
		Products: &productRepository{s},
		Carts:    &cartRepository{s},
		Orders:   &orderRepository{s},
		Contacts: &contactRepository{s},
	}
}

func newestFirst[T any](items []T, createdAt func(T) time.Time) []T {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
	return items
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
