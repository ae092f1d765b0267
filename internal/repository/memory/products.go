package memory

import (
	"context"
	"sort"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"
)

type productRepository struct{ s *Store }

func cloneProduct(p model.Product) model.Product {
	p.Images.Gallery = copyStrings(p.Images.Gallery)
	return p
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if product.ID == "" {
		product.ID = model.NewID()
	}
	if _, exists := r.s.products[product.ID]; exists {
		return repository.ErrDuplicateKey
	}
	now := r.s.now()
	product.CreatedAt, product.UpdatedAt = now, now
	r.s.products[product.ID] = cloneProduct(*product)
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.products[product.ID]
	if !ok {
		return repository.ErrNotFound
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = r.s.now()
	r.s.products[product.ID] = cloneProduct(*product)
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	products := []model.Product{}
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			products = append(products, cloneProduct(p))
		}
	}
	return products, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	products := []model.Product{}
	for _, p := range r.s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		products = append(products, cloneProduct(p))
	}
	return newestFirst(products, func(p model.Product) time.Time { return p.CreatedAt }), nil
}

func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := map[string]struct{}{}
	categories := []string{}
	for _, p := range r.s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}
