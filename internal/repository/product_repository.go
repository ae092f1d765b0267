package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/model"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new GORM-backed product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return translate("create product", r.db.WithContext(ctx).Create(product).Error)
}

// Update replaces every column of an existing product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	if _, err := r.FindByID(ctx, product.ID); err != nil {
		return err
	}
	return translate("update product", r.db.WithContext(ctx).Save(product).Error)
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, translate("find product", err)
	}
	return &product, nil
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	products := []model.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, translate("find products", err)
	}
	return products, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	products := []model.Product{}
	q := r.db.WithContext(ctx).Order("created_at desc")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, translate("list products", err)
	}
	return products, nil
}

func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, translate("list categories", err)
	}
	return categories, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return translate("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
