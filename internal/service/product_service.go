package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/cache"
	apperr "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const (
	productCacheTTL       = 5 * time.Minute
	productListCacheKey   = "products:all"
	categoryListCacheKey  = "products:categories"
	productCacheKeyPrefix = "product:"
)

// ImageInput carries product image urls.
type ImageInput struct {
	Thumbnail   string   `json:"thumbnail" validate:"required"`
	Gallery     []string `json:"gallery"`
	DetailImage string   `json:"detailImage"`
}

// ProductInput is the editable part of a product.
type ProductInput struct {
	Name             string               `json:"name" validate:"required"`
	Category         string               `json:"category" validate:"required"`
	Price            float64              `json:"price" validate:"gte=0"`
	Rating           float64              `json:"rating" validate:"gte=0,lte=5"`
	Description      string               `json:"description" validate:"required"`
	ShortDescription string               `json:"shortDescription" validate:"required"`
	Images           ImageInput           `json:"images"`
	Specifications   model.Specifications `json:"specifications"`
	Availability     model.Availability   `json:"availability"`
}

func (in ProductInput) apply(p *model.Product) {
	p.Name = strings.TrimSpace(in.Name)
	p.Category = strings.TrimSpace(in.Category)
	p.Price = in.Price
	p.Rating = in.Rating
	p.Description = in.Description
	p.ShortDescription = in.ShortDescription
	p.Images = model.ProductImages{
		Thumbnail:   in.Images.Thumbnail,
		Gallery:     in.Images.Gallery,
		DetailImage: in.Images.DetailImage,
	}
	if p.Images.Gallery == nil {
		p.Images.Gallery = []string{}
	}
	p.Specifications = in.Specifications
	p.Availability = in.Availability
	if p.Availability == "" {
		p.Availability = model.InStock
	}
}

func (in ProductInput) validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.Availability != "" && !in.Availability.Valid() {
		return apperr.NewFieldError("availability", "availability must be one of [In Stock, Out of Stock]")
	}
	return nil
}

// ProductService manages the catalog.
type ProductService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error)
	ImportProducts(ctx context.Context, inputs []ProductInput) (int, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, category string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{repo: repo, cache: cache}
}

func (s *productService) invalidate(ctx context.Context, ids ...string) {
	keys := []string{productListCacheKey, categoryListCacheKey}
	for _, id := range ids {
		keys = append(keys, productCacheKeyPrefix+id)
	}
	_ = s.cache.Delete(ctx, keys...)
}

func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	product := &model.Product{ID: model.NewID()}
	input.apply(product)

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.invalidate(ctx)
	return product, nil
}

// ImportProducts validates the whole batch before writing any of it.
func (s *productService) ImportProducts(ctx context.Context, inputs []ProductInput) (int, error) {
	for i, input := range inputs {
		if err := input.validate(); err != nil {
			return 0, fmt.Errorf("product %d: %w", i, err)
		}
	}

	count := 0
	for _, input := range inputs {
		product := &model.Product{ID: model.NewID()}
		input.apply(product)
		if err := s.repo.Create(ctx, product); err != nil {
			s.invalidate(ctx)
			return count, fmt.Errorf("import product %q: %w", product.Name, err)
		}
		count++
	}
	s.invalidate(ctx)
	return count, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var cached model.Product
	if s.cache.GetJSON(ctx, productCacheKeyPrefix+id, &cached) {
		return &cached, nil
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperr.ErrProductNotFound)
	}
	s.cache.SetJSON(ctx, productCacheKeyPrefix+id, product, productCacheTTL)
	return product, nil
}

// ListProducts returns the catalog newest first. Only the unfiltered list is cached.
func (s *productService) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	category = strings.TrimSpace(category)
	if category != "" {
		return s.repo.List(ctx, repository.ProductFilter{Category: category})
	}

	var cached []model.Product
	if s.cache.GetJSON(ctx, productListCacheKey, &cached) {
		return cached, nil
	}

	products, err := s.repo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, productListCacheKey, products, productCacheTTL)
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*model.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperr.ErrProductNotFound)
	}
	input.apply(product)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, notFound(err, apperr.ErrProductNotFound)
	}
	s.invalidate(ctx, id)
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, apperr.ErrProductNotFound)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *productService) Categories(ctx context.Context) ([]string, error) {
	var cached []string
	if s.cache.GetJSON(ctx, categoryListCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, categoryListCacheKey, categories, productCacheTTL)
	return categories, nil
}
