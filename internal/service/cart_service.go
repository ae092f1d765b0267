package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/google/uuid"

	apperr "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// PlaceholderThumbnail is shown for cart items without any image.
const PlaceholderThumbnail = "/placeholder.png"

// CartService manages guest and user carts.
type CartService interface {
	GetCart(ctx context.Context, owner model.CartOwner) (*model.Cart, error)
	AddItem(ctx context.Context, owner model.CartOwner, productID string, quantity int) (*model.Cart, error)
	UpdateQuantity(ctx context.Context, owner model.CartOwner, productID string, quantity int) (*model.Cart, error)
	RemoveItem(ctx context.Context, owner model.CartOwner, productID string) (*model.Cart, error)
	ClearCart(ctx context.Context, owner model.CartOwner) error
	MergeGuestCart(ctx context.Context, userID, guestCartID string) (*model.Cart, error)
	// Drain hands the populated cart to place and empties it once place
	// succeeds. No other mutation of the owner's cart runs in between.
	Drain(ctx context.Context, owner model.CartOwner, place func(cart *model.Cart) error) error
	NewGuestCartID() string
}

// lockStripes bounds the number of owner mutexes. Owners that hash to the
// same stripe share a mutex.
const lockStripes = 256

// ownerLocks serializes work per cart owner.
type ownerLocks [lockStripes]sync.Mutex

func stripeOf(owner model.CartOwner) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(owner.String()))
	return int(h.Sum32() % lockStripes)
}

// lock takes the stripes of every owner in ascending order, once each, and
// returns the matching unlock.
func (l *ownerLocks) lock(owners ...model.CartOwner) (unlock func()) {
	stripes := make([]int, 0, len(owners))
	seen := make(map[int]bool, len(owners))
	for _, owner := range owners {
		if i := stripeOf(owner); !seen[i] {
			seen[i] = true
			stripes = append(stripes, i)
		}
	}
	sort.Ints(stripes)
	for _, i := range stripes {
		l[i].Lock()
	}
	return func() {
		for j := len(stripes) - 1; j >= 0; j-- {
			l[stripes[j]].Unlock()
		}
	}
}

type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	locks    ownerLocks
}

// NewCartService creates a new cart service.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartService{carts: carts, products: products}
}

func (s *cartService) load(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	cart, err := s.carts.FindByOwner(ctx, owner)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}

// populate refreshes every line from the current catalog and drops lines whose
// product no longer exists. The stored cart is not modified.
func (s *cartService) populate(ctx context.Context, cart *model.Cart) (*model.Cart, error) {
	out := *cart
	out.Items = make([]model.CartItem, 0, len(cart.Items))
	if len(cart.Items) == 0 {
		return &out, nil
	}

	products, err := s.products.FindByIDs(ctx, cart.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("populate cart: %w", err)
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		item.Name = product.Name
		item.Price = product.Price
		switch {
		case product.Images.Thumbnail != "":
			item.Images.Thumbnail = product.Images.Thumbnail
		case item.Images.Thumbnail == "":
			item.Images.Thumbnail = PlaceholderThumbnail
		}
		out.Items = append(out.Items, item)
	}
	return &out, nil
}

// GetCart returns the populated cart. An owner without a cart gets an empty one.
func (s *cartService) GetCart(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	if owner.IsZero() {
		return nil, apperr.ErrCartOwnerRequired
	}
	cart, err := s.load(ctx, owner)
	if errors.Is(err, apperr.ErrCartNotFound) {
		return model.NewCart(owner), nil
	}
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, cart)
}

// AddItem finds or creates the cart and adds quantity of productID, defaulting to one.
func (s *cartService) AddItem(ctx context.Context, owner model.CartOwner, productID string, quantity int) (*model.Cart, error) {
	if owner.IsZero() {
		return nil, apperr.ErrCartOwnerRequired
	}
	if err := checkID(productID); err != nil {
		return nil, err
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, apperr.ErrInvalidQuantity
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, notFound(err, apperr.ErrProductNotFound)
	}

	defer s.locks.lock(owner)()

	cart, err := s.load(ctx, owner)
	if errors.Is(err, apperr.ErrCartNotFound) {
		cart, err = model.NewCart(owner), nil
	}
	if err != nil {
		return nil, err
	}

	cart.AddItem(model.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		Images:    model.CartItemImages{Thumbnail: product.Images.Thumbnail},
	})
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return s.populate(ctx, cart)
}

// UpdateQuantity sets the absolute quantity of one line.
func (s *cartService) UpdateQuantity(ctx context.Context, owner model.CartOwner, productID string, quantity int) (*model.Cart, error) {
	if owner.IsZero() {
		return nil, apperr.ErrCartOwnerRequired
	}
	if quantity < 1 {
		return nil, apperr.ErrInvalidQuantity
	}

	defer s.locks.lock(owner)()

	cart, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !cart.SetQuantity(productID, quantity) {
		return nil, apperr.ErrCartItemNotFound
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return s.populate(ctx, cart)
}

// RemoveItem drops one line. Missing carts and lines are not errors.
func (s *cartService) RemoveItem(ctx context.Context, owner model.CartOwner, productID string) (*model.Cart, error) {
	if owner.IsZero() {
		return nil, apperr.ErrCartOwnerRequired
	}

	defer s.locks.lock(owner)()

	cart, err := s.load(ctx, owner)
	if errors.Is(err, apperr.ErrCartNotFound) {
		return model.NewCart(owner), nil
	}
	if err != nil {
		return nil, err
	}
	if cart.RemoveItem(productID) {
		if err := s.carts.Save(ctx, cart); err != nil {
			return nil, fmt.Errorf("save cart: %w", err)
		}
	}
	return s.populate(ctx, cart)
}

func (s *cartService) ClearCart(ctx context.Context, owner model.CartOwner) error {
	if owner.IsZero() {
		return apperr.ErrCartOwnerRequired
	}

	defer s.locks.lock(owner)()

	cart, err := s.load(ctx, owner)
	if errors.Is(err, apperr.ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.clear(ctx, cart)
}

func (s *cartService) clear(ctx context.Context, cart *model.Cart) error {
	cart.Clear()
	if err := s.carts.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *cartService) Drain(ctx context.Context, owner model.CartOwner, place func(cart *model.Cart) error) error {
	if owner.IsZero() {
		return apperr.ErrCartOwnerRequired
	}

	defer s.locks.lock(owner)()

	stored, err := s.load(ctx, owner)
	found := err == nil
	if errors.Is(err, apperr.ErrCartNotFound) {
		stored, err = model.NewCart(owner), nil
	}
	if err != nil {
		return err
	}
	cart, err := s.populate(ctx, stored)
	if err != nil {
		return err
	}
	if err := place(cart); err != nil {
		return err
	}
	if !found {
		return nil
	}
	return s.clear(ctx, stored)
}

// MergeGuestCart moves the guest cart's lines into the user's cart, summing
// quantities of shared products, and deletes the guest cart.
func (s *cartService) MergeGuestCart(ctx context.Context, userID, guestCartID string) (*model.Cart, error) {
	userOwner := model.UserOwner(userID)
	guestOwner := model.GuestOwner(guestCartID)
	if userOwner.IsZero() || guestOwner.IsZero() {
		return nil, apperr.ErrCartOwnerRequired
	}

	defer s.locks.lock(userOwner, guestOwner)()

	cart, err := s.load(ctx, userOwner)
	if errors.Is(err, apperr.ErrCartNotFound) {
		cart, err = model.NewCart(userOwner), nil
	}
	if err != nil {
		return nil, err
	}

	guest, err := s.load(ctx, guestOwner)
	if errors.Is(err, apperr.ErrCartNotFound) {
		return s.populate(ctx, cart)
	}
	if err != nil {
		return nil, err
	}

	for _, item := range guest.Items {
		cart.AddItem(item)
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	if err := s.carts.Delete(ctx, guestOwner); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("delete guest cart: %w", err)
	}
	return s.populate(ctx, cart)
}

// NewGuestCartID mints an opaque id for a guest cart.
func (s *cartService) NewGuestCartID() string {
	return uuid.NewString()
}
