package services

import (
	"context"
	"fmt"
	"sync"

	"omareats/internal/metrics"
	"omareats/internal/models"
	"omareats/internal/repositories"

	"github.com/shopspring/decimal"
)

// CartService handles cart mutations. Every mutation reloads the persisted
// cart, applies the change and saves it back through the CartStore.
type CartService struct {
	store       *CartStore
	productRepo repositories.ProductRepository
	mu          sync.Mutex // serializes load-mutate-save within this process
}

// NewCartService creates a new CartService.
func NewCartService(store *CartStore, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		store:       store,
		productRepo: productRepo,
	}
}

// Store returns the underlying cart store.
func (s *CartService) Store() *CartStore {
	return s.store
}

// Cart returns the current cart.
func (s *CartService) Cart(ctx context.Context) models.Cart {
	return s.store.Load(ctx)
}

// AddItem increments the quantity of product, adding a new line with
// quantity 1 when it is not in the cart yet.
func (s *CartService) AddItem(ctx context.Context, product models.Product) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.store.Load(ctx)
	if i := cart.Find(product.ID); i >= 0 {
		cart[i].Quantity++
	} else {
		cart = append(cart, models.NewCartLine(product))
	}

	s.store.Save(ctx, cart)
	metrics.CartMutations.WithLabelValues("add").Inc()
	return cart
}

// AddProductByID looks the product up in the catalog and adds it to the cart.
func (s *CartService) AddProductByID(ctx context.Context, productID string) (models.Cart, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to add product %s to cart: %w", productID, err)
	}
	return s.AddItem(ctx, *product), nil
}

// RemoveItem decrements the quantity of productID and drops the line once it
// reaches zero. Unknown IDs leave the cart unchanged.
func (s *CartService) RemoveItem(ctx context.Context, productID string) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.store.Load(ctx)
	if i := cart.Find(productID); i >= 0 {
		cart[i].Quantity--
		if cart[i].Quantity <= 0 {
			cart = append(cart[:i], cart[i+1:]...)
		}
	}

	s.store.Save(ctx, cart)
	metrics.CartMutations.WithLabelValues("remove").Inc()
	return cart
}

// Clear replaces the cart with an empty one.
func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Save(ctx, models.Cart{})
	metrics.CartMutations.WithLabelValues("clear").Inc()
}

// ItemCount returns the sum of quantities in the cart.
func (s *CartService) ItemCount(ctx context.Context) int {
	return s.store.Load(ctx).ItemCount()
}

// Total returns the cart total rounded to cents.
func (s *CartService) Total(ctx context.Context) decimal.Decimal {
	return s.store.Load(ctx).Total()
}

// Subscribe registers fn for cart change notifications.
func (s *CartService) Subscribe(fn CartListener) (unsubscribe func()) {
	return s.store.Subscribe(fn)
}
