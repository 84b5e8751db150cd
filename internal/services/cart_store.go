package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"omareats/internal/metrics"
	"omareats/internal/models"
	"omareats/internal/repositories"
)

// DefaultCartKey is the storage key the cart is persisted under.
const DefaultCartKey = "omar-restaurant-cart"

// CartListener receives the cart after every successful save.
type CartListener func(cart models.Cart)

type subscriber struct {
	id uint64
	fn CartListener
}

// CartStore persists a single cart under one key and notifies subscribers on change.
// Storage and notification are best-effort: failures are logged, never returned.
type CartStore struct {
	storage repositories.CartStorage
	key     string

	mu          sync.Mutex // guards subscribers and nextID
	subscribers []subscriber
	nextID      uint64
}

// NewCartStore creates a CartStore persisting through storage under key.
// An empty key selects DefaultCartKey.
func NewCartStore(storage repositories.CartStorage, key string) *CartStore {
	if key == "" {
		key = DefaultCartKey
	}
	return &CartStore{
		storage: storage,
		key:     key,
	}
}

// Key returns the storage key of the cart.
func (s *CartStore) Key() string {
	return s.key
}

// Load returns the persisted cart. A missing, unreadable or malformed value
// yields an empty cart.
func (s *CartStore) Load(ctx context.Context) models.Cart {
	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		log.Printf("Error reading cart %s: %v", s.key, err)
		metrics.CartStoreFailures.WithLabelValues("read").Inc()
		return models.Cart{}
	}
	if !found || raw == "" {
		return models.Cart{}
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		log.Printf("Error decoding cart %s: %v", s.key, err)
		metrics.CartStoreFailures.WithLabelValues("decode").Inc()
		return models.Cart{}
	}
	if cart == nil {
		return models.Cart{}
	}
	return cart
}

// Save persists cart and, once written, broadcasts it to every subscriber.
// Write failures are logged and the broadcast is skipped.
func (s *CartStore) Save(ctx context.Context, cart models.Cart) {
	if cart == nil {
		cart = models.Cart{}
	}

	raw, err := json.Marshal(cart)
	if err != nil {
		log.Printf("Error encoding cart %s: %v", s.key, err)
		metrics.CartStoreFailures.WithLabelValues("write").Inc()
		return
	}
	if err := s.storage.Set(ctx, s.key, string(raw)); err != nil {
		log.Printf("Error saving cart %s: %v", s.key, err)
		metrics.CartStoreFailures.WithLabelValues("write").Inc()
		return
	}

	s.broadcast(cart)
}

// Subscribe registers fn for future change notifications and returns a
// function that removes it. Past changes are not replayed.
func (s *CartStore) Subscribe(fn CartListener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *CartStore) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscribers {
		if sub.id == id {
			s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
			return
		}
	}
}

// broadcast delivers cart to a snapshot of the subscribers, in registration
// order. Each listener gets its own copy.
func (s *CartStore) broadcast(cart models.Cart) {
	s.mu.Lock()
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(cart.Clone())
	}
}
