package order

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"go-shop-microservices/internal/domain"
)

type memoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	ids    []string
}

// NewMemoryRepository creates a map-backed order repository. It assigns UUID
// identifiers on create and keeps insertion order for List.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (r *memoryRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	stored := *order
	r.orders[order.ID] = &stored
	r.ids = append(r.ids, order.ID)

	return nil
}

func (r *memoryRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}

	found := *order

	return &found, nil
}

func (r *memoryRepository) Update(
	ctx context.Context,
	id string,
	update *domain.OrderUpdate,
) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}

	if update.ProductName != nil {
		order.ProductName = *update.ProductName
	}
	if update.Quantity != nil {
		order.Quantity = *update.Quantity
	}
	if update.TotalPrice != nil {
		order.TotalPrice = *update.TotalPrice
	}

	updated := *order

	return &updated, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}

	delete(r.orders, id)
	for i, storedID := range r.ids {
		if storedID == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}

	deleted := *order

	return &deleted, nil
}

func (r *memoryRepository) List(ctx context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*domain.Order, 0, len(r.orders))
	for _, id := range r.ids {
		found := *r.orders[id]
		orders = append(orders, &found)
	}

	return orders, nil
}
