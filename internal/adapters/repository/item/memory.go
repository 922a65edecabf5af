package item

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"go-shop-microservices/internal/domain"
)

type memoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Item
	ids   []string
}

// NewMemoryRepository creates a map-backed item repository. It assigns UUID
// identifiers on create and keeps insertion order for List.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		items: make(map[string]*domain.Item),
	}
}

func (r *memoryRepository) Create(ctx context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	stored := *item
	r.items[item.ID] = &stored
	r.ids = append(r.ids, item.ID)

	return nil
}

func (r *memoryRepository) Get(ctx context.Context, id string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, ErrItemNotFound
	}

	found := *item

	return &found, nil
}

func (r *memoryRepository) Update(
	ctx context.Context,
	id string,
	update *domain.ItemUpdate,
) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return nil, ErrItemNotFound
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Price != nil {
		item.Price = *update.Price
	}

	updated := *item

	return &updated, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return nil, ErrItemNotFound
	}

	delete(r.items, id)
	for i, storedID := range r.ids {
		if storedID == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}

	deleted := *item

	return &deleted, nil
}

func (r *memoryRepository) List(ctx context.Context) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*domain.Item, 0, len(r.items))
	for _, id := range r.ids {
		found := *r.items[id]
		items = append(items, &found)
	}

	return items, nil
}
