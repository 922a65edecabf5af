package item

import (
	"context"
	"errors"

	"go-shop-microservices/internal/domain"
)

var ErrItemNotFound = errors.New("item not found")

// Repository is the item store. Update applies only the non-nil fields of the
// update and returns the post-update item; Delete returns the removed item.
type Repository interface {
	List(ctx context.Context) ([]*domain.Item, error)
	Get(ctx context.Context, id string) (*domain.Item, error)
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, id string, update *domain.ItemUpdate) (*domain.Item, error)
	Delete(ctx context.Context, id string) (*domain.Item, error)
}
