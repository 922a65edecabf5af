package order

import (
	"context"
	"errors"

	"go-shop-microservices/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// Repository is the order store. Update applies only the non-nil fields of the
// update and returns the post-update order; Delete returns the removed order.
type Repository interface {
	List(ctx context.Context) ([]*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, id string, update *domain.OrderUpdate) (*domain.Order, error)
	Delete(ctx context.Context, id string) (*domain.Order, error)
}
