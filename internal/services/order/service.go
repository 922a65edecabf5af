package order

import (
	"context"

	orderRepo "go-shop-microservices/internal/adapters/repository/order"
	"go-shop-microservices/internal/domain"
	"go-shop-microservices/pkg/tracing"
)

type Service interface {
	Create(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, id string, update *domain.OrderUpdate) (*domain.Order, error)
	Delete(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}

type service struct {
	repo   orderRepo.Repository
	tracer tracing.Tracer
}

func NewService(repo orderRepo.Repository, tracer tracing.Tracer) Service {
	return &service{repo: repo, tracer: tracer}
}

func (s *service) Create(ctx context.Context, order *domain.Order) error {
	ctx, span := s.tracer.Start(ctx, "internal.services.order.Create")
	defer span.End()

	return s.repo.Create(ctx, order)
}

func (s *service) Get(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.order.Get")
	defer span.End()

	return s.repo.Get(ctx, id)
}

func (s *service) Update(
	ctx context.Context,
	id string,
	update *domain.OrderUpdate,
) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.order.Update")
	defer span.End()

	return s.repo.Update(ctx, id, update)
}

func (s *service) Delete(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.order.Delete")
	defer span.End()

	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.order.List")
	defer span.End()

	return s.repo.List(ctx)
}
