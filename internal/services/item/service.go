package item

import (
	"context"

	itemRepo "go-shop-microservices/internal/adapters/repository/item"
	"go-shop-microservices/internal/domain"
	"go-shop-microservices/pkg/tracing"
)

type Service interface {
	Create(ctx context.Context, item *domain.Item) error
	Get(ctx context.Context, id string) (*domain.Item, error)
	Update(ctx context.Context, id string, update *domain.ItemUpdate) (*domain.Item, error)
	Delete(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
}

type service struct {
	repo   itemRepo.Repository
	tracer tracing.Tracer
}

func NewService(repo itemRepo.Repository, tracer tracing.Tracer) Service {
	return &service{repo: repo, tracer: tracer}
}

func (s *service) Create(ctx context.Context, item *domain.Item) error {
	ctx, span := s.tracer.Start(ctx, "internal.services.item.Create")
	defer span.End()

	return s.repo.Create(ctx, item)
}

func (s *service) Get(ctx context.Context, id string) (*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.item.Get")
	defer span.End()

	return s.repo.Get(ctx, id)
}

func (s *service) Update(
	ctx context.Context,
	id string,
	update *domain.ItemUpdate,
) (*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.item.Update")
	defer span.End()

	return s.repo.Update(ctx, id, update)
}

func (s *service) Delete(ctx context.Context, id string) (*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.item.Delete")
	defer span.End()

	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.item.List")
	defer span.End()

	return s.repo.List(ctx)
}
