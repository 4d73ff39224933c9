package product

import (
	"context"

	"github.com/drelaann/simple-ecommerce-api/pkg/repository"
)

// UseCase exposes catalogue operations. Lookups by id return nil (or false for
// Delete) when the product does not exist.
type UseCase interface {
	Create(ctx context.Context, cmd CreateCommand) (*Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, page repository.Page) ([]Product, error)
	ListActive(ctx context.Context, page repository.Page) ([]Product, error)
	Search(ctx context.Context, name string, page repository.Page) ([]Product, error)
	Update(ctx context.Context, id int64, cmd UpdateCommand) (*Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
	UpdateStock(ctx context.Context, id int64, quantity int) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, cmd CreateCommand) (*Product, error) {
	return s.repo.Create(ctx, cmd.entity())
}

func (s *service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context, page repository.Page) ([]Product, error) {
	return s.repo.GetAll(ctx, page)
}

func (s *service) ListActive(ctx context.Context, page repository.Page) ([]Product, error) {
	return s.repo.GetActive(ctx, page)
}

func (s *service) Search(ctx context.Context, name string, page repository.Page) ([]Product, error) {
	return s.repo.SearchByName(ctx, name, page)
}

func (s *service) Update(ctx context.Context, id int64, cmd UpdateCommand) (*Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return s.repo.Update(ctx, p, cmd.Fields())
}

func (s *service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *service) UpdateStock(ctx context.Context, id int64, quantity int) (*Product, error) {
	return s.repo.UpdateStock(ctx, id, quantity)
}
