package product

import (
	"context"

	"github.com/drelaann/simple-ecommerce-api/pkg/repository"
)

// Repository is the persistence port for products.
type Repository interface {
	repository.CRUD[Product]

	GetActive(ctx context.Context, page repository.Page) ([]Product, error)
	// SearchByName matches name case-insensitively against a substring.
	SearchByName(ctx context.Context, name string, page repository.Page) ([]Product, error)
	// UpdateStock sets the stock to an absolute quantity. Returns nil when absent.
	UpdateStock(ctx context.Context, id int64, quantity int) (*Product, error)
}
