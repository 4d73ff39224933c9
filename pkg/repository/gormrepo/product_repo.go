package gormrepo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/drelaann/simple-ecommerce-api/pkg/product"
	"github.com/drelaann/simple-ecommerce-api/pkg/repository"
	"github.com/drelaann/simple-ecommerce-api/pkg/storage/sqlite"
)

// ProductRepository implements product.Repository.
type ProductRepository struct {
	*Base[product.Product]
}

var _ product.Repository = (*ProductRepository)(nil)

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{Base: NewBase[product.Product](db)}
}

func (r *ProductRepository) GetActive(ctx context.Context, page repository.Page) ([]product.Product, error) {
	return r.Find(r.DB(ctx).Where("is_active = ?", true), page)
}

func (r *ProductRepository) SearchByName(ctx context.Context, name string, page repository.Page) ([]product.Product, error) {
	pattern := "%" + escapeLike(strings.ToLower(name)) + "%"
	db := r.DB(ctx)
	lower := "LOWER"
	if db.Dialector.Name() == "sqlite" {
		lower = sqlite.LowerFunc
	}
	return r.Find(db.Where(lower+`(name) LIKE ? ESCAPE '\'`, pattern), page)
}

func (r *ProductRepository) UpdateStock(ctx context.Context, id int64, quantity int) (*product.Product, error) {
	p, err := r.Get(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return r.Update(ctx, p, repository.Fields{"stock": quantity})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
