package product

import (
	"time"

	"gorm.io/gorm"

	"github.com/drelaann/simple-ecommerce-api/pkg/optional"
	"github.com/drelaann/simple-ecommerce-api/pkg/repository"
)

// Product is a catalogue item. Stock is never negative.
type Product struct {
	ID          int64   `gorm:"primaryKey"`
	Name        string  `gorm:"size:255;not null;index"`
	Description *string `gorm:"type:text"`
	Price       float64 `gorm:"not null"`
	Stock       int     `gorm:"not null"`
	// no gorm default: a default would swallow an explicit false on insert
	IsActive  bool       `gorm:"column:is_active;not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

func (Product) TableName() string { return "products" }

func (p Product) GetID() int64 { return p.ID }

// BeforeUpdate stamps updated_at on every partial update.
func (p *Product) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.SetColumn("updated_at", time.Now().UTC())
	return nil
}

// CreateCommand carries the fields of a new product.
type CreateCommand struct {
	Name        string
	Description *string
	Price       float64
	Stock       int
	IsActive    bool
}

func (c CreateCommand) entity() *Product {
	return &Product{
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Stock:       c.Stock,
		IsActive:    c.IsActive,
	}
}

// UpdateCommand carries a partial update; unset fields are left alone.
// A null description clears it.
type UpdateCommand struct {
	Name        optional.Value[string]
	Description optional.Value[string]
	Price       optional.Value[float64]
	Stock       optional.Value[int]
	IsActive    optional.Value[bool]
}

// Fields lists the columns this command writes.
func (c UpdateCommand) Fields() repository.Fields {
	f := repository.Fields{}
	if v, ok := c.Name.Get(); ok {
		f["name"] = v
	}
	if c.Description.IsNull() {
		f["description"] = nil
	} else if v, ok := c.Description.Get(); ok {
		f["description"] = v
	}
	if v, ok := c.Price.Get(); ok {
		f["price"] = v
	}
	if v, ok := c.Stock.Get(); ok {
		f["stock"] = v
	}
	if v, ok := c.IsActive.Get(); ok {
		f["is_active"] = v
	}
	return f
}
