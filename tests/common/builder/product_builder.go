//go:build unit || e2e

package builder

import (
	"time"

	"product-catalog/internal/domain/product"
	"product-catalog/internal/domain/rating"

	"github.com/shopspring/decimal"
)

type ProductBuilder struct {
	ID         int
	Name       string
	Price      decimal.Decimal
	Rating     rating.Rating
	BestBefore time.Time
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:         101,
		Name:       "Tea",
		Price:      decimal.RequireFromString("1.99"),
		Rating:     rating.NotRated,
		BestBefore: time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC),
	}
}

func (p *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(p)
	return p
}

// Build methods
func (p *ProductBuilder) BuildPerishable() product.Product {
	return product.NewPerishable(p.ID, p.Name, p.Price, p.Rating, p.BestBefore)
}

func (p *ProductBuilder) BuildNonPerishable() product.Product {
	return product.NewNonPerishable(p.ID, p.Name, p.Price, p.Rating)
}

// Fluent builder methods
func (p *ProductBuilder) WithID(id int) *ProductBuilder {
	p.ID = id
	return p
}

func (p *ProductBuilder) WithName(name string) *ProductBuilder {
	p.Name = name
	return p
}

func (p *ProductBuilder) WithPrice(price string) *ProductBuilder {
	p.Price = decimal.RequireFromString(price)
	return p
}

func (p *ProductBuilder) WithRating(value rating.Rating) *ProductBuilder {
	p.Rating = value
	return p
}

func (p *ProductBuilder) WithBestBefore(date time.Time) *ProductBuilder {
	p.BestBefore = date
	return p
}
