package product

import (
	"time"

	"product-catalog/internal/domain/rating"
	"product-catalog/internal/pkg/clock"

	"github.com/shopspring/decimal"
)

// Product is an immutable catalog entry. Identity is the id alone: two values with the
// same id describe the same entity even when their attributes differ.
type Product struct {
	kind       Kind
	id         int
	name       string
	price      decimal.Decimal
	rating     rating.Rating
	bestBefore time.Time
}

// NewPerishable builds a product whose discount depends on its best-before date.
func NewPerishable(id int, name string, price decimal.Decimal, r rating.Rating, bestBefore time.Time) Product {
	y, m, d := bestBefore.Date()
	return Product{
		kind:       KindPerishable,
		id:         id,
		name:       name,
		price:      price,
		rating:     r,
		bestBefore: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
}

// NewNonPerishable builds a product that always receives the standard discount.
func NewNonPerishable(id int, name string, price decimal.Decimal, r rating.Rating) Product {
	return Product{
		kind:   KindNonPerishable,
		id:     id,
		name:   name,
		price:  price,
		rating: r,
	}
}

// New dispatches on kind. bestBefore is ignored for non-perishable products.
func New(kind Kind, id int, name string, price decimal.Decimal, r rating.Rating, bestBefore time.Time) Product {
	if kind == KindPerishable {
		return NewPerishable(id, name, price, r, bestBefore)
	}
	return NewNonPerishable(id, name, price, r)
}

func (p Product) Kind() Kind                  { return p.kind }
func (p Product) ID() int                     { return p.id }
func (p Product) Name() string                { return p.name }
func (p Product) Price() decimal.Decimal      { return p.price }
func (p Product) Rating() rating.Rating       { return p.rating }
func (p Product) IsPerishable() bool          { return p.kind == KindPerishable }
func (p Product) Key() int                    { return p.id }
func (p Product) SameIdentity(o Product) bool { return p.id == o.id }

// BestBefore returns the expiry date of a perishable product. Non-perishable products
// report today, matching their lack of expiry.
func (p Product) BestBefore(today time.Time) time.Time {
	if p.kind == KindPerishable {
		return p.bestBefore
	}
	return today
}

// Discount is price * DiscountRate rounded half-up to two places. Perishable products get
// it only on their best-before day.
func (p Product) Discount(today time.Time) decimal.Decimal {
	if p.kind == KindPerishable && !clock.SameDay(p.bestBefore, today) {
		return decimal.Zero
	}
	return StandardDiscount(p.price)
}

// ApplyRating returns a copy of p of the same kind with the rating replaced.
func (p Product) ApplyRating(r rating.Rating) Product {
	next := p
	next.rating = r
	return next
}

func StandardDiscount(price decimal.Decimal) decimal.Decimal {
	return price.Mul(DiscountRate).Round(discountScale)
}
