package product

import (
	"cmp"

	"github.com/shopspring/decimal"
)

// Filter selects products for listings.
type Filter func(Product) bool

// Sorter orders products for listings, returning a negative number when a sorts first.
type Sorter func(a, b Product) int

func All(Product) bool { return true }

func PriceBelow(limit decimal.Decimal) Filter {
	return func(p Product) bool {
		return p.price.LessThan(limit)
	}
}

func OfKind(kind Kind) Filter {
	return func(p Product) bool {
		return p.kind == kind
	}
}

func ByID(a, b Product) int {
	return cmp.Compare(a.id, b.id)
}

func ByRatingDesc(a, b Product) int {
	return cmp.Compare(b.rating, a.rating)
}

func ByPriceDesc(a, b Product) int {
	return b.price.Cmp(a.price)
}

// Then breaks ties of s with next.
func (s Sorter) Then(next Sorter) Sorter {
	return func(a, b Product) int {
		if c := s(a, b); c != 0 {
			return c
		}
		return next(a, b)
	}
}

func (s Sorter) Reverse() Sorter {
	return func(a, b Product) int {
		return s(b, a)
	}
}
