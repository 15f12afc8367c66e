package product

import "github.com/shopspring/decimal"

// Kind discriminates the two product variants.
type Kind string

const (
	KindPerishable    Kind = "perishable"
	KindNonPerishable Kind = "non_perishable"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindPerishable, KindNonPerishable:
		return true
	default:
		return false
	}
}

// DiscountRate is the standard 10% discount.
var DiscountRate = decimal.New(1, -1)

const discountScale = 2
