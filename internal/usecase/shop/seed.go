package shop

import (
	"context"

	"product-catalog/internal/domain/product"
	"product-catalog/internal/domain/rating"

	"github.com/shopspring/decimal"
)

// Seeder is the part of the repository used to stock the demo catalog.
type Seeder interface {
	CreateNonPerishable(ctx context.Context, id int, name string, price decimal.Decimal, rt rating.Rating) product.Product
	ReviewProduct(ctx context.Context, id int, rt rating.Rating, comment string) (product.Product, error)
}

type seedReview struct {
	id      int
	rating  rating.Rating
	comment string
}

var seedReviews = []seedReview{
	{101, rating.FourStar, "Was okay"},
	{101, rating.FourStar, "Not Bad"},
	{101, rating.ThreeStar, "Didn't like it"},
	{102, rating.FourStar, "Smells good"},
	{103, rating.FiveStar, "Great"},
	{104, rating.FourStar, "It's Good"},
}

// Seed stocks the four demo drinks, each reviewed twice over. Existing ids are left as
// they are, but their reviews are still added.
func Seed(ctx context.Context, c Seeder) error {
	c.CreateNonPerishable(ctx, 101, "Tea", decimal.RequireFromString("1.99"), rating.NotRated)
	c.CreateNonPerishable(ctx, 102, "Coffee", decimal.RequireFromString("2.99"), rating.NotRated)
	c.CreateNonPerishable(ctx, 103, "Whiskey", decimal.RequireFromString("9.99"), rating.NotRated)
	c.CreateNonPerishable(ctx, 104, "Coke", decimal.RequireFromString("1.99"), rating.NotRated)

	for range 2 {
		for _, r := range seedReviews {
			if _, err := c.ReviewProduct(ctx, r.id, r.rating, r.comment); err != nil {
				return err
			}
		}
	}
	return nil
}
