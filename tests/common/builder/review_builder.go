//go:build unit || e2e

package builder

import (
	"product-catalog/internal/domain/rating"
	domreview "product-catalog/internal/domain/review"
)

type ReviewBuilder struct {
	Rating  rating.Rating
	Comment string
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		Rating:  rating.FiveStar,
		Comment: "Excellent!",
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ReviewBuilder) BuildDomain() domreview.Review {
	return domreview.NewReview(r.Rating, r.Comment)
}

// Fluent builder methods
func (r *ReviewBuilder) WithRating(value rating.Rating) *ReviewBuilder {
	r.Rating = value
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}

func (r *ReviewBuilder) AsPoorRating() *ReviewBuilder {
	r.Rating = rating.OneStar
	r.Comment = "Poor"
	return r
}

func (r *ReviewBuilder) AsExcellentRating() *ReviewBuilder {
	r.Rating = rating.FiveStar
	r.Comment = "Excellent!"
	return r
}
