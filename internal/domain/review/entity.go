package review

import (
	"product-catalog/internal/domain/rating"
)

// Review is a single customer verdict on a product. It is never modified after creation.
type Review struct {
	rating  rating.Rating
	comment Comment
}

func NewReview(r rating.Rating, commentText string) Review {
	return Review{
		rating:  r,
		comment: NewComment(commentText),
	}
}

func (r Review) Rating() rating.Rating { return r.rating }
func (r Review) Comment() Comment      { return r.comment }

// Ratings extracts the rating of every review, preserving order.
func Ratings(reviews []Review) []rating.Rating {
	out := make([]rating.Rating, len(reviews))
	for i, r := range reviews {
		out[i] = r.rating
	}
	return out
}
