//go:build unit

package review_test

import (
	"testing"

	"product-catalog/internal/domain/rating"
	"product-catalog/internal/domain/review"
	"product-catalog/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReview(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual := builder.NewReviewBuilder().BuildDomain()

		assert.Equal(t, rating.FiveStar, actual.Rating())
		assert.Equal(t, "Excellent!", actual.Comment().String())
	})

	t.Run("comment trimming", func(t *testing.T) {
		actual := review.NewReview(rating.FourStar, "  Trimmed comment  ")

		assert.Equal(t, "Trimmed comment", actual.Comment().String())
	})

	t.Run("empty comment is kept", func(t *testing.T) {
		actual := builder.NewReviewBuilder().WithComment("").BuildDomain()

		assert.Empty(t, actual.Comment().String())
	})

	t.Run("ratings keep insertion order", func(t *testing.T) {
		reviews := []review.Review{
			builder.NewReviewBuilder().WithRating(rating.FourStar).BuildDomain(),
			builder.NewReviewBuilder().WithRating(rating.OneStar).BuildDomain(),
			builder.NewReviewBuilder().WithRating(rating.ThreeStar).BuildDomain(),
		}

		actual := review.Ratings(reviews)
		require.Len(t, actual, 3)
		assert.Equal(t, []rating.Rating{rating.FourStar, rating.OneStar, rating.ThreeStar}, actual)
	})

	t.Run("value equality", func(t *testing.T) {
		a := review.NewReview(rating.TwoStar, "same")
		b := review.NewReview(rating.TwoStar, "same")
		assert.Equal(t, a, b)
	})
}
