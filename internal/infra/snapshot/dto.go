package snapshot

import (
	"time"

	"product-catalog/internal/domain/product"
	"product-catalog/internal/domain/rating"
	"product-catalog/internal/domain/review"
	"product-catalog/internal/usecase/catalog"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

const formatVersion = 1

// Gob cannot see unexported domain fields, so the snapshot carries flat mirrors.
type snapshotDTO struct {
	Version int
	TakenAt time.Time
	Entries []entryDTO
}

type entryDTO struct {
	Product productDTO
	Reviews []reviewDTO
}

type productDTO struct {
	Kind       product.Kind
	ID         int
	Name       string
	Price      decimal.Decimal
	Rating     rating.Rating
	BestBefore time.Time
}

type reviewDTO struct {
	Rating  rating.Rating
	Comment string
}

func toDTO(entries []catalog.Entry, takenAt time.Time) (snapshotDTO, error) {
	out := snapshotDTO{
		Version: formatVersion,
		TakenAt: takenAt,
		Entries: make([]entryDTO, 0, len(entries)),
	}
	for _, e := range entries {
		var p productDTO
		// accessor methods map onto fields of the same name
		if err := copier.Copy(&p, e.Product); err != nil {
			return snapshotDTO{}, err
		}
		if e.Product.IsPerishable() {
			p.BestBefore = e.Product.BestBefore(time.Time{})
		}

		reviews := make([]reviewDTO, len(e.Reviews))
		for i, r := range e.Reviews {
			reviews[i] = reviewDTO{Rating: r.Rating(), Comment: r.Comment().String()}
		}
		out.Entries = append(out.Entries, entryDTO{Product: p, Reviews: reviews})
	}
	return out, nil
}

func fromDTO(in snapshotDTO) []catalog.Entry {
	entries := make([]catalog.Entry, 0, len(in.Entries))
	for _, e := range in.Entries {
		p := product.New(e.Product.Kind, e.Product.ID, e.Product.Name, e.Product.Price, e.Product.Rating, e.Product.BestBefore)

		reviews := make([]review.Review, len(e.Reviews))
		for i, r := range e.Reviews {
			reviews[i] = review.NewReview(r.Rating, r.Comment)
		}
		entries = append(entries, catalog.Entry{Product: p, Reviews: reviews})
	}
	return entries
}
