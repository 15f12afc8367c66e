package catalog

import (
	"context"
	"log/slog"
	"time"

	"product-catalog/internal/domain/product"
	"product-catalog/internal/domain/rating"
	"product-catalog/internal/domain/review"

	"github.com/shopspring/decimal"
)

// CreatePerishable adds a perishable product unless the id is already taken. Either way
// the product stored under id is returned.
func (r *Repository) CreatePerishable(ctx context.Context, id int, name string, price decimal.Decimal, rt rating.Rating, bestBefore time.Time) product.Product {
	return r.create(ctx, product.NewPerishable(id, name, price, rt, bestBefore))
}

// CreateNonPerishable adds a non-perishable product unless the id is already taken.
func (r *Repository) CreateNonPerishable(ctx context.Context, id int, name string, price decimal.Decimal, rt rating.Rating) product.Product {
	return r.create(ctx, product.NewNonPerishable(id, name, price, rt))
}

func (r *Repository) create(ctx context.Context, p product.Product) product.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[p.ID()]; ok {
		r.logger.DebugContext(ctx, "Product id already present, keeping stored product",
			slog.Int("product_id", p.ID()))
		return existing.product
	}

	r.entries[p.ID()] = &entry{product: p, reviews: []review.Review{}}
	return p
}

// ReviewProduct appends a review and re-rates the product as the rounded average of all
// its reviews.
func (r *Repository) ReviewProduct(ctx context.Context, id int, rt rating.Rating, comment string) (product.Product, error) {
	var updated product.Product
	err := r.withEntry(id, func(e *entry) {
		e.reviews = append(e.reviews, review.NewReview(rt, comment))
		e.product = e.product.ApplyRating(rating.Average(review.Ratings(e.reviews)))
		updated = e.product
	})
	if err != nil {
		r.logger.WarnContext(ctx, "Review rejected",
			slog.Int("product_id", id),
			slog.String("error", err.Error()))
		return product.Product{}, err
	}

	r.metrics.ReviewsSubmitted.Inc()
	return updated, nil
}

// ChangeLocale switches the locale used when a call does not name one.
func (r *Repository) ChangeLocale(tag string) {
	f := r.locales.Lookup(tag)
	r.formatter.Store(f)
	r.logger.Debug("Locale changed",
		slog.String("requested", tag),
		slog.String("locale", f.Tag()))
}

// Save writes the current catalog back to the data directory.
func (r *Repository) Save(ctx context.Context) error {
	return r.store.Save(ctx, r.view())
}
