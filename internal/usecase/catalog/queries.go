package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"product-catalog/internal/domain/product"
	"product-catalog/internal/domain/review"
	"product-catalog/internal/infra/i18n"
	"product-catalog/internal/pkg/clock"
	"product-catalog/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

func (r *Repository) FindProduct(ctx context.Context, id int) (product.Product, error) {
	var p product.Product
	if err := r.withEntry(id, func(e *entry) { p = e.product }); err != nil {
		r.logger.DebugContext(ctx, "Product lookup failed", slog.Int("product_id", id))
		return product.Product{}, err
	}
	return p, nil
}

// Reviews returns a copy of the product's reviews in submission order.
func (r *Repository) Reviews(_ context.Context, id int) ([]review.Review, error) {
	var out []review.Review
	err := r.withEntry(id, func(e *entry) {
		out = append([]review.Review{}, e.reviews...)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PrintProductReport writes the product line followed by one line per review, or the
// no-reviews text, to the product's report file.
func (r *Repository) PrintProductReport(ctx context.Context, id int, opts ...Option) error {
	o := applyOptions(opts)

	var (
		p       product.Product
		reviews []review.Review
	)
	err := r.withEntry(id, func(e *entry) {
		p = e.product
		reviews = append([]review.Review{}, e.reviews...)
	})
	if err != nil {
		r.logger.WarnContext(ctx, "Report for unknown product",
			slog.Int("product_id", id))
		return err
	}

	f := r.formatterFor(o)
	lines := make([]string, 0, len(reviews)+1)
	lines = append(lines, f.FormatProduct(p, clock.Today(r.clock)))
	if len(reviews) == 0 {
		lines = append(lines, f.Text(i18n.KeyNoReviews))
	}
	for _, rv := range reviews {
		lines = append(lines, f.FormatReview(rv))
	}

	if err := r.reports.WriteReport(ctx, id, o.client, lines); err != nil {
		return errs.Wrapf(err, "print report for product %d", id)
	}
	return nil
}

// PrintProducts writes one formatted line per product matching filter, ordered by sorter.
func (r *Repository) PrintProducts(ctx context.Context, filter product.Filter, sorter product.Sorter, opts ...Option) error {
	f := r.formatterFor(applyOptions(opts))
	today := clock.Today(r.clock)

	if sorter == nil {
		sorter = product.ByID
	}
	products := r.products(filter)
	slices.SortStableFunc(products, sorter)

	r.outMu.Lock()
	defer r.outMu.Unlock()
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(r.out, f.FormatProduct(p, today)); err != nil {
			return errs.Wrap(err, "print products")
		}
	}
	return nil
}

// GetDiscounts sums today's discount of every product grouped by star rating. Amounts are
// formatted in the selected locale's currency.
func (r *Repository) GetDiscounts(_ context.Context, opts ...Option) map[string]string {
	f := r.formatterFor(applyOptions(opts))
	today := clock.Today(r.clock)

	totals := make(map[string]decimal.Decimal)
	for _, p := range r.products(product.All) {
		stars := p.Rating().Stars()
		totals[stars] = totals[stars].Add(p.Discount(today))
	}

	out := make(map[string]string, len(totals))
	for stars, total := range totals {
		out[stars] = f.Money(total)
	}
	return out
}

// Locale is the tag of the repository's current locale.
func (r *Repository) Locale() string {
	return r.formatter.Load().Tag()
}

func (r *Repository) SupportedLocales() []string {
	return r.locales.Supported()
}

func (r *Repository) products(filter product.Filter) []product.Product {
	if filter == nil {
		filter = product.All
	}
	view := r.view()
	out := make([]product.Product, 0, len(view))
	for _, e := range view {
		if filter(e.Product) {
			out = append(out, e.Product)
		}
	}
	return out
}

func (r *Repository) formatterFor(o options) *i18n.Formatter {
	if o.locale != "" {
		return r.locales.Lookup(o.locale)
	}
	return r.formatter.Load()
}
