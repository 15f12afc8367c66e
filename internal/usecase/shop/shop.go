// Package shop simulates customers using the catalog concurrently: each one checks the
// discounts in a random locale, reviews a random product and prints a report of it.
package shop

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"

	"product-catalog/internal/domain/product"
	"product-catalog/internal/domain/rating"
	"product-catalog/internal/pkg/config"
	"product-catalog/internal/pkg/pool"
	"product-catalog/internal/usecase/catalog"

	"github.com/google/uuid"
)

const (
	firstProductID  = 101
	reviewedRange   = 3
	customerRating  = rating.FourStar
	customerComment = "Yet another review"
)

// Catalog is the part of the repository customers use.
type Catalog interface {
	GetDiscounts(ctx context.Context, opts ...catalog.Option) map[string]string
	ReviewProduct(ctx context.Context, id int, rt rating.Rating, comment string) (product.Product, error)
	PrintProductReport(ctx context.Context, id int, opts ...catalog.Option) error
	SupportedLocales() []string
}

type Shop struct {
	catalog Catalog
	cfg     config.ShopConfig
	logger  *slog.Logger
	pick    func(n int) int
}

type Option func(*Shop)

// WithPicker replaces the random source. pick must return a value in [0, n) and be safe
// for concurrent use.
func WithPicker(pick func(n int) int) Option {
	return func(s *Shop) {
		s.pick = pick
	}
}

func New(c Catalog, cfg config.ShopConfig, logger *slog.Logger, opts ...Option) *Shop {
	s := &Shop{
		catalog: c,
		cfg:     cfg,
		logger:  logger,
		pick:    rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the configured number of customers on the worker pool and returns their
// logs in customer order once all of them have finished.
func (s *Shop) Run(ctx context.Context) ([]string, error) {
	runID := uuid.New()
	s.logger.InfoContext(ctx, "Shop opened",
		slog.String("run_id", runID.String()),
		slog.Int("customers", s.cfg.Customers),
		slog.Int("workers", s.cfg.Workers))

	tasks := make([]pool.Task[string], s.cfg.Customers)
	for i := range tasks {
		tasks[i] = s.customer(runID, fmt.Sprintf("Client%d", i+1))
	}

	logs, err := pool.InvokeAll(ctx, s.cfg.Workers, tasks)
	if err != nil {
		s.logger.ErrorContext(ctx, "Shop run aborted",
			slog.String("run_id", runID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Shop closed", slog.String("run_id", runID.String()))
	return logs, nil
}

func (s *Shop) customer(runID uuid.UUID, clientID string) pool.Task[string] {
	return func(ctx context.Context) (string, error) {
		locales := s.catalog.SupportedLocales()
		locale := locales[s.pick(len(locales))]
		productID := firstProductID + s.pick(reviewedRange)

		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n-\tstart of log\t-\n", clientID, runID)

		discounts := s.catalog.GetDiscounts(ctx, catalog.InLocale(locale))
		stars := make([]string, 0, len(discounts))
		for k := range discounts {
			stars = append(stars, k)
		}
		slices.Sort(stars)
		for _, k := range stars {
			fmt.Fprintf(&b, "%s\t%s\n", k, discounts[k])
		}

		if _, err := s.catalog.ReviewProduct(ctx, productID, customerRating, customerComment); err != nil {
			fmt.Fprintf(&b, " Product %d not reviewed\n", productID)
		} else {
			fmt.Fprintf(&b, " Product %d reviewed\n", productID)
		}

		if err := s.catalog.PrintProductReport(ctx, productID, catalog.InLocale(locale), catalog.ForClient(clientID)); err != nil {
			s.logger.WarnContext(ctx, "Customer report failed",
				slog.String("client", clientID),
				slog.Int("product_id", productID),
				slog.String("error", err.Error()))
			fmt.Fprintf(&b, "%s failed to generate report for %d product\n", clientID, productID)
		} else {
			fmt.Fprintf(&b, "%s generated report for %d product\n", clientID, productID)
		}
		b.WriteString("-\tend of log\t-\n")

		if err := ctx.Err(); err != nil {
			return "", err
		}
		return b.String(), nil
	}
}
