package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"product-catalog/cmd/bootstrap"
	"product-catalog/internal/domain/product"
	"product-catalog/internal/pkg/errs"
	"product-catalog/internal/usecase/catalog"
	"product-catalog/internal/usecase/shop"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func runDemo(ctx context.Context, repo *catalog.Repository, s *shop.Shop, logger *slog.Logger) error {
	if err := shop.Seed(ctx, repo); err != nil {
		return errs.Wrap(err, "seed catalog")
	}

	byRating := product.Sorter(product.ByRatingDesc).Then(product.ByID)
	if err := repo.PrintProducts(ctx, product.All, byRating); err != nil {
		return err
	}

	discounts := repo.GetDiscounts(ctx)
	stars := make([]string, 0, len(discounts))
	for k := range discounts {
		stars = append(stars, k)
	}
	sort.Strings(stars)
	for _, k := range stars {
		fmt.Printf("%s\t%s\n", k, discounts[k])
	}

	logs, err := s.Run(ctx)
	if err != nil {
		return err
	}
	for _, l := range logs {
		fmt.Println(l)
	}

	for _, id := range []int{101, 102, 103, 104} {
		if err := repo.PrintProductReport(ctx, id); err != nil {
			logger.WarnContext(ctx, "Report not written", slog.Int("product_id", id), slog.String("error", err.Error()))
		}
	}

	path, err := repo.Dump(ctx)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Catalog parked in snapshot", slog.String("file", path), slog.Int("products", repo.Len()))
	if err := repo.Restore(ctx); err != nil {
		return err
	}

	return repo.Save(ctx)
}

func logMetrics(reg *prometheus.Registry, logger *slog.Logger) {
	families, err := reg.Gather()
	if err != nil {
		logger.Warn("Failed to gather metrics", slog.String("error", err.Error()))
		return
	}
	for _, fam := range families {
		total := 0.0
		for _, m := range fam.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		logger.Info("Metric", slog.String("name", fam.GetName()), slog.Float64("value", total))
	}
}

func startDemo(lc fx.Lifecycle, sd fx.Shutdowner, repo *catalog.Repository, s *shop.Shop, reg *prometheus.Registry, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("🚀 Starting catalog demo", slog.Int("products", repo.Len()), slog.String("locale", repo.Locale()))
			go func() {
				defer close(done)
				code := 0
				if err := runDemo(ctx, repo, s, logger); err != nil {
					logger.Error("Catalog demo failed",
						slog.String("error", err.Error()),
						slog.Any("stack", errs.ExtractStackLines(err, 8)),
					)
					code = 1
				}
				logMetrics(reg, logger)
				if err := sd.Shutdown(fx.ExitCode(code)); err != nil {
					logger.Error("Failed to request shutdown", slog.String("error", err.Error()))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			logger.Info("🛑 Stopping catalog demo")
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.Module,
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Invoke(
			startDemo,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	sig := <-app.Wait()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("Failed to stop application", "error", err)
	}

	slog.Info("Application stopped", "exit_code", sig.ExitCode)
	os.Exit(sig.ExitCode)
}
