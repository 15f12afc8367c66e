package components

import (
	"context"
	"log/slog"
	"os"

	"product-catalog/internal/infra/i18n"
	"product-catalog/internal/infra/metrics"
	"product-catalog/internal/pkg/clock"
	"product-catalog/internal/pkg/config"
	"product-catalog/internal/usecase/catalog"
	"product-catalog/internal/usecase/shop"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCatalogModule,
	usecaseShopModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCatalogModule = fx.Module("usecase/catalog",
	fx.Provide(
		NewCatalog,
	),
)

var usecaseShopModule = fx.Module("usecase/shop",
	fx.Provide(
		fx.Annotate(
			func(repo *catalog.Repository) *catalog.Repository { return repo },
			fx.As(new(shop.Catalog)),
		),
		NewShop,
	),
)

type CatalogParams struct {
	fx.In

	Store     catalog.Store
	Reports   catalog.ReportWriter
	Snapshots catalog.Snapshotter
	Locales   *i18n.Registry
	Clock     clock.Clock
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

func NewCatalog(p CatalogParams) *catalog.Repository {
	return catalog.NewRepository(context.Background(), catalog.Deps{
		Store:     p.Store,
		Reports:   p.Reports,
		Snapshots: p.Snapshots,
		Locales:   p.Locales,
		Clock:     p.Clock,
		Logger:    p.Logger,
		Metrics:   p.Metrics,
		Output:    os.Stdout,
	})
}

func NewShop(c shop.Catalog, cfg config.ShopConfig, logger *slog.Logger) *shop.Shop {
	return shop.New(c, cfg, logger)
}
