package components

import (
	"log/slog"

	"product-catalog/internal/infra/filestore"
	"product-catalog/internal/infra/i18n"
	"product-catalog/internal/infra/snapshot"
	"product-catalog/internal/pkg/config"
	"product-catalog/internal/usecase/catalog"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	filestoreModule,
	snapshotModule,
	localeModule,
)

var filestoreModule = fx.Module("persistence/filestore",
	fx.Provide(
		fx.Annotate(
			filestore.NewStore,
			fx.As(new(catalog.Store)),
			fx.As(new(catalog.ReportWriter)),
		),
	),
)

var snapshotModule = fx.Module("persistence/snapshot",
	fx.Provide(
		fx.Annotate(
			snapshot.New,
			fx.As(new(catalog.Snapshotter)),
		),
	),
)

var localeModule = fx.Module("persistence/i18n",
	fx.Provide(
		NewLocaleRegistry,
	),
)

func NewLocaleRegistry(cfg config.Config, logger *slog.Logger) (*i18n.Registry, error) {
	return i18n.NewRegistry(cfg.Locale.Default, logger)
}
