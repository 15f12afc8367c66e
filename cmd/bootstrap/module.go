package bootstrap

import (
	"product-catalog/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MetricsModule,
	components.PersistenceModule,
	components.UseCaseModule,
)
