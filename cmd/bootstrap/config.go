package bootstrap

import (
	"product-catalog/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	ConfigPartsOption,
)

// ConfigPartsOption exposes the sections that constructors take directly.
var ConfigPartsOption = fx.Provide(
	func(cfg config.Config) config.StoreConfig { return cfg.Store },
	func(cfg config.Config) config.ShopConfig { return cfg.Shop },
)
