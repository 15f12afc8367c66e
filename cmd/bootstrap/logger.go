package bootstrap

import (
	"log/slog"
	"os"

	"product-catalog/internal/pkg/config"
	"product-catalog/internal/pkg/logger"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger(cfg config.Config) *slog.Logger {
	return logger.New(cfg.Log, os.Stdout)
}
