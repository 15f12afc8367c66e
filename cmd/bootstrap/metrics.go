package bootstrap

import (
	"product-catalog/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		prometheus.NewRegistry,
		fx.Annotate(
			metrics.New,
			fx.From(new(*prometheus.Registry)),
		),
	),
)
