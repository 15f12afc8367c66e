//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"product-catalog/cmd/bootstrap"
	"product-catalog/cmd/bootstrap/components"
	"product-catalog/internal/infra/metrics"
	"product-catalog/internal/pkg/config"
	"product-catalog/internal/usecase/catalog"
	"product-catalog/internal/usecase/shop"
	"product-catalog/tests/common/datatest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// ------------------------------------------------------------
// Application assembled from the production modules
// ------------------------------------------------------------
type App struct {
	Catalog  *catalog.Repository
	Shop     *shop.Shop
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

func buildE2EApp(cfg config.Config) (App, *fx.App) {
	var a App

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
		bootstrap.ConfigPartsOption,
	)

	app := fx.New(
		testConfigModule,
		bootstrap.LoggerModule,
		bootstrap.MetricsModule,
		components.PersistenceModule,
		components.UseCaseModule,

		fx.Populate(&a.Catalog, &a.Shop, &a.Registry, &a.Metrics),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}
	return a, app
}

// ------------------------------------------------------------
// Shared setup for e2e suites
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Config config.Config
	fxApp  *fx.App
}

// SetupSuite only prepares the folders. Suites write their fixtures and then call Start.
func (s *SharedSuite) SetupSuite() {
	s.Config = config.NewTestConfig(s.T().TempDir())
}

func (s *SharedSuite) SetupTest() {
	require.NoError(s.T(), datatest.ResetFolders(s.Config.Store), "Failed to reset data folders")
}

// Start boots the application against the current fixtures.
func (s *SharedSuite) Start() App {
	t := s.T()
	a, app := buildE2EApp(s.Config)
	require.NotNil(t, a.Catalog, "catalog setup failed")
	s.fxApp = app
	return a
}

func (s *SharedSuite) TearDownTest() {
	if s.fxApp == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.fxApp.Stop(ctx); err != nil {
		slog.Warn("Failed to stop fx app", "error", err.Error())
	}
	s.fxApp = nil
}
