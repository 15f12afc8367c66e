//go:build e2e

package catalog_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"product-catalog/internal/domain/rating"
	"product-catalog/internal/pkg/config"
	"product-catalog/internal/usecase/shop"
	"product-catalog/tests/common/builder"
	"product-catalog/tests/common/datatest"
	"product-catalog/tests/e2e"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type CatalogSuite struct {
	e2e.SharedSuite
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) TestLoadFromDataFolder() {
	t := s.T()
	store := s.Config.Store

	datatest.CreateTestProduct(t, store, builder.NewProductBuilder().WithID(101).BuildNonPerishable())
	datatest.CreateTestReviews(t, store, 101,
		builder.NewReviewBuilder().WithRating(rating.FourStar).WithComment("Nice, hot one").BuildDomain(),
		builder.NewReviewBuilder().WithRating(rating.ThreeStar).WithComment("Add lemon").BuildDomain(),
	)
	datatest.CreateRawFile(t, store.DataFolder, "product102.txt", "D, 102, Coffee, ???, 0\n")

	app := s.Start()
	ctx := context.Background()

	s.Equal(1, app.Catalog.Len())
	reviews, err := app.Catalog.Reviews(ctx, 101)
	s.Require().NoError(err)
	s.Len(reviews, 2)
	s.Equal("Nice, hot one", reviews[0].Comment().String())

	s.InDelta(1, testutil.ToFloat64(app.Metrics.ProductsLoaded), 0)
}

func (s *CatalogSuite) TestDemoRoundTrip() {
	app := s.Start()
	ctx := context.Background()

	s.Require().NoError(shop.Seed(ctx, app.Catalog))
	s.Equal(4, app.Catalog.Len())

	logs, err := app.Shop.Run(ctx)
	s.Require().NoError(err)
	s.Len(logs, s.Config.Shop.Customers)

	s.Require().NoError(app.Catalog.PrintProductReport(ctx, 104))
	s.FileExists(filepath.Join(s.Config.Store.ReportsFolder, "product104report.txt"))

	path, err := app.Catalog.Dump(ctx)
	s.Require().NoError(err)
	s.Equal(0, app.Catalog.Len())
	s.Require().NoError(app.Catalog.Restore(ctx))
	s.Equal(4, app.Catalog.Len())
	s.NoFileExists(path)

	s.Require().NoError(app.Catalog.Save(ctx))
	for _, id := range []int{101, 102, 103, 104} {
		s.FileExists(filepath.Join(s.Config.Store.DataFolder, fmt.Sprintf(s.Config.Store.ProductDataFile, id)))
	}
	assertReviewsPersisted(s, s.Config.Store, 104, 2)
}

func assertReviewsPersisted(s *CatalogSuite, store config.StoreConfig, id, atLeast int) {
	data, err := os.ReadFile(filepath.Join(store.DataFolder, fmt.Sprintf(store.ReviewsDataFile, id)))
	s.Require().NoError(err)
	s.GreaterOrEqual(strings.Count(string(data), "\n"), atLeast)
}
