//go:build unit

package catalog_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"product-catalog/internal/domain/product"
	"product-catalog/internal/domain/rating"
	"product-catalog/internal/domain/review"
	"product-catalog/internal/infra/filestore"
	"product-catalog/internal/infra/i18n"
	"product-catalog/internal/infra/metrics"
	"product-catalog/internal/infra/snapshot"
	"product-catalog/internal/pkg/clock"
	"product-catalog/internal/pkg/config"
	"product-catalog/internal/pkg/errs"
	"product-catalog/internal/pkg/logger"
	"product-catalog/internal/usecase/catalog"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var now = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

type RepositoryTestSuite struct {
	suite.Suite
	cfg     config.Config
	clock   *clock.MockClock
	locales *i18n.Registry
	metrics *metrics.Metrics
	out     *bytes.Buffer
	repo    *catalog.Repository
}

func (s *RepositoryTestSuite) SetupTest() {
	s.cfg = config.NewTestConfig(s.T().TempDir())
	s.Require().NoError(os.MkdirAll(s.cfg.Store.DataFolder, 0o755))
	s.clock = clock.NewMockClock(now)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.out = &bytes.Buffer{}

	locales, err := i18n.NewRegistry(s.cfg.Locale.Default, logger.Discard())
	s.Require().NoError(err)
	s.locales = locales

	s.repo = s.newRepository()
}

func (s *RepositoryTestSuite) newRepository() *catalog.Repository {
	store := filestore.NewStore(s.cfg.Store, logger.Discard(), s.metrics)
	return catalog.NewRepository(context.Background(), catalog.Deps{
		Store:     store,
		Reports:   store,
		Snapshots: snapshot.New(s.cfg.Store, s.clock, logger.Discard(), s.metrics),
		Locales:   s.locales,
		Clock:     s.clock,
		Logger:    logger.Discard(),
		Metrics:   s.metrics,
		Output:    s.out,
	})
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (s *RepositoryTestSuite) seed() {
	ctx := context.Background()
	s.repo.CreateNonPerishable(ctx, 101, "Tea", price("1.99"), rating.NotRated)
	s.repo.CreateNonPerishable(ctx, 102, "Coffee", price("2.99"), rating.NotRated)
	s.repo.CreatePerishable(ctx, 103, "Cake", price("3.99"), rating.FourStar, now)
	s.repo.CreatePerishable(ctx, 104, "Cookie", price("2.99"), rating.FourStar, now.AddDate(0, 0, 1))
}

func (s *RepositoryTestSuite) TestCreate() {
	ctx := context.Background()

	s.Run("new id is stored", func() {
		p := s.repo.CreateNonPerishable(ctx, 101, "Tea", price("1.99"), rating.NotRated)
		s.Equal(101, p.ID())
		s.Equal(1, s.repo.Len())

		found, err := s.repo.FindProduct(ctx, 101)
		s.Require().NoError(err)
		s.True(found.SameIdentity(p))
		s.Equal("Tea", found.Name())
	})

	s.Run("duplicate id keeps the stored product and reviews", func() {
		_, err := s.repo.ReviewProduct(ctx, 101, rating.FiveStar, "Lovely")
		s.Require().NoError(err)

		p := s.repo.CreatePerishable(ctx, 101, "Other", price("9.99"), rating.OneStar, now)
		s.Equal("Tea", p.Name())
		s.Equal(rating.FiveStar, p.Rating())
		s.False(p.IsPerishable())
		s.Equal(1, s.repo.Len())

		reviews, err := s.repo.Reviews(ctx, 101)
		s.Require().NoError(err)
		s.Len(reviews, 1)
	})
}

func (s *RepositoryTestSuite) TestReviewProduct() {
	ctx := context.Background()
	s.seed()

	s.Run("rating is the rounded average", func() {
		for _, rt := range []rating.Rating{rating.FourStar, rating.FourStar, rating.ThreeStar} {
			_, err := s.repo.ReviewProduct(ctx, 101, rt, "ok")
			s.Require().NoError(err)
		}

		p, err := s.repo.FindProduct(ctx, 101)
		s.Require().NoError(err)
		s.Equal(rating.FourStar, p.Rating())
		s.False(p.IsPerishable())
	})

	s.Run("perishable keeps its kind and date", func() {
		p, err := s.repo.ReviewProduct(ctx, 103, rating.TwoStar, "Dry")
		s.Require().NoError(err)
		s.Equal(rating.TwoStar, p.Rating())
		s.True(p.IsPerishable())
		s.True(p.BestBefore(time.Time{}).Equal(time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)))
	})

	s.Run("reviews keep submission order", func() {
		reviews, err := s.repo.Reviews(ctx, 101)
		s.Require().NoError(err)
		s.Equal([]rating.Rating{rating.FourStar, rating.FourStar, rating.ThreeStar}, review.Ratings(reviews))
	})

	s.Run("unknown id", func() {
		_, err := s.repo.ReviewProduct(ctx, 999, rating.OneStar, "Where?")
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrProductNotFound))

		_, err = s.repo.FindProduct(ctx, 999)
		s.True(errs.Is(err, errs.ErrProductNotFound))

		_, err = s.repo.Reviews(ctx, 999)
		s.True(errs.Is(err, errs.ErrProductNotFound))
	})

	s.InDelta(4, testutil.ToFloat64(s.metrics.ReviewsSubmitted), 0)
}

func (s *RepositoryTestSuite) TestReviewProduct_Concurrent() {
	ctx := context.Background()
	s.seed()

	const perProduct = 50
	ids := []int{101, 102}
	ratings := []rating.Rating{rating.OneStar, rating.FiveStar, rating.ThreeStar, rating.FourStar}

	var wg sync.WaitGroup
	for _, id := range ids {
		for i := 0; i < perProduct; i++ {
			wg.Add(1)
			go func(id, i int) {
				defer wg.Done()
				_, err := s.repo.ReviewProduct(ctx, id, ratings[i%len(ratings)], fmt.Sprintf("review %d", i))
				s.NoError(err)
			}(id, i)
		}
	}
	wg.Wait()

	for _, id := range ids {
		reviews, err := s.repo.Reviews(ctx, id)
		s.Require().NoError(err)
		s.Len(reviews, perProduct)

		p, err := s.repo.FindProduct(ctx, id)
		s.Require().NoError(err)
		s.Equal(rating.Average(review.Ratings(reviews)), p.Rating())
	}
}

func (s *RepositoryTestSuite) TestGetDiscounts() {
	s.seed()

	s.Run("grouped by stars in the default locale", func() {
		actual := s.repo.GetDiscounts(context.Background())

		expected := map[string]string{
			"☆☆☆☆☆": "£0.50",
			"★★★★☆": "£0.40",
		}
		s.Equal(expected, actual)
	})

	s.Run("per-call locale", func() {
		actual := s.repo.GetDiscounts(context.Background(), catalog.InLocale("en-US"))
		s.Len(actual, 2)
		s.Contains(actual["★★★★☆"], "0.40")
		s.Contains(actual["★★★★☆"], "$")
	})

	s.Run("empty repository", func() {
		repo := s.newRepository()
		s.Empty(repo.GetDiscounts(context.Background()))
	})
}

func (s *RepositoryTestSuite) TestPrintProducts() {
	s.seed()

	err := s.repo.PrintProducts(context.Background(), product.PriceBelow(price("3")), product.Sorter(product.ByPriceDesc).Then(product.ByID))
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(s.out.String()), "\n")
	s.Require().Len(lines, 3)
	s.True(strings.HasPrefix(lines[0], "Coffee, Price: £2.99"))
	s.True(strings.HasPrefix(lines[1], "Cookie, Price: £2.99"))
	s.True(strings.HasPrefix(lines[2], "Tea, Price: £1.99"))
	s.Contains(lines[1], "Best Before: 20/10/2026")
}

func (s *RepositoryTestSuite) TestPrintProductReport() {
	ctx := context.Background()
	s.seed()
	_, err := s.repo.ReviewProduct(ctx, 101, rating.FourStar, "Nice hot cup of tea")
	s.Require().NoError(err)

	s.Run("with reviews", func() {
		s.Require().NoError(s.repo.PrintProductReport(ctx, 101))

		data, err := os.ReadFile(filepath.Join(s.cfg.Store.ReportsFolder, "product101report.txt"))
		s.Require().NoError(err)
		expected := "Tea, Price: £1.99, Rating: ★★★★☆, Best Before: 19/10/2026\n" +
			"Review: ★★★★☆\tNice hot cup of tea\n"
		s.Equal(expected, string(data))
	})

	s.Run("without reviews", func() {
		s.Require().NoError(s.repo.PrintProductReport(ctx, 102))

		data, err := os.ReadFile(filepath.Join(s.cfg.Store.ReportsFolder, "product102report.txt"))
		s.Require().NoError(err)
		s.True(strings.HasSuffix(string(data), "Not reviewed\n"))
	})

	s.Run("per client and locale", func() {
		s.Require().NoError(s.repo.PrintProductReport(ctx, 102, catalog.InLocale("fr-FR"), catalog.ForClient("alice")))

		data, err := os.ReadFile(filepath.Join(s.cfg.Store.ReportsFolder, "alice-product102report.txt"))
		s.Require().NoError(err)
		s.Contains(string(data), "Pas d'avis")
	})

	s.Run("unknown product", func() {
		err := s.repo.PrintProductReport(ctx, 999)
		s.True(errs.Is(err, errs.ErrProductNotFound))
	})
}

func (s *RepositoryTestSuite) TestChangeLocale() {
	s.Equal("en-GB", s.repo.Locale())
	s.Equal([]string{"en-GB", "en-US", "fr-FR", "ru-RU", "zh-CN"}, s.repo.SupportedLocales())

	s.repo.ChangeLocale("ru-RU")
	s.Equal("ru-RU", s.repo.Locale())

	s.repo.ChangeLocale("de-DE")
	s.Equal("en-GB", s.repo.Locale())
}

func (s *RepositoryTestSuite) TestDumpRestore() {
	ctx := context.Background()
	s.seed()
	_, err := s.repo.ReviewProduct(ctx, 101, rating.FourStar, "Nice, hot one")
	s.Require().NoError(err)
	before := s.snapshotOf(ctx)

	path, err := s.repo.Dump(ctx)
	s.Require().NoError(err)
	s.FileExists(path)
	s.Equal(0, s.repo.Len())

	_, err = s.repo.FindProduct(ctx, 101)
	s.True(errs.Is(err, errs.ErrProductNotFound))

	s.Require().NoError(s.repo.Restore(ctx))
	s.Equal(4, s.repo.Len())

	after := s.snapshotOf(ctx)
	opts := cmp.AllowUnexported(product.Product{}, review.Review{}, review.Comment{})
	if diff := cmp.Diff(before, after, opts); diff != "" {
		s.T().Errorf("Catalog mismatch after restore (-want +got):\n%s", diff)
	}
	s.NoFileExists(path)

	s.Run("no snapshot left", func() {
		err := s.repo.Restore(ctx)
		s.True(errs.Is(err, errs.ErrSnapshotNotFound))
		s.Equal(4, s.repo.Len())
	})
}

func (s *RepositoryTestSuite) TestSaveAndReload() {
	ctx := context.Background()
	s.seed()
	_, err := s.repo.ReviewProduct(ctx, 103, rating.FiveStar, "Moist, rich")
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Save(ctx))

	reloaded := s.newRepository()
	s.Equal(4, reloaded.Len())

	reviews, err := reloaded.Reviews(ctx, 103)
	s.Require().NoError(err)
	s.Require().Len(reviews, 1)
	s.Equal("Moist, rich", reviews[0].Comment().String())

	p, err := reloaded.FindProduct(ctx, 103)
	s.Require().NoError(err)
	s.Equal(rating.FiveStar, p.Rating())
}

type productState struct {
	Product product.Product
	Reviews []review.Review
}

func (s *RepositoryTestSuite) snapshotOf(ctx context.Context) map[int]productState {
	out := map[int]productState{}
	for _, id := range []int{101, 102, 103, 104} {
		p, err := s.repo.FindProduct(ctx, id)
		s.Require().NoError(err)
		reviews, err := s.repo.Reviews(ctx, id)
		s.Require().NoError(err)
		out[id] = productState{Product: p, Reviews: reviews}
	}
	return out
}
