package filestore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"product-catalog/internal/domain/review"
	"product-catalog/internal/infra"
	"product-catalog/internal/infra/metrics"
	"product-catalog/internal/infra/record"
	"product-catalog/internal/pkg/config"
	"product-catalog/internal/pkg/errs"
	"product-catalog/internal/usecase/catalog"
)

// Store reads and writes the data directory: one product record per product file and a
// companion reviews file per product id. It also writes report files.
type Store struct {
	cfg     config.StoreConfig
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewStore(cfg config.StoreConfig, logger *slog.Logger, m *metrics.Metrics) *Store {
	return &Store{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}
}

// Load parses every product file and its reviews. Malformed records are logged and
// skipped. Only a failure to list the data directory is returned as an error.
func (s *Store) Load(ctx context.Context) ([]catalog.Entry, error) {
	files, err := os.ReadDir(s.cfg.DataFolder)
	if err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to list data folder", err)
	}

	var (
		entries []catalog.Entry
		seen    = make(map[int]string)
	)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return entries, infra.WrapStoreErr(s.logger, infra.KindIOFailure, "load canceled", err)
		}
		if f.IsDir() || !strings.HasPrefix(f.Name(), s.cfg.ProductFilePrefix) {
			continue
		}

		entry, ok := s.loadEntry(ctx, f.Name())
		if !ok {
			continue
		}
		if first, dup := seen[entry.Product.ID()]; dup {
			s.logger.WarnContext(ctx, "Duplicate product id, keeping first file",
				slog.Int("product_id", entry.Product.ID()),
				slog.String("kept", first),
				slog.String("skipped", f.Name()))
			continue
		}
		seen[entry.Product.ID()] = f.Name()
		entries = append(entries, entry)
		s.metrics.ProductsLoaded.Inc()
	}

	s.logger.InfoContext(ctx, "Catalog data loaded",
		slog.String("folder", s.cfg.DataFolder),
		slog.Int("products", len(entries)))
	return entries, nil
}

func (s *Store) loadEntry(ctx context.Context, name string) (catalog.Entry, bool) {
	path := filepath.Join(s.cfg.DataFolder, name)
	line, err := readFirstLine(path)
	if err != nil {
		s.logger.WarnContext(ctx, "Error loading product",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return catalog.Entry{}, false
	}

	p, err := record.ParseProduct(line)
	if err != nil {
		s.logger.WarnContext(ctx, "Error parsing product",
			slog.String("file", path),
			slog.String("error", err.Error()))
		s.metrics.RecordsDropped.WithLabelValues(metrics.RecordProduct).Inc()
		return catalog.Entry{}, false
	}

	return catalog.Entry{Product: p, Reviews: s.loadReviews(ctx, p.ID())}, true
}

func (s *Store) loadReviews(ctx context.Context, productID int) []review.Review {
	path := filepath.Join(s.cfg.DataFolder, fmt.Sprintf(s.cfg.ReviewsDataFile, productID))
	reviews := []review.Review{}

	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.WarnContext(ctx, "Error loading reviews",
				slog.String("file", path),
				slog.String("error", err.Error()))
		}
		return reviews
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, err := record.ParseReview(line)
		if err != nil {
			s.logger.WarnContext(ctx, "Error parsing review",
				slog.String("file", path),
				slog.String("error", err.Error()))
			s.metrics.RecordsDropped.WithLabelValues(metrics.RecordReview).Inc()
			continue
		}
		reviews = append(reviews, r)
	}
	if err := scanner.Err(); err != nil {
		s.logger.WarnContext(ctx, "Error reading reviews",
			slog.String("file", path),
			slog.String("error", err.Error()))
	}
	return reviews
}

// Save writes each entry back as a product file and a reviews file, replacing any
// previous content for the same ids.
func (s *Store) Save(ctx context.Context, entries []catalog.Entry) error {
	if err := checkEntries(entries); err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindParse, "refusing to save catalog", err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return infra.WrapStoreErr(s.logger, infra.KindIOFailure, "save canceled", err)
		}

		id := e.Product.ID()
		productData := record.FormatProduct(e.Product) + "\n"
		if err := infra.WriteFileAtomic(s.cfg.DataFolder, fmt.Sprintf(s.cfg.ProductDataFile, id), []byte(productData)); err != nil {
			return infra.WrapStoreErr(s.logger, infra.KindIOFailure, fmt.Sprintf("failed to save product %d", id), err)
		}

		var b strings.Builder
		for _, r := range e.Reviews {
			b.WriteString(record.FormatReview(r))
			b.WriteByte('\n')
		}
		if err := infra.WriteFileAtomic(s.cfg.DataFolder, fmt.Sprintf(s.cfg.ReviewsDataFile, id), []byte(b.String())); err != nil {
			return infra.WrapStoreErr(s.logger, infra.KindIOFailure, fmt.Sprintf("failed to save reviews of product %d", id), err)
		}
	}

	s.logger.InfoContext(ctx, "Catalog data saved",
		slog.String("folder", s.cfg.DataFolder),
		slog.Int("products", len(entries)))
	return nil
}

// checkEntries runs before any file is written so a rejected save leaves the folder as it was.
func checkEntries(entries []catalog.Entry) error {
	for _, e := range entries {
		if err := record.CheckProduct(e.Product); err != nil {
			return err
		}
		for _, r := range e.Reviews {
			if err := record.CheckReview(r); err != nil {
				return errs.Wrapf(err, "product %d", e.Product.ID())
			}
		}
	}
	return nil
}

// WriteReport stores the report lines under the configured report file name, prefixed
// with the client name when one is given.
func (s *Store) WriteReport(ctx context.Context, productID int, client string, lines []string) error {
	if err := ctx.Err(); err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindIOFailure, "report canceled", err)
	}

	name := s.ReportName(productID, client)
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	err := infra.WriteFileAtomic(s.cfg.ReportsFolder, name, []byte(b.String()))
	s.metrics.ReportsWritten.WithLabelValues(metrics.Status(err)).Inc()
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to write report "+name, err)
	}

	s.logger.DebugContext(ctx, "Report written",
		slog.Int("product_id", productID),
		slog.String("file", filepath.Join(s.cfg.ReportsFolder, name)))
	return nil
}

func (s *Store) ReportName(productID int, client string) string {
	name := fmt.Sprintf(s.cfg.ReportFile, productID)
	if client != "" {
		name = client + "-" + name
	}
	return name
}

func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", errors.New("empty product file")
}
