//go:build unit || e2e

package datatest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"product-catalog/internal/domain/product"
	"product-catalog/internal/domain/review"
	"product-catalog/internal/infra/record"
	"product-catalog/internal/pkg/config"

	"github.com/stretchr/testify/require"
)

func CreateTestProduct(t *testing.T, cfg config.StoreConfig, p product.Product) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(cfg.DataFolder, 0o755))
	path := filepath.Join(cfg.DataFolder, fmt.Sprintf(cfg.ProductDataFile, p.ID()))
	require.NoError(t, os.WriteFile(path, []byte(record.FormatProduct(p)+"\n"), 0o644))
	return path
}

func CreateTestReviews(t *testing.T, cfg config.StoreConfig, productID int, reviews ...review.Review) string {
	t.Helper()

	lines := make([]string, len(reviews))
	for i, r := range reviews {
		lines[i] = record.FormatReview(r)
	}
	return CreateRawFile(t, cfg.DataFolder, fmt.Sprintf(cfg.ReviewsDataFile, productID), strings.Join(lines, "\n")+"\n")
}

// CreateRawFile writes content verbatim, for records that must stay malformed.
func CreateRawFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ResetFolders removes the data, reports and temp folders.
func ResetFolders(cfg config.StoreConfig) error {
	for _, dir := range []string{cfg.DataFolder, cfg.ReportsFolder, cfg.TempFolder} {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	return nil
}
