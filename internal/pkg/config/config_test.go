//go:build unit

package config_test

import (
	"testing"

	"product-catalog/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "data", cfg.Store.DataFolder)
		assert.Equal(t, "reviews%d.txt", cfg.Store.ReviewsDataFile)
		assert.Equal(t, "%s.tmp", cfg.Store.TempFile)
		assert.Equal(t, "en-GB", cfg.Locale.Default)
		assert.Equal(t, 3, cfg.Shop.Workers)
		assert.Equal(t, 5, cfg.Shop.Customers)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DATA_FOLDER", "/srv/catalog")
		t.Setenv("LOCALE", "fr-FR")
		t.Setenv("SHOP_WORKERS", "8")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "/srv/catalog", cfg.Store.DataFolder)
		assert.Equal(t, "fr-FR", cfg.Locale.Default)
		assert.Equal(t, 8, cfg.Shop.Workers)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		t.Setenv("SHOP_WORKERS", "0")
		t.Setenv("TEMP_FILE", "snapshot.bin")

		_, err := config.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "TempFile")
	})
}

func TestLoadConfig_ProductFileTemplates(t *testing.T) {
	t.Run("prefix override without a matching template", func(t *testing.T) {
		t.Setenv("PRODUCT_FILE_PREFIX", "item")

		_, err := config.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ProductDataFile")
	})

	t.Run("template override without a matching prefix", func(t *testing.T) {
		t.Setenv("PRODUCT_DATA_FILE", "item%d.txt")

		_, err := config.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ProductDataFile")
	})

	t.Run("prefix and template changed together", func(t *testing.T) {
		t.Setenv("PRODUCT_FILE_PREFIX", "item")
		t.Setenv("PRODUCT_DATA_FILE", "item%d.txt")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "item%d.txt", cfg.Store.ProductDataFile)
	})

	t.Run("reviews files must not look like product files", func(t *testing.T) {
		t.Setenv("REVIEWS_DATA_FILE", "product-reviews%d.txt")

		_, err := config.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ReviewsDataFile")
	})
}

func TestValidate_TestConfig(t *testing.T) {
	cfg := config.NewTestConfig(t.TempDir())
	assert.NoError(t, config.Validate(cfg))
}
