package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: nothing is required; every folder has a working default for local runs
// - default: folder layout, file-name templates, locale, pool sizing and logging
// -----------------------------------------------------------------------------

type Config struct {
	Store  StoreConfig
	Locale LocaleConfig
	Shop   ShopConfig
	Log    LogConfig
}

// StoreConfig names the three folders and the file-name templates used by persistence.
// Templates are fmt layouts: %d receives a product id, %s a snapshot timestamp.
type StoreConfig struct {
	DataFolder        string `envconfig:"DATA_FOLDER" default:"data" validate:"required"`
	ReportsFolder     string `envconfig:"REPORTS_FOLDER" default:"reports" validate:"required"`
	TempFolder        string `envconfig:"TEMP_FOLDER" default:"temp" validate:"required"`
	ProductFilePrefix string `envconfig:"PRODUCT_FILE_PREFIX" default:"product" validate:"required"`
	ProductDataFile   string `envconfig:"PRODUCT_DATA_FILE" default:"product%d.txt" validate:"required,contains=%d"`
	ReviewsDataFile   string `envconfig:"REVIEWS_DATA_FILE" default:"reviews%d.txt" validate:"required,contains=%d"`
	ReportFile        string `envconfig:"REPORT_FILE" default:"product%dreport.txt" validate:"required,contains=%d"`
	TempFile          string `envconfig:"TEMP_FILE" default:"%s.tmp" validate:"required,contains=%s,endswith=.tmp"`
}

type LocaleConfig struct {
	Default string `envconfig:"LOCALE" default:"en-GB" validate:"required"`
}

type ShopConfig struct {
	Workers   int `envconfig:"SHOP_WORKERS" default:"3" validate:"min=1"`
	Customers int `envconfig:"SHOP_CUSTOMERS" default:"5" validate:"min=0"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	Format         string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateStoreTemplates, StoreConfig{})
	return v
}

// validateStoreTemplates keeps saved files visible to the loader, which reads product
// records only from names starting with ProductFilePrefix.
func validateStoreTemplates(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(StoreConfig)
	if !ok || cfg.ProductFilePrefix == "" {
		return
	}
	if !strings.HasPrefix(cfg.ProductDataFile, cfg.ProductFilePrefix) {
		sl.ReportError(cfg.ProductDataFile, "ProductDataFile", "ProductDataFile", "prefixed", cfg.ProductFilePrefix)
	}
	if strings.HasPrefix(cfg.ReviewsDataFile, cfg.ProductFilePrefix) {
		sl.ReportError(cfg.ReviewsDataFile, "ReviewsDataFile", "ReviewsDataFile", "unprefixed", cfg.ProductFilePrefix)
	}
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags and reports every offending field in one error.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("failed to validate config: %w", err)
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func NewTestConfig(root string) Config {
	return Config{
		Store: StoreConfig{
			DataFolder:        filepath.Join(root, "data"),
			ReportsFolder:     filepath.Join(root, "reports"),
			TempFolder:        filepath.Join(root, "temp"),
			ProductFilePrefix: "product",
			ProductDataFile:   "product%d.txt",
			ReviewsDataFile:   "reviews%d.txt",
			ReportFile:        "product%dreport.txt",
			TempFile:          "%s.tmp",
		},
		Locale: LocaleConfig{
			Default: "en-GB",
		},
		Shop: ShopConfig{
			Workers:   3,
			Customers: 5,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			Format:     "text",
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
	}
}
