package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/verifyap/threeway/internal/domain"
	"github.com/verifyap/threeway/internal/ingestion"
	"github.com/verifyap/threeway/internal/reconciliation"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Feed     FeedConfig
	Matching reconciliation.Options
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// FeedConfig describes the purchase-order feed source
type FeedConfig struct {
	Source domain.FeedSource
	Path   string
	Sheet  string
	DBPath string
}

// Location is where the feed is read from: the file path, or the database
// for the sqlite source.
func (f FeedConfig) Location() string {
	if f.Source == domain.SourceSQLite {
		return f.DBPath
	}
	return f.Path
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	feedPath := getEnv("FEED_PATH", "testdata/open_pos.csv")

	source := domain.FeedSource(strings.ToLower(getEnv("FEED_SOURCE", "")))
	if source == "" {
		detected, err := ingestion.DetectSource(feedPath)
		if err != nil {
			return nil, fmt.Errorf("FEED_SOURCE not set: %w", err)
		}
		source = detected
	}

	dbPath := getEnv("DB_PATH", "orders.db")
	if source == domain.SourceSQLite && getEnv("DB_PATH", "") == "" && getEnv("FEED_PATH", "") != "" {
		dbPath = feedPath
	}

	matching := reconciliation.DefaultOptions()
	var err error
	if matching.PriceTolerance, err = getEnvAsFloat("PRICE_TOLERANCE", matching.PriceTolerance); err != nil {
		return nil, err
	}
	if matching.TotalTolerance, err = getEnvAsFloat("TOTAL_TOLERANCE", matching.TotalTolerance); err != nil {
		return nil, err
	}
	if matching.DescriptionThreshold, err = getEnvAsFloat("DESCRIPTION_THRESHOLD", matching.DescriptionThreshold); err != nil {
		return nil, err
	}
	matching.ReceiptVendorMatch = reconciliation.VendorMatchMode(getEnv("RECEIPT_VENDOR_MATCH", string(matching.ReceiptVendorMatch)))
	matching.InvoiceVendorMatch = reconciliation.VendorMatchMode(getEnv("INVOICE_VENDOR_MATCH", string(matching.InvoiceVendorMatch)))

	shutdownTimeout, err := getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ShutdownTimeout: shutdownTimeout,
		},
		Feed: FeedConfig{
			Source: source,
			Path:   feedPath,
			Sheet:  getEnv("XLSX_SHEET", ""),
			DBPath: dbPath,
		},
		Matching: matching,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.Feed.Source {
	case domain.SourceCSV, domain.SourceXLSX:
		if c.Feed.Path == "" {
			return fmt.Errorf("FEED_PATH is required for %s feeds", c.Feed.Source)
		}
	case domain.SourceSQLite:
		if c.Feed.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for sqlite feeds")
		}
	default:
		return fmt.Errorf("unknown FEED_SOURCE %q", c.Feed.Source)
	}
	if err := c.Matching.Validate(); err != nil {
		return fmt.Errorf("matching: %w", err)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// An unset variable yields the default; a set but malformed one is an error.
func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", key, value)
	}
	return floatVal, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a duration", key, value)
	}
	return duration, nil
}
