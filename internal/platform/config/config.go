package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds engine configuration.
type Config struct {
	// DataDir is where book files live.
	DataDir string
	// DefaultCurrency is the ISO-4217 code used for the root account and for
	// accounts created without an explicit commodity.
	DefaultCurrency string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// PriceCacheTTL bounds how long a latest-price lookup may be served from
	// cache before hitting the store again.
	PriceCacheTTL time.Duration
	IsProduction  bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("CASHBOOK_DATA_DIR", "./data")
	viper.SetDefault("CASHBOOK_DEFAULT_CURRENCY", "USD")
	viper.SetDefault("CASHBOOK_LOG_LEVEL", "info")
	viper.SetDefault("CASHBOOK_PRICE_CACHE_TTL", "5m")
	viper.SetDefault("IS_PRODUCTION", false)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DataDir = viper.GetString("CASHBOOK_DATA_DIR")
	cfg.DefaultCurrency = viper.GetString("CASHBOOK_DEFAULT_CURRENCY")
	cfg.LogLevel = viper.GetString("CASHBOOK_LOG_LEVEL")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	ttlStr := viper.GetString("CASHBOOK_PRICE_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = 5 * time.Minute
		if ttlStr != "" {
			log.Printf("Warning: Invalid value for CASHBOOK_PRICE_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl)
		}
	}
	cfg.PriceCacheTTL = ttl

	return cfg, nil
}
