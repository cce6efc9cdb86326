package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server          ServerConfig
	Database        DatabaseConfig
	Catalog         CatalogConfig
	Geocoding       GeocodingConfig
	Scoring         ScoringConfig
	Recommendations RecommendationsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds Postgres connection settings
type DatabaseConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// CatalogConfig holds Open Food Facts API configuration
type CatalogConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// GeocodingConfig holds Nominatim geocoder configuration
type GeocodingConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	CacheSize int    `mapstructure:"cache_size"`
}

// ScoringConfig holds the tunable parts of the scoring model
type ScoringConfig struct {
	DefaultDestinationLat  float64 `mapstructure:"default_destination_lat"`
	DefaultDestinationLon  float64 `mapstructure:"default_destination_lon"`
	AssumedProductWeightKg float64 `mapstructure:"assumed_product_weight_kg"`
	ClimateExcellentMax    float64 `mapstructure:"climate_excellent_max"`
	ClimateGoodMax         float64 `mapstructure:"climate_good_max"`
	ClimateModerateMax     float64 `mapstructure:"climate_moderate_max"`
}

// RecommendationsConfig holds recommendation engine settings
type RecommendationsConfig struct {
	MinCount int `mapstructure:"min_count"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ecocart/")

	// Environment variable settings
	v.SetEnvPrefix("ECOCART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*", "capacitor://*"})

	// Database defaults
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)

	// Catalog defaults
	v.SetDefault("catalog.base_url", "https://world.openfoodfacts.org")

	// Geocoding defaults
	v.SetDefault("geocoding.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoding.cache_size", 500)

	// Scoring defaults: destination falls back to Halifax, NS
	v.SetDefault("scoring.default_destination_lat", 44.6488)
	v.SetDefault("scoring.default_destination_lon", -63.5752)
	v.SetDefault("scoring.assumed_product_weight_kg", 1.0)
	v.SetDefault("scoring.climate_excellent_max", 0.05)
	v.SetDefault("scoring.climate_good_max", 0.12)
	v.SetDefault("scoring.climate_moderate_max", 0.25)

	// Recommendation defaults
	v.SetDefault("recommendations.min_count", 3)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Database.DSN == "" {
		return fmt.Errorf("database DSN is required (set ECOCART_DATABASE_DSN)")
	}

	if config.Scoring.AssumedProductWeightKg <= 0 {
		return fmt.Errorf("assumed product weight must be positive, got: %f", config.Scoring.AssumedProductWeightKg)
	}

	if !(config.Scoring.ClimateExcellentMax < config.Scoring.ClimateGoodMax &&
		config.Scoring.ClimateGoodMax < config.Scoring.ClimateModerateMax) {
		return fmt.Errorf("climate thresholds must be strictly increasing")
	}

	if config.Recommendations.MinCount < 0 {
		return fmt.Errorf("recommendations min count cannot be negative")
	}

	return nil
}
