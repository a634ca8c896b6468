// Package config loads environment-driven configuration, adapted from the
// teacher's internal/config/config.go: a typed Config struct grouping
// server/database/CORS/logging settings plus the assimilation-core knobs
// (freshwater reference temperature, FCR biomass-gain floor, the
// auto-recompute rolling window, selection-bias factors, scheduler worker
// count). Stage safety caps are not read from the environment.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	CORS         CORSConfig
	Logging      LoggingConfig
	App          AppConfig
	Assimilation AssimilationConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port int
	Host string
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Path   string
	DSN    string
	Driver string // "sqlite" | "postgres"
}

// CORSConfig holds CORS-related configuration.
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level   string
	Verbose bool
}

// AppConfig holds general application configuration.
type AppConfig struct {
	Environment string
	GinMode     string
}

// AssimilationConfig carries the environment/config knobs spec.md §6 names
// for the growth assimilation core.
type AssimilationConfig struct {
	FreshwaterRefTempC    float64
	FCRBiomassGainFloorKg float64
	MortalityWindowDays   int
	SelectionBiasLargest  float64
	SelectionBiasSmallest float64
	SchedulerWorkers      int
}

// Load loads configuration from environment variables, falling back to a
// .env file in the working directory if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// No .env file is not fatal: environment variables alone are valid.
		_ = err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Path:   getEnv("DATABASE_PATH", "./assimilation.db"),
			DSN:    getEnv("DATABASE_DSN", ""),
			Driver: getEnv("DATABASE_DRIVER", "sqlite"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
		},
		Logging: LoggingConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			Verbose: getEnvAsBool("VERBOSE", false),
		},
		App: AppConfig{
			Environment: getEnv("ENVIRONMENT", "development"),
			GinMode:     getEnv("GIN_MODE", "debug"),
		},
		Assimilation: AssimilationConfig{
			FreshwaterRefTempC:    getEnvAsFloat("FRESHWATER_REF_TEMP_C", 12.0),
			FCRBiomassGainFloorKg: getEnvAsFloat("FCR_BIOMASS_GAIN_FLOOR_KG", 1.0),
			MortalityWindowDays:   getEnvAsInt("AUTO_RECOMPUTE_WINDOW_DAYS", 30),
			SelectionBiasLargest:  getEnvAsFloat("SELECTION_BIAS_LARGEST", 0.88),
			SelectionBiasSmallest: getEnvAsFloat("SELECTION_BIAS_SMALLEST", 1.12),
			SchedulerWorkers:      getEnvAsInt("SCHEDULER_WORKERS", 4),
		},
	}

	os.Setenv("GIN_MODE", cfg.App.GinMode)

	return cfg, nil
}

// GetServerAddress returns the formatted server address.
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// IsProduction returns true if the environment is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
