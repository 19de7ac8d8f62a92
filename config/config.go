package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=capitolpulse
//	POSTGRES_SSLMODE=disable
//	FMP_API_KEY=xxxx
//	DATA_DIR=./data/input
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Market   MarketConfig
	Analysis AnalysisConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string // TCP port the HTTP server listens on (e.g. "8080")
}

// PostgresConfig defines connection details for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string // computed DSN used by database/sql
}

// MarketConfig holds market-data provider settings.
type MarketConfig struct {
	APIKey   string // Financial Modeling Prep API key
	BaseURL  string
	CacheTTL int // hours a cached market-data snapshot stays fresh
}

// AnalysisConfig holds scoring-run settings that are not part of the
// numeric scoring config itself.
type AnalysisConfig struct {
	DataDir         string // directory with disclosure and legislator files
	KeywordFallback bool   // enable keyword sector inference for unmapped committees
	FetchParallel   int    // concurrent market-data fetches
}

// AppConfig is the globally accessible configuration instance, populated
// once via LoadConfig().
var AppConfig Config

// LoadConfig initializes the global AppConfig.
//
// Precedence (lowest to highest): defaults, .env file (if present),
// environment variables. Missing required values terminate the process via
// validateConfig().
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "capitolpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("FMP_BASE_URL", "https://financialmodelingprep.com/api/v3")
	viper.SetDefault("MARKET_CACHE_TTL_HOURS", 24)

	viper.SetDefault("DATA_DIR", "./data/input")
	viper.SetDefault("ANALYSIS_KEYWORD_FALLBACK", false)
	viper.SetDefault("ANALYSIS_FETCH_PARALLEL", 4)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Market: MarketConfig{
			APIKey:   viper.GetString("FMP_API_KEY"),
			BaseURL:  viper.GetString("FMP_BASE_URL"),
			CacheTTL: viper.GetInt("MARKET_CACHE_TTL_HOURS"),
		},
		Analysis: AnalysisConfig{
			DataDir:         viper.GetString("DATA_DIR"),
			KeywordFallback: viper.GetBool("ANALYSIS_KEYWORD_FALLBACK"),
			FetchParallel:   viper.GetInt("ANALYSIS_FETCH_PARALLEL"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// validateConfig ensures required variables are present and terminates the
// application if they are missing. The FMP API key is deliberately not
// required: ingest and api modes work without one, and the provider reports
// its own error when an analysis run needs it.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
