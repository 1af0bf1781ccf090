package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// the HTTP server, the local SQLite store and its durable snapshot, the market-data
// provider, and the refresh job.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	SQLITE_PATH=./data/stocks.db
//	SNAPSHOT_PATH=./stocks.db
//	MARKET_API_KEY=demo
//	MARKET_BASE_URL=https://www.alphavantage.co
//	MARKET_TIMEOUT_SECONDS=10
//	TICKERS=SPY,QQQ,NVDA
//	REFRESH_INTERVAL_MINUTES=60
//	REFRESH_ENABLED=true
//	REFRESH_PARALLEL=4
type Config struct {
	Server  ServerConfig  // HTTP server configuration
	Store   StoreConfig   // SQLite store and snapshot locations
	Market  MarketConfig  // Market-data provider settings
	Refresh RefreshConfig // Refresh job settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// StoreConfig locates the local store and its durable snapshot.
//
// Fields:
//   - Path: the ephemeral SQLite file the serving process reads and writes.
//   - SnapshotPath: the version-controlled copy that survives restarts. It is
//     read once at boot to seed an empty local store and overwritten wholesale
//     by the scheduled refresh.
type StoreConfig struct {
	Path         string
	SnapshotPath string
}

// MarketConfig defines how the market-data provider is reached.
//
// Fields:
//   - APIKey: provider API key ("demo" works for limited Alpha Vantage testing).
//   - BaseURL: provider base URL without trailing slash.
//   - TimeoutSeconds: per-request timeout for quote fetches.
type MarketConfig struct {
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}

// RefreshConfig controls the periodic refresh job.
//
// Fields:
//   - Tickers: the ticker universe to refresh, parsed from a comma-separated list.
//   - IntervalMinutes: cadence of the in-process scheduler.
//   - Enabled: whether the in-process scheduler runs in serve mode.
//   - Parallel: how many tickers are fetched concurrently (clamped to 1..8 by the job).
type RefreshConfig struct {
	Tickers         []string
	IntervalMinutes int
	Enabled         bool
	Parallel        int
}

// defaultTickers is the universe tracked when TICKERS is not set: blue chips,
// high-beta growth names, and the major index ETFs.
const defaultTickers = "PG,KO,PEP,WMT,JNJ,PFE,XOM,CVX,JPM,BAC," +
	"COIN,PLTR,DKNG,ROKU,SQ,ARKK,NVDA,TSLA,AMD," +
	"SPY,QQQ,IWM"

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Parses the comma-separated ticker universe.
//   - Calls validateConfig() to ensure required fields are present.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("SQLITE_PATH", "./data/stocks.db")
	viper.SetDefault("SNAPSHOT_PATH", "./stocks.db")

	viper.SetDefault("MARKET_API_KEY", "demo")
	viper.SetDefault("MARKET_BASE_URL", "https://www.alphavantage.co")
	viper.SetDefault("MARKET_TIMEOUT_SECONDS", 10)

	viper.SetDefault("TICKERS", defaultTickers)
	viper.SetDefault("REFRESH_INTERVAL_MINUTES", 60)
	viper.SetDefault("REFRESH_ENABLED", true)
	viper.SetDefault("REFRESH_PARALLEL", 4)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Store: StoreConfig{
			Path:         viper.GetString("SQLITE_PATH"),
			SnapshotPath: viper.GetString("SNAPSHOT_PATH"),
		},
		Market: MarketConfig{
			APIKey:         viper.GetString("MARKET_API_KEY"),
			BaseURL:        strings.TrimRight(viper.GetString("MARKET_BASE_URL"), "/"),
			TimeoutSeconds: viper.GetInt("MARKET_TIMEOUT_SECONDS"),
		},
		Refresh: RefreshConfig{
			Tickers:         parseTickers(viper.GetString("TICKERS")),
			IntervalMinutes: viper.GetInt("REFRESH_INTERVAL_MINUTES"),
			Enabled:         viper.GetBool("REFRESH_ENABLED"),
			Parallel:        viper.GetInt("REFRESH_PARALLEL"),
		},
	}

	// Validate critical fields
	validateConfig()
}

// parseTickers splits a comma-separated ticker list, trimming whitespace,
// upper-casing symbols, and dropping empty entries.
func parseTickers(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// This avoids unexpected runtime failures due to incomplete configuration.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Store.Path == "" {
		missing = append(missing, "SQLITE_PATH")
	}
	if AppConfig.Store.SnapshotPath == "" {
		missing = append(missing, "SNAPSHOT_PATH")
	}
	if AppConfig.Market.BaseURL == "" {
		missing = append(missing, "MARKET_BASE_URL")
	}
	if AppConfig.Market.TimeoutSeconds <= 0 {
		missing = append(missing, "MARKET_TIMEOUT_SECONDS")
	}
	if len(AppConfig.Refresh.Tickers) == 0 {
		missing = append(missing, "TICKERS")
	}
	if AppConfig.Refresh.IntervalMinutes < 1 {
		missing = append(missing, "REFRESH_INTERVAL_MINUTES")
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", missing)
	}
}
