package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Only this package reads environment variables.
type Config struct {
	Env string // development, production

	// Output
	DataDir string

	// External APIs
	NBP      NBPConfig
	Eurostat EurostatConfig
	Stooq    StooqConfig

	// Stock ticker registry
	SourcesFile string

	// HTTP
	HTTP HTTPConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// NBPConfig holds National Bank of Poland endpoints.
type NBPConfig struct {
	GoldBaseURL    string
	HousingPageURL string
	HousingFileURL string
	MaxSpanDays    int
}

// EurostatConfig holds Eurostat dissemination API configuration.
type EurostatConfig struct {
	BaseURL string
}

// StooqConfig holds Stooq quote endpoint configuration.
// Stooq rejects plain HTTP, so the base URL must stay https.
type StooqConfig struct {
	BaseURL string
}

// HTTPConfig holds shared HTTP client configuration.
type HTTPConfig struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	RequestsPerS float64
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env:     getEnv("ENV", "development"),
		DataDir: getEnv("DATA_DIR", "data"),

		NBP: NBPConfig{
			GoldBaseURL:    getEnv("NBP_GOLD_BASE_URL", "https://api.nbp.pl/api/cenyzlota"),
			HousingPageURL: getEnv("NBP_HOUSING_PAGE_URL", "https://nbp.pl/publikacje/cykliczne-materialy-analityczne-nbp/rynek-nieruchomosci/"),
			HousingFileURL: getEnv("NBP_HOUSING_FILE_URL", "https://static.nbp.pl/dane/rynek-nieruchomosci/ceny_mieszkan.xlsx"),
			MaxSpanDays:    getEnvAsInt("NBP_MAX_SPAN_DAYS", 93),
		},

		Eurostat: EurostatConfig{
			BaseURL: getEnv("EUROSTAT_BASE_URL", "https://ec.europa.eu/eurostat/api/dissemination/statistics/1.0/data"),
		},

		Stooq: StooqConfig{
			BaseURL: getEnv("STOOQ_BASE_URL", "https://stooq.com/q/d/l/"),
		},

		SourcesFile: getEnv("SOURCES_FILE", "sources.yaml"),

		HTTP: HTTPConfig{
			Timeout:      getEnvAsDuration("HTTP_TIMEOUT", "30s"),
			MaxRetries:   getEnvAsInt("HTTP_MAX_RETRIES", 3),
			RetryDelay:   getEnvAsDuration("HTTP_RETRY_DELAY", "1s"),
			RequestsPerS: getEnvAsFloat("HTTP_REQUESTS_PER_SECOND", 2.0),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, production")
	}
	if c.NBP.MaxSpanDays < 1 {
		return fmt.Errorf("NBP_MAX_SPAN_DAYS must be at least 1")
	}
	if c.HTTP.RequestsPerS <= 0 {
		return fmt.Errorf("HTTP_REQUESTS_PER_SECOND must be positive")
	}
	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
