package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Source drivers accepted by SOURCE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

const (
	defaultReadingsTable = "agriculture_monitoring"
	defaultMongoDatabase = "agriview"
	defaultHFBaseURL     = "https://api-inference.huggingface.co/models"
	defaultHFModel       = "davin-ai/agriculture-bert"
	defaultHFTimeout     = 30 * time.Second
	defaultFetchTTL      = 60 * time.Second
	defaultPort          = 8080
)

// Config holds environment-driven settings for the dashboard API.
type Config struct {
	SourceDriver  string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
	ReadingsTable string

	HFBaseURL string
	HFModel   string
	HFToken   string
	HFTimeout time.Duration

	FetchTTL    time.Duration
	Port        int
	BearerToken string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		SourceDriver:  DriverPostgres,
		ReadingsTable: defaultReadingsTable,
		MongoDatabase: defaultMongoDatabase,
		HFBaseURL:     defaultHFBaseURL,
		HFModel:       defaultHFModel,
		HFTimeout:     defaultHFTimeout,
		FetchTTL:      defaultFetchTTL,
		Port:          defaultPort,
	}

	if driver := strings.TrimSpace(os.Getenv("SOURCE_DRIVER")); driver != "" {
		cfg.SourceDriver = strings.ToLower(driver)
	}

	switch cfg.SourceDriver {
	case DriverPostgres:
		cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
		if cfg.DatabaseURL == "" {
			return cfg, errors.New("DATABASE_URL is required for the postgres source")
		}
	case DriverMongo:
		cfg.MongoURI = strings.TrimSpace(os.Getenv("MONGO_URI"))
		if cfg.MongoURI == "" {
			return cfg, errors.New("MONGO_URI is required for the mongo source")
		}
		if db := strings.TrimSpace(os.Getenv("MONGO_DATABASE")); db != "" {
			cfg.MongoDatabase = db
		}
	default:
		return cfg, fmt.Errorf("invalid SOURCE_DRIVER: %s", cfg.SourceDriver)
	}

	if table := strings.TrimSpace(os.Getenv("READINGS_TABLE")); table != "" {
		cfg.ReadingsTable = table
	}

	cfg.HFToken = strings.TrimSpace(os.Getenv("HF_API_TOKEN"))
	if cfg.HFToken == "" {
		return cfg, errors.New("HF_API_TOKEN is required")
	}

	if url := strings.TrimSpace(os.Getenv("HF_API_URL")); url != "" {
		cfg.HFBaseURL = strings.TrimRight(url, "/")
	}
	if model := strings.TrimSpace(os.Getenv("HF_MODEL")); model != "" {
		cfg.HFModel = model
	}

	if v := strings.TrimSpace(os.Getenv("HF_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid HF_TIMEOUT: %w", err)
		}
		cfg.HFTimeout = d
	}

	if v := strings.TrimSpace(os.Getenv("FETCH_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid FETCH_TTL: %w", err)
		}
		cfg.FetchTTL = d
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ModelURL returns the full inference endpoint for the configured model.
func (c Config) ModelURL() string {
	return c.HFBaseURL + "/" + c.HFModel
}
