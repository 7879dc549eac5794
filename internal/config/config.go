package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// PlaceholderKey is a valid configuration value: adapters treat any rejected
// key as a fetch failure and take their synthesis/fallback path.
const PlaceholderKey = "demo_key"

type Config struct {
	Server      ServerConfig
	News        NewsConfig
	Places      PlacesConfig
	Correlation CorrelationConfig
	DB          DatabaseConfig
	Logging     LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type NewsConfig struct {
	NewsAPIKey      string
	NewsAPIURL      string
	NYTKey          string
	NYTURL          string
	FeedURL         string // RSS source, no key required
	PageSize        int
	CollectInterval time.Duration
}

type PlacesConfig struct {
	APIKey          string
	DetailsURL      string
	CollectInterval time.Duration
	WorkerCount     int
}

type CorrelationConfig struct {
	MinScore int
	Window   time.Duration
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		News: NewsConfig{
			NewsAPIKey:      getEnv("NEWS_API_KEY", PlaceholderKey),
			NewsAPIURL:      getEnv("NEWS_API_URL", "https://newsapi.org/v2/everything"),
			NYTKey:          getEnv("NYT_API_KEY", PlaceholderKey),
			NYTURL:          getEnv("NYT_API_URL", "https://api.nytimes.com/svc/search/v2/articlesearch.json"),
			FeedURL:         getEnv("NEWS_FEED_URL", "https://feeds.bbci.co.uk/news/world/rss.xml"),
			PageSize:        getEnvInt("NEWS_PAGE_SIZE", 10),
			CollectInterval: getEnvDuration("NEWS_COLLECT_INTERVAL", 30*time.Minute),
		},
		Places: PlacesConfig{
			APIKey:          getEnv("GOOGLE_PLACES_API_KEY", PlaceholderKey),
			DetailsURL:      getEnv("PLACES_DETAILS_URL", "https://maps.googleapis.com/maps/api/place/details/json"),
			CollectInterval: getEnvDuration("PIZZA_COLLECT_INTERVAL", 15*time.Minute),
			WorkerCount:     getEnvInt("PIZZA_WORKER_COUNT", 2),
		},
		Correlation: CorrelationConfig{
			MinScore: getEnvInt("CORRELATION_MIN_SCORE", 75),
			Window:   getEnvDuration("CORRELATION_WINDOW", 2*time.Hour),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/pizza-index.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.News.CollectInterval < time.Minute {
		return fmt.Errorf("news collect interval must be at least 1 minute")
	}
	if c.Places.CollectInterval < time.Minute {
		return fmt.Errorf("pizza collect interval must be at least 1 minute")
	}
	if c.Places.WorkerCount < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}
	if c.News.PageSize < 1 || c.News.PageSize > 100 {
		return fmt.Errorf("news page size must be in [1,100]")
	}
	if c.Correlation.MinScore < 0 || c.Correlation.MinScore > 100 {
		return fmt.Errorf("correlation min score must be in [0,100]")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
