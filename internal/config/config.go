package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort       string
	PostgresDSN    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	NATSURL        string
	NotifyBaseURL  string
	NotifyAPIKey   string
	RecommenderURL string
	LogLevel       string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnMaxIdle  time.Duration
	DBConnMaxLife  time.Duration
	RequestTimeout time.Duration
	SweepInterval  time.Duration
	NotifyTimeout  time.Duration
	ViewRateLimit  int
	ViewRateWindow time.Duration
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		PostgresDSN:    getEnv("DATABASE_URL", ""),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getInt("REDIS_DB", 0),
		NATSURL:        getEnv("NATS_URL", ""),
		NotifyBaseURL:  getEnv("NOTIFY_BASE_URL", ""),
		NotifyAPIKey:   getEnv("NOTIFY_API_KEY", ""),
		RecommenderURL: getEnv("RECOMMENDER_BASE_URL", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:  getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:  getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
		SweepInterval:  getDuration("SWEEP_INTERVAL", time.Hour),
		NotifyTimeout:  getDuration("NOTIFY_TIMEOUT", 5*time.Second),
		ViewRateLimit:  getInt("VIEW_RATE_LIMIT", 60),
		ViewRateWindow: getDuration("VIEW_RATE_WINDOW", time.Minute),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
