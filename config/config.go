package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBUrl     string
	LogLevel  string
	LogFormat string
	// Redis configuration. Empty URL selects the in-memory cache.
	RedisURL      string
	RedisPassword string
	// Cache lifetimes
	CandidateCacheTTL     time.Duration
	CandidateListCacheTTL time.Duration
	// HTTP
	CORSAllowedOrigins []string
	// Writes per client IP per minute; 0 disables the limiter
	RateLimitPerMinute int
	// Seed sample candidates on migrate
	SeedData bool
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; missing file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		DBUrl:                 getEnv("DATABASE_URL", ""),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
		RedisURL:              getEnv("REDIS_URL", ""),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		CandidateCacheTTL:     getEnvDuration("CANDIDATE_CACHE_TTL", 5*time.Minute),
		CandidateListCacheTTL: getEnvDuration("CANDIDATE_LIST_CACHE_TTL", 10*time.Minute),
		CORSAllowedOrigins:    getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitPerMinute:    getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		SeedData:              getEnvBool("SEED_DATA", false),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Candidate cache will use in-memory store.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
