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
	Port        string
	FrontendURL string
	// Platform API (remote REST API owning accounts, profiles, skills, storage)
	PlatformAPIURL     string
	PlatformAPIKey     string
	PlatformJWTSecret  string
	PlatformAPITimeout time.Duration
	StorageBucket      string
	// Redis (sessions, login tracking, rate limiting)
	RedisURL      string
	RedisPassword string
	// Access token expiry is set by the platform API; the session record
	// lives as long as the refresh token.
	RefreshTokenTTL time.Duration
	// Rate Limiting
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	FailedLoginBlockMinutes  int
	FailedLoginMaxAttempts   int
	// Security events
	SecurityDBUrl   string
	SecurityLogToDB bool
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Trim a trailing slash to avoid double slashes when building request URLs.
		PlatformAPIURL:     strings.TrimRight(getEnv("PLATFORM_API_URL", ""), "/"),
		PlatformAPIKey:     getEnv("PLATFORM_API_KEY", ""),
		PlatformJWTSecret:  getEnv("PLATFORM_JWT_SECRET", ""),
		PlatformAPITimeout: getEnvDuration("PLATFORM_API_TIMEOUT_SECONDS", 10*time.Second),
		StorageBucket:      getEnv("STORAGE_BUCKET", "documents"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL_SECONDS", 7*24*time.Hour),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		FailedLoginBlockMinutes:  getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:   getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),

		SecurityDBUrl:   getEnv("SECURITY_DATABASE_URL", ""),
		SecurityLogToDB: getEnvBool("SECURITY_LOG_TO_DB", false),
	}

	if cfg.PlatformAPIURL == "" {
		log.Println("WARNING: PLATFORM_API_URL is missing. Remote calls will fail.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Sessions cannot be persisted.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
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

// getEnvDuration reads a duration expressed in whole seconds
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}
