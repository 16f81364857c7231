// Package config loads the process-wide configuration.
//
// The configuration is constructed exactly once at startup and passed down to
// the components that need it. Nothing below this package reads environment
// variables directly.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the service needs at startup.
type Config struct {
	Port string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	RunMigrations bool

	// Redis (optional; the service degrades to DB-backed sessions without it)
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Login JWT
	JWTSecret     string
	JWTExpiration time.Duration

	// Email verification tokens. The secret is deliberately separate from
	// JWTSecret; rotating it invalidates every outstanding verification link
	// without touching live logins.
	VerificationSecret string
	VerificationMaxAge time.Duration

	// Brevo transactional email
	BrevoAPIKey string
	BrevoURL    string
	SenderName  string
	SenderEmail string
	AppURL      string
	MailTimeout time.Duration
}

// Load reads the configuration from the environment, with optional .env
// support for local development.
func Load() Config {
	// .envファイルがあれば読み込む（ローカル開発用）
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("failed to load .env: %v", err)
		}
	}

	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiration: getEnvSeconds("JWT_EXPIRATION_SECONDS", 24*time.Hour),

		VerificationSecret: os.Getenv("VERIFICATION_SECRET"),
		VerificationMaxAge: getEnvSeconds("TOKEN_MAX_AGE_SECONDS", 24*time.Hour),

		BrevoAPIKey: os.Getenv("BREVO_API_KEY"),
		BrevoURL:    getEnv("BREVO_BASE_URL", "https://api.brevo.com"),
		SenderName:  getEnv("SENDER_NAME", "Account Service"),
		SenderEmail: os.Getenv("SENDER_EMAIL"),
		AppURL:      getEnv("APP_URL", "http://localhost:8080"),
		MailTimeout: 10 * time.Second,
	}
}

// getEnv returns the value of the environment variable or a default.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvSeconds parses an integer number of seconds from the environment.
func getEnvSeconds(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		log.Printf("invalid %s=%q, using default %v", key, v, def)
		return def
	}
	return time.Duration(secs) * time.Second
}
