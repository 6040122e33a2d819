package config

import (
	"os"

	"github.com/joho/godotenv"

	"mally-backend/internal/logger"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	LogLevel    string
	LogFormat   string
}

const defaultDSN = "host=localhost user=postgres password=postgres dbname=mally port=5432 sslmode=disable"

func Load() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "console"),
	}

	if cfg.JWTSecret == "" {
		logger.Fatal(nil, "JWT_SECRET is not set, refusing to start")
	}
	if len(cfg.JWTSecret) < 32 {
		logger.Fatal(nil, "JWT_SECRET must be at least 32 characters")
	}
	if cfg.DatabaseDSN == defaultDSN {
		logger.Warn("DATABASE_DSN is using the default value, set your own Postgres connection for production")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		logger.Warn("CORS_ALLOWED_ORIGINS is using the default value, set your own domain for production")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
