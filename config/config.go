package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"quizbowl_backend/export"

	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret  = "change-this-secret"
	defaultAdminToken = "super-secret-token"
)

type Config struct {
	Environment string
	ServerPort  string
	DatabaseURL string
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	JWTSecret   string
	AdminToken  string
	TokenTTL    time.Duration
	TotalPolicy export.TotalPolicy
	SeedDemo    bool
}

// Load reads the configuration from the environment, after loading a .env
// file if one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerPort:  getEnv("PORT", "5000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "quizbowl"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		AdminToken:  getEnv("ADMIN_TOKEN", defaultAdminToken),
	}

	var err error
	if cfg.DBPort, err = strconv.Atoi(getEnv("DB_PORT", "5432")); err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	if cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "12h")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL: must be positive")
	}
	if cfg.TotalPolicy, err = export.ParseTotalPolicy(os.Getenv("EXPORT_TOTAL_POLICY")); err != nil {
		return nil, err
	}
	if cfg.SeedDemo, err = strconv.ParseBool(getEnv("SEED_DEMO", "true")); err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO: %w", err)
	}

	if cfg.JWTSecret == defaultJWTSecret {
		log.Println("Warning: JWT_SECRET is not set, using the default secret")
	}
	if cfg.AdminToken == defaultAdminToken {
		log.Println("Warning: ADMIN_TOKEN is not set, using the default token")
	}

	return cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a connection string built
// from the DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
