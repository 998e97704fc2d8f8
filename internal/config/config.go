package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	DBHost        string
	DBPort        int
	DBUsername    string
	DBPassword    string
	DBName        string
	JWTSecret     string
	JWTExpiration time.Duration
	SwaggerHost   string
}

// Load builds Config from environment. A .env file in the working directory is
// read first, real environment variables win. Missing required variables make
// Load fail so the process can exit before opening any connection.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:  getEnv("PORT", "3000"),
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      getEnvInt("DB_PORT", 3306),
		DBUsername:  os.Getenv("DB_USERNAME"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}

	var missing []string
	for _, required := range []struct {
		name  string
		value string
	}{
		{"DB_HOST", cfg.DBHost},
		{"DB_USERNAME", cfg.DBUsername},
		{"DB_PASSWORD", cfg.DBPassword},
		{"DB_NAME", cfg.DBName},
		{"JWT_SECRET", cfg.JWTSecret},
	} {
		if required.value == "" {
			missing = append(missing, required.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if len(cfg.JWTSecret) < 10 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 10 characters")
	}

	expiration := getEnv("JWT_EXPIRATION", "3600s")
	ttl, err := time.ParseDuration(expiration)
	if err != nil {
		return nil, fmt.Errorf("parse JWT_EXPIRATION %q: %w", expiration, err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRATION must be positive")
	}
	cfg.JWTExpiration = ttl

	return cfg, nil
}

// MySQLDSN assembles the go-sql-driver DSN from the discrete DB_* variables.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUsername, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
