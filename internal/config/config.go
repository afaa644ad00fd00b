package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort    string
	StoreDriver string // postgres | redis | memory
	DatabaseDSN string
	RedisAddr   string
	JWTSecret   string
	CORSOrigins string
	LogLevel    string
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		StoreDriver: getEnv("STORE_DRIVER", "postgres"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=factoryops port=5432 sslmode=disable"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is not set; refusing to start")
	}
	if len(cfg.JWTSecret) < 32 {
		logrus.Fatal("JWT_SECRET must be at least 32 characters")
	}
	switch cfg.StoreDriver {
	case "postgres", "redis", "memory":
	default:
		logrus.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.StoreDriver == "memory" {
		logrus.Warn("STORE_DRIVER=memory keeps no data across restarts; development only")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
