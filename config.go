package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mohamedhosni23/apple-store-bi-project/database"
	aws_pkg "github.com/mohamedhosni23/apple-store-bi-project/pkg/aws"
	"github.com/mohamedhosni23/apple-store-bi-project/services"
)

// Config holds all configuration for the dashboard API.
type Config struct {
	Env            string
	Port           string
	MongoURI       string
	MongoDBName    string
	RedisURL       string
	KPICacheTTL    time.Duration
	EmbedURL       string
	DashboardTitle string
	AllowedOrigins []string
	RateLimit      int // requests per minute per client, 0 disables
	RefreshQueue   string
}

// LoadConfig reads configuration from .env and the environment with optional
// Secrets Manager override.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8095"),
		MongoURI:       os.Getenv("MONGO_URI"),
		RedisURL:       os.Getenv("REDIS_URL"),
		EmbedURL:       os.Getenv("POWERBI_EMBED_URL"),
		DashboardTitle: getEnv("DASHBOARD_TITLE", services.DefaultDashboardTitle),
		RefreshQueue:   os.Getenv("DASHBOARD_SQS_QUEUE_URL"),
	}

	ttl, err := time.ParseDuration(getEnv("KPI_CACHE_TTL", services.DefaultKPICacheTTL.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid KPI_CACHE_TTL: %w", err)
	}
	cfg.KPICacheTTL = ttl

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	limit, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "100"))
	if err != nil || limit < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %q", os.Getenv("RATE_LIMIT_PER_MINUTE"))
	}
	cfg.RateLimit = limit

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			sm := aws_pkg.NewSecretsClient(awsCfg)
			aws_pkg.OverrideFromSecret(context.Background(), sm, "dashboard/MONGO_URI", &cfg.MongoURI)
			aws_pkg.OverrideFromSecret(context.Background(), sm, "dashboard/REDIS_URL", &cfg.RedisURL)
		}
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	cfg.MongoDBName = getEnv("MONGO_DB_NAME", database.DatabaseFromURI(cfg.MongoURI, database.DefaultDatabase))
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
