package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mohamedhosni23/apple-store-bi-project/database"
	aws_pkg "github.com/mohamedhosni23/apple-store-bi-project/pkg/aws"
	"github.com/mohamedhosni23/apple-store-bi-project/repository"
	"github.com/mohamedhosni23/apple-store-bi-project/services"
)

// Config holds all configuration for the warehouse ETL.
type Config struct {
	Env          string
	MongoURI     string
	MongoDBName  string
	Postgres     database.PostgresConfig
	SkipLoad     bool
	BatchSize    int
	ExportDir    string
	ExportBucket string
	ExportPrefix string
	SNSTopicArn  string
	RunTable     string
}

// LoadConfig reads .env and the environment, then applies command-line flags on top.
func LoadConfig(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("etl-warehouse", flag.ContinueOnError)
	mongoURI := fs.String("mongo", getEnv("MONGO_URI", "mongodb://localhost:27017/"+database.DefaultDatabase), "MongoDB URI")
	dbName := fs.String("db", os.Getenv("MONGO_DB_NAME"), "MongoDB database name (defaults to the URI path)")
	skipLoad := fs.Bool("skip-load", os.Getenv("ETL_SKIP_LOAD") == "true", "transform and export without touching the warehouse")
	exportDir := fs.String("export-dir", getEnv("ETL_EXPORT_DIR", services.DefaultExportDir), "directory for CSV snapshots")
	batch := fs.String("batch-size", getEnv("ETL_BATCH_SIZE", strconv.Itoa(repository.DefaultBatchSize)), "rows per INSERT")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		MongoURI: *mongoURI,
		Postgres: database.PostgresConfig{
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "Africa/Tunis"),
		},
		SkipLoad:     *skipLoad,
		ExportDir:    *exportDir,
		ExportBucket: os.Getenv("ETL_EXPORT_BUCKET"),
		ExportPrefix: getEnv("ETL_EXPORT_PREFIX", "dw_export"),
		SNSTopicArn:  os.Getenv("ETL_SNS_TOPIC_ARN"),
		RunTable:     os.Getenv("RUN_LEDGER_TABLE"),
	}
	var err error
	if cfg.BatchSize, err = strconv.Atoi(*batch); err != nil || cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("invalid batch size %q", *batch)
	}

	// Override credentials from Secrets Manager when running on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			sm := aws_pkg.NewSecretsClient(awsCfg)
			aws_pkg.OverrideFromSecret(context.Background(), sm, "etl/MONGO_URI", &cfg.MongoURI)
			if dbjson, err := sm.GetSecret(context.Background(), "etl/DW_CREDENTIALS"); err == nil && dbjson != "" {
				applyPostgresSecret(dbjson, &cfg.Postgres)
			}
		}
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI must be set or provided via -mongo")
	}
	if !cfg.SkipLoad && (cfg.Postgres.User == "" || cfg.Postgres.DBName == "") {
		return nil, fmt.Errorf("warehouse config incomplete: POSTGRES_USER and POSTGRES_DB are required unless -skip-load is set")
	}
	cfg.MongoDBName = *dbName
	if cfg.MongoDBName == "" {
		cfg.MongoDBName = database.DatabaseFromURI(cfg.MongoURI, database.DefaultDatabase)
	}
	return cfg, nil
}

// applyPostgresSecret copies the non-empty POSTGRES_* keys of a JSON secret into pg.
func applyPostgresSecret(raw string, pg *database.PostgresConfig) {
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return
	}
	set := func(key string, dst *string) {
		if v, ok := m[key]; ok && v != "" {
			*dst = v
		}
	}
	set("POSTGRES_USER", &pg.User)
	set("POSTGRES_PASSWORD", &pg.Password)
	set("POSTGRES_DB", &pg.DBName)
	set("POSTGRES_HOST", &pg.Host)
	set("POSTGRES_PORT", &pg.Port)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
