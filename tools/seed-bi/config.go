package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/mohamedhosni23/apple-store-bi-project/database"
	aws_pkg "github.com/mohamedhosni23/apple-store-bi-project/pkg/aws"
	"github.com/mohamedhosni23/apple-store-bi-project/services"
)

const dateLayout = "2006-01-02"

// Config holds all configuration for one seed run.
type Config struct {
	Env         string
	MongoURI    string
	MongoDBName string
	OrderCount  int
	StartDate   time.Time
	EndDate     time.Time
	Seed        uint64
	HasSeed     bool
	BcryptCost  int
	SNSTopicArn string
	RunTable    string
}

// LoadConfig reads .env and the environment, then applies command-line flags on top.
func LoadConfig(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("seed-bi", flag.ContinueOnError)
	mongoURI := fs.String("mongo", os.Getenv("MONGO_URI"), "MongoDB URI")
	dbName := fs.String("db", os.Getenv("MONGO_DB_NAME"), "MongoDB database name (defaults to the URI path)")
	orders := fs.String("orders", getEnv("SEED_ORDER_COUNT", strconv.Itoa(services.DefaultOrderCount)), "number of orders to generate")
	start := fs.String("start", getEnv("SEED_START_DATE", services.DefaultStartDate.Format(dateLayout)), "first order date (YYYY-MM-DD)")
	end := fs.String("end", getEnv("SEED_END_DATE", services.DefaultEndDate.Format(dateLayout)), "order window end, exclusive (YYYY-MM-DD)")
	seed := fs.String("seed", os.Getenv("SEED_RANDOM_SEED"), "random seed for a reproducible dataset")
	cost := fs.String("bcrypt-cost", getEnv("SEED_BCRYPT_COST", strconv.Itoa(services.DefaultBcryptCost)), "bcrypt work factor")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		MongoURI:    *mongoURI,
		SNSTopicArn: os.Getenv("SEED_SNS_TOPIC_ARN"),
		RunTable:    os.Getenv("RUN_LEDGER_TABLE"),
	}

	var err error
	if cfg.OrderCount, err = strconv.Atoi(*orders); err != nil || cfg.OrderCount < 0 {
		return nil, fmt.Errorf("invalid order count %q", *orders)
	}
	if cfg.BcryptCost, err = strconv.Atoi(*cost); err != nil {
		return nil, fmt.Errorf("invalid bcrypt cost %q", *cost)
	}
	if cfg.StartDate, err = time.Parse(dateLayout, *start); err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	if cfg.EndDate, err = time.Parse(dateLayout, *end); err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if !cfg.EndDate.After(cfg.StartDate) {
		return nil, fmt.Errorf("end date %s must be after start date %s", *end, *start)
	}
	if *seed != "" {
		if cfg.Seed, err = strconv.ParseUint(*seed, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid random seed %q", *seed)
		}
		cfg.HasSeed = true
	}

	// Override the connection string from Secrets Manager when running on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			sm := aws_pkg.NewSecretsClient(awsCfg)
			aws_pkg.OverrideFromSecret(context.Background(), sm, "seeder/MONGO_URI", &cfg.MongoURI)
		}
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI must be set or provided via -mongo")
	}
	cfg.MongoDBName = *dbName
	if cfg.MongoDBName == "" {
		cfg.MongoDBName = database.DatabaseFromURI(cfg.MongoURI, database.DefaultDatabase)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
