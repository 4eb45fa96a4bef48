// Command seed-bi wipes the store and fills it with a synthetic dataset for the BI dashboards.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mohamedhosni23/apple-store-bi-project/catalog"
	apperrors "github.com/mohamedhosni23/apple-store-bi-project/common/errors"
	"github.com/mohamedhosni23/apple-store-bi-project/common/logger"
	"github.com/mohamedhosni23/apple-store-bi-project/database"
	"github.com/mohamedhosni23/apple-store-bi-project/models"
	aws_pkg "github.com/mohamedhosni23/apple-store-bi-project/pkg/aws"
	"github.com/mohamedhosni23/apple-store-bi-project/repository"
	"github.com/mohamedhosni23/apple-store-bi-project/services"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		logger.Error(context.Background(), "Seed failed", err)
		_ = logger.Log.Sync()
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		logger.Initialize("development")
		return err
	}

	runID := uuid.NewString()
	ctx := logger.WithRunID(context.Background(), runID)

	cwLogs, cwErr := aws_pkg.NewCloudWatchLogsClient(ctx, "seed-bi")
	if cwErr == nil && cwLogs.IsEnabled() {
		logger.InitializeWithWriter(cfg.Env, cwLogs)
	} else {
		logger.Initialize(cfg.Env)
	}
	defer logger.Log.Sync() //nolint:errcheck

	mongoConn, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseConnection, err)
	}
	defer func() {
		if err := mongoConn.Close(); err != nil {
			logger.Warn(ctx, "Mongo disconnect failed", zap.Error(err))
		}
	}()
	logger.Info(ctx, "Connected to MongoDB", zap.String("database", cfg.MongoDBName))

	seed := uint64(time.Now().UnixNano())
	if cfg.HasSeed {
		seed = cfg.Seed
	}

	var sns aws_pkg.SNSPublisher
	if cfg.SNSTopicArn != "" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(ctx); err != nil {
			logger.Warn(ctx, "AWS config unavailable, SNS disabled", zap.Error(err))
		} else {
			sns = aws_pkg.NewSNSClient(awsCfg)
		}
	}
	var metrics aws_pkg.MetricsRecorder
	if m, err := aws_pkg.NewMetricsClient(ctx); err != nil {
		logger.Warn(ctx, "CloudWatch metrics unavailable", zap.Error(err))
	} else {
		metrics = m
	}

	seeder := services.NewSeedService(services.SeederDeps{
		Users:       repository.NewUserRepository(mongoConn.DB),
		Products:    repository.NewProductRepository(mongoConn.DB),
		Orders:      repository.NewOrderRepository(mongoConn.DB),
		Hasher:      services.NewBcryptHasher(cfg.BcryptCost),
		Rand:        rand.New(rand.NewPCG(seed, seed>>1)),
		Reference:   catalog.Default(),
		SNS:         sns,
		SNSTopicArn: cfg.SNSTopicArn,
		Metrics:     metrics,
		Logger:      logger.Log.With(zap.String("run_id", runID)),
	})

	logger.Info(ctx, "Seeding store",
		zap.Int("orders", cfg.OrderCount),
		zap.String("from", cfg.StartDate.Format(dateLayout)),
		zap.String("to", cfg.EndDate.Format(dateLayout)),
		zap.Uint64("seed", seed),
	)
	summary, err := seeder.RunSeed(ctx, services.SeedOptions{
		RunID:      runID,
		OrderCount: cfg.OrderCount,
		StartDate:  cfg.StartDate,
		EndDate:    cfg.EndDate,
	})
	if err != nil {
		return fmt.Errorf("seed run %s: %w", runID, err)
	}

	summary.Print(os.Stdout)
	seeder.Announce(ctx, summary)
	if cfg.RunTable != "" {
		recordRun(ctx, cfg.RunTable, summary.RunRecord(time.Now()))
	}
	return nil
}

// recordRun writes the run to the DynamoDB ledger. Failures are logged and never fail the run.
func recordRun(ctx context.Context, table string, rec *models.RunRecord) {
	awsCfg, err := aws_pkg.LoadAWSConfig(ctx)
	if err != nil {
		logger.Warn(ctx, "Run ledger unavailable", zap.Error(err))
		return
	}
	ledger := repository.NewDynamoRunRepository(aws_pkg.NewDynamoClient(awsCfg), table)
	if err := ledger.Record(ctx, rec); err != nil {
		logger.Warn(ctx, "Failed to record run", zap.Error(err))
	}
}
