// Command etl-warehouse rebuilds the star-schema warehouse and CSV snapshots from MongoDB.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/mohamedhosni23/apple-store-bi-project/common/errors"
	"github.com/mohamedhosni23/apple-store-bi-project/common/logger"
	"github.com/mohamedhosni23/apple-store-bi-project/database"
	"github.com/mohamedhosni23/apple-store-bi-project/models"
	aws_pkg "github.com/mohamedhosni23/apple-store-bi-project/pkg/aws"
	"github.com/mohamedhosni23/apple-store-bi-project/repository"
	"github.com/mohamedhosni23/apple-store-bi-project/services"
	"go.uber.org/zap"
)

const connectAttempts = 5

func main() {
	if err := run(os.Args[1:]); err != nil {
		logger.Error(context.Background(), "ETL failed", err)
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

	cwLogs, cwErr := aws_pkg.NewCloudWatchLogsClient(ctx, "etl-warehouse")
	if cwErr == nil && cwLogs.IsEnabled() {
		logger.InitializeWithWriter(cfg.Env, cwLogs)
	} else {
		logger.Initialize(cfg.Env)
	}
	defer logger.Log.Sync() //nolint:errcheck
	log := logger.Log.With(zap.String("run_id", runID))

	mongoConn, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseConnection, err)
	}
	defer func() {
		if err := mongoConn.Close(); err != nil {
			log.Warn("Mongo disconnect failed", zap.Error(err))
		}
	}()

	var warehouse repository.WarehouseRepo
	if !cfg.SkipLoad {
		db, err := database.ConnectPostgres(cfg.Postgres, log, connectAttempts)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseConnection, err)
		}
		defer database.ClosePostgres(db) //nolint:errcheck
		warehouse = repository.NewGormWarehouseRepository(db)
	}

	exporter := &services.Exporter{Dir: cfg.ExportDir, Bucket: cfg.ExportBucket, Prefix: cfg.ExportPrefix}
	var sns aws_pkg.SNSPublisher
	if cfg.ExportBucket != "" || cfg.SNSTopicArn != "" {
		awsCfg, err := aws_pkg.LoadAWSConfig(ctx)
		if err != nil {
			log.Warn("AWS config unavailable, S3 upload and SNS disabled", zap.Error(err))
		} else {
			exporter.Uploader = aws_pkg.NewS3Uploader(awsCfg)
			sns = aws_pkg.NewSNSClient(awsCfg)
		}
	}
	var metrics aws_pkg.MetricsRecorder
	if m, err := aws_pkg.NewMetricsClient(ctx); err != nil {
		log.Warn("CloudWatch metrics unavailable", zap.Error(err))
	} else {
		metrics = m
	}

	etl := services.NewETLService(services.ETLDeps{
		Users:       repository.NewUserRepository(mongoConn.DB),
		Products:    repository.NewProductRepository(mongoConn.DB),
		Orders:      repository.NewOrderRepository(mongoConn.DB),
		Warehouse:   warehouse,
		Exporter:    exporter,
		SNS:         sns,
		SNSTopicArn: cfg.SNSTopicArn,
		Metrics:     metrics,
		Logger:      log,
	})

	res, err := etl.Run(ctx, services.ETLOptions{
		RunID:     runID,
		SkipLoad:  cfg.SkipLoad,
		BatchSize: cfg.BatchSize,
	})
	if err != nil {
		return fmt.Errorf("etl run %s: %w", runID, err)
	}
	res.Print(os.Stdout)
	if cfg.RunTable != "" {
		recordRun(ctx, cfg.RunTable, res.RunRecord(time.Now()))
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
