package services

import (
	"context"
	"fmt"
	"io"
	"time"

	apperrors "github.com/mohamedhosni23/apple-store-bi-project/common/errors"
	"github.com/mohamedhosni23/apple-store-bi-project/models"
	aws_pkg "github.com/mohamedhosni23/apple-store-bi-project/pkg/aws"
	"github.com/mohamedhosni23/apple-store-bi-project/repository"
	"go.uber.org/zap"
)

// DefaultTopN is how many categories and products the validation report ranks.
const DefaultTopN = 5

// ETLOptions controls one warehouse rebuild.
type ETLOptions struct {
	RunID     string
	SkipLoad  bool
	BatchSize int
	TopN      int
}

// ETLResult is what a warehouse rebuild produced.
type ETLResult struct {
	RunID     string
	Extracted map[string]int
	Rows      map[string]int64
	Report    *models.WarehouseReport
	Export    *ExportResult
	Duration  time.Duration
}

// ETLService rebuilds the analytics warehouse from the operational store.
type ETLService interface {
	Run(ctx context.Context, opts ETLOptions) (*ETLResult, error)
}

type etlServiceImpl struct {
	users       repository.UserRepo
	products    repository.ProductRepo
	orders      repository.OrderRepo
	warehouse   repository.WarehouseRepo
	exporter    *Exporter
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	metrics     aws_pkg.MetricsRecorder
	now         func() time.Time
	logger      *zap.Logger
}

// ETLDeps collects what an ETL service needs. Warehouse may be nil when loads are skipped.
type ETLDeps struct {
	Users       repository.UserRepo
	Products    repository.ProductRepo
	Orders      repository.OrderRepo
	Warehouse   repository.WarehouseRepo
	Exporter    *Exporter
	SNS         aws_pkg.SNSPublisher
	SNSTopicArn string
	Metrics     aws_pkg.MetricsRecorder
	Now         func() time.Time
	Logger      *zap.Logger
}

// NewETLService creates a new ETLService.
func NewETLService(d ETLDeps) ETLService {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &etlServiceImpl{
		users:       d.Users,
		products:    d.Products,
		orders:      d.Orders,
		warehouse:   d.Warehouse,
		exporter:    d.Exporter,
		snsClient:   d.SNS,
		snsTopicArn: d.SNSTopicArn,
		metrics:     d.Metrics,
		now:         d.Now,
		logger:      d.Logger,
	}
}

// Run extracts, transforms, loads, validates and exports.
func (s *etlServiceImpl) Run(ctx context.Context, opts ETLOptions) (*ETLResult, error) {
	started := s.now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = repository.DefaultBatchSize
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	s.logger.Info("Extracted operational data",
		zap.Int("users", len(users)),
		zap.Int("products", len(products)),
		zap.Int("orders", len(orders)),
	)

	schema := Transform(users, products, orders)
	res := &ETLResult{
		RunID:     opts.RunID,
		Extracted: map[string]int{"users": len(users), "products": len(products), "orders": len(orders)},
		Rows: map[string]int64{
			"dim_customer": int64(len(schema.Customers)),
			"dim_product":  int64(len(schema.Products)),
			"dim_time":     int64(len(schema.Times)),
			"dim_location": int64(len(schema.Locations)),
			"fact_sales":   int64(len(schema.Sales)),
		},
	}
	s.logger.Info("Transformed star schema",
		zap.Int("customers", len(schema.Customers)),
		zap.Int("products", len(schema.Products)),
		zap.Int("dates", len(schema.Times)),
		zap.Int("locations", len(schema.Locations)),
		zap.Int("sales", len(schema.Sales)),
	)

	if !opts.SkipLoad {
		if s.warehouse == nil {
			return nil, apperrors.Wrap(apperrors.ErrDatabaseConnection, fmt.Errorf("no warehouse configured"))
		}
		if err := s.warehouse.ResetSchema(ctx); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
		}
		if err := s.warehouse.Load(ctx, schema, opts.BatchSize); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
		}
		report, err := s.warehouse.Report(ctx, opts.TopN)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
		}
		res.Report = report
		res.Rows = report.TableCounts
		s.logger.Info("Warehouse loaded", zap.Int64("fact_sales", report.TableCounts["fact_sales"]))
	}

	if s.exporter != nil {
		exp, err := s.exporter.Export(ctx, schema)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		res.Export = exp
		s.logger.Info("Exported CSV snapshots", zap.Int("files", len(exp.Files)), zap.Int("uploaded", len(exp.Uploaded)))
	}

	res.Duration = s.now().Sub(started)
	s.announce(ctx, res)
	return res, nil
}

func (s *etlServiceImpl) announce(ctx context.Context, res *ETLResult) {
	if s.snsClient != nil && s.snsTopicArn != "" {
		event := models.ETLCompletedEvent{
			EventType: models.EventETLCompleted,
			RunID:     res.RunID,
			Rows:      res.Rows,
			Timestamp: s.now().UTC(),
		}
		if res.Export != nil {
			event.Uploaded = len(res.Export.Uploaded)
			if s.exporter != nil {
				event.ExportDir = s.exporter.Dir
			}
		}
		if err := s.snsClient.PublishEvent(ctx, s.snsTopicArn, event.EventType, event); err != nil {
			s.logger.Warn("Failed to publish SNS event", zap.Error(err))
		}
	}

	if s.metrics == nil || !s.metrics.IsEnabled() {
		return
	}
	dims := map[string]string{"Tool": "etl-warehouse"}
	if err := s.metrics.RecordValue(ctx, aws_pkg.MetricETLFactRows, float64(res.Rows["fact_sales"]), dims); err != nil {
		s.logger.Warn("Failed to record ETL metric", zap.Error(err))
	}
	if err := s.metrics.RecordLatency(ctx, aws_pkg.MetricETLDuration, res.Duration, dims); err != nil {
		s.logger.Warn("Failed to record ETL metric", zap.Error(err))
	}
}

// Print writes the validation report the way the ETL tool shows it.
func (r *ETLResult) Print(w io.Writer) {
	fmt.Fprintln(w, "Warehouse summary")
	for _, name := range repository.WarehouseTableNames() {
		fmt.Fprintf(w, "  %-13s %d rows\n", name+":", r.Rows[name])
	}
	if r.Report != nil {
		fmt.Fprintf(w, "  Paid revenue: %.2f TND\n", r.Report.PaidRevenue)
		fmt.Fprintln(w, "  Top categories by revenue:")
		for _, c := range r.Report.TopCategories {
			fmt.Fprintf(w, "    %s: %.2f TND\n", c.Category, c.Revenue)
		}
		fmt.Fprintln(w, "  Top products by units:")
		for _, p := range r.Report.TopProducts {
			fmt.Fprintf(w, "    %s: %d units\n", p.ProductName, p.UnitsSold)
		}
	}
	if r.Export != nil {
		for _, f := range r.Export.Files {
			fmt.Fprintf(w, "  Exported %s\n", f)
		}
		for _, k := range r.Export.Uploaded {
			fmt.Fprintf(w, "  Uploaded %s\n", k)
		}
	}
	if r.Duration > 0 {
		fmt.Fprintf(w, "  Duration: %s\n", r.Duration.Round(time.Millisecond))
	}
}

// RunRecord is the ledger entry for this ETL run.
func (r *ETLResult) RunRecord(finishedAt time.Time) *models.RunRecord {
	counts := make(map[string]int64, len(r.Rows))
	for k, v := range r.Rows {
		counts[k] = v
	}
	rec := &models.RunRecord{
		RunID:      r.RunID,
		Kind:       models.RunKindETL,
		FinishedAt: finishedAt.UTC(),
		DurationMS: r.Duration.Milliseconds(),
		Counts:     counts,
	}
	if r.Report != nil {
		rec.Revenue = r.Report.PaidRevenue
	}
	return rec
}
