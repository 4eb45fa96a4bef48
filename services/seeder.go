package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/mohamedhosni23/apple-store-bi-project/catalog"
	apperrors "github.com/mohamedhosni23/apple-store-bi-project/common/errors"
	"github.com/mohamedhosni23/apple-store-bi-project/models"
	aws_pkg "github.com/mohamedhosni23/apple-store-bi-project/pkg/aws"
	"github.com/mohamedhosni23/apple-store-bi-project/repository"
	"go.uber.org/zap"
)

// DefaultOrderCount is how many orders a seed run creates when not told otherwise.
const DefaultOrderCount = 500

// Default order window: the store's first year of trading.
var (
	DefaultStartDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	DefaultEndDate   = time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)
)

// SeedOptions controls one seed run.
type SeedOptions struct {
	RunID      string
	OrderCount int
	StartDate  time.Time
	EndDate    time.Time
}

// SeedService rebuilds the store with synthetic data.
type SeedService interface {
	ResetStore(ctx context.Context) error
	LoadBaseEntities(ctx context.Context, ref catalog.Reference) ([]models.User, []models.Product, error)
	RunSeed(ctx context.Context, opts SeedOptions) (*Summary, error)
	Announce(ctx context.Context, summary *Summary)
}

type seedServiceImpl struct {
	users       repository.UserRepo
	products    repository.ProductRepo
	orders      repository.OrderRepo
	hasher      PasswordHasher
	generator   *Generator
	reference   catalog.Reference
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	metrics     aws_pkg.MetricsRecorder
	now         func() time.Time
	logger      *zap.Logger
}

// SeederDeps collects what a seed service needs. SNS and Metrics are optional.
type SeederDeps struct {
	Users       repository.UserRepo
	Products    repository.ProductRepo
	Orders      repository.OrderRepo
	Hasher      PasswordHasher
	Rand        Rand
	Now         func() time.Time
	Reference   catalog.Reference
	SNS         aws_pkg.SNSPublisher
	SNSTopicArn string
	Metrics     aws_pkg.MetricsRecorder
	Logger      *zap.Logger
}

// NewSeedService creates a new SeedService.
func NewSeedService(d SeederDeps) SeedService {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewPCG(uint64(d.Now().UnixNano()), 0))
	}
	if d.Hasher == nil {
		d.Hasher = NewBcryptHasher(DefaultBcryptCost)
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &seedServiceImpl{
		users:       d.Users,
		products:    d.Products,
		orders:      d.Orders,
		hasher:      d.Hasher,
		generator:   NewGenerator(d.Rand, d.Now, d.Reference.Locations, d.Reference.Streets),
		reference:   d.Reference,
		snsClient:   d.SNS,
		snsTopicArn: d.SNSTopicArn,
		metrics:     d.Metrics,
		now:         d.Now,
		logger:      d.Logger,
	}
}

// ResetStore empties users, products and orders. Running it on an empty store is a no-op.
func (s *seedServiceImpl) ResetStore(ctx context.Context) error {
	users, err := s.users.DeleteAll(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	products, err := s.products.DeleteAll(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	orders, err := s.orders.DeleteAll(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	s.logger.Info("Store reset",
		zap.Int64("users_deleted", users),
		zap.Int64("products_deleted", products),
		zap.Int64("orders_deleted", orders),
	)
	return nil
}

// LoadBaseEntities hashes the reference credentials, then inserts users and the product catalog.
func (s *seedServiceImpl) LoadBaseEntities(ctx context.Context, ref catalog.Reference) ([]models.User, []models.Product, error) {
	seeds := ref.Users
	plains := make([]string, len(seeds))
	for i, u := range seeds {
		plains[i] = u.Password
	}
	hashes, err := HashAll(ctx, s.hasher, plains)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	toInsert := make([]models.User, len(seeds))
	for i, u := range seeds {
		toInsert[i] = models.User{
			Name:     u.Name,
			Email:    u.Email,
			Password: hashes[i],
			IsAdmin:  u.IsAdmin,
		}
	}
	users, err := s.users.InsertMany(ctx, toInsert)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	s.logger.Info("Users created", zap.Int("count", len(users)))

	products, err := s.products.InsertMany(ctx, ref.Products)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	s.logger.Info("Products created", zap.Int("count", len(products)))

	return users, products, nil
}

// RunSeed resets the store, loads the base entities and inserts opts.OrderCount orders.
func (s *seedServiceImpl) RunSeed(ctx context.Context, opts SeedOptions) (*Summary, error) {
	started := s.now()
	if opts.OrderCount < 0 {
		return nil, apperrors.Wrap(apperrors.ErrValidation, fmt.Errorf("order count %d is negative", opts.OrderCount))
	}
	if opts.StartDate.IsZero() {
		opts.StartDate = DefaultStartDate
	}
	if opts.EndDate.IsZero() {
		opts.EndDate = DefaultEndDate
	}

	if err := s.ResetStore(ctx); err != nil {
		return nil, err
	}
	if err := s.users.EnsureIndexes(ctx); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	if err := s.orders.EnsureSchema(ctx); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}

	users, products, err := s.LoadBaseEntities(ctx, s.reference)
	if err != nil {
		return nil, err
	}

	orders, err := s.generator.GenerateOrders(models.Customers(users), products, opts.OrderCount, opts.StartDate, opts.EndDate)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, err)
	}
	for i := range orders {
		if err := orders[i].Validate(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrValidation, fmt.Errorf("order %d: %w", i, err))
		}
	}

	persisted, err := s.orders.InsertMany(ctx, orders)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	s.logger.Info("Orders created", zap.Int("count", len(persisted)))

	summary := Summarize(users, products, persisted)
	summary.RunID = opts.RunID
	summary.Duration = s.now().Sub(started)
	return &summary, nil
}

// Announce publishes the completion event and seed metrics. Failures are logged, never returned.
func (s *seedServiceImpl) Announce(ctx context.Context, summary *Summary) {
	if summary == nil {
		return
	}
	s.publishEvent(ctx, models.SeedCompletedEvent{
		EventType: models.EventSeedCompleted,
		RunID:     summary.RunID,
		Users:     summary.Users,
		Products:  summary.Products,
		Orders:    summary.Orders,
		Revenue:   summary.Revenue,
		Timestamp: s.now().UTC(),
	})
	s.recordMetrics(ctx, summary)
}

func (s *seedServiceImpl) publishEvent(ctx context.Context, event models.SeedCompletedEvent) {
	if s.snsClient == nil || s.snsTopicArn == "" {
		s.logger.Debug("SNS not configured, skipping event publish")
		return
	}
	if err := s.snsClient.PublishEvent(ctx, s.snsTopicArn, event.EventType, event); err != nil {
		s.logger.Warn("Failed to publish SNS event", zap.Error(err))
		return
	}
	s.logger.Info("Published SNS event", zap.String("topic", s.snsTopicArn))
}

func (s *seedServiceImpl) recordMetrics(ctx context.Context, summary *Summary) {
	if s.metrics == nil || !s.metrics.IsEnabled() {
		return
	}
	dims := map[string]string{"Tool": "seed-bi"}
	errs := []error{
		s.metrics.RecordValue(ctx, aws_pkg.MetricSeedOrders, float64(summary.Orders), dims),
		s.metrics.RecordValue(ctx, aws_pkg.MetricSeedUsers, float64(summary.Users), dims),
		s.metrics.RecordValue(ctx, aws_pkg.MetricSeedProducts, float64(summary.Products), dims),
		s.metrics.RecordValue(ctx, aws_pkg.MetricSeedRevenue, summary.Revenue, dims),
		s.metrics.RecordLatency(ctx, aws_pkg.MetricSeedDuration, summary.Duration, dims),
	}
	if err := errors.Join(errs...); err != nil {
		s.logger.Warn("Failed to record seed metrics", zap.Error(err))
	}
}
