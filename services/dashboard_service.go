package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/mohamedhosni23/apple-store-bi-project/common/errors"
	"github.com/mohamedhosni23/apple-store-bi-project/models"
	aws_pkg "github.com/mohamedhosni23/apple-store-bi-project/pkg/aws"
	"github.com/mohamedhosni23/apple-store-bi-project/repository"
	"go.uber.org/zap"
)

// DefaultDashboardTitle labels the embedded report when none is configured.
const DefaultDashboardTitle = "Apple Store Sousse Analytics"

// DashboardService backs the analytics page.
type DashboardService interface {
	KPIs(ctx context.Context) (*models.KPISummary, error)
	RefreshKPIs(ctx context.Context) (*models.KPISummary, error)
	Embed() (*models.EmbedConfig, error)
}

type dashboardServiceImpl struct {
	orders   repository.OrderRepo
	cache    KPICache
	metrics  aws_pkg.MetricsRecorder
	embedURL string
	title    string
	logger   *zap.Logger
}

// NewDashboardService creates a new DashboardService. cache and metrics may be nil.
func NewDashboardService(orders repository.OrderRepo, cache KPICache, metrics aws_pkg.MetricsRecorder, embedURL, title string, logger *zap.Logger) DashboardService {
	if title == "" {
		title = DefaultDashboardTitle
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dashboardServiceImpl{
		orders:   orders,
		cache:    cache,
		metrics:  metrics,
		embedURL: embedURL,
		title:    title,
		logger:   logger,
	}
}

// KPIs serves the cached summary when there is one. Cache errors fall through to the store.
func (s *dashboardServiceImpl) KPIs(ctx context.Context) (*models.KPISummary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		switch {
		case err == nil:
			s.count(ctx, aws_pkg.MetricKPICacheHits)
			return cached, nil
		case errors.Is(err, ErrCacheMiss):
			s.count(ctx, aws_pkg.MetricKPICacheMisses)
		default:
			s.logger.Warn("KPI cache read failed", zap.Error(err))
		}
	}
	return s.compute(ctx)
}

// RefreshKPIs drops the cached summary and recomputes it.
func (s *dashboardServiceImpl) RefreshKPIs(ctx context.Context) (*models.KPISummary, error) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("KPI cache invalidate failed", zap.Error(err))
		}
	}
	return s.compute(ctx)
}

func (s *dashboardServiceImpl) compute(ctx context.Context) (*models.KPISummary, error) {
	summary, err := s.orders.Summarize(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	summary.TotalRevenue = RoundMoney(summary.TotalRevenue)
	if s.cache != nil {
		if err := s.cache.Set(ctx, summary); err != nil {
			s.logger.Warn("KPI cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

// Embed returns the hosted report to frame, or a service-unavailable error when none is set.
func (s *dashboardServiceImpl) Embed() (*models.EmbedConfig, error) {
	if s.embedURL == "" {
		return nil, apperrors.Wrap(apperrors.ErrServiceUnavailable, fmt.Errorf("no dashboard embed url configured"))
	}
	return &models.EmbedConfig{EmbedURL: s.embedURL, Title: s.title}, nil
}

func (s *dashboardServiceImpl) count(ctx context.Context, metric string) {
	if s.metrics == nil || !s.metrics.IsEnabled() {
		return
	}
	if err := s.metrics.RecordValue(ctx, metric, 1, nil); err != nil {
		s.logger.Debug("Failed to record cache metric", zap.Error(err))
	}
}
