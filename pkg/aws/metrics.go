package aws

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metric names published under the BI namespace.
const (
	MetricSeedOrders     = "SeedOrdersCreated"
	MetricSeedUsers      = "SeedUsersCreated"
	MetricSeedProducts   = "SeedProductsCreated"
	MetricSeedRevenue    = "SeedRecognizedRevenue"
	MetricSeedDuration   = "SeedDuration"
	MetricETLFactRows    = "ETLFactRowsLoaded"
	MetricETLDuration    = "ETLDuration"
	MetricHTTPRequests   = "HTTPRequests"
	MetricHTTPLatency    = "HTTPLatency"
	MetricHTTPErrors     = "HTTPErrors"
	MetricKPICacheHits   = "KPICacheHits"
	MetricKPICacheMisses = "KPICacheMisses"
)

// DefaultMetricsNamespace is used when CLOUDWATCH_NAMESPACE is unset.
const DefaultMetricsNamespace = "AppleStoreBI"

// MetricsRecorder is the subset of MetricsClient used by the seeder and ETL.
type MetricsRecorder interface {
	RecordValue(ctx context.Context, metricName string, value float64, dimensions map[string]string) error
	RecordLatency(ctx context.Context, metricName string, duration time.Duration, dimensions map[string]string) error
	IsEnabled() bool
}

type cloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricsClient publishes data points to CloudWatch. Every point carries an
// Environment dimension so dev and prod runs never mix.
type MetricsClient struct {
	client      cloudWatchAPI
	namespace   string
	environment string
	enabled     bool
	now         func() time.Time
}

// NewMetricsClient creates a client that is a no-op unless CLOUDWATCH_ENABLED=true.
func NewMetricsClient(ctx context.Context) (*MetricsClient, error) {
	cfg, err := LoadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	namespace := os.Getenv("CLOUDWATCH_NAMESPACE")
	if namespace == "" {
		namespace = DefaultMetricsNamespace
	}
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	return &MetricsClient{
		client:      cloudwatch.NewFromConfig(cfg),
		namespace:   namespace,
		environment: env,
		enabled:     os.Getenv("CLOUDWATCH_ENABLED") == "true",
		now:         time.Now,
	}, nil
}

// PutMetric sends a single metric data point to CloudWatch
func (m *MetricsClient) PutMetric(ctx context.Context, metricName string, value float64, unit types.StandardUnit, dimensions map[string]string) error {
	if !m.IsEnabled() {
		return nil
	}
	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{{
			MetricName: aws.String(metricName),
			Value:      aws.Float64(value),
			Unit:       unit,
			Timestamp:  aws.Time(m.now()),
			Dimensions: m.dimensions(dimensions),
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to put metric %s: %w", metricName, err)
	}
	return nil
}

// dimensions are sorted by name so identical series serialise identically.
func (m *MetricsClient) dimensions(extra map[string]string) []types.Dimension {
	names := make([]string, 0, len(extra)+1)
	for k := range extra {
		names = append(names, k)
	}
	if _, ok := extra["Environment"]; !ok {
		names = append(names, "Environment")
	}
	sort.Strings(names)

	dims := make([]types.Dimension, 0, len(names))
	for _, k := range names {
		v, ok := extra[k]
		if !ok {
			v = m.environment
		}
		dims = append(dims, types.Dimension{Name: aws.String(k), Value: aws.String(v)})
	}
	return dims
}

// RecordCount records a counter metric
func (m *MetricsClient) RecordCount(ctx context.Context, metricName string, count int, dimensions map[string]string) error {
	return m.PutMetric(ctx, metricName, float64(count), types.StandardUnitCount, dimensions)
}

// RecordLatency records a duration metric in milliseconds
func (m *MetricsClient) RecordLatency(ctx context.Context, metricName string, duration time.Duration, dimensions map[string]string) error {
	return m.PutMetric(ctx, metricName, float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
}

// RecordValue records a generic value metric
func (m *MetricsClient) RecordValue(ctx context.Context, metricName string, value float64, dimensions map[string]string) error {
	return m.PutMetric(ctx, metricName, value, types.StandardUnitNone, dimensions)
}

// IsEnabled returns whether CloudWatch metrics are enabled
func (m *MetricsClient) IsEnabled() bool {
	return m != nil && m.enabled
}
