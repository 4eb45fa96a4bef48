package aws

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
}

func (f *fakeCloudWatch) PutMetricData(_ context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, in)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func newTestMetrics(enabled bool) (*MetricsClient, *fakeCloudWatch) {
	api := &fakeCloudWatch{}
	return &MetricsClient{
		client:      api,
		namespace:   "AppleStoreBI",
		environment: "test",
		enabled:     enabled,
		now:         func() time.Time { return time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC) },
	}, api
}

func TestMetricsClient_AddsEnvironmentAndSortsDimensions(t *testing.T) {
	m, api := newTestMetrics(true)

	require.NoError(t, m.RecordLatency(context.Background(), MetricSeedDuration, 1500*time.Millisecond, map[string]string{"Tool": "seed-bi"}))

	require.Len(t, api.inputs, 1)
	datum := api.inputs[0].MetricData[0]
	assert.Equal(t, "AppleStoreBI", aws.ToString(api.inputs[0].Namespace))
	assert.Equal(t, MetricSeedDuration, aws.ToString(datum.MetricName))
	assert.Equal(t, 1500.0, aws.ToFloat64(datum.Value))
	assert.Equal(t, types.StandardUnitMilliseconds, datum.Unit)
	require.Len(t, datum.Dimensions, 2)
	assert.Equal(t, "Environment", aws.ToString(datum.Dimensions[0].Name))
	assert.Equal(t, "test", aws.ToString(datum.Dimensions[0].Value))
	assert.Equal(t, "Tool", aws.ToString(datum.Dimensions[1].Name))
}

func TestMetricsClient_DisabledSendsNothing(t *testing.T) {
	m, api := newTestMetrics(false)

	require.NoError(t, m.RecordCount(context.Background(), MetricHTTPRequests, 1, nil))

	assert.Empty(t, api.inputs)
	var nilClient *MetricsClient
	assert.False(t, nilClient.IsEnabled())
}
