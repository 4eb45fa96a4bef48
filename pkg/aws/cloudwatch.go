package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// DefaultLogGroup is used when CLOUDWATCH_LOG_GROUP is unset.
const DefaultLogGroup = "/apple-store-bi"

// logBatchSize bounds how many lines are buffered before a PutLogEvents call.
const logBatchSize = 50

type cloudWatchLogsAPI interface {
	CreateLogGroup(ctx context.Context, params *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	CreateLogStream(ctx context.Context, params *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutLogEvents(ctx context.Context, params *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
}

// CloudWatchLogsClient buffers log lines and ships them to one stream per process.
// It is a zapcore.WriteSyncer: the logger's Sync flushes whatever is pending.
type CloudWatchLogsClient struct {
	client  cloudWatchLogsAPI
	group   string
	stream  string
	enabled bool
	now     func() time.Time

	mu      sync.Mutex
	pending []types.InputLogEvent
}

// NewCloudWatchLogsClient creates the stream "<binary>-<unix time>" in the configured
// group. Disabled unless CLOUDWATCH_ENABLED=true.
func NewCloudWatchLogsClient(ctx context.Context, binaryName string) (*CloudWatchLogsClient, error) {
	cfg, err := LoadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	group := os.Getenv("CLOUDWATCH_LOG_GROUP")
	if group == "" {
		group = DefaultLogGroup
	}
	c := &CloudWatchLogsClient{
		client:  cloudwatchlogs.NewFromConfig(cfg),
		group:   group,
		stream:  fmt.Sprintf("%s-%d", binaryName, time.Now().Unix()),
		enabled: os.Getenv("CLOUDWATCH_ENABLED") == "true",
		now:     time.Now,
	}
	if !c.enabled {
		return c, nil
	}
	if err := c.createStream(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CloudWatchLogsClient) createStream(ctx context.Context) error {
	var exists *types.ResourceAlreadyExistsException
	_, err := c.client.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{LogGroupName: aws.String(c.group)})
	if err != nil && !errors.As(err, &exists) {
		return fmt.Errorf("create log group %s: %w", c.group, err)
	}
	_, err = c.client.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(c.group),
		LogStreamName: aws.String(c.stream),
	})
	if err != nil && !errors.As(err, &exists) {
		return fmt.Errorf("create log stream %s: %w", c.stream, err)
	}
	return nil
}

// Write buffers one encoded entry. A full buffer is flushed before returning.
func (c *CloudWatchLogsClient) Write(p []byte) (int, error) {
	if !c.IsEnabled() {
		return len(p), nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = append(c.pending, types.InputLogEvent{
		Message:   aws.String(string(p)),
		Timestamp: aws.Int64(c.now().UnixMilli()),
	})
	if len(c.pending) >= logBatchSize {
		c.flushLocked()
	}
	return len(p), nil
}

// Sync flushes buffered entries. Delivery errors go to stderr so logging never fails the caller.
func (c *CloudWatchLogsClient) Sync() error {
	if !c.IsEnabled() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushLocked()
	return nil
}

func (c *CloudWatchLogsClient) flushLocked() {
	if len(c.pending) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.client.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  aws.String(c.group),
		LogStreamName: aws.String(c.stream),
		LogEvents:     c.pending,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cloudwatch logs: dropped %d entries: %v\n", len(c.pending), err)
	}
	c.pending = nil
}

// IsEnabled returns whether CloudWatch logging is enabled
func (c *CloudWatchLogsClient) IsEnabled() bool {
	return c != nil && c.enabled
}
