package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/mohamedhosni23/apple-store-bi-project/models"
	aws_pkg "github.com/mohamedhosni23/apple-store-bi-project/pkg/aws"
	"github.com/mohamedhosni23/apple-store-bi-project/services"
	"go.uber.org/zap"
)

// RefreshConsumer refreshes the dashboard KPIs whenever a seed or ETL run completes.
// It reads the SNS fan-out of those events from an SQS queue.
type RefreshConsumer struct {
	client    aws_pkg.SQSAPI
	queueURL  string
	dashboard services.DashboardService
	logger    *zap.Logger
	waitTime  int32
	backoff   time.Duration
}

func NewRefreshConsumer(client aws_pkg.SQSAPI, queueURL string, dashboard services.DashboardService, logger *zap.Logger) *RefreshConsumer {
	return &RefreshConsumer{
		client:    client,
		queueURL:  queueURL,
		dashboard: dashboard,
		logger:    logger,
		waitTime:  20,
		backoff:   5 * time.Second,
	}
}

func (c *RefreshConsumer) Start(ctx context.Context) {
	c.logger.Info("SQS consumer started", zap.String("queue", c.queueURL))
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("SQS consumer shutting down")
			return
		default:
			if err := c.Poll(ctx); err != nil && ctx.Err() == nil {
				c.logger.Error("SQS receive error", zap.Error(err))
				select {
				case <-ctx.Done():
				case <-time.After(c.backoff):
				}
			}
		}
	}
}

// Poll receives one batch and handles every message in it.
func (c *RefreshConsumer) Poll(ctx context.Context) error {
	output, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(c.queueURL),
		MaxNumberOfMessages: 10,
		WaitTimeSeconds:     c.waitTime,
	})
	if err != nil {
		return err
	}
	for _, msg := range output.Messages {
		c.processMessage(ctx, msg.Body, msg.ReceiptHandle)
	}
	return nil
}

// snsEnvelope unwraps the SNS → SQS message wrapper
type snsEnvelope struct {
	Message string `json:"Message"`
}

type eventHeader struct {
	EventType string `json:"event_type"`
	RunID     string `json:"run_id"`
}

func (c *RefreshConsumer) processMessage(ctx context.Context, body *string, receiptHandle *string) {
	if receiptHandle == nil || *receiptHandle == "" {
		c.logger.Error("received SQS message without receipt handle")
		return
	}
	if body == nil || *body == "" {
		c.logger.Error("received empty SQS message")
		c.deleteMessage(ctx, receiptHandle)
		return
	}

	event, err := decodeEvent([]byte(*body))
	if err != nil {
		c.logger.Error("failed to unmarshal event payload", zap.Error(err))
		c.deleteMessage(ctx, receiptHandle)
		return
	}

	switch event.EventType {
	case models.EventSeedCompleted, models.EventETLCompleted:
		if _, err := c.dashboard.RefreshKPIs(ctx); err != nil {
			// left on the queue; retried after the visibility timeout
			c.logger.Error("failed to refresh KPIs",
				zap.String("event_type", event.EventType),
				zap.String("run_id", event.RunID),
				zap.Error(err),
			)
			return
		}
		c.logger.Info("KPIs refreshed", zap.String("event_type", event.EventType), zap.String("run_id", event.RunID))
	default:
		c.logger.Debug("ignoring event", zap.String("event_type", event.EventType))
	}
	c.deleteMessage(ctx, receiptHandle)
}

// decodeEvent reads the event header from an SNS envelope, or from the body
// itself when the subscription uses raw message delivery.
func decodeEvent(body []byte) (eventHeader, error) {
	var envelope snsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return eventHeader{}, err
	}
	payload := body
	if envelope.Message != "" {
		payload = []byte(envelope.Message)
	}
	var event eventHeader
	if err := json.Unmarshal(payload, &event); err != nil {
		return eventHeader{}, err
	}
	return event, nil
}

func (c *RefreshConsumer) deleteMessage(ctx context.Context, receiptHandle *string) {
	_, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: receiptHandle,
	})
	if err != nil {
		c.logger.Error("failed to delete SQS message", zap.Error(err))
	}
}
