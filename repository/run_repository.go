package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/mohamedhosni23/apple-store-bi-project/models"
)

var ErrRunNotFound = errors.New("run record not found")

// DynamoAPI is the part of the DynamoDB client the run ledger uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// RunRepo keeps one record per seed or ETL run, keyed by run id.
type RunRepo interface {
	Record(ctx context.Context, run *models.RunRecord) error
	Get(ctx context.Context, runID string) (*models.RunRecord, error)
}

// DynamoRunRepository implements RunRepo using DynamoDB
type DynamoRunRepository struct {
	client DynamoAPI
	table  string
}

func NewDynamoRunRepository(client DynamoAPI, table string) *DynamoRunRepository {
	return &DynamoRunRepository{client: client, table: table}
}

func (r *DynamoRunRepository) Record(ctx context.Context, run *models.RunRecord) error {
	if run == nil || run.RunID == "" {
		return fmt.Errorf("run record needs a run id")
	}
	item, err := attributevalue.MarshalMap(run)
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

func (r *DynamoRunRepository) Get(ctx context.Context, runID string) (*models.RunRecord, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"run_id": runID})
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb GetItem failed: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrRunNotFound
	}

	var run models.RunRecord
	if err := attributevalue.UnmarshalMap(out.Item, &run); err != nil {
		return nil, fmt.Errorf("unmarshal run record: %w", err)
	}
	return &run, nil
}
