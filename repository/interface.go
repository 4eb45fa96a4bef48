package repository

import (
	"context"

	"github.com/mohamedhosni23/apple-store-bi-project/models"
)

// UserRepo is the users collection as seen by the seeder and ETL.
type UserRepo interface {
	DeleteAll(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, users []models.User) ([]models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	EnsureIndexes(ctx context.Context) error
}

// ProductRepo is the products collection as seen by the seeder and ETL.
type ProductRepo interface {
	DeleteAll(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, products []models.Product) ([]models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
}

// OrderRepo is the orders collection.
type OrderRepo interface {
	DeleteAll(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, orders []models.Order) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	EnsureSchema(ctx context.Context) error
	Summarize(ctx context.Context) (*models.KPISummary, error)
}

// WarehouseRepo is the star-schema analytics warehouse.
type WarehouseRepo interface {
	ResetSchema(ctx context.Context) error
	Load(ctx context.Context, schema *models.StarSchema, batchSize int) error
	Report(ctx context.Context, topN int) (*models.WarehouseReport, error)
}
