package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mohamedhosni23/apple-store-bi-project/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ProductsCollection = "products"

type ProductRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(ProductsCollection),
		now:        time.Now,
	}
}

func (r *ProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	return res.DeletedCount, nil
}

// InsertMany stores the catalog verbatim, adding only ids and timestamps.
func (r *ProductRepository) InsertMany(ctx context.Context, products []models.Product) ([]models.Product, error) {
	if len(products) == 0 {
		return nil, nil
	}
	now := r.now().UTC()
	out := make([]models.Product, len(products))
	docs := make([]interface{}, len(products))
	for i, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}
		out[i] = p
		docs[i] = p
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("insert products: %w", err)
	}
	return out, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
