package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mohamedhosni23/apple-store-bi-project/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const OrdersCollection = "orders"

// namespaceExists is the server code returned when creating a collection that already exists.
const namespaceExists = 48

type OrderRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
	now        func() time.Time
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		db:         db,
		collection: db.Collection(OrdersCollection),
		now:        time.Now,
	}
}

func (r *OrderRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete orders: %w", err)
	}
	return res.DeletedCount, nil
}

// InsertMany bulk-inserts orders in one ordered batch. Orders keep their own createdAt.
func (r *OrderRepository) InsertMany(ctx context.Context, orders []models.Order) ([]models.Order, error) {
	if len(orders) == 0 {
		return nil, nil
	}
	now := r.now().UTC()
	out := make([]models.Order, len(orders))
	docs := make([]interface{}, len(orders))
	for i, o := range orders {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		if o.CreatedAt.IsZero() {
			o.CreatedAt = now
		}
		if o.UpdatedAt.IsZero() {
			o.UpdatedAt = o.CreatedAt
		}
		out[i] = o
		docs[i] = o
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("insert orders: %w", err)
	}
	return out, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// OrderValidator is the $jsonSchema the server applies to every order write.
func OrderValidator() bson.M {
	statuses := make(bson.A, 0, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		statuses = append(statuses, string(s))
	}
	methods := make(bson.A, 0, len(models.PaymentMethods))
	for _, m := range models.PaymentMethods {
		methods = append(methods, string(m))
	}
	money := bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0}

	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"user", "orderItems", "shippingAddress", "paymentMethod",
			"taxPrice", "shippingPrice", "totalPrice", "isPaid", "isDelivered", "status"},
		"properties": bson.M{
			"user":          bson.M{"bsonType": "objectId"},
			"status":        bson.M{"enum": statuses},
			"paymentMethod": bson.M{"enum": methods},
			"taxPrice":      money,
			"shippingPrice": money,
			"totalPrice":    money,
			"isPaid":        bson.M{"bsonType": "bool"},
			"isDelivered":   bson.M{"bsonType": "bool"},
			"orderItems": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": bson.A{"product", "name", "image", "price", "quantity"},
					"properties": bson.M{
						"product":  bson.M{"bsonType": "objectId"},
						"price":    money,
						"quantity": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1},
					},
				},
			},
			"shippingAddress": bson.M{
				"bsonType": "object",
				"required": bson.A{"address", "city", "postalCode", "country", "governorate"},
			},
		},
	}}
}

// EnsureSchema installs the order validator, creating the collection when missing.
func (r *OrderRepository) EnsureSchema(ctx context.Context) error {
	validator := OrderValidator()
	err := r.db.CreateCollection(ctx, OrdersCollection, options.CreateCollection().SetValidator(validator))
	if err == nil {
		return nil
	}
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != namespaceExists {
		return fmt.Errorf("create orders collection: %w", err)
	}
	res := r.db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: OrdersCollection},
		{Key: "validator", Value: validator},
	})
	if err := res.Err(); err != nil {
		return fmt.Errorf("update orders validator: %w", err)
	}
	return nil
}

// Summarize computes the dashboard headline numbers.
func (r *OrderRepository) Summarize(ctx context.Context) (*models.KPISummary, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	customers, err := r.collection.Distinct(ctx, "user", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct order customers: %w", err)
	}

	paid := bson.A{}
	for _, s := range models.OrderStatuses {
		if s.IsPaid() {
			paid = append(paid, string(s))
		}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$in": paid}}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"revenue": bson.M{"$sum": "$totalPrice"},
			"units":   bson.M{"$sum": bson.M{"$sum": "$orderItems.quantity"}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate order revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Revenue float64 `bson:"revenue"`
		Units   int64   `bson:"units"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode order revenue: %w", err)
	}

	summary := &models.KPISummary{
		TotalOrders:     total,
		ActiveCustomers: int64(len(customers)),
		GeneratedAt:     r.now().UTC(),
	}
	if len(rows) > 0 {
		summary.TotalRevenue = rows[0].Revenue
		summary.ProductsSold = rows[0].Units
	}
	return summary, nil
}
