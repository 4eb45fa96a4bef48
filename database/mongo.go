package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabase is used when neither the URI nor the config names a database.
const DefaultDatabase = "applestoresousse"

// Mongo is an open connection and the database the binary works against.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// DatabaseFromURI returns the database named in the URI path, or fallback.
func DatabaseFromURI(uri, fallback string) string {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil || cs.Database == "" {
		return fallback
	}
	return cs.Database
}

// ConnectMongo connects to MongoDB using the provided URI and database name and verifies the
// connection with a ping.
func ConnectMongo(ctx context.Context, mongoURL, dbName string) (*Mongo, error) {
	if mongoURL == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(timeoutCtx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(timeoutCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	if dbName == "" {
		dbName = DatabaseFromURI(mongoURL, DefaultDatabase)
	}
	return &Mongo{Client: client, DB: client.Database(dbName)}, nil
}

// Close disconnects from MongoDB
func (m *Mongo) Close() error {
	if m == nil || m.Client == nil {
		return nil
	}
	disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(disconnectCtx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
