// Package mongodb is the document-store adapter. One Store instance is built
// at startup and injected into every service; there is no ambient global
// connection.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collUsers       = "users"
	collRestaurants = "restaurants"
	collInventory   = "inventory"
	collDishes      = "dishes"
	collSales       = "daily_sales"
	collWaste       = "waste"
	collProfitLoss  = "profit_loss"
	collHistory     = "history_dishes"
)

// Store implements every repository interface the services consume.
type Store struct {
	client *mongo.Client
	dbName string
}

// New connects to MongoDB, verifies the connection and ensures indexes.
func New(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &Store{client: client, dbName: dbName}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	return s, nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) coll(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		collUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		collRestaurants: {
			{Keys: bson.D{{Key: "owner", Value: 1}}},
		},
		collInventory: {
			{Keys: bson.D{
				{Key: "restaurant", Value: 1},
				{Key: "itemName", Value: 1},
				{Key: "purchaseDate", Value: 1},
			}},
		},
		collDishes: {
			{Keys: bson.D{{Key: "restaurant", Value: 1}}},
			// TTL on ephemeral dishes: the store drops them once
			// ephemeralExpiresAt passes.
			{
				Keys:    bson.D{{Key: "ephemeralExpiresAt", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(0),
			},
		},
		collSales: {
			{Keys: bson.D{{Key: "restaurant", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		collWaste: {
			{Keys: bson.D{{Key: "restaurant", Value: 1}, {Key: "date", Value: 1}}},
		},
		collProfitLoss: {
			{Keys: bson.D{{Key: "restaurant", Value: 1}, {Key: "date", Value: 1}}},
		},
		collHistory: {
			{Keys: bson.D{{Key: "restaurant", Value: 1}, {Key: "dishId", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := s.coll(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// now returns the wall-clock time used for createdAt/updatedAt stamps,
// truncated to milliseconds to match BSON datetime precision.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
