// Package database manages the document store connection lifecycle
package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"tripplanner.app/config"
	"tripplanner.app/errors"
)

// Collection names used by the application
const (
	ItineraryCollection   = "itineraries"
	SuggestionsCollection = "suggested_trips"
)

const connectTimeout = 10 * time.Second

// InitDB establishes a connection to the document store and verifies it with a ping
func InitDB(cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, errors.NewDatabaseError("failed to connect to document store", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, errors.NewDatabaseError("document store ping failed", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the query indexes both collections rely on.
// Index creation failure is reported but is not fatal to startup.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	itineraryIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "destination", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection(ItineraryCollection).Indexes().CreateMany(ctx, itineraryIndexes); err != nil {
		return errors.NewDatabaseError("failed to create itinerary indexes", err)
	}

	suggestionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "destination", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}
	if _, err := db.Collection(SuggestionsCollection).Indexes().CreateMany(ctx, suggestionIndexes); err != nil {
		return errors.NewDatabaseError("failed to create suggestion indexes", err)
	}

	return nil
}

// CloseDB closes the document store connection
func CloseDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return errors.NewDatabaseError("failed to close document store connection", err)
	}
	return nil
}
