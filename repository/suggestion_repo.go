// Package repository implements data access layer for the application
package repository

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"tripplanner.app/database"
	"tripplanner.app/errors"
)

// SuggestionRepository handles data access operations for suggested trips.
// Documents are exposed as raw bson maps because stored records may predate
// the array-field normalization and carry heterogeneous field shapes.
type SuggestionRepository struct {
	collection *mongo.Collection
}

// NewSuggestionRepository creates a new repository for suggestion documents
func NewSuggestionRepository(db *mongo.Database) *SuggestionRepository {
	return &SuggestionRepository{collection: db.Collection(database.SuggestionsCollection)}
}

// Find retrieves documents matching filter, sorted by rating descending,
// with the given pagination window applied
func (r *SuggestionRepository) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]bson.M, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query suggestions", err)
	}
	defer func() {
		if closeErr := cursor.Close(ctx); closeErr != nil {
			slog.Warn("close suggestions cursor", "error", closeErr)
		}
	}()

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.NewDatabaseError("failed to decode suggestions", err)
	}
	return docs, nil
}

// FindAll retrieves every suggestion document, used by maintenance migrations
func (r *SuggestionRepository) FindAll(ctx context.Context) ([]bson.M, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query suggestions", err)
	}
	defer func() {
		if closeErr := cursor.Close(ctx); closeErr != nil {
			slog.Warn("close suggestions cursor", "error", closeErr)
		}
	}()

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.NewDatabaseError("failed to decode suggestions", err)
	}
	return docs, nil
}

// FindByID retrieves a single suggestion document, nil when absent
func (r *SuggestionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	var doc bson.M
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.NewDatabaseError("failed to find suggestion", err)
	}
	return doc, nil
}

// Count returns the number of documents matching filter
func (r *SuggestionRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to count suggestions", err)
	}
	return count, nil
}

// InsertOne persists a single suggestion document and returns its generated id
func (r *SuggestionRepository) InsertOne(ctx context.Context, doc interface{}) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, errors.NewDatabaseError("failed to insert suggestion", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	slog.Debug("suggestion inserted", "id", id.Hex())
	return id, nil
}

// InsertMany persists a batch of suggestion documents and returns generated ids
func (r *SuggestionRepository) InsertMany(ctx context.Context, docs []interface{}) ([]primitive.ObjectID, error) {
	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to insert suggestions", err)
	}

	ids := make([]primitive.ObjectID, 0, len(result.InsertedIDs))
	for _, inserted := range result.InsertedIDs {
		if id, ok := inserted.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	slog.Debug("suggestions inserted", "count", len(ids))
	return ids, nil
}

// UpdateByID applies a $set update to a single document and reports whether it matched
func (r *SuggestionRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, errors.NewDatabaseError("failed to update suggestion", err)
	}
	return result.MatchedCount, nil
}

// DeleteByID removes a single suggestion document
func (r *SuggestionRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, errors.NewDatabaseError("failed to delete suggestion", err)
	}
	return result.DeletedCount, nil
}

// DeleteAll removes every suggestion document and returns the deleted count
func (r *SuggestionRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, errors.NewDatabaseError("failed to clear suggestions", err)
	}
	slog.Info("suggestions cleared", "deleted", result.DeletedCount)
	return result.DeletedCount, nil
}
