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
	"tripplanner.app/models"
)

// ItineraryRepository handles data access operations for itineraries
type ItineraryRepository struct {
	collection *mongo.Collection
}

// NewItineraryRepository creates a new repository for itinerary documents
func NewItineraryRepository(db *mongo.Database) *ItineraryRepository {
	return &ItineraryRepository{collection: db.Collection(database.ItineraryCollection)}
}

// Insert persists a new itinerary and returns its generated id
func (r *ItineraryRepository) Insert(ctx context.Context, itinerary *models.Itinerary) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, itinerary)
	if err != nil {
		return primitive.NilObjectID, errors.NewDatabaseError("failed to insert itinerary", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	slog.Debug("itinerary inserted", "id", id.Hex())
	return id, nil
}

// Find retrieves itineraries sorted by creation time descending with pagination
func (r *ItineraryRepository) Find(ctx context.Context, skip, limit int64) ([]models.Itinerary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query itineraries", err)
	}
	defer func() {
		if closeErr := cursor.Close(ctx); closeErr != nil {
			slog.Warn("close itineraries cursor", "error", closeErr)
		}
	}()

	var itineraries []models.Itinerary
	if err := cursor.All(ctx, &itineraries); err != nil {
		return nil, errors.NewDatabaseError("failed to decode itineraries", err)
	}
	return itineraries, nil
}

// FindByID retrieves a single itinerary, nil when absent
func (r *ItineraryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Itinerary, error) {
	var itinerary models.Itinerary
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&itinerary)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.NewDatabaseError("failed to find itinerary", err)
	}
	return &itinerary, nil
}

// DeleteByID removes a single itinerary document
func (r *ItineraryRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, errors.NewDatabaseError("failed to delete itinerary", err)
	}
	return result.DeletedCount, nil
}
