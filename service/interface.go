package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"tripplanner.app/models"
)

// SuggestionRepositoryInterface defines data access operations for suggestions
type SuggestionRepositoryInterface interface {
	Find(ctx context.Context, filter bson.M, skip, limit int64) ([]bson.M, error)
	FindAll(ctx context.Context) ([]bson.M, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (bson.M, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	InsertOne(ctx context.Context, doc interface{}) (primitive.ObjectID, error)
	InsertMany(ctx context.Context, docs []interface{}) ([]primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// ItineraryRepositoryInterface defines data access operations for itineraries
type ItineraryRepositoryInterface interface {
	Insert(ctx context.Context, itinerary *models.Itinerary) (primitive.ObjectID, error)
	Find(ctx context.Context, skip, limit int64) ([]models.Itinerary, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Itinerary, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// AIServiceInterface defines text-generation operations
type AIServiceInterface interface {
	GenerateItinerary(ctx context.Context, req *models.ItineraryRequest) (string, error)
	GenerateItineraryStream(ctx context.Context, req *models.ItineraryRequest) <-chan models.StreamChunk
	GenerateTravelTips(ctx context.Context, destination string) []string
	GenerateSuggestions(ctx context.Context, category, budget, continent string, count int) ([]map[string]interface{}, error)
	GenerateSingleSuggestion(ctx context.Context, destination string) (map[string]interface{}, error)
}

// WeatherServiceInterface defines cached weather lookups.
// Lookups report absence instead of failing: a false result means the data
// could not be produced and the caller decides whether that is fatal.
type WeatherServiceInterface interface {
	GetCurrent(ctx context.Context, city string) (*models.WeatherSnapshot, bool)
	GetForecast(ctx context.Context, city string, days int) (*models.ForecastBundle, bool)
	ClearCache(ctx context.Context)
	CacheStats(ctx context.Context) models.CacheStats
}

// SuggestionServiceInterface defines suggestion listing and generation operations
type SuggestionServiceInterface interface {
	List(ctx context.Context, filter models.SuggestionFilter) (*models.SuggestionsResponse, error)
	GenerateBatch(ctx context.Context, category, budget, continent string, count int, save bool) ([]models.SuggestedTrip, error)
	GenerateSingle(ctx context.Context, destination string, save bool) (*models.SuggestedTrip, error)
	Create(ctx context.Context, req *models.CreateSuggestionRequest) (*models.SuggestedTrip, error)
	Update(ctx context.Context, id string, req *models.CreateSuggestionRequest) (*models.SuggestedTrip, error)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context) (int64, error)
	Migrate(ctx context.Context, operation string) (map[string]interface{}, error)
}

// ItineraryServiceInterface defines itinerary generation and retrieval operations
type ItineraryServiceInterface interface {
	Generate(ctx context.Context, req *models.ItineraryRequest) (*models.Itinerary, error)
	GenerateStream(ctx context.Context, req *models.ItineraryRequest) <-chan models.StreamChunk
	List(ctx context.Context, limit, skip int64, itineraryID string) ([]models.Itinerary, error)
	Delete(ctx context.Context, id string) error
}
