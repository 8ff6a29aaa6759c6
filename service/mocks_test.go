package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"tripplanner.app/models"
	"tripplanner.app/providers"
)

// Mock AI provider for testing
type mockAIProvider struct {
	mock.Mock
}

func (m *mockAIProvider) ChatCompletion(ctx context.Context, messages []providers.ChatMessage, params providers.ChatParams) (string, error) {
	args := m.Called(ctx, messages, params)
	return args.String(0), args.Error(1)
}

func (m *mockAIProvider) ChatCompletionStream(ctx context.Context, messages []providers.ChatMessage, params providers.ChatParams) (<-chan string, <-chan error) {
	args := m.Called(ctx, messages, params)
	return args.Get(0).(<-chan string), args.Get(1).(<-chan error)
}

var _ providers.AIProvider = (*mockAIProvider)(nil)

// Mock weather provider for testing
type mockWeatherProvider struct {
	mock.Mock
}

func (m *mockWeatherProvider) FetchCurrent(ctx context.Context, city string) (*providers.CurrentWeatherData, error) {
	args := m.Called(ctx, city)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.CurrentWeatherData), nil
}

func (m *mockWeatherProvider) FetchForecast(ctx context.Context, city string, readings int) (*providers.ForecastData, error) {
	args := m.Called(ctx, city, readings)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.ForecastData), nil
}

var _ providers.WeatherProvider = (*mockWeatherProvider)(nil)

// Mock suggestion repository for testing
type mockSuggestionRepo struct {
	mock.Mock
}

func (m *mockSuggestionRepo) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]bson.M, error) {
	args := m.Called(ctx, filter, skip, limit)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), nil
}

func (m *mockSuggestionRepo) FindAll(ctx context.Context) ([]bson.M, error) {
	args := m.Called(ctx)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), nil
}

func (m *mockSuggestionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(bson.M), args.Error(1)
}

func (m *mockSuggestionRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSuggestionRepo) InsertOne(ctx context.Context, doc interface{}) (primitive.ObjectID, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockSuggestionRepo) InsertMany(ctx context.Context, docs []interface{}) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, docs)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), nil
}

func (m *mockSuggestionRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSuggestionRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSuggestionRepo) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ SuggestionRepositoryInterface = (*mockSuggestionRepo)(nil)

// Mock itinerary repository for testing
type mockItineraryRepo struct {
	mock.Mock
}

func (m *mockItineraryRepo) Insert(ctx context.Context, itinerary *models.Itinerary) (primitive.ObjectID, error) {
	args := m.Called(ctx, itinerary)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockItineraryRepo) Find(ctx context.Context, skip, limit int64) ([]models.Itinerary, error) {
	args := m.Called(ctx, skip, limit)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Itinerary), nil
}

func (m *mockItineraryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Itinerary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Itinerary), args.Error(1)
}

func (m *mockItineraryRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

var _ ItineraryRepositoryInterface = (*mockItineraryRepo)(nil)

// Mock AI service for suggestion/itinerary service tests
type mockAIService struct {
	mock.Mock
}

func (m *mockAIService) GenerateItinerary(ctx context.Context, req *models.ItineraryRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockAIService) GenerateItineraryStream(ctx context.Context, req *models.ItineraryRequest) <-chan models.StreamChunk {
	args := m.Called(ctx, req)
	return args.Get(0).(<-chan models.StreamChunk)
}

func (m *mockAIService) GenerateTravelTips(ctx context.Context, destination string) []string {
	args := m.Called(ctx, destination)
	return args.Get(0).([]string)
}

func (m *mockAIService) GenerateSuggestions(ctx context.Context, category, budget, continent string, count int) ([]map[string]interface{}, error) {
	args := m.Called(ctx, category, budget, continent, count)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]interface{}), nil
}

func (m *mockAIService) GenerateSingleSuggestion(ctx context.Context, destination string) (map[string]interface{}, error) {
	args := m.Called(ctx, destination)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), nil
}

var _ AIServiceInterface = (*mockAIService)(nil)

// Mock weather service for itinerary service tests
type mockWeatherService struct {
	mock.Mock
}

func (m *mockWeatherService) GetCurrent(ctx context.Context, city string) (*models.WeatherSnapshot, bool) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*models.WeatherSnapshot), args.Bool(1)
}

func (m *mockWeatherService) GetForecast(ctx context.Context, city string, days int) (*models.ForecastBundle, bool) {
	args := m.Called(ctx, city, days)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*models.ForecastBundle), args.Bool(1)
}

func (m *mockWeatherService) ClearCache(ctx context.Context) {
	m.Called(ctx)
}

func (m *mockWeatherService) CacheStats(ctx context.Context) models.CacheStats {
	args := m.Called(ctx)
	return args.Get(0).(models.CacheStats)
}

var _ WeatherServiceInterface = (*mockWeatherService)(nil)
