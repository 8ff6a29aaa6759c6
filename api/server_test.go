package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"tripplanner.app/config"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
	"tripplanner.app/service"
)

type mockItineraryService struct {
	mock.Mock
}

func (m *mockItineraryService) Generate(ctx context.Context, req *models.ItineraryRequest) (*models.Itinerary, error) {
	args := m.Called(ctx, req)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Itinerary), nil
}

func (m *mockItineraryService) GenerateStream(ctx context.Context, req *models.ItineraryRequest) <-chan models.StreamChunk {
	args := m.Called(ctx, req)
	return args.Get(0).(<-chan models.StreamChunk)
}

func (m *mockItineraryService) List(ctx context.Context, limit, skip int64, itineraryID string) ([]models.Itinerary, error) {
	args := m.Called(ctx, limit, skip, itineraryID)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Itinerary), nil
}

func (m *mockItineraryService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ service.ItineraryServiceInterface = (*mockItineraryService)(nil)

type mockSuggestionService struct {
	mock.Mock
}

func (m *mockSuggestionService) List(ctx context.Context, filter models.SuggestionFilter) (*models.SuggestionsResponse, error) {
	args := m.Called(ctx, filter)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SuggestionsResponse), nil
}

func (m *mockSuggestionService) GenerateBatch(ctx context.Context, category, budget, continent string, count int, save bool) ([]models.SuggestedTrip, error) {
	args := m.Called(ctx, category, budget, continent, count, save)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SuggestedTrip), nil
}

func (m *mockSuggestionService) GenerateSingle(ctx context.Context, destination string, save bool) (*models.SuggestedTrip, error) {
	args := m.Called(ctx, destination, save)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SuggestedTrip), nil
}

func (m *mockSuggestionService) Create(ctx context.Context, req *models.CreateSuggestionRequest) (*models.SuggestedTrip, error) {
	args := m.Called(ctx, req)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SuggestedTrip), nil
}

func (m *mockSuggestionService) Update(ctx context.Context, id string, req *models.CreateSuggestionRequest) (*models.SuggestedTrip, error) {
	args := m.Called(ctx, id, req)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SuggestedTrip), nil
}

func (m *mockSuggestionService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSuggestionService) ClearAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSuggestionService) Migrate(ctx context.Context, operation string) (map[string]interface{}, error) {
	args := m.Called(ctx, operation)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), nil
}

var _ service.SuggestionServiceInterface = (*mockSuggestionService)(nil)

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

var _ service.WeatherServiceInterface = (*mockWeatherService)(nil)

type serverMocks struct {
	itineraries *mockItineraryService
	suggestions *mockSuggestionService
	weather     *mockWeatherService
}

func setupTestServer(t *testing.T) (*Server, *serverMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mocks := &serverMocks{
		itineraries: new(mockItineraryService),
		suggestions: new(mockSuggestionService),
		weather:     new(mockWeatherService),
	}
	cfg := &config.Config{
		Server:         config.ServerConfig{Port: 8080},
		AllowedOrigins: []string{"http://localhost:3000"},
	}
	server := NewServer(cfg, mocks.itineraries, mocks.suggestions, mocks.weather)
	return server, mocks
}

func performRequest(server *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	server.GetRouter().ServeHTTP(w, req)
	return w
}

func TestServer_HealthCheck(t *testing.T) {
	server, _ := setupTestServer(t)

	w := performRequest(server, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestServer_RequestIDHeader(t *testing.T) {
	server, _ := setupTestServer(t)

	w := performRequest(server, http.MethodGet, "/health", nil)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestServer_GetSuggestions(t *testing.T) {
	server, mocks := setupTestServer(t)

	durationMin := 3
	mocks.suggestions.On("List", mock.Anything, mock.MatchedBy(func(f models.SuggestionFilter) bool {
		return f.Category == "beach" && f.Limit == 5 && f.DurationMin != nil && *f.DurationMin == durationMin
	})).Return(&models.SuggestionsResponse{Total: 2, Suggestions: []models.SuggestedTrip{}}, nil).Once()

	w := performRequest(server, http.MethodGet, "/api/suggestions?category=beach&limit=5&duration_min=3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var response models.SuggestionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(2), response.Total)
	mocks.suggestions.AssertExpectations(t)
}

func TestServer_GetSuggestions_LimitOutOfRange(t *testing.T) {
	server, mocks := setupTestServer(t)

	w := performRequest(server, http.MethodGet, "/api/suggestions?limit=51", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mocks.suggestions.AssertNotCalled(t, "List")
}

func TestServer_GenerateAISuggestions_SingleDestination(t *testing.T) {
	server, mocks := setupTestServer(t)

	trip := &models.SuggestedTrip{Destination: "Petra"}
	mocks.suggestions.On("GenerateSingle", mock.Anything, "Petra", false).Return(trip, nil).Once()

	w := performRequest(server, http.MethodPost, "/api/suggestions/ai-generate?destination=Petra&save_to_db=false", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var trips []models.SuggestedTrip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trips))
	require.Len(t, trips, 1)
	assert.Equal(t, "Petra", trips[0].Destination)
	mocks.suggestions.AssertExpectations(t)
}

func TestServer_GenerateAISuggestions_CountOutOfRange(t *testing.T) {
	server, _ := setupTestServer(t)

	w := performRequest(server, http.MethodPost, "/api/suggestions/ai-generate?count=11", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_CreateSuggestion(t *testing.T) {
	server, mocks := setupTestServer(t)

	body, _ := json.Marshal(map[string]interface{}{
		"destination":        "Kyoto",
		"country":            "Japan",
		"continent":          "Asia",
		"title":              "Temples and Tea",
		"description":        "A cultural week in Kyoto",
		"duration":           "5-7 days",
		"duration_days":      5,
		"highlights":         []string{"Fushimi Inari"},
		"best_time_to_visit": "Spring",
		"best_months":        []string{"April"},
		"category":           []string{"culture"},
		"budget":             "moderate",
		"estimated_cost":     "$700 - $1,500",
	})

	mocks.suggestions.On("Create", mock.Anything, mock.Anything).
		Return(&models.SuggestedTrip{Destination: "Kyoto"}, nil).Once()

	w := performRequest(server, http.MethodPost, "/api/suggestions", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	mocks.suggestions.AssertExpectations(t)
}

func TestServer_CreateSuggestion_InvalidBody(t *testing.T) {
	server, _ := setupTestServer(t)

	w := performRequest(server, http.MethodPost, "/api/suggestions", []byte(`{"destination": "Kyoto"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_DeleteSuggestion_ClearAll(t *testing.T) {
	server, mocks := setupTestServer(t)

	mocks.suggestions.On("ClearAll", mock.Anything).Return(int64(17), nil).Once()

	w := performRequest(server, http.MethodDelete, "/api/suggestions/ignored?clear_all=true", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "17")
	mocks.suggestions.AssertNotCalled(t, "Delete")
	mocks.suggestions.AssertExpectations(t)
}

func TestServer_MigrateSuggestions_DefaultOperation(t *testing.T) {
	server, mocks := setupTestServer(t)

	mocks.suggestions.On("Migrate", mock.Anything, "string-to-array").
		Return(map[string]interface{}{"updated_count": 3}, nil).Once()

	w := performRequest(server, http.MethodPost, "/api/suggestions/migrate", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mocks.suggestions.AssertExpectations(t)
}

func TestServer_GenerateItinerary(t *testing.T) {
	server, mocks := setupTestServer(t)

	body, _ := json.Marshal(models.ItineraryRequest{Destination: "Kyoto", Days: 5})
	mocks.itineraries.On("Generate", mock.Anything, mock.Anything).
		Return(&models.Itinerary{Destination: "Kyoto"}, nil).Once()

	w := performRequest(server, http.MethodPost, "/api/itineraries/generate", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	mocks.itineraries.AssertExpectations(t)
}

func TestServer_GenerateItinerary_InvalidBody(t *testing.T) {
	server, mocks := setupTestServer(t)

	// days above the allowed maximum
	body, _ := json.Marshal(models.ItineraryRequest{Destination: "Kyoto", Days: 60})

	w := performRequest(server, http.MethodPost, "/api/itineraries/generate", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mocks.itineraries.AssertNotCalled(t, "Generate")
}

func TestServer_GenerateItineraryStream(t *testing.T) {
	server, mocks := setupTestServer(t)

	chunks := make(chan models.StreamChunk, 2)
	chunks <- models.StreamChunk{Type: "content", Content: "# Day 1"}
	chunks <- models.StreamChunk{Type: "complete", Content: "done"}
	close(chunks)

	body, _ := json.Marshal(models.ItineraryRequest{Destination: "Kyoto", Days: 2})
	mocks.itineraries.On("GenerateStream", mock.Anything, mock.Anything).
		Return((<-chan models.StreamChunk)(chunks)).Once()

	w := performRequest(server, http.MethodPost, "/api/itineraries/generate-stream", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `data: {"type":"content","content":"# Day 1"}`)
	assert.Contains(t, w.Body.String(), `"type":"complete"`)
	mocks.itineraries.AssertExpectations(t)
}

func TestServer_GetWeatherInfo_Current(t *testing.T) {
	server, mocks := setupTestServer(t)

	snapshot := &models.WeatherSnapshot{City: "Kyoto", Temperature: 18.5}
	mocks.weather.On("GetCurrent", mock.Anything, "Kyoto").Return(snapshot, true).Once()

	w := performRequest(server, http.MethodGet, "/api/itineraries/weather/Kyoto", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "18.5")
	mocks.weather.AssertExpectations(t)
}

func TestServer_GetWeatherInfo_Forecast(t *testing.T) {
	server, mocks := setupTestServer(t)

	bundle := &models.ForecastBundle{City: "Kyoto", Forecasts: []models.ForecastDay{{Date: "2026-03-10"}}}
	mocks.weather.On("GetForecast", mock.Anything, "Kyoto", 3).Return(bundle, true).Once()

	w := performRequest(server, http.MethodGet, "/api/itineraries/weather/Kyoto?forecast_days=3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2026-03-10")
	mocks.weather.AssertExpectations(t)
}

func TestServer_GetWeatherInfo_Absent(t *testing.T) {
	server, mocks := setupTestServer(t)

	mocks.weather.On("GetCurrent", mock.Anything, "Nowhere").Return(nil, false).Once()

	w := performRequest(server, http.MethodGet, "/api/itineraries/weather/Nowhere", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mocks.weather.AssertExpectations(t)
}

func TestServer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", apperrors.NewValidationError("bad input"), http.StatusBadRequest},
		{"not found", apperrors.NewNotFoundError("missing"), http.StatusNotFound},
		{"ai response", apperrors.NewAIResponseError("bad JSON", "raw", nil), http.StatusUnprocessableEntity},
		{"external api", apperrors.NewExternalAPIError("upstream down", nil), http.StatusServiceUnavailable},
		{"database", apperrors.NewDatabaseError("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, mocks := setupTestServer(t)
			mocks.suggestions.On("List", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := performRequest(server, http.MethodGet, "/api/suggestions", nil)

			assert.Equal(t, tt.expected, w.Code)
			var response models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.NotEmpty(t, response.Error)
		})
	}
}

func TestServer_ErrorResponseHidesInternalDetail(t *testing.T) {
	server, mocks := setupTestServer(t)
	mocks.suggestions.On("List", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewDatabaseError("duplicate key on suggested_trips", nil)).Once()

	w := performRequest(server, http.MethodGet, "/api/suggestions", nil)

	assert.NotContains(t, w.Body.String(), "suggested_trips")
	assert.Contains(t, w.Body.String(), "Internal server error")
}
