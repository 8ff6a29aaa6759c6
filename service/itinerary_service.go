package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"tripplanner.app/errors"
	"tripplanner.app/models"
	"tripplanner.app/pkg/helpers"
)

// ItineraryService generates travel itineraries and manages stored plans
type ItineraryService struct {
	repo    ItineraryRepositoryInterface
	ai      AIServiceInterface
	weather WeatherServiceInterface
}

// NewItineraryService creates a new itinerary service
func NewItineraryService(repo ItineraryRepositoryInterface, ai AIServiceInterface, weather WeatherServiceInterface) *ItineraryService {
	return &ItineraryService{repo: repo, ai: ai, weather: weather}
}

// Generate produces a full itinerary for the request and persists it.
// Weather enrichment is best effort: when the lookup reports absence the
// plan is stored without it.
func (s *ItineraryService) Generate(ctx context.Context, req *models.ItineraryRequest) (*models.Itinerary, error) {
	req.ApplyDefaults()
	req.Destination = helpers.SanitizeDestination(req.Destination)

	content, err := s.ai.GenerateItinerary(ctx, req)
	if err != nil {
		return nil, err
	}

	weatherInfo, _ := s.weather.GetCurrent(ctx, helpers.ExtractCity(req.Destination))
	tips := s.ai.GenerateTravelTips(ctx, req.Destination)

	itinerary := models.Itinerary{
		Destination:     req.Destination,
		Days:            req.Days,
		Interests:       req.Interests,
		Budget:          req.Budget,
		Travelers:       req.Travelers,
		Content:         content,
		WeatherInfo:     weatherInfo,
		TravelTips:      tips,
		BudgetEstimate:  helpers.CalculateEstimatedCost(req.Days, req.Budget, req.Travelers),
		UserPreferences: strings.TrimSpace(req.AdditionalPreferences),
		CreatedAt:       time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, &itinerary)
	if err != nil {
		return nil, err
	}
	itinerary.ID = &id

	slog.Info("itinerary generated", "destination", req.Destination, "days", req.Days, "id", id.Hex())
	return &itinerary, nil
}

// GenerateStream streams itinerary generation progress without persisting
// the result
func (s *ItineraryService) GenerateStream(ctx context.Context, req *models.ItineraryRequest) <-chan models.StreamChunk {
	req.ApplyDefaults()
	req.Destination = helpers.SanitizeDestination(req.Destination)
	return s.ai.GenerateItineraryStream(ctx, req)
}

// List returns stored itineraries newest first, or a single itinerary when
// an identifier is supplied
func (s *ItineraryService) List(ctx context.Context, limit, skip int64, itineraryID string) ([]models.Itinerary, error) {
	if itineraryID != "" {
		objectID, err := primitive.ObjectIDFromHex(itineraryID)
		if err != nil {
			return nil, errors.NewValidationError("invalid itinerary ID format")
		}
		itinerary, err := s.repo.FindByID(ctx, objectID)
		if err != nil {
			return nil, err
		}
		if itinerary == nil {
			return nil, errors.NewNotFoundError("itinerary not found")
		}
		return []models.Itinerary{*itinerary}, nil
	}

	return s.repo.Find(ctx, skip, limit)
}

// Delete removes a stored itinerary
func (s *ItineraryService) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.NewValidationError("invalid itinerary ID format")
	}

	deleted, err := s.repo.DeleteByID(ctx, objectID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return errors.NewNotFoundError("itinerary not found")
	}

	slog.Info("itinerary deleted", "id", id)
	return nil
}
