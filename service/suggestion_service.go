package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"tripplanner.app/errors"
	"tripplanner.app/models"
)

const (
	// filteredLimitCap protects the generation fallback from backfilling
	// large pages: any filtered listing is clamped to this size.
	filteredLimitCap = 10

	coldStartBatchSize    = 12
	coldStartFeatured     = 6
	backfillMaxBatchSize  = 6
	seedMigrationSize     = 10
	seedMigrationFeatured = 3
)

// SuggestionService orchestrates suggestion listing, AI generation and
// backfill over the document store
type SuggestionService struct {
	repo SuggestionRepositoryInterface
	ai   AIServiceInterface
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(repo SuggestionRepositoryInterface, ai AIServiceInterface) *SuggestionService {
	return &SuggestionService{repo: repo, ai: ai}
}

// List returns a page of suggestions matching the filter set. An empty
// collection is seeded with a generated batch; filters matching nothing
// trigger a targeted generation before the query is re-run.
func (s *SuggestionService) List(ctx context.Context, filter models.SuggestionFilter) (*models.SuggestionsResponse, error) {
	if filter.SuggestionID != "" {
		return s.getByID(ctx, filter.SuggestionID)
	}

	query, hasFilters := buildSuggestionQuery(filter)

	effectiveLimit := int64(filter.Limit)
	if hasFilters && effectiveLimit > filteredLimitCap {
		effectiveLimit = filteredLimitCap
	}

	if err := s.seedIfEmpty(ctx); err != nil {
		return nil, err
	}

	docs, err := s.repo.Find(ctx, query, int64(filter.Skip), effectiveLimit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, query)
	if err != nil {
		return nil, err
	}

	if total == 0 && hasFilters {
		docs, total, err = s.backfillFiltered(ctx, filter, query, effectiveLimit)
		if err != nil {
			return nil, err
		}
	}

	suggestions := make([]models.SuggestedTrip, 0, len(docs))
	for _, doc := range docs {
		trip, err := decodeSuggestion(NormalizeSuggestion(doc))
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, *trip)
	}

	slog.Info("retrieved suggestions", "count", len(suggestions), "total", total)
	return &models.SuggestionsResponse{
		Total:          total,
		Suggestions:    suggestions,
		FiltersApplied: filtersAppliedMap(query),
	}, nil
}

func (s *SuggestionService) getByID(ctx context.Context, id string) (*models.SuggestionsResponse, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewValidationError("invalid suggestion ID format")
	}

	doc, err := s.repo.FindByID(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.NewNotFoundError("suggestion not found")
	}

	trip, err := decodeSuggestion(NormalizeSuggestion(doc))
	if err != nil {
		return nil, err
	}

	return &models.SuggestionsResponse{
		Total:          1,
		Suggestions:    []models.SuggestedTrip{*trip},
		FiltersApplied: map[string]interface{}{"_id": id},
	}, nil
}

// seedIfEmpty generates the initial suggestion batch when the collection
// holds no documents at all. The triggering request pays the generation cost.
func (s *SuggestionService) seedIfEmpty(ctx context.Context) error {
	totalInDB, err := s.repo.Count(ctx, bson.M{})
	if err != nil {
		return err
	}
	if totalInDB > 0 {
		return nil
	}

	slog.Info("suggestion collection empty, generating initial batch")
	generated, err := s.ai.GenerateSuggestions(ctx, "", "", "", coldStartBatchSize)
	if err != nil {
		return err
	}
	if len(generated) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(generated))
	for i, suggestion := range generated {
		suggestion["created_at"] = now
		suggestion["updated_at"] = now
		suggestion["is_featured"] = i < coldStartFeatured
		docs = append(docs, suggestion)
	}

	if _, err := s.repo.InsertMany(ctx, docs); err != nil {
		return err
	}
	slog.Info("seeded initial suggestions", "count", len(docs))
	return nil
}

// backfillFiltered generates suggestions matching the filter hints, persists
// them and re-runs the filtered query once. The re-query may return fewer
// records than requested when the model output does not satisfy the filters;
// that is accepted without further retries.
func (s *SuggestionService) backfillFiltered(ctx context.Context, filter models.SuggestionFilter, query bson.M, effectiveLimit int64) ([]bson.M, int64, error) {
	count := effectiveLimit
	if count > backfillMaxBatchSize {
		count = backfillMaxBatchSize
	}

	slog.Info("no matches for filters, generating suggestions",
		"category", filter.Category, "budget", filter.Budget, "continent", filter.Continent)

	generated, err := s.ai.GenerateSuggestions(ctx, filter.Category, filter.Budget, filter.Continent, int(count))
	if err != nil {
		return nil, 0, err
	}
	if len(generated) == 0 {
		return nil, 0, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(generated))
	for _, suggestion := range generated {
		suggestion["created_at"] = now
		suggestion["updated_at"] = now
		suggestion["is_featured"] = false
		docs = append(docs, suggestion)
	}
	if _, err := s.repo.InsertMany(ctx, docs); err != nil {
		return nil, 0, err
	}

	results, err := s.repo.Find(ctx, query, 0, effectiveLimit)
	if err != nil {
		return nil, 0, err
	}
	return results, int64(len(results)), nil
}

// GenerateBatch generates fresh suggestions for the given hints, optionally
// persisting them
func (s *SuggestionService) GenerateBatch(ctx context.Context, category, budget, continent string, count int, save bool) ([]models.SuggestedTrip, error) {
	generated, err := s.ai.GenerateSuggestions(ctx, category, budget, continent, count)
	if err != nil {
		return nil, err
	}

	if save {
		now := time.Now().UTC()
		docs := make([]interface{}, 0, len(generated))
		for _, suggestion := range generated {
			suggestion["created_at"] = now
			suggestion["updated_at"] = now
			suggestion["is_featured"] = false
			docs = append(docs, suggestion)
		}
		ids, err := s.repo.InsertMany(ctx, docs)
		if err != nil {
			return nil, err
		}
		for i := range ids {
			if i < len(generated) {
				generated[i]["_id"] = ids[i]
			}
		}
		slog.Info("saved AI suggestions", "count", len(ids))
	}

	trips := make([]models.SuggestedTrip, 0, len(generated))
	for _, suggestion := range generated {
		trip, err := decodeSuggestion(NormalizeSuggestion(suggestion))
		if err != nil {
			return nil, err
		}
		trips = append(trips, *trip)
	}
	return trips, nil
}

// GenerateSingle generates one detailed suggestion for a destination. When
// persistence is declined the returned record carries no identifier.
func (s *SuggestionService) GenerateSingle(ctx context.Context, destination string, save bool) (*models.SuggestedTrip, error) {
	suggestion, err := s.ai.GenerateSingleSuggestion(ctx, destination)
	if err != nil {
		return nil, err
	}

	if save {
		now := time.Now().UTC()
		suggestion["created_at"] = now
		suggestion["updated_at"] = now
		suggestion["is_featured"] = false

		id, err := s.repo.InsertOne(ctx, suggestion)
		if err != nil {
			return nil, err
		}
		suggestion["_id"] = id
		slog.Info("saved AI suggestion", "destination", destination)
	}

	return decodeSuggestion(NormalizeSuggestion(suggestion))
}

// Create persists a manually curated suggestion
func (s *SuggestionService) Create(ctx context.Context, req *models.CreateSuggestionRequest) (*models.SuggestedTrip, error) {
	now := time.Now().UTC()
	trip := models.SuggestedTrip{
		Destination:       req.Destination,
		Country:           req.Country,
		Continent:         req.Continent,
		Title:             req.Title,
		Description:       req.Description,
		Duration:          req.Duration,
		DurationDays:      req.DurationDays,
		Highlights:        req.Highlights,
		BestTimeToVisit:   req.BestTimeToVisit,
		BestMonths:        req.BestMonths,
		Category:          req.Category,
		Budget:            req.Budget,
		EstimatedCost:     req.EstimatedCost,
		ImageURL:          req.ImageURL,
		Rating:            req.Rating,
		PopularActivities: req.PopularActivities,
		TravelTips:        req.TravelTips,
		IsFeatured:        false,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	id, err := s.repo.InsertOne(ctx, &trip)
	if err != nil {
		return nil, err
	}
	trip.ID = &id

	slog.Info("suggestion created", "id", id.Hex())
	return &trip, nil
}

// Update applies the request fields to an existing suggestion
func (s *SuggestionService) Update(ctx context.Context, id string, req *models.CreateSuggestionRequest) (*models.SuggestedTrip, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewValidationError("invalid suggestion ID format")
	}

	fields := bson.M{
		"destination":        req.Destination,
		"country":            req.Country,
		"continent":          req.Continent,
		"title":              req.Title,
		"description":        req.Description,
		"duration":           req.Duration,
		"duration_days":      req.DurationDays,
		"highlights":         req.Highlights,
		"best_time_to_visit": req.BestTimeToVisit,
		"best_months":        req.BestMonths,
		"category":           req.Category,
		"budget":             req.Budget,
		"estimated_cost":     req.EstimatedCost,
		"image_url":          req.ImageURL,
		"rating":             req.Rating,
		"popular_activities": req.PopularActivities,
		"travel_tips":        req.TravelTips,
		"updated_at":         time.Now().UTC(),
	}

	matched, err := s.repo.UpdateByID(ctx, objectID, fields)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, errors.NewNotFoundError("suggestion not found")
	}

	doc, err := s.repo.FindByID(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.NewNotFoundError("suggestion not found")
	}

	slog.Info("suggestion updated", "id", id)
	return decodeSuggestion(NormalizeSuggestion(doc))
}

// Delete removes a single suggestion
func (s *SuggestionService) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.NewValidationError("invalid suggestion ID format")
	}

	deleted, err := s.repo.DeleteByID(ctx, objectID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return errors.NewNotFoundError("suggestion not found")
	}

	slog.Info("suggestion deleted", "id", id)
	return nil
}

// ClearAll removes every suggestion and returns the deleted count
func (s *SuggestionService) ClearAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}

// Migrate runs a named maintenance operation over the collection
func (s *SuggestionService) Migrate(ctx context.Context, operation string) (map[string]interface{}, error) {
	switch operation {
	case "string-to-array":
		return s.migrateStringToArray(ctx)
	case "seed-ai":
		return s.migrateSeedAI(ctx)
	default:
		return nil, errors.NewValidationError("unknown operation: " + operation)
	}
}

// migrateStringToArray re-normalizes stored documents in place, updating only
// those whose array fields changed shape
func (s *SuggestionService) migrateStringToArray(ctx context.Context) (map[string]interface{}, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	updatedCount := 0
	for _, doc := range docs {
		normalized := NormalizeSuggestion(doc)

		updates := bson.M{}
		for _, field := range suggestionArrayFields {
			if _, present := doc[field]; !present {
				continue
			}
			if !equalFieldValue(doc[field], normalized[field]) {
				updates[field] = normalized[field]
			}
		}
		if len(updates) == 0 {
			continue
		}

		id, ok := doc["_id"].(primitive.ObjectID)
		if !ok {
			continue
		}
		if _, err := s.repo.UpdateByID(ctx, id, updates); err != nil {
			return nil, err
		}
		updatedCount++
	}

	slog.Info("migration complete", "updated", updatedCount, "total", len(docs))
	return map[string]interface{}{
		"message":         "Migration completed successfully",
		"operation":       "string-to-array",
		"updated_count":   updatedCount,
		"total_documents": len(docs),
	}, nil
}

func (s *SuggestionService) migrateSeedAI(ctx context.Context) (map[string]interface{}, error) {
	generated, err := s.ai.GenerateSuggestions(ctx, "", "", "", seedMigrationSize)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(generated))
	for i, suggestion := range generated {
		suggestion["created_at"] = now
		suggestion["updated_at"] = now
		suggestion["is_featured"] = i < seedMigrationFeatured
		docs = append(docs, suggestion)
	}

	ids, err := s.repo.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}

	slog.Info("seeded AI suggestions", "count", len(ids))
	return map[string]interface{}{
		"message":   "Successfully seeded AI suggestions",
		"operation": "seed-ai",
		"count":     len(ids),
	}, nil
}

// buildSuggestionQuery builds the conjunction of supplied filters; absent
// filters impose no constraint
func buildSuggestionQuery(filter models.SuggestionFilter) (bson.M, bool) {
	query := bson.M{}
	hasFilters := false

	if filter.Featured {
		query["is_featured"] = true
		hasFilters = true
	}
	if filter.Category != "" {
		query["category"] = bson.M{"$in": []string{strings.ToLower(filter.Category)}}
		hasFilters = true
	}
	if filter.Budget != "" {
		query["budget"] = strings.ToLower(filter.Budget)
		hasFilters = true
	}
	if filter.Continent != "" {
		query["continent"] = filter.Continent
		hasFilters = true
	}
	if filter.DurationMin != nil || filter.DurationMax != nil {
		durationQuery := bson.M{}
		if filter.DurationMin != nil {
			durationQuery["$gte"] = *filter.DurationMin
		}
		if filter.DurationMax != nil {
			durationQuery["$lte"] = *filter.DurationMax
		}
		query["duration_days"] = durationQuery
		hasFilters = true
	}

	return query, hasFilters
}

// filtersAppliedMap echoes the executed query for caller introspection
func filtersAppliedMap(query bson.M) map[string]interface{} {
	applied := make(map[string]interface{}, len(query))
	for key, value := range query {
		applied[key] = value
	}
	return applied
}

// decodeSuggestion converts a normalized raw document into the typed record
// via a bson round trip
func decodeSuggestion(doc map[string]interface{}) (*models.SuggestedTrip, error) {
	raw, err := bson.Marshal(bson.M(doc))
	if err != nil {
		return nil, errors.NewInternalError("failed to encode suggestion", err)
	}

	var trip models.SuggestedTrip
	if err := bson.Unmarshal(raw, &trip); err != nil {
		return nil, errors.NewInternalError("failed to decode suggestion", err)
	}
	return &trip, nil
}

// equalFieldValue compares an original field value with its normalized form
func equalFieldValue(original, normalized interface{}) bool {
	origItems, ok := toStringSlice(original)
	if !ok {
		return false
	}
	normItems, ok := toStringSlice(normalized)
	if !ok {
		return false
	}
	if len(origItems) != len(normItems) {
		return false
	}
	for i := range origItems {
		if origItems[i] != normItems[i] {
			return false
		}
	}
	return true
}

func toStringSlice(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []interface{}:
		return interfaceToStrings(v)
	case primitive.A:
		return interfaceToStrings(v)
	default:
		return nil, false
	}
}

func interfaceToStrings(items []interface{}) ([]string, bool) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
