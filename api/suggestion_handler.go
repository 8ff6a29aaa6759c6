package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperr "tripplanner.app/errors"
	"tripplanner.app/models"
)

const (
	maxGenerateCount     = 10
	defaultGenerateCount = 6
)

func (s *Server) getSuggestions(c *gin.Context) {
	filter := models.SuggestionFilter{
		Category:     c.Query("category"),
		Budget:       c.Query("budget"),
		Continent:    c.Query("continent"),
		Featured:     c.Query("featured") == "true",
		Limit:        parseIntQuery(c, "limit", 10),
		Skip:         parseIntQuery(c, "skip", 0),
		SuggestionID: c.Query("suggestion_id"),
	}
	if v := c.Query("duration_min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.DurationMin = &n
		}
	}
	if v := c.Query("duration_max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.DurationMax = &n
		}
	}
	if filter.Limit < 1 || filter.Limit > 50 {
		s.handleError(c, apperr.NewValidationError("limit must be between 1 and 50"))
		return
	}

	response, err := s.suggestionService.List(c.Request.Context(), filter)
	if err != nil {
		slog.Error("Suggestion listing error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// generateAISuggestions generates suggestions on demand: a single detailed
// record when a destination is named, a batch matching the filter hints
// otherwise
func (s *Server) generateAISuggestions(c *gin.Context) {
	destination := c.Query("destination")
	save := c.DefaultQuery("save_to_db", "true") == "true"
	count := parseIntQuery(c, "count", defaultGenerateCount)
	if count < 1 || count > maxGenerateCount {
		s.handleError(c, apperr.NewValidationError("count must be between 1 and 10"))
		return
	}

	if destination != "" {
		trip, err := s.suggestionService.GenerateSingle(c.Request.Context(), destination, save)
		if err != nil {
			slog.Error("Suggestion generation error", "error", err, "destination", destination)
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, []models.SuggestedTrip{*trip})
		return
	}

	trips, err := s.suggestionService.GenerateBatch(
		c.Request.Context(), c.Query("category"), c.Query("budget"), c.Query("continent"), count, save)
	if err != nil {
		slog.Error("Suggestion generation error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, trips)
}

// createOrUpdateSuggestion creates a suggestion, or updates an existing one
// when suggestion_id is supplied
func (s *Server) createOrUpdateSuggestion(c *gin.Context) {
	var req models.CreateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	if id := c.Query("suggestion_id"); id != "" {
		trip, err := s.suggestionService.Update(c.Request.Context(), id, &req)
		if err != nil {
			slog.Error("Suggestion update error", "error", err, "id", id)
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, trip)
		return
	}

	trip, err := s.suggestionService.Create(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Suggestion creation error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, trip)
}

func (s *Server) deleteSuggestion(c *gin.Context) {
	if c.Query("clear_all") == "true" {
		deleted, err := s.suggestionService.ClearAll(c.Request.Context())
		if err != nil {
			slog.Error("Suggestion clear error", "error", err)
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":       "All suggestions cleared",
			"deleted_count": deleted,
		})
		return
	}

	id := c.Param("id")
	if err := s.suggestionService.Delete(c.Request.Context(), id); err != nil {
		slog.Error("Suggestion deletion error", "error", err, "id", id)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Suggestion deleted successfully"})
}

func (s *Server) migrateSuggestions(c *gin.Context) {
	operation := c.DefaultQuery("operation", "string-to-array")

	result, err := s.suggestionService.Migrate(c.Request.Context(), operation)
	if err != nil {
		slog.Error("Migration error", "error", err, "operation", operation)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
