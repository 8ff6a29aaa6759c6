package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperr "tripplanner.app/errors"
	"tripplanner.app/models"
)

func (s *Server) generateItinerary(c *gin.Context) {
	var req models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	slog.Debug("Generating itinerary", "destination", req.Destination, "days", req.Days)

	itinerary, err := s.itineraryService.Generate(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Itinerary generation error", "error", err, "destination", req.Destination)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, itinerary)
}

// generateItineraryStream streams generation progress as server-sent events.
// Each event is one JSON-encoded chunk; the stream ends after a complete or
// error chunk.
func (s *Server) generateItineraryStream(c *gin.Context) {
	var req models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	chunks := s.itineraryService.GenerateStream(c.Request.Context(), &req)
	for chunk := range chunks {
		data, err := json.Marshal(chunk)
		if err != nil {
			continue
		}
		if _, err := c.Writer.WriteString("data: " + string(data) + "\n\n"); err != nil {
			slog.Warn("SSE write failed, client gone", "error", err)
			return
		}
		c.Writer.Flush()
	}
}

func (s *Server) getItineraries(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 10)
	skip := parseIntQuery(c, "skip", 0)
	itineraryID := c.Query("itinerary_id")

	itineraries, err := s.itineraryService.List(c.Request.Context(), int64(limit), int64(skip), itineraryID)
	if err != nil {
		slog.Error("Itinerary listing error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, itineraries)
}

func (s *Server) getWeatherInfo(c *gin.Context) {
	destination := c.Param("destination")
	if destination == "" {
		s.handleError(c, apperr.NewValidationError("destination parameter is required"))
		return
	}

	if daysParam := c.Query("forecast_days"); daysParam != "" {
		days, err := strconv.Atoi(daysParam)
		if err != nil {
			s.handleError(c, apperr.NewValidationError("forecast_days must be an integer"))
			return
		}
		forecast, ok := s.weatherService.GetForecast(c.Request.Context(), destination, days)
		if !ok {
			s.handleError(c, apperr.NewNotFoundError("weather data not available for "+destination))
			return
		}
		c.JSON(http.StatusOK, forecast)
		return
	}

	weather, ok := s.weatherService.GetCurrent(c.Request.Context(), destination)
	if !ok {
		s.handleError(c, apperr.NewNotFoundError("weather data not available for "+destination))
		return
	}
	c.JSON(http.StatusOK, weather)
}

func (s *Server) deleteItinerary(c *gin.Context) {
	id := c.Param("id")

	if err := s.itineraryService.Delete(c.Request.Context(), id); err != nil {
		slog.Error("Itinerary deletion error", "error", err, "id", id)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Itinerary deleted successfully"})
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	value := c.Query(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
