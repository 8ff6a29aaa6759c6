package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"tripplanner.app/config"
	apperr "tripplanner.app/errors"
	"tripplanner.app/models"
	"tripplanner.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router            *gin.Engine
	config            *config.Config
	itineraryService  service.ItineraryServiceInterface
	suggestionService service.SuggestionServiceInterface
	weatherService    service.WeatherServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	config *config.Config,
	itineraryService service.ItineraryServiceInterface,
	suggestionService service.SuggestionServiceInterface,
	weatherService service.WeatherServiceInterface,
) *Server {
	router := gin.Default()

	server := &Server{
		router:            router,
		config:            config,
		itineraryService:  itineraryService,
		suggestionService: suggestionService,
		weatherService:    weatherService,
	}

	router.Use(requestIDMiddleware())
	router.Use(corsMiddleware(config.AllowedOrigins))

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	itineraries := s.router.Group("/api/itineraries")
	{
		itineraries.POST("/generate", s.generateItinerary)
		itineraries.POST("/generate-stream", s.generateItineraryStream)
		itineraries.GET("", s.getItineraries)
		itineraries.GET("/weather/:destination", s.getWeatherInfo)
		itineraries.DELETE("/:id", s.deleteItinerary)
	}

	suggestions := s.router.Group("/api/suggestions")
	{
		suggestions.GET("", s.getSuggestions)
		suggestions.POST("", s.createOrUpdateSuggestion)
		suggestions.POST("/ai-generate", s.generateAISuggestions)
		suggestions.DELETE("/:id", s.deleteSuggestion)
		suggestions.POST("/migrate", s.migrateSuggestions)
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "travel-guide-api",
	})
}

// requestIDMiddleware tags every request with an identifier so log lines
// from one request can be correlated
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] || allowed["*"] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// handleError maps application errors to HTTP responses
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *apperr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case apperr.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case apperr.AIResponseError:
			statusCode = http.StatusUnprocessableEntity
			message = appErr.Message
		case apperr.ExternalAPIError:
			statusCode = http.StatusServiceUnavailable
			message = "External service unavailable"
		case apperr.DatabaseError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
