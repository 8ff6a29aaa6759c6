// Package models defines data structures used throughout the application
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SuggestedTrip represents a curated travel-destination recommendation
type SuggestedTrip struct {
	ID                *primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Destination       string              `json:"destination" bson:"destination"`
	Country           string              `json:"country" bson:"country"`
	Continent         string              `json:"continent" bson:"continent"`
	Title             string              `json:"title" bson:"title"`
	Description       string              `json:"description" bson:"description"`
	Duration          string              `json:"duration" bson:"duration"` // e.g. "5-7 days"
	DurationDays      int                 `json:"duration_days" bson:"duration_days"`
	Highlights        []string            `json:"highlights" bson:"highlights"`
	BestTimeToVisit   string              `json:"best_time_to_visit" bson:"best_time_to_visit"`
	BestMonths        []string            `json:"best_months" bson:"best_months"`
	Category          []string            `json:"category" bson:"category"`
	Budget            string              `json:"budget" bson:"budget"` // budget, moderate, high, luxury
	EstimatedCost     string              `json:"estimated_cost" bson:"estimated_cost"`
	ImageURL          string              `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Rating            *float64            `json:"rating,omitempty" bson:"rating,omitempty"`
	PopularActivities []string            `json:"popular_activities" bson:"popular_activities"`
	TravelTips        []string            `json:"travel_tips" bson:"travel_tips"`
	IsFeatured        bool                `json:"is_featured" bson:"is_featured"`
	CreatedAt         time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at" bson:"updated_at"`
}

// SuggestionsResponse is the paged listing returned by the suggestions endpoint
type SuggestionsResponse struct {
	Total          int64                  `json:"total"`
	Suggestions    []SuggestedTrip        `json:"suggestions"`
	FiltersApplied map[string]interface{} `json:"filters_applied,omitempty"`
}

// SuggestionFilter carries the listing filters and pagination window
type SuggestionFilter struct {
	Category     string
	Budget       string
	Continent    string
	DurationMin  *int
	DurationMax  *int
	Featured     bool
	Limit        int
	Skip         int
	SuggestionID string
}

// CreateSuggestionRequest represents data required to create or update a suggestion
type CreateSuggestionRequest struct {
	Destination       string   `json:"destination" binding:"required"`
	Country           string   `json:"country" binding:"required"`
	Continent         string   `json:"continent" binding:"required"`
	Title             string   `json:"title" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	Duration          string   `json:"duration" binding:"required"`
	DurationDays      int      `json:"duration_days" binding:"required,min=1"`
	Highlights        []string `json:"highlights" binding:"required"`
	BestTimeToVisit   string   `json:"best_time_to_visit" binding:"required"`
	BestMonths        []string `json:"best_months" binding:"required"`
	Category          []string `json:"category" binding:"required"`
	Budget            string   `json:"budget" binding:"required,oneof=budget moderate high luxury"`
	EstimatedCost     string   `json:"estimated_cost" binding:"required"`
	ImageURL          string   `json:"image_url"`
	Rating            *float64 `json:"rating" binding:"omitempty,min=0,max=5"`
	PopularActivities []string `json:"popular_activities"`
	TravelTips        []string `json:"travel_tips"`
}

// ItineraryRequest represents a user request to generate a travel itinerary
type ItineraryRequest struct {
	Destination           string   `json:"destination" binding:"required,min=2,max=100"`
	Days                  int      `json:"days" binding:"required,min=1,max=30"`
	Interests             []string `json:"interests"`
	Budget                string   `json:"budget" binding:"omitempty,oneof=low moderate high luxury"`
	Travelers             int      `json:"travelers" binding:"omitempty,min=1,max=20"`
	StartDate             string   `json:"start_date"`
	AdditionalPreferences string   `json:"additional_preferences"`
}

// ApplyDefaults fills optional request fields the way the API documents them
func (r *ItineraryRequest) ApplyDefaults() {
	if len(r.Interests) == 0 {
		r.Interests = []string{"sightseeing"}
	}
	if r.Budget == "" {
		r.Budget = "moderate"
	}
	if r.Travelers == 0 {
		r.Travelers = 1
	}
}

// Itinerary represents a generated travel plan document
type Itinerary struct {
	ID              *primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Destination     string              `json:"destination" bson:"destination"`
	Days            int                 `json:"days" bson:"days"`
	Interests       []string            `json:"interests" bson:"interests"`
	Budget          string              `json:"budget" bson:"budget"`
	Travelers       int                 `json:"travelers" bson:"travelers"`
	Content         string              `json:"content" bson:"content"` // full markdown plan
	WeatherInfo     *WeatherSnapshot    `json:"weather_info,omitempty" bson:"weather_info,omitempty"`
	TravelTips      []string            `json:"travel_tips" bson:"travel_tips"`
	BudgetEstimate  string              `json:"budget_estimate" bson:"budget_estimate"`
	UserPreferences string              `json:"user_preferences,omitempty" bson:"user_preferences,omitempty"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
}

// WeatherSnapshot represents current weather conditions for a city
type WeatherSnapshot struct {
	City        string  `json:"city" bson:"city"`
	Country     string  `json:"country" bson:"country"`
	Temperature float64 `json:"temperature" bson:"temperature"`
	FeelsLike   float64 `json:"feels_like" bson:"feels_like"`
	TempMin     float64 `json:"temp_min" bson:"temp_min"`
	TempMax     float64 `json:"temp_max" bson:"temp_max"`
	Humidity    int     `json:"humidity" bson:"humidity"`
	Pressure    int     `json:"pressure" bson:"pressure"`
	Description string  `json:"description" bson:"description"`
	Icon        string  `json:"icon" bson:"icon"`
	WindSpeed   float64 `json:"wind_speed" bson:"wind_speed"`
	Clouds      int     `json:"clouds" bson:"clouds"`
	Visibility  int     `json:"visibility" bson:"visibility"` // kilometers
	Timestamp   string  `json:"timestamp" bson:"timestamp"`
}

// ForecastDay represents one aggregated day of forecast readings
type ForecastDay struct {
	Date        string  `json:"date"`
	DayName     string  `json:"day_name"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	TempAvg     float64 `json:"temp_avg"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Pop         int     `json:"pop"` // precipitation probability, percent
}

// ForecastBundle is the daily forecast response for a city
type ForecastBundle struct {
	City      string        `json:"city"`
	Country   string        `json:"country"`
	Forecasts []ForecastDay `json:"forecasts"`
	Timestamp string        `json:"timestamp"`
}

// CacheStats reports weather cache occupancy, it does not evict
type CacheStats struct {
	TotalEntries   int `json:"total_entries"`
	ValidEntries   int `json:"valid_entries"`
	ExpiredEntries int `json:"expired_entries"`
}

// StreamChunk is a single server-sent event emitted during streamed generation
type StreamChunk struct {
	Type     string                 `json:"type"` // "thought", "content", "complete", "error"
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
