package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"tripplanner.app/errors"
	"tripplanner.app/models"
	"tripplanner.app/providers"
)

const (
	itineraryPlannerSystem  = "You are an expert travel planner with extensive knowledge of destinations worldwide. Provide detailed, practical, and personalized travel itineraries."
	travelTipsSystem        = "You are a travel expert providing practical tips."
	suggestionSystem        = "You are a travel expert who generates destination recommendations. Always respond with valid JSON only."
	singleSuggestionSystem  = "You are a travel expert who generates detailed destination information. Always respond with valid JSON only."
	defaultSuggestionRating = 4.7
	defaultDurationDays     = 7
)

// fallbackTravelTips is returned when tip generation fails, so an itinerary
// never ships without tips.
var fallbackTravelTips = []string{
	"Research local customs and etiquette",
	"Learn basic phrases in the local language",
	"Check visa requirements in advance",
	"Get travel insurance",
	"Keep digital and physical copies of important documents",
}

// AIService generates itineraries and trip suggestions via a chat-completion provider
type AIService struct {
	provider providers.AIProvider
}

// NewAIService creates a new AI generation service
func NewAIService(provider providers.AIProvider) *AIService {
	return &AIService{provider: provider}
}

// GenerateItinerary produces the complete markdown travel plan for a request
func (s *AIService) GenerateItinerary(ctx context.Context, req *models.ItineraryRequest) (string, error) {
	content, err := s.provider.ChatCompletion(ctx,
		[]providers.ChatMessage{
			{Role: "system", Content: itineraryPlannerSystem},
			{Role: "user", Content: buildItineraryPrompt(req)},
		},
		providers.ChatParams{Temperature: 0.7, MaxTokens: 4000},
	)
	if err != nil {
		slog.Error("itinerary generation failed", "destination", req.Destination, "error", err)
		return "", err
	}
	return content, nil
}

// GenerateItineraryStream produces the travel plan as a stream of chunks,
// prefixed with progress markers and terminated with a completion or error chunk
func (s *AIService) GenerateItineraryStream(ctx context.Context, req *models.ItineraryRequest) <-chan models.StreamChunk {
	out := make(chan models.StreamChunk)

	go func() {
		defer close(out)

		thoughts := []string{
			fmt.Sprintf("Analyzing destination: %s...", req.Destination),
			fmt.Sprintf("Planning %d-day itinerary...", req.Days),
			fmt.Sprintf("Optimizing for %s budget...", req.Budget),
			fmt.Sprintf("Considering interests: %s...", strings.Join(req.Interests, ", ")),
			"Generating personalized recommendations...",
		}
		for i, thought := range thoughts {
			if !emit(ctx, out, models.StreamChunk{
				Type:     "thought",
				Content:  thought,
				Metadata: map[string]interface{}{"step": i + 1},
			}) {
				return
			}
			time.Sleep(500 * time.Millisecond)
		}

		deltas, errs := s.provider.ChatCompletionStream(ctx,
			[]providers.ChatMessage{
				{Role: "system", Content: itineraryPlannerSystem},
				{Role: "user", Content: buildItineraryPrompt(req)},
			},
			providers.ChatParams{Temperature: 0.7, MaxTokens: 4000},
		)

		for delta := range deltas {
			if !emit(ctx, out, models.StreamChunk{Type: "content", Content: delta}) {
				return
			}
		}
		if err := <-errs; err != nil {
			slog.Error("itinerary stream failed", "destination", req.Destination, "error", err)
			emit(ctx, out, models.StreamChunk{
				Type:     "error",
				Content:  fmt.Sprintf("Error generating itinerary: %v", err),
				Metadata: map[string]interface{}{"error": err.Error()},
			})
			return
		}

		emit(ctx, out, models.StreamChunk{
			Type:     "complete",
			Content:  "Itinerary generation complete!",
			Metadata: map[string]interface{}{"success": true},
		})
	}()

	return out
}

// GenerateTravelTips produces up to five practical tips for a destination.
// Generation failure falls back to a static list rather than erroring.
func (s *AIService) GenerateTravelTips(ctx context.Context, destination string) []string {
	prompt := fmt.Sprintf("Provide 5 essential travel tips for visiting %s. Be concise and practical. Format as a numbered list.", destination)

	content, err := s.provider.ChatCompletion(ctx,
		[]providers.ChatMessage{
			{Role: "system", Content: travelTipsSystem},
			{Role: "user", Content: prompt},
		},
		providers.ChatParams{Temperature: 0.7, MaxTokens: 500},
	)
	if err != nil {
		slog.Warn("travel tips generation failed, using fallback", "destination", destination, "error", err)
		return fallbackTravelTips
	}

	tips := parseNumberedList(content)
	if len(tips) == 0 {
		return fallbackTravelTips
	}
	return tips
}

// GenerateSuggestions asks the model for a batch of trip suggestions matching
// the given filter hints and backfills missing record defaults
func (s *AIService) GenerateSuggestions(ctx context.Context, category, budget, continent string, count int) ([]map[string]interface{}, error) {
	content, err := s.provider.ChatCompletion(ctx,
		[]providers.ChatMessage{
			{Role: "system", Content: suggestionSystem},
			{Role: "user", Content: buildSuggestionsPrompt(category, budget, continent, count)},
		},
		// Higher temperature for varied destinations
		providers.ChatParams{Temperature: 0.8, MaxTokens: 3000},
	)
	if err != nil {
		return nil, err
	}

	body := stripCodeFence(content)

	var suggestions []map[string]interface{}
	if err := json.Unmarshal([]byte(body), &suggestions); err != nil {
		slog.Error("suggestion batch parse failed", "error", err)
		return nil, errors.NewAIResponseError("AI returned invalid JSON", content, err)
	}

	for _, suggestion := range suggestions {
		suggestion["is_featured"] = false
		backfillSuggestionDefaults(suggestion)
	}

	slog.Info("generated AI suggestions", "count", len(suggestions))
	return suggestions, nil
}

// GenerateSingleSuggestion asks the model for one fully detailed suggestion
func (s *AIService) GenerateSingleSuggestion(ctx context.Context, destination string) (map[string]interface{}, error) {
	content, err := s.provider.ChatCompletion(ctx,
		[]providers.ChatMessage{
			{Role: "system", Content: singleSuggestionSystem},
			{Role: "user", Content: buildSingleSuggestionPrompt(destination)},
		},
		providers.ChatParams{Temperature: 0.7, MaxTokens: 1500},
	)
	if err != nil {
		return nil, err
	}

	body := stripCodeFence(content)

	var suggestion map[string]interface{}
	if err := json.Unmarshal([]byte(body), &suggestion); err != nil {
		slog.Error("single suggestion parse failed", "destination", destination, "error", err)
		return nil, errors.NewAIResponseError("AI returned invalid JSON", content, err)
	}

	suggestion["is_featured"] = false
	backfillSuggestionDefaults(suggestion)

	slog.Info("generated AI suggestion", "destination", destination)
	return suggestion, nil
}

func buildItineraryPrompt(req *models.ItineraryRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed %d-day travel itinerary for %s.\n\n", req.Days, req.Destination)
	b.WriteString("Trip Details:\n")
	fmt.Fprintf(&b, "- Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "- Duration: %d days\n", req.Days)
	fmt.Fprintf(&b, "- Number of travelers: %d\n", req.Travelers)
	fmt.Fprintf(&b, "- Budget: %s\n", req.Budget)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(req.Interests, ", "))

	if req.StartDate != "" {
		fmt.Fprintf(&b, "- Start date: %s\n", req.StartDate)
	}
	if req.AdditionalPreferences != "" {
		fmt.Fprintf(&b, "- Additional preferences: %s\n", req.AdditionalPreferences)
	}

	b.WriteString(`
Please provide:
1. Day-by-day itinerary with morning, afternoon, and evening activities
2. Specific recommendations for restaurants, attractions, and experiences
3. Estimated costs for each day
4. Travel tips and local insights
5. Best transportation options
6. Cultural etiquette and important notes

Format the response in clean markdown with clear sections for each day.
Include practical details like opening hours, booking requirements, and insider tips.
`)
	return b.String()
}

func buildSuggestionsPrompt(category, budget, continent string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d unique travel destination suggestions", count)

	var filters []string
	if category != "" {
		filters = append(filters, fmt.Sprintf("category: %s", category))
	}
	if budget != "" {
		filters = append(filters, fmt.Sprintf("budget level: %s", budget))
	}
	if continent != "" {
		filters = append(filters, fmt.Sprintf("continent: %s", continent))
	}
	if len(filters) > 0 {
		fmt.Fprintf(&b, " matching these criteria: %s", strings.Join(filters, ", "))
	}

	b.WriteString(`

For each destination, provide:
1. destination (city/place name)
2. country
3. continent (Asia, Europe, Africa, North America, South America, Oceania)
4. title (catchy trip title)
5. description (2-3 sentences about the destination)
6. duration (e.g., "5-7 days")
7. duration_days (numeric, average days)
8. highlights (list of 5 main attractions)
9. best_time_to_visit (brief description)
10. best_months (list of 3-letter month abbreviations)
11. category (list, choose from: adventure, culture, beach, mountains, city, nature, food, romantic, hiking, photography, luxury)
12. budget (budget, moderate, or high/luxury)
13. estimated_cost (price range as string, e.g., "$1000-$2000")
14. rating (float between 4.5-5.0)
15. popular_activities (list of 5 activities)
16. travel_tips (list of 5 practical tips)

Return ONLY a valid JSON array of objects. No additional text or markdown.
`)
	return b.String()
}

func buildSingleSuggestionPrompt(destination string) string {
	return fmt.Sprintf(`Generate a detailed travel suggestion for %s.

Provide complete information including:
- destination, country, continent
- title (catchy trip title)
- description (2-3 engaging sentences)
- duration and duration_days
- highlights (5 main attractions)
- best_time_to_visit and best_months
- category (list of applicable categories)
- budget level and estimated_cost
- rating (4.5-5.0)
- popular_activities (5 activities)
- travel_tips (5 practical tips)

Return ONLY a valid JSON object. No additional text or markdown.
`, destination)
}

// stripCodeFence removes one leading fenced code block wrapper, with an
// optional language tag, from model output
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	parts := strings.SplitN(content, "```", 3)
	if len(parts) < 2 {
		return content
	}

	body := strings.TrimSpace(parts[1])
	body = strings.TrimPrefix(body, "json")
	return strings.TrimSpace(body)
}

// backfillSuggestionDefaults fills the fields the model commonly omits
func backfillSuggestionDefaults(suggestion map[string]interface{}) {
	if _, ok := suggestion["rating"]; !ok {
		suggestion["rating"] = defaultSuggestionRating
	}
	if _, ok := suggestion["duration_days"]; !ok {
		duration, _ := suggestion["duration"].(string)
		suggestion["duration_days"] = parseDurationDays(duration)
	}
}

// parseDurationDays extracts the leading integer of a human duration such as
// "5-7 days", falling back to a week when unparsable
func parseDurationDays(duration string) int {
	lead, _, _ := strings.Cut(duration, "-")
	fields := strings.Fields(lead)
	if len(fields) == 0 {
		return defaultDurationDays
	}
	days, err := strconv.Atoi(fields[0])
	if err != nil {
		return defaultDurationDays
	}
	return days
}

// parseNumberedList extracts up to five lines that start with a digit marker
func parseNumberedList(content string) []string {
	var tips []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		prefix := line
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		if strings.IndexFunc(prefix, func(r rune) bool { return r >= '0' && r <= '9' }) < 0 {
			continue
		}
		tips = append(tips, line)
		if len(tips) == 5 {
			break
		}
	}
	return tips
}

// emit delivers a chunk unless the consumer is gone
func emit(ctx context.Context, out chan<- models.StreamChunk, chunk models.StreamChunk) bool {
	select {
	case out <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}
