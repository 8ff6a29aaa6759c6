package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
)

func TestAIService_GenerateItinerary(t *testing.T) {
	mockProvider := new(mockAIProvider)
	aiService := NewAIService(mockProvider)

	mockProvider.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything).
		Return("# Day 1\nVisit the old town", nil).Once()

	req := &models.ItineraryRequest{Destination: "Lisbon", Days: 3, Travelers: 2, Budget: "moderate", Interests: []string{"food"}}
	content, err := aiService.GenerateItinerary(context.Background(), req)

	require.NoError(t, err)
	assert.Contains(t, content, "Day 1")
	mockProvider.AssertExpectations(t)
}

func TestAIService_GenerateSuggestions_ParsesFencedJSON(t *testing.T) {
	mockProvider := new(mockAIProvider)
	aiService := NewAIService(mockProvider)

	response := "```json\n[{\"destination\": \"Kyoto\", \"duration\": \"5-7 days\"}]\n```"
	mockProvider.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything).
		Return(response, nil).Once()

	suggestions, err := aiService.GenerateSuggestions(context.Background(), "culture", "", "", 1)

	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Kyoto", suggestions[0]["destination"])
	assert.Equal(t, false, suggestions[0]["is_featured"])
	assert.Equal(t, 4.7, suggestions[0]["rating"])
	assert.Equal(t, 5, suggestions[0]["duration_days"])
	mockProvider.AssertExpectations(t)
}

func TestAIService_GenerateSuggestions_InvalidJSON(t *testing.T) {
	mockProvider := new(mockAIProvider)
	aiService := NewAIService(mockProvider)

	mockProvider.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything).
		Return("I cannot produce JSON today", nil).Once()

	suggestions, err := aiService.GenerateSuggestions(context.Background(), "", "", "", 3)

	require.Error(t, err)
	assert.Nil(t, suggestions)
	assert.True(t, apperrors.IsAIResponseError(err))

	appErr := err.(*apperrors.AppError)
	assert.Equal(t, "I cannot produce JSON today", appErr.RawResponse)
	mockProvider.AssertExpectations(t)
}

func TestAIService_GenerateSuggestions_ProviderErrorPropagates(t *testing.T) {
	mockProvider := new(mockAIProvider)
	aiService := NewAIService(mockProvider)

	mockProvider.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything).
		Return("", apperrors.NewExternalAPIError("upstream down", nil)).Once()

	_, err := aiService.GenerateSuggestions(context.Background(), "", "", "", 3)

	require.Error(t, err)
	assert.True(t, apperrors.IsExternalAPIError(err))
	mockProvider.AssertExpectations(t)
}

func TestAIService_GenerateSingleSuggestion_KeepsExistingFields(t *testing.T) {
	mockProvider := new(mockAIProvider)
	aiService := NewAIService(mockProvider)

	response := `{"destination": "Petra", "rating": 4.9, "duration_days": 3}`
	mockProvider.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything).
		Return(response, nil).Once()

	suggestion, err := aiService.GenerateSingleSuggestion(context.Background(), "Petra")

	require.NoError(t, err)
	assert.Equal(t, 4.9, suggestion["rating"])
	assert.Equal(t, 3.0, suggestion["duration_days"])
	mockProvider.AssertExpectations(t)
}

func TestAIService_GenerateTravelTips_FallsBackOnError(t *testing.T) {
	mockProvider := new(mockAIProvider)
	aiService := NewAIService(mockProvider)

	mockProvider.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything).
		Return("", apperrors.NewExternalAPIError("upstream down", nil)).Once()

	tips := aiService.GenerateTravelTips(context.Background(), "Lisbon")

	assert.Equal(t, fallbackTravelTips, tips)
	mockProvider.AssertExpectations(t)
}

func TestAIService_GenerateTravelTips_ParsesNumberedList(t *testing.T) {
	mockProvider := new(mockAIProvider)
	aiService := NewAIService(mockProvider)

	response := "Here are some tips:\n1. Carry cash\n2. Learn basic phrases\nnot a tip\n3. Book ahead"
	mockProvider.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything).
		Return(response, nil).Once()

	tips := aiService.GenerateTravelTips(context.Background(), "Lisbon")

	assert.Equal(t, []string{"1. Carry cash", "2. Learn basic phrases", "3. Book ahead"}, tips)
	mockProvider.AssertExpectations(t)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no fence", `[{"a": 1}]`, `[{"a": 1}]`},
		{"json tag", "```json\n[1, 2]\n```", "[1, 2]"},
		{"bare fence", "```\n[1, 2]\n```", "[1, 2]"},
		{"surrounding whitespace", "  ```json\n{}\n```  ", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFence(tt.input))
		})
	}
}

func TestParseDurationDays(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"range", "5-7 days", 5},
		{"single value", "10 days", 10},
		{"unparsable", "a fortnight", 7},
		{"empty", "", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseDurationDays(tt.input))
		})
	}
}

func TestParseNumberedList_CapsAtFive(t *testing.T) {
	content := "1. a\n2. b\n3. c\n4. d\n5. e\n6. f\n7. g"

	tips := parseNumberedList(content)

	assert.Len(t, tips, 5)
	assert.Equal(t, "5. e", tips[4])
}

func TestAIService_GenerateItineraryStream_EmitsThoughtsThenContent(t *testing.T) {
	mockProvider := new(mockAIProvider)
	aiService := NewAIService(mockProvider)

	deltas := make(chan string, 2)
	deltas <- "# Day 1"
	deltas <- " morning walk"
	close(deltas)
	errs := make(chan error)
	close(errs)

	mockProvider.On("ChatCompletionStream", mock.Anything, mock.Anything, mock.Anything).
		Return((<-chan string)(deltas), (<-chan error)(errs)).Once()

	req := &models.ItineraryRequest{Destination: "Lisbon", Days: 2, Travelers: 1, Budget: "moderate", Interests: []string{"food"}}
	chunks := aiService.GenerateItineraryStream(context.Background(), req)

	var types []string
	var content string
	for chunk := range chunks {
		types = append(types, chunk.Type)
		if chunk.Type == "content" {
			content += chunk.Content
		}
	}

	assert.Equal(t, "# Day 1 morning walk", content)
	require.NotEmpty(t, types)
	assert.Equal(t, "thought", types[0])
	assert.Equal(t, "complete", types[len(types)-1])
	mockProvider.AssertExpectations(t)
}
