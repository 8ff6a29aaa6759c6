package service

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// suggestionArrayFields are always arrays of text in any record that leaves
// normalization, whatever shape they arrived in. Stored documents predating
// the array convention, and model output, may carry bare or comma-joined
// strings instead.
var suggestionArrayFields = []string{
	"category",
	"highlights",
	"best_months",
	"popular_activities",
	"travel_tips",
}

// NormalizeSuggestion coerces the array-typed suggestion fields into arrays
// of text. It is pure and idempotent: records reloaded from storage pass
// through it again unchanged.
func NormalizeSuggestion(doc map[string]interface{}) map[string]interface{} {
	normalized := make(map[string]interface{}, len(doc))
	for key, value := range doc {
		normalized[key] = value
	}

	for _, field := range suggestionArrayFields {
		normalized[field] = coerceToStringArray(normalized[field])
	}

	return normalized
}

func coerceToStringArray(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return []string{}
	case string:
		return splitListString(v)
	case []string:
		return v
	case []interface{}:
		return v
	case primitive.A:
		return v
	default:
		// Unexpected shapes are dropped rather than rejected
		return []string{}
	}
}

// splitListString turns a bare or comma-joined string into an array of
// trimmed, non-empty items
func splitListString(s string) []string {
	if !strings.Contains(s, ",") {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return []string{}
		}
		return []string{trimmed}
	}

	items := make([]string, 0)
	for _, piece := range strings.Split(s, ",") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			items = append(items, piece)
		}
	}
	return items
}
