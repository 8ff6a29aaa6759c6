// Package helpers provides destination and budget formatting utilities
package helpers

import (
	"fmt"
	"strings"
)

type costRange struct {
	min int
	max int
}

var dailyCosts = map[string]costRange{
	"low":      {30, 70},
	"budget":   {30, 70},
	"moderate": {70, 150},
	"high":     {150, 300},
	"luxury":   {300, 500},
}

// ExtractCity returns the city part of a "City, Country" destination string
func ExtractCity(destination string) string {
	city, _, _ := strings.Cut(destination, ",")
	return strings.TrimSpace(city)
}

// SanitizeDestination collapses repeated whitespace and title-cases each word
func SanitizeDestination(destination string) string {
	words := strings.Fields(destination)
	for i, word := range words {
		words[i] = strings.Title(strings.ToLower(word))
	}
	return strings.Join(words, " ")
}

// CalculateEstimatedCost returns a total cost range for a trip based on
// budget level, duration and party size
func CalculateEstimatedCost(days int, budget string, travelers int) string {
	daily, ok := dailyCosts[strings.ToLower(budget)]
	if !ok {
		daily = dailyCosts["moderate"]
	}

	minCost := daily.min * days * travelers
	maxCost := daily.max * days * travelers
	return fmt.Sprintf("$%s - $%s", formatThousands(minCost), formatThousands(maxCost))
}

// FormatDuration renders a day count in human form, e.g. "2 weeks and 3 days"
func FormatDuration(days int) string {
	switch {
	case days == 1:
		return "1 day"
	case days < 7:
		return fmt.Sprintf("%d days", days)
	case days == 7:
		return "1 week"
	case days < 14:
		return fmt.Sprintf("%d days (1+ week)", days)
	case days == 14:
		return "2 weeks"
	}

	weeks := days / 7
	remaining := days % 7
	if remaining == 0 {
		return fmt.Sprintf("%d weeks", weeks)
	}
	return fmt.Sprintf("%d weeks and %d days", weeks, remaining)
}

// formatThousands inserts comma separators into a non-negative integer
func formatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
