package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode"

	"tripplanner.app/metrics"
	"tripplanner.app/models"
	"tripplanner.app/providers"
	"tripplanner.app/providers/cache"
)

const (
	minForecastDays = 1
	maxForecastDays = 5

	// The upstream forecast endpoint returns readings every 3 hours,
	// so a day needs 8 of them.
	readingsPerDay = 8
)

// WeatherService serves current conditions and daily forecasts, caching
// formatted results for the configured TTL. Lookups never fail the caller:
// any upstream problem is logged and reported as absence.
type WeatherService struct {
	provider providers.WeatherProvider
	cache    cache.Cache
	ttl      time.Duration
	metrics  *metrics.CacheMetrics
}

// NewWeatherService creates a new weather service
func NewWeatherService(provider providers.WeatherProvider, c cache.Cache, ttl time.Duration, m *metrics.CacheMetrics) *WeatherService {
	return &WeatherService{
		provider: provider,
		cache:    c,
		ttl:      ttl,
		metrics:  m,
	}
}

// GetCurrent returns current weather for a city, serving from cache when a
// fresh entry exists
func (s *WeatherService) GetCurrent(ctx context.Context, city string) (*models.WeatherSnapshot, bool) {
	key := cacheKey(city) + "_current"

	if data, ok := s.cache.Get(ctx, key); ok {
		var snapshot models.WeatherSnapshot
		if err := json.Unmarshal(data, &snapshot); err == nil {
			s.metrics.RecordHit()
			slog.Debug("weather cache hit", "key", key)
			return &snapshot, true
		}
	}
	s.metrics.RecordMiss()

	raw, err := s.provider.FetchCurrent(ctx, city)
	if err != nil {
		slog.Warn("current weather fetch failed", "city", city, "error", err)
		return nil, false
	}

	snapshot := formatCurrentWeather(raw)
	s.store(ctx, key, snapshot)
	return snapshot, true
}

// GetForecast returns the aggregated daily forecast for a city. Days outside
// [1,5] are clamped to the nearest bound before the cache key is built.
func (s *WeatherService) GetForecast(ctx context.Context, city string, days int) (*models.ForecastBundle, bool) {
	if days < minForecastDays {
		days = minForecastDays
	}
	if days > maxForecastDays {
		days = maxForecastDays
	}
	key := cacheKey(city) + fmt.Sprintf("_forecast_%d", days)

	if data, ok := s.cache.Get(ctx, key); ok {
		var bundle models.ForecastBundle
		if err := json.Unmarshal(data, &bundle); err == nil {
			s.metrics.RecordHit()
			slog.Debug("weather cache hit", "key", key)
			return &bundle, true
		}
	}
	s.metrics.RecordMiss()

	raw, err := s.provider.FetchForecast(ctx, city, days*readingsPerDay)
	if err != nil {
		slog.Warn("forecast fetch failed", "city", city, "error", err)
		return nil, false
	}

	bundle := aggregateForecast(raw, days)
	s.store(ctx, key, bundle)
	return bundle, true
}

// ClearCache drops every cached weather entry
func (s *WeatherService) ClearCache(ctx context.Context) {
	s.cache.Clear(ctx)
}

// CacheStats reports cache occupancy without evicting anything
func (s *WeatherService) CacheStats(ctx context.Context) models.CacheStats {
	return s.cache.Stats(ctx)
}

func (s *WeatherService) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, data, s.ttl)
}

func cacheKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

func formatCurrentWeather(raw *providers.CurrentWeatherData) *models.WeatherSnapshot {
	description, icon := "", ""
	if len(raw.Weather) > 0 {
		description = capitalize(raw.Weather[0].Description)
		icon = raw.Weather[0].Icon
	}

	return &models.WeatherSnapshot{
		City:        raw.Name,
		Country:     raw.Sys.Country,
		Temperature: round1(raw.Main.Temp),
		FeelsLike:   round1(raw.Main.FeelsLike),
		TempMin:     round1(raw.Main.TempMin),
		TempMax:     round1(raw.Main.TempMax),
		Humidity:    raw.Main.Humidity,
		Pressure:    raw.Main.Pressure,
		Description: description,
		Icon:        icon,
		WindSpeed:   round1(raw.Wind.Speed),
		Clouds:      raw.Clouds.All,
		Visibility:  raw.Visibility / 1000,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// aggregateForecast collapses 3-hourly readings into per-day summaries.
// Consecutive readings sharing a calendar date form one day, in reading
// order, and the first days groups become the response.
func aggregateForecast(raw *providers.ForecastData, days int) *models.ForecastBundle {
	type dayGroup struct {
		date     time.Time
		readings []providers.ForecastReading
	}

	groups := make([]*dayGroup, 0, days+1)
	for _, reading := range raw.List {
		date := time.Unix(reading.Dt, 0).UTC().Truncate(24 * time.Hour)
		if len(groups) == 0 || !groups[len(groups)-1].date.Equal(date) {
			groups = append(groups, &dayGroup{date: date})
		}
		last := groups[len(groups)-1]
		last.readings = append(last.readings, reading)
	}
	if len(groups) > days {
		groups = groups[:days]
	}

	forecasts := make([]models.ForecastDay, 0, len(groups))
	for _, group := range groups {
		forecasts = append(forecasts, summarizeDay(group.date, group.readings))
	}

	return &models.ForecastBundle{
		City:      raw.City.Name,
		Country:   raw.City.Country,
		Forecasts: forecasts,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func summarizeDay(date time.Time, readings []providers.ForecastReading) models.ForecastDay {
	tempMin := math.Inf(1)
	tempMax := math.Inf(-1)
	var tempSum, windSum, maxPop float64
	var humiditySum int

	descCounts := make(map[string]int)
	descOrder := make([]string, 0, len(readings))

	for _, reading := range readings {
		temp := reading.Main.Temp
		if temp < tempMin {
			tempMin = temp
		}
		if temp > tempMax {
			tempMax = temp
		}
		tempSum += temp
		humiditySum += reading.Main.Humidity
		windSum += reading.Wind.Speed
		if reading.Pop > maxPop {
			maxPop = reading.Pop
		}

		if len(reading.Weather) > 0 {
			desc := reading.Weather[0].Description
			if _, seen := descCounts[desc]; !seen {
				descOrder = append(descOrder, desc)
			}
			descCounts[desc]++
		}
	}

	// Most frequent description wins; on a tie the one seen first does
	description := ""
	best := 0
	for _, desc := range descOrder {
		if descCounts[desc] > best {
			best = descCounts[desc]
			description = desc
		}
	}

	icon := ""
	if mid := readings[len(readings)/2]; len(mid.Weather) > 0 {
		icon = mid.Weather[0].Icon
	}

	n := float64(len(readings))
	return models.ForecastDay{
		Date:        date.Format("2006-01-02"),
		DayName:     date.Weekday().String(),
		TempMin:     round1(tempMin),
		TempMax:     round1(tempMax),
		TempAvg:     round1(tempSum / n),
		Description: capitalize(description),
		Icon:        icon,
		Humidity:    int(math.Round(float64(humiditySum) / n)),
		WindSpeed:   round1(windSum / n),
		Pop:         int(math.Round(maxPop * 100)),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// capitalize upper-cases the first rune and lower-cases the rest
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
