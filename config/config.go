package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"tripplanner.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server         ServerConfig  `split_words:"true"`
	Mongo          MongoConfig   `split_words:"true"`
	AI             AIConfig      `split_words:"true"`
	Weather        WeatherConfig `split_words:"true"`
	Cache          CacheConfig   `split_words:"true"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// MongoConfig contains document store connection settings
type MongoConfig struct {
	URI      string `envconfig:"MONGODB_URL" default:"mongodb://localhost:27017"`
	Database string `envconfig:"DATABASE_NAME" default:"travel_guide_db"`
}

// AIConfig contains settings for the OpenRouter chat-completion client
type AIConfig struct {
	APIKey  string `envconfig:"LLAMA_API_KEY" required:"true"`
	BaseURL string `envconfig:"LLAMA_BASE_URL" default:"https://openrouter.ai/api/v1"`
	Model   string `envconfig:"LLAMA_MODEL" default:"meta-llama/llama-3.2-3b-instruct:free"`
}

// WeatherConfig contains settings for the OpenWeatherMap API
type WeatherConfig struct {
	APIKey  string `envconfig:"OPENWEATHER_API_KEY" required:"true"`
	BaseURL string `envconfig:"OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
}

// CacheType represents the backing store of the weather cache
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// CacheConfig contains weather cache settings
type CacheConfig struct {
	Type       string      `envconfig:"CACHE_TYPE" default:"memory"`
	TTLMinutes int         `envconfig:"CACHE_TTL_MINUTES" default:"60"`
	MaxEntries int         `envconfig:"CACHE_MAX_ENTRIES" default:"1000"`
	Redis      RedisConfig `split_words:"true"`
}

// RedisConfig contains redis connection settings for the redis cache backend
type RedisConfig struct {
	Addr         string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"REDIS_PASSWORD" default:""`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// TTL returns the cache time-to-live as a duration
func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Mongo.Validate(); err != nil {
		return err
	}
	if err := c.AI.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks document store configuration
func (m *MongoConfig) Validate() error {
	if m.URI == "" {
		return errors.NewConfigurationError("MONGODB_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(m.URI, "mongodb://") && !strings.HasPrefix(m.URI, "mongodb+srv://") {
		return errors.NewConfigurationError("MONGODB_URL must start with mongodb:// or mongodb+srv://", nil)
	}
	if m.Database == "" {
		return errors.NewConfigurationError("DATABASE_NAME cannot be empty", nil)
	}
	return nil
}

// Validate checks AI client configuration
func (a *AIConfig) Validate() error {
	if a.APIKey == "" {
		return errors.NewConfigurationError("LLAMA_API_KEY is required", nil)
	}
	if a.Model == "" {
		return errors.NewConfigurationError("LLAMA_MODEL cannot be empty", nil)
	}
	if !strings.HasPrefix(a.BaseURL, "http://") && !strings.HasPrefix(a.BaseURL, "https://") {
		return errors.NewConfigurationError("LLAMA_BASE_URL must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks weather API configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("OPENWEATHER_API_KEY is required", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("OPENWEATHER_BASE_URL must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	switch CacheType(c.Type) {
	case CacheTypeMemory, CacheTypeRedis:
	default:
		return errors.NewConfigurationError(
			fmt.Sprintf("CACHE_TYPE must be one of: %s, %s", CacheTypeMemory, CacheTypeRedis), nil)
	}
	if c.TTLMinutes < 1 {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES must be at least 1 minute", nil)
	}
	if c.TTLMinutes > 1440 {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES cannot exceed 1440 minutes (24 hours)", nil)
	}
	if c.MaxEntries < 1 {
		return errors.NewConfigurationError("CACHE_MAX_ENTRIES must be at least 1", nil)
	}
	return nil
}
