package app

import (
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"tripplanner.app/api"
	"tripplanner.app/config"
	"tripplanner.app/database"
	"tripplanner.app/metrics"
	"tripplanner.app/providers"
	"tripplanner.app/providers/cache"
	"tripplanner.app/repository"
	"tripplanner.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config *config.Config
	client *mongo.Client
	db     *mongo.Database
	server *api.Server
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing database...")

	client, db, err := database.InitDB(app.config.Mongo)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	// Missing indexes slow queries down but do not break them
	if err := database.EnsureIndexes(db); err != nil {
		slog.Warn("Failed to create database indexes", "error", err)
	}

	app.client = client
	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	weatherCache, err := cache.NewCache(&app.config.Cache)
	if err != nil {
		return fmt.Errorf("create weather cache: %w", err)
	}

	aiProvider := providers.NewOpenRouterProvider(&app.config.AI)
	weatherProvider := providers.NewOpenWeatherMapProvider(&app.config.Weather)

	cacheMetrics := metrics.NewCacheMetrics(app.config.Cache.Type)

	suggestionRepo := repository.NewSuggestionRepository(app.db)
	itineraryRepo := repository.NewItineraryRepository(app.db)

	aiService := service.NewAIService(aiProvider)
	weatherService := service.NewWeatherService(weatherProvider, weatherCache, app.config.Cache.TTL(), cacheMetrics)
	suggestionService := service.NewSuggestionService(suggestionRepo, aiService)
	itineraryService := service.NewItineraryService(itineraryRepo, aiService, weatherService)

	app.server = api.NewServer(app.config, itineraryService, suggestionService, weatherService)

	slog.Info("Services initialized successfully")
	return nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.client != nil {
		if err := database.CloseDB(app.client); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
