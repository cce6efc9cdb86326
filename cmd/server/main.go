package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/ecocart/backend/config"
	httpDelivery "github.com/ecocart/backend/internal/delivery/http"
	"github.com/ecocart/backend/internal/domain"
	"github.com/ecocart/backend/internal/infrastructure/cache"
	"github.com/ecocart/backend/internal/infrastructure/geo"
	"github.com/ecocart/backend/internal/infrastructure/openfoodfacts"
	"github.com/ecocart/backend/internal/infrastructure/postgres"
	"github.com/ecocart/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting EcoCart Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRepository(db)

	coordCache := cache.NewCoordinateCache(cfg.Geocoding.CacheSize)
	geocoder := geo.NewNominatimGeocoder(cfg.Geocoding.BaseURL, coordCache)
	log.Printf("Geocoder: %s (cache size %d)", cfg.Geocoding.BaseURL, cfg.Geocoding.CacheSize)

	catalog := openfoodfacts.NewClient(cfg.Catalog.BaseURL)
	log.Printf("Catalog: %s", cfg.Catalog.BaseURL)

	// Initialize usecase layer
	scoringService := usecase.NewScoringService(repo, geocoder, usecase.ScoringConfig{
		DefaultDestination: domain.Coordinates{
			Lat: cfg.Scoring.DefaultDestinationLat,
			Lon: cfg.Scoring.DefaultDestinationLon,
		},
		AssumedProductWeightKg: cfg.Scoring.AssumedProductWeightKg,
		Climate: usecase.ClimateConfig{
			ExcellentMaxCO2Per100Kcal: cfg.Scoring.ClimateExcellentMax,
			GoodMaxCO2Per100Kcal:      cfg.Scoring.ClimateGoodMax,
			ModerateMaxCO2Per100Kcal:  cfg.Scoring.ClimateModerateMax,
			PointsExcellent:           5,
			PointsGood:                2,
			PointsModerate:            0,
			PointsPoor:                -5,
		},
	})
	ingredientService := usecase.NewIngredientService(repo)
	recommendationService := usecase.NewRecommendationService(repo, catalog, scoringService, ingredientService)
	scanService := usecase.NewScanService(
		repo, catalog, scoringService, ingredientService,
		recommendationService, cfg.Recommendations.MinCount,
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(repo, scanService, scoringService, ingredientService, recommendationService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
