package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voyago/tripengine/api"
	"github.com/voyago/tripengine/config"
	"github.com/voyago/tripengine/internal/booking"
	"github.com/voyago/tripengine/internal/bootstrap"
	"github.com/voyago/tripengine/internal/cache"
	"github.com/voyago/tripengine/internal/catalog"
	"github.com/voyago/tripengine/internal/kafka"
	"github.com/voyago/tripengine/internal/lifecycle"
	"github.com/voyago/tripengine/internal/remote"
	"github.com/voyago/tripengine/internal/selection"
	"github.com/voyago/tripengine/internal/trips"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.CatalogAPI.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	tripsClient := remote.NewClient(cfg.TripsAPI.BaseURL, cfg.TripsAPI.AuthToken, time.Duration(cfg.TripsAPI.TimeoutSeconds)*time.Second)
	catalogClient := remote.NewCatalogClient(cfg.CatalogAPI.BaseURL, time.Duration(cfg.CatalogAPI.TimeoutSeconds)*time.Second)

	catalogService := catalog.NewService(catalogClient, redisCache)
	store := selection.NewStore()
	session := booking.NewSession(catalogService, producer, cfg.Kafka.TripEventsTopic)
	evaluator := lifecycle.NewEvaluator()
	tripService := trips.NewService(tripsClient, producer, cfg.Kafka.TripEventsTopic)

	handlers := bootstrap.Handlers{
		Catalog:   api.NewCatalogHandler(catalogService),
		Selection: api.NewSelectionHandler(store, catalogService),
		Booking:   api.NewBookingHandler(session),
		Trips:     api.NewTripHandler(tripService, store, evaluator),
		Prompts:   api.NewPromptHandler(tripService, evaluator),
	}

	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
