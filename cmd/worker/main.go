package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voyago/tripengine/config"
	"github.com/voyago/tripengine/internal/email"
	"github.com/voyago/tripengine/internal/kafka"
	"github.com/voyago/tripengine/internal/lifecycle"
	"github.com/voyago/tripengine/internal/remote"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	tripsClient := remote.NewClient(cfg.TripsAPI.BaseURL, cfg.TripsAPI.AuthToken, time.Duration(cfg.TripsAPI.TimeoutSeconds)*time.Second)
	evaluator := lifecycle.NewEvaluator()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.TripEventsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, emailSender.Send); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.LifecycleSweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweepTicker.C:
			sweep(ctx, tripsClient, evaluator, producer, cfg.Kafka.NotificationsTopic)
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}

// sweep fetches the trip list and publishes a reminder for every prompt that
// became due since the last pass. The evaluator's dismissed set keeps each
// reminder to one send.
func sweep(ctx context.Context, client *remote.Client, evaluator *lifecycle.Evaluator, producer *kafka.Producer, topic string) {
	trips, err := client.ListTrips(ctx)
	if err != nil {
		log.Printf("lifecycle sweep list error: %v", err)
		return
	}

	for {
		prompt := evaluator.Scan(trips)
		if prompt == nil {
			return
		}

		event := kafka.TripEvent{
			Type:       "trip_" + string(prompt.Kind) + "_due",
			TripID:     prompt.TripID,
			CityID:     prompt.Trip.CityID,
			Status:     string(prompt.Trip.Status),
			OccurredAt: time.Now(),
		}
		if err := producer.Publish(ctx, topic, prompt.TripID, event); err != nil {
			log.Printf("publish %s reminder for trip %s: %v", prompt.Kind, prompt.TripID, err)
		}
	}
}
