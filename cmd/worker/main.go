package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airportapi/config"
	"github.com/Domenick1991/airportapi/internal/email"
	"github.com/Domenick1991/airportapi/internal/kafka"
	"github.com/Domenick1991/airportapi/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.WithError(err).Fatal("connect postgres")
	}
	defer pool.Close()

	flightRepo := repository.NewFlightRepository(pool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender(log)

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.OrderEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.WithError(err).Warn("decode order event")
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			log.WithError(err).Info("consumer stopped")
		}
	}()

	// An overbooked flight means the ticket uniqueness constraint was
	// bypassed; the sweep makes sure such a violation is alerted on even
	// when nobody asks for the flight list.
	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.IntegritySweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	for {
		select {
		case <-sweepTicker.C:
			overbooked, err := flightRepo.FindOverbooked(ctx)
			if err != nil {
				log.WithError(err).Error("integrity sweep failed")
				continue
			}
			for _, o := range overbooked {
				log.WithFields(logrus.Fields{
					"flight_id": o.FlightID,
					"capacity":  o.Capacity,
					"sold":      o.Sold,
				}).Error("data integrity violation: flight overbooked")
			}
		case <-ctx.Done():
			log.Info("shutting down")
			return
		}
	}
}
