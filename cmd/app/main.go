package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airportapi/config"
	"github.com/Domenick1991/airportapi/internal/bootstrap"
	"github.com/Domenick1991/airportapi/internal/cache"
	"github.com/Domenick1991/airportapi/internal/kafka"
	"github.com/Domenick1991/airportapi/internal/repository"
	"github.com/Domenick1991/airportapi/internal/service/catalog"
	"github.com/Domenick1991/airportapi/internal/service/flights"
	"github.com/Domenick1991/airportapi/internal/service/orders"
	"github.com/jackc/pgx/v5/pgxpool"
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

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Orders.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache, log)
	orderService := orders.NewOrderService(
		orderRepo,
		flightRepo,
		log,
		orders.WithCache(redisCache),
		orders.WithEvents(producer, cfg.Kafka.OrderEventsTopic),
		orders.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	catalogService := catalog.NewCatalogService(catalogRepo)

	if err := bootstrap.Run(ctx, cfg, flightService, orderService, catalogService); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
