package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"flightfinder/cfg"
	"flightfinder/internal/kafka"
	"flightfinder/internal/repository"
	"flightfinder/internal/routesync"
	"flightfinder/pkg/cache"
	"flightfinder/pkg/db"
	"flightfinder/pkg/logger"

	"github.com/robfig/cron/v3"
)

func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}
	zlogger := logger.NewZeroLog(config.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ============
	// Init DB client
	// ============
	pg := config.Postgres
	pgDSN := db.PostgresDSN(pg.User, pg.Password, pg.Host, pg.Port, pg.DBName, pg.SSLMode)
	client, err := db.NewSQLClient(ctx, db.DriverPgx, pgDSN, db.DefaultPoolOptions)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	var routeCache cache.Cache
	if addr := config.RedisConfig.Addr(); addr != "" {
		routeCache = cache.NewRedisCache(addr, config.RedisConfig.Password)
	}

	refresher := routesync.NewRefresher(repository.NewFlightRepository(client), routeCache, zlogger)

	// ============
	// Schedule
	// ============
	scheduler := cron.New()
	if _, err := refresher.Schedule(scheduler, config.RouteRefreshCron); err != nil {
		log.Fatal(err)
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	// refresh once so a fresh deployment does not wait for the first tick
	_ = refresher.Refresh(ctx)

	// ============
	// Inventory events
	// ============
	if len(config.Kafka.Brokers) == 0 {
		zlogger.Warn("KAFKA_BROKERS not set, running on schedule only")
		<-ctx.Done()
		return
	}

	consumer := kafka.NewConsumer(config.Kafka.Brokers, config.Kafka.GroupID, config.Kafka.InventoryTopic)
	defer consumer.Close()

	zlogger.Info("consuming inventory events",
		logger.Field{Key: "topic", Value: config.Kafka.InventoryTopic},
		logger.Field{Key: "group_id", Value: config.Kafka.GroupID},
	)
	if err := consumer.Consume(ctx, refresher.HandleInventoryEvent); err != nil {
		zlogger.Error("consumer stopped", logger.Field{Key: "err", Value: err})
	}
}
