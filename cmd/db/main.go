package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"flightfinder/cfg"
	"flightfinder/internal/repository"
	"flightfinder/internal/seed"
	"flightfinder/pkg/db"
	"flightfinder/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	// ============
	// Load config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}
	zlogger := logger.NewZeroLog(config.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg := config.Postgres
	pgDSN := db.PostgresDSN(pg.User, pg.Password, pg.Host, pg.Port, pg.DBName, pg.SSLMode)

	// =========
	// Migrate
	// =========
	m, err := migrate.New("file://"+config.MigrationsPath, pgDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			zlogger.Error("failed to close migrator",
				logger.Field{Key: "source_err", Value: fmt.Sprint(srcErr)},
				logger.Field{Key: "db_err", Value: fmt.Sprint(dbErr)},
			)
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(err)
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal(err)
	}
	zlogger.Info("migrations applied",
		logger.Field{Key: "version", Value: int64(version)},
		logger.Field{Key: "dirty", Value: dirty},
	)

	// ============
	// Init DB client
	// ============
	client, err := db.NewSQLClient(ctx, db.DriverPgx, pgDSN, db.DefaultPoolOptions)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	// ============
	// Seed
	// ============
	dataset, err := seed.Default()
	if err != nil {
		log.Fatal(err)
	}
	now := time.Now().UTC()
	batch, err := dataset.Build(now)
	if err != nil {
		log.Fatal(err)
	}

	repo := repository.NewFlightRepository(client)
	seeded, err := repo.Seed(ctx, batch, now)
	if err != nil {
		log.Fatal(err)
	}
	if !seeded {
		zlogger.Info("database already seeded, skipping")
		return
	}
	zlogger.Info("database seeded",
		logger.Field{Key: "airlines", Value: len(batch.Airlines)},
		logger.Field{Key: "airports", Value: len(batch.Airports)},
		logger.Field{Key: "routes", Value: len(batch.Routes)},
		logger.Field{Key: "flights", Value: len(batch.Flights)},
	)
}
