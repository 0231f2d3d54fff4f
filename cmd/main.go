package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gilboash/printlink/internal/config"
	"github.com/gilboash/printlink/internal/events"
	"github.com/gilboash/printlink/internal/identity"
	"github.com/gilboash/printlink/internal/logger"
	"github.com/gilboash/printlink/internal/offer"
	"github.com/gilboash/printlink/internal/request"
	"github.com/gilboash/printlink/internal/server"
	"github.com/gilboash/printlink/internal/store"
	"github.com/gilboash/printlink/internal/store/postgres"
	"github.com/gilboash/printlink/internal/view"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	st, cleanup, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open document store", zap.Error(err))
	}
	defer cleanup()

	identities := identity.NewProvider(log)
	<-identities.Ready()

	requests := request.NewService(st, log)
	offers := offer.NewService(st, log)
	views := view.NewProjector(st, log)

	srv := server.New(requests, offers, views, identities, log)

	var producer events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewKafkaProducer(cfg.KafkaBrokers)
	} else {
		producer = events.NewConsoleProducer(log)
	}
	publisher := events.NewPublisher(st, producer, events.Config{Topic: cfg.KafkaTopic}, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, cfg.HTTPPort)
	})
	g.Go(func() error {
		return publisher.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("service exited with error", zap.Error(err))
	}
	log.Info("service stopped")
}

func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Info("using in-memory document store")
		return store.NewMemoryStore(), func() {}, nil

	case config.BackendFile:
		log.Info("using file-backed document store", zap.String("path", cfg.StoreFilePath))
		fs, err := store.NewFileStore(cfg.StoreFilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return fs, func() {}, nil

	case config.BackendPostgres:
		runDBMigration(cfg.MigrationsURL, cfg.PostgresURL(), log)
		db, err := postgres.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		log.Info("using postgres document store", zap.String("host", cfg.DBHost))
		return postgres.New(db, log), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func runDBMigration(migrationURL, dbSource string, log *zap.Logger) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", zap.Error(err))
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up", zap.Error(err))
	}
	log.Info("db migrated successfully")
}
