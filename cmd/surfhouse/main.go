package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"surfhouse/internal/app/commands"
	leadsapp "surfhouse/internal/app/handlers/leads"
	"surfhouse/internal/app/notify"
	domainleads "surfhouse/internal/domain/leads"
	"surfhouse/internal/domain/pricing"
	"surfhouse/internal/infra/broker/kafka"
	"surfhouse/internal/infra/config"
	"surfhouse/internal/infra/db/mongo"
	"surfhouse/internal/infra/fixtures"
	ginserver "surfhouse/internal/infra/http/gin"
	"surfhouse/internal/infra/obs"
	"surfhouse/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	leadRepo, pricingStore, readyCheck, cleanup, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	seedPricingConfig(ctx, cfg, pricingStore, logger)

	publisher, closer := buildPublisher(cfg, logger)
	defer closer()

	bus := buildBus(cfg, logger, leadRepo, pricingStore, publisher)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: readyCheck,
	}, ginserver.Handlers{
		Lead:    ginserver.LeadHandler{Commands: bus, Repo: leadRepo},
		Pricing: ginserver.PricingHandler{Store: pricingStore},
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (domainleads.Repository, pricing.Store, func() error, func(), error) {
	if cfg.StorageMode == "mongo" {
		client, err := mongo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		db := client.Database(cfg.MongoDB)
		ready := func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx, nil)
		}
		cleanup := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		}
		return mongo.NewLeadRepository(db), mongo.NewPricingStore(db), ready, cleanup, nil
	}
	return memory.NewLeadRepository(), memory.NewPricingStore(), func() error { return nil }, func() {}, nil
}

// seedPricingConfig loads the fixture file into an empty store so a fresh
// deployment can quote immediately.
func seedPricingConfig(ctx context.Context, cfg config.Config, store pricing.Store, logger *slog.Logger) {
	if _, err := store.Load(ctx); err == nil {
		return
	} else if !errors.Is(err, pricing.ErrConfigNotFound) {
		logger.Warn("pricing config load failed", "error", err)
		return
	}
	seeded, err := fixtures.LoadPricingConfig(cfg.PricingFixtures)
	if err != nil {
		logger.Warn("pricing fixtures load failed", "error", err, "path", cfg.PricingFixtures)
		return
	}
	if err := store.Replace(ctx, seeded); err != nil {
		logger.Warn("pricing config seed failed", "error", err)
		return
	}
	logger.Info("pricing config seeded from fixtures", "path", cfg.PricingFixtures)
}

func buildPublisher(cfg config.Config, logger *slog.Logger) (notify.Publisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return notify.Noop{}, func() {}
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		logger.Warn("kafka producer init failed, events disabled", "error", err)
		return notify.Noop{}, func() {}
	}
	return producer, func() {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", "error", err)
		}
	}
}

func buildBus(cfg config.Config, logger *slog.Logger, leadRepo domainleads.Repository, pricingStore pricing.Store, publisher notify.Publisher) commands.Bus {
	topic := cfg.LeadEventsTopic()
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler(bus, leadsapp.CreateLeadCommand{}.Key(), &leadsapp.CreateLeadHandler{
		Repo: leadRepo, Publisher: publisher, Topic: topic, Logger: logger,
	})
	commands.RegisterHandler(bus, leadsapp.UpdateLeadCommand{}.Key(), &leadsapp.UpdateLeadHandler{Repo: leadRepo})
	commands.RegisterHandler(bus, leadsapp.MoveLeadCommand{}.Key(), &leadsapp.MoveLeadHandler{
		Repo: leadRepo, Publisher: publisher, Topic: topic, Logger: logger,
	})
	commands.RegisterHandler(bus, leadsapp.DeleteLeadCommand{}.Key(), &leadsapp.DeleteLeadHandler{Repo: leadRepo})
	commands.RegisterHandler(bus, leadsapp.QuoteLeadCommand{}.Key(), &leadsapp.QuoteLeadHandler{
		Repo: leadRepo, Config: pricingStore, Publisher: publisher, Topic: topic, Logger: logger,
	})
	commands.RegisterHandler(bus, leadsapp.PreviewQuoteCommand{}.Key(), &leadsapp.PreviewQuoteHandler{Config: pricingStore})
	return bus
}
