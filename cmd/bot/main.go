package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/Spok95/molten-bot/internal/bot"
	"github.com/Spok95/molten-bot/internal/catalogio"
	"github.com/Spok95/molten-bot/internal/config"
	"github.com/Spok95/molten-bot/internal/dialog"
	"github.com/Spok95/molten-bot/internal/domain/glass"
	"github.com/Spok95/molten-bot/internal/domain/inventory"
	"github.com/Spok95/molten-bot/internal/domain/projects"
	"github.com/Spok95/molten-bot/internal/domain/shopping"
	"github.com/Spok95/molten-bot/internal/domain/tags"
	"github.com/Spok95/molten-bot/internal/infra/db"
	httpx "github.com/Spok95/molten-bot/internal/infra/http"
	"github.com/Spok95/molten-bot/internal/infra/logger"
	"github.com/Spok95/molten-bot/internal/service"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	glassRepo := glass.NewRepo(pool)
	invRepo := inventory.NewRepo(pool)
	tagsRepo := tags.NewRepo(pool)
	shoppingRepo := shopping.NewRepo(pool)
	projectsRepo := projects.NewRepo(pool)
	statesRepo := dialog.NewRepo(pool)

	// кэш каталога живёт здесь, в точке сборки, и передаётся явно
	cache := service.NewCatalogCache(glassRepo)
	composer := service.NewComposer(glassRepo, invRepo, tagsRepo, cache, log)
	importer := catalogio.NewImporter(glassRepo, tagsRepo, cache, log)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, pool.Ping)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}
	log.Info("telegram authorized", "username", api.Self.UserName)

	b := bot.New(bot.Deps{
		API:               api,
		Log:               log,
		States:            statesRepo,
		AdminChatID:       cfg.Telegram.AdminChatID,
		Composer:          composer,
		Inventory:         invRepo,
		Shopping:          shoppingRepo,
		Projects:          projectsRepo,
		Tags:              tagsRepo,
		Importer:          importer,
		LowStockThreshold: cfg.Inventory.LowStockThreshold,
		CatalogPath:       cfg.Catalog.Path,
	})

	go func() {
		if err := b.Run(ctx, 30); err != nil && ctx.Err() == nil {
			log.Error("bot stopped", "err", err)
		}
	}()
	log.Info("bot started")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
