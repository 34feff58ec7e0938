package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/sheet-ticket-service/internal/api/http"
	"github.com/spec-kit/sheet-ticket-service/internal/api/http/handlers"
	"github.com/spec-kit/sheet-ticket-service/internal/config"
	"github.com/spec-kit/sheet-ticket-service/internal/events"
	"github.com/spec-kit/sheet-ticket-service/internal/observability"
	"github.com/spec-kit/sheet-ticket-service/internal/persistence"
	"github.com/spec-kit/sheet-ticket-service/internal/repository"
	"github.com/spec-kit/sheet-ticket-service/internal/service"
	"github.com/spec-kit/sheet-ticket-service/internal/sheetcodec"
	"github.com/spec-kit/sheet-ticket-service/internal/sheetstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Sheets.SpreadsheetID == "" {
		log.Fatal("SHEETS_SPREADSHEET_ID is required")
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := sheetstore.NewGoogleSheetsStore(ctx, cfg.Sheets, logger)
	if err != nil {
		logger.Fatal("failed to init sheets store", zap.Error(err))
	}

	codec := sheetcodec.New(logger)
	tickets := repository.NewSheetTicketRepository(store, codec, cfg.Sheets, logger)

	var redis *persistence.Redis
	if cfg.Cache.Enabled {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		tickets = repository.NewCachedTicketRepository(tickets, redis, cfg.Cache.TTL(), logger)
	}

	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterAuditSubscriber(dispatcher, logger)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: tickets,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, cfg.Sheets.SpreadsheetID, redis)
	ticketsHandler := handlers.NewTicketsHandler(ticketService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  healthHandler,
		Tickets: ticketsHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
