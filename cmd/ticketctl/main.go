package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/sheet-ticket-service/internal/cli"
	"github.com/spec-kit/sheet-ticket-service/internal/config"
	"github.com/spec-kit/sheet-ticket-service/internal/events"
	"github.com/spec-kit/sheet-ticket-service/internal/observability"
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
	// Keep structured logs out of command output unless explicitly requested.
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.Logger.Level = "warn"
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	store, err := sheetstore.NewGoogleSheetsStore(ctx, cfg.Sheets, logger)
	if err != nil {
		logger.Fatal("failed to init sheets store", zap.Error(err))
	}

	codec := sheetcodec.New(logger)
	tickets := repository.NewSheetTicketRepository(store, codec, cfg.Sheets, logger)

	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterAuditSubscriber(dispatcher, logger)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: tickets,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	os.Exit(cli.Run(ctx, os.Stdout, os.Stderr, os.Args[1:], ticketService))
}
