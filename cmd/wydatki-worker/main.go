package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"wydatki/internal/amqp"
	"wydatki/internal/cli"
	"wydatki/internal/config"
	"wydatki/internal/log"
	"wydatki/internal/store/sheets"
	"wydatki/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel).WithComponent(log.ComponentWorker)

	logger.Info("Starting wydatki-worker", log.FieldOperation, log.OpStartup)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if err := cfg.ValidateSheets(); err != nil {
		logger.Error("Google Sheets configuration invalid", log.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Google Sheets is the mirror target
	target, err := sheets.New(ctx, sheets.Config{
		SpreadsheetID:      cfg.GoogleSpreadsheetID,
		SheetName:          cfg.GoogleSheetName,
		ServiceAccountFile: cfg.GoogleServiceAccountFile,
		ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
	})
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}
	if err := target.EnsureStorage(ctx); err != nil {
		logger.Error("Failed to prepare mirror sheet", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirror := worker.NewMirrorWorker(target)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeWithRetry(gctx, mirror.HandleRecorded)
	})
	g.Go(func() error {
		return cli.WatchSignals(gctx, logger)
	})

	err = g.Wait()
	logger.Info("Shutting down worker", log.FieldOperation, log.OpShutdown)
	if err != nil && !errors.Is(err, cli.ErrShutdown) && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", log.FieldError, err)
		amqpClient.Close()
		os.Exit(1)
	}
}
