package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"spendlog/internal/amqp"
	"spendlog/internal/cli"
	applog "spendlog/internal/log"
	"spendlog/internal/sheets"
	"spendlog/internal/storage"
	"spendlog/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting spendlog-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	// The worker reads the same persisted snapshot as the server, so the
	// startup reconciliation sees what the UI sees.
	kv, cleanup := cli.OpenBackend(logger, cfg)
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Storage close error", "error", err)
		}
	}()
	store := storage.NewRecordStore(kv)

	var writer sheets.MirrorWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := sheets.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
		writer = client
	} else {
		logger.Info("No GOOGLE_SPREADSHEET_ID provided, mirroring to in-memory writer")
		writer = sheets.NewMemoryWriter()
	}

	amqpClient, err := amqp.ConnectWithRetry(context.Background(), cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, 5)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirror := worker.NewMirrorWorker(writer, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Performing startup snapshot check...")
	if err := mirror.StartupSnapshot(ctx); err != nil {
		logger.Error("Startup snapshot failed", "error", err)
		// Keep consuming; the sheet is best-effort.
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := amqpClient.ConsumeRecordChanges(gctx, func(msg *amqp.RecordChangeMessage) error {
			return mirror.HandleChangeMessage(gctx, msg)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
		case <-gctx.Done():
		}

		cancel()

		// Give in-flight handlers a moment to finish.
		time.Sleep(2 * time.Second)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
