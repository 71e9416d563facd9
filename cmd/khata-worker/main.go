package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"khata/internal/amqp"
	"khata/internal/cli"
	"khata/internal/storage"
	"khata/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting khata-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	db, err := storage.OpenSQLite(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open SQLite replica", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer db.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirror := worker.NewMirrorWorker(db)

	ctx, stop := cli.SignalContext()
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeRecords(ctx, func(msg *amqp.RecordCommittedMessage) error {
			return mirror.HandleRecord(ctx, msg)
		})
	})

	logger.Info("Mirror worker consuming",
		"queue", cfg.AMQPQueue,
		"replica", cfg.SQLiteDBPath)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Mirror worker stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("Mirror worker shut down")
}
