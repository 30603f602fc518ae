package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentReminder)
	log.SetDefault(logger)

	logger.Info("Starting billing-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPReminderQueue, cfg.AMQPAlertQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, schedules will refresh without reminders", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
		}
	} else {
		logger.Info("AMQP disabled - schedules will refresh without reminders")
	}

	processor := services.NewReminderProcessor(repo, amqpClient, services.SystemClock())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Bill reminder processor configured",
		"interval", cfg.ReminderInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	ticker := time.NewTicker(cfg.ReminderInterval)
	defer ticker.Stop()

	sweep := func() {
		count, err := processor.ProcessBills(ctx)
		if err != nil {
			logger.Error("Bill processing failed", "error", err)
			return
		}
		logger.Info("Bill processing complete", "reminders_published", count)
	}

	// Run an initial sweep on startup, then on every tick.
	sweep()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweep()
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutdown signal received", "signal", sig.String())
	cancel()
}
