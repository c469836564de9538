package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/minitwitter/minitwitter/internal/config"
	"github.com/minitwitter/minitwitter/internal/workers"
	"github.com/minitwitter/minitwitter/pkg/logger"
	"github.com/minitwitter/minitwitter/pkg/queue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger()
	logger.Info("Starting mini-twitter event worker...")

	consumer := queue.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.Events, "minitwitter-audit")
	worker := workers.NewEventWorker(consumer, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := worker.Start(ctx); err != nil && err != context.Canceled {
			logger.WithError(err).Error("Event worker stopped with error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()

	if err := worker.Stop(); err != nil {
		logger.WithError(err).Error("Failed to stop event worker")
	}

	logger.Info("Worker exited")
}
