package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/airline-booking/internal/config"
	"github.com/iliyamo/airline-booking/internal/logging"
	"github.com/iliyamo/airline-booking/internal/queue"
)

// The consumer only needs the broker, so it does not go through
// config.Load and its required database settings.
func main() {
	_ = godotenv.Load()
	logger := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := queue.NewConsumer(config.AMQPURL(), os.Getenv("ORDER_LOG_PATH"), logger)
	logger.WithField("queue", queue.OrderPlacedQueue).Info("order consumer started")
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Fatal("order consumer stopped")
	}
	logger.Info("order consumer exited")
}
