package main

import (
	"context"
	stdlog "log"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/docdesk/internal/config"
	"github.com/iliyamo/docdesk/internal/logger"
	"github.com/iliyamo/docdesk/internal/notify"
)

// The worker drains the notification queue. Delivery is a structured log
// entry per event, written to LOG_FILE when set.
func main() {
	cfg := config.LoadWorker()
	log, closeLog, err := logger.New(logger.Config{Level: cfg.LogLevel, FilePath: cfg.LogFile})
	if err != nil {
		stdlog.Fatal(err)
	}
	defer func() { _ = closeLog() }()

	if cfg.AMQPURL == "" {
		log.Fatal("RABBITMQ_URL or AMQP_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := notify.NewConsumer(cfg.AMQPURL, log, func(_ context.Context, ev notify.Event) error {
		text, err := notify.Text(ev)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"type":        ev.Type,
			"recipient":   ev.Recipient,
			"occurred_at": ev.OccurredAt,
		}).Info(text)
		return nil
	})
	if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
		log.WithError(err).Fatal("consumer stopped")
	}
}
