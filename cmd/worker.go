package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/hopecare/internal/broker"
	"github.com/frahmantamala/hopecare/internal/core/events"
	"github.com/frahmantamala/hopecare/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
}

var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Consume ledger events from the broker",
	Long:  `Consume donation.recorded and delivery.completed events from RabbitMQ and log them.`,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

func startEventWorker() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	lg := logger.LoggerWrapper()

	if !cfg.Broker.Enabled {
		lg.Error("broker is disabled, nothing to consume")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := broker.NewConsumer(cfg.Broker.URL, cfg.Broker.Queue, func(ctx context.Context, env broker.Envelope) error {
		switch env.Type {
		case events.EventTypeDonationRecorded, events.EventTypeDeliveryCompleted:
			lg.InfoContext(ctx, "ledger event",
				"event_id", env.ID,
				"event_type", env.Type,
				"occurred_at", env.OccurredAt,
				"payload", string(env.Payload))
		default:
			lg.WarnContext(ctx, "unknown event type", "event_type", env.Type, "event_id", env.ID)
		}
		return nil
	}, lg)

	lg.Info("event worker started", "queue", cfg.Broker.Queue)
	if err := consumer.Run(ctx); err != nil && err != context.Canceled {
		lg.Error("event worker stopped", "error", err)
		os.Exit(1)
	}
	lg.Info("event worker shutdown complete")
}

func init() {
	workerCmd.AddCommand(eventWorkerCmd)
	rootCmd.AddCommand(workerCmd)
}
