package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/frahmantamala/hopecare/internal/broker"
	"github.com/frahmantamala/hopecare/internal/core/events"
	"github.com/frahmantamala/hopecare/pkg/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish test events through the event bus and, when enabled, the broker`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var eventData string

func publishTestEvent(eventType string) {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	lg := logger.LoggerWrapper()

	bus := events.NewEventBus(lg)
	bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		lg.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	if cfg.Broker.Enabled {
		conn, err := broker.Dial(cfg.Broker.URL, cfg.Broker.Queue)
		if err != nil {
			lg.Error("failed to connect to broker", "error", err)
			os.Exit(1)
		}
		defer conn.Close()
		bus.Subscribe(eventType, broker.NewPublisher(conn.Channel(), cfg.Broker.Queue, lg).Handle)
	}

	testEvent := events.BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data: map[string]interface{}{
			"message": eventData,
			"source":  "cli-command",
		},
	}

	if err := bus.PublishSync(context.Background(), testEvent); err != nil {
		lg.Error("failed to publish event", "error", err)
		return
	}
	lg.Info("test event published", "event_type", eventType, "event_id", testEvent.ID)
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")

	eventCmd.AddCommand(publishEventCmd)
	rootCmd.AddCommand(eventCmd)
}
