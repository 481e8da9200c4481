package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type MessageHandler func(ctx context.Context, env Envelope) error

// Consumer reads ledger events off the queue and hands them to a handler.
type Consumer struct {
	url      string
	queue    string
	prefetch int
	handler  MessageHandler
	logger   *slog.Logger
}

func NewConsumer(url, queue string, handler MessageHandler, logger *slog.Logger) *Consumer {
	return &Consumer{
		url:      url,
		queue:    queue,
		prefetch: 50,
		handler:  handler,
		logger:   logger,
	}
}

// Run consumes until ctx is done, reconnecting with exponential backoff
// capped at 30s.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("failed to dial broker", "error", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("consume loop ended, reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		c.logger.Warn("failed to set qos", "error", err)
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	c.logger.Info("consuming ledger events", "queue", c.queue)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("deliveries channel closed")
			}
			c.dispatch(ctx, d)
		}
	}
}

// Acknowledger is satisfied by amqp.Delivery.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (c *Consumer) dispatch(ctx context.Context, d amqp.Delivery) {
	c.Process(ctx, d.Body, d)
}

// Process decodes one message body and acks it on success. Undecodable or
// failed messages are dropped without requeue.
func (c *Consumer) Process(ctx context.Context, body []byte, ack Acknowledger) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Error("undecodable message dropped", "error", err)
		_ = ack.Nack(false, false)
		return
	}
	if err := c.handler(ctx, env); err != nil {
		c.logger.Error("event handler failed", "event_type", env.Type, "event_id", env.ID, "error", err)
		_ = ack.Nack(false, false)
		return
	}
	_ = ack.Ack(false)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
