// Package broker forwards committed ledger events to RabbitMQ and consumes
// them back in the worker process.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/hopecare/internal/core/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Envelope is the message body on the queue.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publisher struct {
	ch     Channel
	queue  string
	logger *slog.Logger
}

func NewPublisher(ch Channel, queue string, logger *slog.Logger) *Publisher {
	return &Publisher{ch: ch, queue: queue, logger: logger}
}

// Handle publishes one event as a persistent message on the queue. It has the
// events.Handler signature so it can be subscribed on the bus.
func (p *Publisher) Handle(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	body, err := json.Marshal(Envelope{
		ID:         event.EventID(),
		Type:       event.EventType(),
		OccurredAt: event.OccurredAt(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID(),
		Type:         event.EventType(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.EventType(), err)
	}
	p.logger.Debug("event forwarded to broker", "event_type", event.EventType(), "event_id", event.EventID())
	return nil
}

// Bridge subscribes the publisher to every ledger event on the bus.
func (p *Publisher) Bridge(bus *events.EventBus) {
	for _, eventType := range events.LedgerEventTypes {
		bus.Subscribe(eventType, p.Handle)
	}
}

// Connection owns the AMQP connection and the channel a Publisher writes to.
type Connection struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects and declares the durable queue.
func Dial(url, queue string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &Connection{conn: conn, ch: ch}, nil
}

func (c *Connection) Channel() *amqp.Channel {
	return c.ch
}

func (c *Connection) Close() error {
	_ = c.ch.Close()
	return c.conn.Close()
}
