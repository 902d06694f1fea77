// Package queue moves committed notifications through RabbitMQ.  The
// publisher implements the engine's NotificationQueue port; the consumer
// renders the ticket PDF, mails it and retries failed deliveries.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// DefaultQueue is the durable queue notifications are published to.
const DefaultQueue = "ticket.notifications"

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// opener returns a fresh channel and a func that tears its connection down.
type opener func() (channel, func(), error)

// Publisher keeps one broker connection and reopens it after a failed
// publish.  It is safe for concurrent use.
type Publisher struct {
	queue  string
	open   opener
	logger *slog.Logger

	mu     sync.Mutex
	ch     channel
	closer func()
}

// NewPublisher returns a publisher for url.  The connection is opened
// lazily on the first Enqueue.
func NewPublisher(url, queue string, logger *slog.Logger) *Publisher {
	if queue == "" {
		queue = DefaultQueue
	}
	return &Publisher{queue: queue, open: dialer(url), logger: logger}
}

func dialer(url string) opener {
	return func() (channel, func(), error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, nil, fmt.Errorf("dial broker: %w", err)
		}
		ch, err := conn.Channel()
		if err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("open channel: %w", err)
		}
		return ch, func() { _ = ch.Close(); _ = conn.Close() }, nil
	}
}

// Enqueue publishes n as a persistent JSON message on the default exchange.
func (p *Publisher) Enqueue(ctx context.Context, n model.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelLocked()
	if err != nil {
		return err
	}
	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    n.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.logger.Warn("rabbitmq: publish failed, dropping connection", "queue", p.queue, "err", err)
		p.resetLocked()
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (p *Publisher) channelLocked() (channel, error) {
	if p.ch != nil {
		return p.ch, nil
	}
	ch, closer, err := p.open()
	if err != nil {
		return nil, err
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		closer()
		return nil, fmt.Errorf("queue declare: %w", err)
	}
	p.ch, p.closer = ch, closer
	return ch, nil
}

func (p *Publisher) resetLocked() {
	if p.closer != nil {
		p.closer()
	}
	p.ch, p.closer = nil, nil
}

// Close drops the broker connection.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
}
