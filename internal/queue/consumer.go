package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/service"
)

// Renderer turns a ticket into a printable attachment.
//
//go:generate mockery --name Renderer --with-expecter --output mocks --outpkg mocks --filename mock_renderer.go
type Renderer interface {
	RenderTicketPDF(doc model.TicketDocument) ([]byte, error)
}

// Mailer delivers one mail.
//
//go:generate mockery --name Mailer --with-expecter --output mocks --outpkg mocks --filename mock_mailer.go
type Mailer interface {
	Send(ctx context.Context, m model.Mail) error
}

// Outcome says what to do with a delivery once it was handled.
type Outcome int

const (
	// Ack removes the message. Retries are republished as new messages.
	Ack Outcome = iota
	// Reject drops a message that can never be processed.
	Reject
	// Requeue hands the message back to the broker untouched.
	Requeue
)

// maxRetryDelay caps the wait before a failed delivery is republished.
const maxRetryDelay = time.Minute

// Consumer reads notifications, renders and mails them.  A failed
// delivery is republished with Attempt+1 after a delay that doubles per
// attempt, until maxAttempts is reached.  The ledger is never touched from
// here.
type Consumer struct {
	url         string
	queue       string
	maxAttempts int
	retryDelay  time.Duration
	renderer    Renderer
	mailer      Mailer
	retry       service.NotificationQueue
	logger      *slog.Logger
}

func NewConsumer(url, queue string, maxAttempts int, retryDelay time.Duration, renderer Renderer, mailer Mailer, retry service.NotificationQueue, logger *slog.Logger) *Consumer {
	if queue == "" {
		queue = DefaultQueue
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Consumer{
		url:         url,
		queue:       queue,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		renderer:    renderer,
		mailer:      mailer,
		retry:       retry,
		logger:      logger,
	}
}

// Run connects to the broker and consumes until ctx is cancelled.  Lost
// connections are redialed with exponential backoff capped at 30s.
func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("notify-consumer: failed to dial broker", "err", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			c.logger.Info("notify-consumer: stopped")
			return
		}
		c.logger.Warn("notify-consumer: consume loop ended, reconnecting", "err", err)
		if !sleep(ctx, 2*time.Second) {
			return
		}
	}
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

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.logger.Warn("notify-consumer: set QoS failed", "err", err)
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			switch c.Handle(ctx, d.Body) {
			case Reject:
				_ = d.Nack(false, false)
			case Requeue:
				_ = d.Nack(false, true)
			default:
				_ = d.Ack(false)
			}
		}
	}
}

// Handle processes one message body.
func (c *Consumer) Handle(ctx context.Context, body []byte) Outcome {
	var n model.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		c.logger.Error("notify-consumer: malformed message", "err", err)
		return Reject
	}
	log := c.logger.With("notification_id", n.ID, "kind", n.Kind, "ticket_id", n.TicketID, "attempt", n.Attempt)

	err := c.deliver(ctx, n)
	if err == nil {
		log.Info("notify-consumer: mail sent", "recipient", n.Recipient)
		return Ack
	}
	if n.Attempt+1 >= c.maxAttempts {
		log.Error("notify-consumer: giving up", "err", err)
		return Reject
	}
	wait := c.backoff(n.Attempt)
	if wait > 0 && !sleep(ctx, wait) {
		log.Warn("notify-consumer: shutting down before retry, returning message", "err", err)
		return Requeue
	}
	n.Attempt++
	if rerr := c.retry.Enqueue(ctx, n); rerr != nil {
		log.Error("notify-consumer: requeue failed", "err", rerr, "cause", err)
		return Reject
	}
	log.Warn("notify-consumer: delivery failed, requeued", "err", err, "waited", wait)
	return Ack
}

// backoff is retryDelay doubled per previous attempt, capped at
// maxRetryDelay.  A non-positive retryDelay republishes at once.
func (c *Consumer) backoff(attempt int) time.Duration {
	if c.retryDelay <= 0 {
		return 0
	}
	d := c.retryDelay
	for i := 0; i < attempt && d < maxRetryDelay; i++ {
		d *= 2
	}
	return min(d, maxRetryDelay)
}

func (c *Consumer) deliver(ctx context.Context, n model.Notification) error {
	if n.Recipient == "" {
		return nil
	}
	pdf, err := c.renderer.RenderTicketPDF(model.TicketDocument{
		TicketID:       n.TicketID,
		HolderName:     n.RecipientName,
		TicketTypeName: n.TicketTypeName,
		EventName:      n.EventName,
		EventLocation:  n.EventLocation,
		EventStartsAt:  n.EventStartsAt,
	})
	if err != nil {
		return fmt.Errorf("render ticket: %w", err)
	}
	if err := c.mailer.Send(ctx, compose(n, pdf)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
