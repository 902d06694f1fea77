package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/model"
)

type fakeChannel struct {
	declared  []string
	keys      []string
	published []amqp.Publishing
	failNext  error
}

func (f *fakeChannel) QueueDeclare(name string, durable, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	if !durable {
		return amqp.Queue{}, errors.New("queue must be durable")
	}
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if err := f.failNext; err != nil {
		f.failNext = nil
		return err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func newTestPublisher(t *testing.T, ch *fakeChannel) (*Publisher, *int, *int) {
	opens, closes := 0, 0
	p := &Publisher{
		queue:  DefaultQueue,
		logger: newTestLogger(t),
		open: func() (channel, func(), error) {
			opens++
			return ch, func() { closes++ }, nil
		},
	}
	return p, &opens, &closes
}

func TestPublisher_EnqueuePublishesPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	p, opens, _ := newTestPublisher(t, ch)

	require.NoError(t, p.Enqueue(context.Background(), ticketIssued(0)))
	require.NoError(t, p.Enqueue(context.Background(), ticketIssued(1)))

	assert.Equal(t, 1, *opens)
	assert.Equal(t, []string{DefaultQueue}, ch.declared)
	assert.Equal(t, []string{DefaultQueue, DefaultQueue}, ch.keys)

	msg := ch.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "n-1", msg.MessageId)

	var got model.Notification
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, uint64(41), got.TicketID)
}

func TestPublisher_ReopensAfterFailure(t *testing.T) {
	ch := &fakeChannel{failNext: errors.New("channel closed")}
	p, opens, closes := newTestPublisher(t, ch)

	err := p.Enqueue(context.Background(), ticketIssued(0))
	assert.Error(t, err)
	assert.Equal(t, 1, *closes)

	require.NoError(t, p.Enqueue(context.Background(), ticketIssued(0)))
	assert.Equal(t, 2, *opens)
	assert.Len(t, ch.published, 1)
}

func TestPublisher_OpenFailure(t *testing.T) {
	p := &Publisher{
		queue:  DefaultQueue,
		logger: newTestLogger(t),
		open:   func() (channel, func(), error) { return nil, nil, errors.New("dial broker: refused") },
	}
	assert.ErrorContains(t, p.Enqueue(context.Background(), ticketIssued(0)), "refused")
}
