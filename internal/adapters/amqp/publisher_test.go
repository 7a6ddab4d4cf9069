package amqp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/transaction_service/internal/core/domain"
	"github.com/SscSPs/transaction_service/internal/core/ports"
	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared  string
	kind      string
	published []amqp091.Publishing
	keys      []string
	err       error
	closed    bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp091.Table) error {
	f.declared, f.kind = name, kind
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, _, key string, _, _ bool, msg amqp091.Publishing) error {
	if _, ok := ctx.Deadline(); !ok {
		panic("publish without deadline")
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func sampleEvent() ports.TransactionEvent {
	txn := domain.NewTransaction(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		decimal.RequireFromString("12.30"), "Bus pass", domain.CategoryTransport)
	txn.ID = 9
	return ports.TransactionEvent{
		EventID:       "evt-1",
		Type:          ports.EventTransactionCreated,
		TransactionID: 9,
		Transaction:   &txn,
		OccurredAt:    time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestNewMessage(t *testing.T) {
	msg, err := newMessage(sampleEvent())
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp091.Persistent, msg.DeliveryMode)
	assert.Equal(t, "evt-1", msg.MessageId)
	assert.Equal(t, "transaction.created", msg.Type)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "transaction.created", decoded["type"])
	assert.Equal(t, float64(9), decoded["transactionID"])
	txn := decoded["transaction"].(map[string]any)
	assert.Equal(t, "12.3", txn["amount"])
}

func TestPublisher_PublishRoutesByType(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(ch, "transactions")
	require.NoError(t, err)
	assert.Equal(t, "transactions", ch.declared)
	assert.Equal(t, "topic", ch.kind)

	event := sampleEvent()
	event.Type = ports.EventTransactionDeleted
	event.Transaction = nil
	require.NoError(t, p.Publish(context.Background(), event))

	assert.Equal(t, []string{"transaction.deleted"}, ch.keys)
	assert.NotContains(t, string(ch.published[0].Body), `"transaction":`)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: assert.AnError}
	p, err := newPublisher(ch, "transactions")
	require.NoError(t, err)

	err = p.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, assert.AnError)
}
