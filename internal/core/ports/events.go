package ports

import (
	"context"
	"time"

	"github.com/SscSPs/transaction_service/internal/core/domain"
)

// EventType names a committed mutation.
type EventType string

const (
	EventTransactionCreated EventType = "transaction.created"
	EventTransactionUpdated EventType = "transaction.updated"
	EventTransactionDeleted EventType = "transaction.deleted"
)

// TransactionEvent is emitted after a mutation has been committed to storage.
type TransactionEvent struct {
	EventID       string              `json:"eventID"`
	Type          EventType           `json:"type"`
	TransactionID int64               `json:"transactionID"`
	Transaction   *domain.Transaction `json:"transaction,omitempty"` // Nil for deletes
	OccurredAt    time.Time           `json:"occurredAt"`
}

// EventPublisher delivers transaction events to downstream consumers (reporting clients).
type EventPublisher interface {
	Publish(ctx context.Context, event TransactionEvent) error
}

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

// Publish implements EventPublisher.
func (NoopPublisher) Publish(context.Context, TransactionEvent) error { return nil }
