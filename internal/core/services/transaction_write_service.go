package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/transaction_service/internal/apperrors"
	"github.com/SscSPs/transaction_service/internal/core/domain"
	"github.com/SscSPs/transaction_service/internal/core/ports"
	portsrepo "github.com/SscSPs/transaction_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_service/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type transactionWriteService struct {
	BaseService
	txnRepo   portsrepo.TransactionRepositoryFacade
	publisher ports.EventPublisher
}

// WriterOption is a functional option for configuring the write service
type WriterOption func(*transactionWriteService)

// WithWriterClock overrides the clock used to stamp CreatedAt.
func WithWriterClock(clock Clock) WriterOption {
	return func(s *transactionWriteService) {
		s.BaseService = newBaseService(clock)
	}
}

// WithEventPublisher sets where committed mutations are announced.
func WithEventPublisher(publisher ports.EventPublisher) WriterOption {
	return func(s *transactionWriteService) {
		if publisher != nil {
			s.publisher = publisher
		}
	}
}

// NewTransactionWriteService creates the write coordinator over a repository.
func NewTransactionWriteService(repo portsrepo.TransactionRepositoryFacade, options ...WriterOption) portssvc.TransactionWriterSvc {
	svc := &transactionWriteService{
		BaseService: newBaseService(nil),
		txnRepo:     repo,
		publisher:   ports.NoopPublisher{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionWriterSvc = (*transactionWriteService)(nil)

func (s *transactionWriteService) CreateTransaction(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	if txn == nil {
		return nil, apperrors.Validationf("transaction cannot be nil")
	}
	if err := checkValid(txn); err != nil {
		return nil, err
	}

	record := *txn
	record.ID = 0
	record.ApplyCreateDefaults(s.Now())

	id, err := s.txnRepo.SaveTransaction(ctx, record)
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("category", record.Category))
		return nil, fmt.Errorf("failed to create transaction in service: %w", err)
	}
	record.ID = id

	s.LogInfo(ctx, "Transaction created", slog.Int64("transaction_id", id))
	s.publish(ctx, ports.EventTransactionCreated, id, &record)
	return &record, nil
}

func (s *transactionWriteService) UpdateTransaction(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	if txn == nil || txn.ID <= 0 {
		return nil, apperrors.Validationf("transaction and id are required for update")
	}
	if err := checkValid(txn); err != nil {
		return nil, err
	}

	record := *txn
	record.TransactionDate = domain.DateOf(record.TransactionDate)

	updated, err := s.txnRepo.UpdateTransaction(ctx, record)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("transaction %d: %w", record.ID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to update transaction", slog.Int64("transaction_id", record.ID))
		return nil, fmt.Errorf("failed to update transaction in service: %w", err)
	}

	s.LogInfo(ctx, "Transaction updated", slog.Int64("transaction_id", updated.ID))
	s.publish(ctx, ports.EventTransactionUpdated, updated.ID, updated)
	return updated, nil
}

func (s *transactionWriteService) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}

	if _, err := s.txnRepo.FindTransactionByID(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		s.LogError(ctx, err, "Failed to look up transaction for delete", slog.Int64("transaction_id", id))
		return false, fmt.Errorf("failed to delete transaction in service: %w", err)
	}

	deleted, err := s.txnRepo.DeleteTransaction(ctx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.Int64("transaction_id", id))
		return false, fmt.Errorf("failed to delete transaction in service: %w", err)
	}
	if deleted {
		s.LogInfo(ctx, "Transaction deleted", slog.Int64("transaction_id", id))
		s.publish(ctx, ports.EventTransactionDeleted, id, nil)
	}
	return deleted, nil
}

// checkValid rejects records storage cannot hold exactly. Sub-cent amounts are reported
// on their own because storage would otherwise round them.
func checkValid(txn *domain.Transaction) error {
	if txn.Amount.GreaterThan(decimal.Zero) && !domain.HasCentPrecision(txn.Amount) {
		return apperrors.Validationf("amount %s has more than %d decimal places", txn.Amount.String(), domain.AmountScale)
	}
	if !txn.IsValid() {
		return apperrors.Validationf("transaction data is not valid")
	}
	return nil
}

// publish is best effort: the write has already been committed.
func (s *transactionWriteService) publish(ctx context.Context, eventType ports.EventType, id int64, txn *domain.Transaction) {
	event := ports.TransactionEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		TransactionID: id,
		Transaction:   txn,
		OccurredAt:    s.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish transaction event",
			slog.String("event_type", string(eventType)),
			slog.Int64("transaction_id", id))
	}
}
