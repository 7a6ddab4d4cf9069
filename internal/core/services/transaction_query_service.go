package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/transaction_service/internal/apperrors"
	"github.com/SscSPs/transaction_service/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_service/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// QueryRepository is the slice of the storage port the read side needs.
type QueryRepository interface {
	portsrepo.TransactionReader
	CountTransactions(ctx context.Context, filter domain.TransactionFilter) (int64, error)
}

type transactionQueryService struct {
	BaseService
	txnRepo QueryRepository
}

// QueryOption is a functional option for configuring the query service
type QueryOption func(*transactionQueryService)

// WithQueryClock overrides the clock used to resolve "today".
func WithQueryClock(clock Clock) QueryOption {
	return func(s *transactionQueryService) {
		s.BaseService = newBaseService(clock)
	}
}

// NewTransactionQueryService creates the read-side service over a repository.
func NewTransactionQueryService(repo QueryRepository, options ...QueryOption) portssvc.TransactionQuerySvc {
	svc := &transactionQueryService{
		BaseService: newBaseService(nil),
		txnRepo:     repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionQuerySvc = (*transactionQueryService)(nil)

func (s *transactionQueryService) GetTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	if id <= 0 {
		return nil, nil
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to find transaction", slog.Int64("transaction_id", id))
		return nil, fmt.Errorf("failed to get transaction %d in service: %w", id, err)
	}
	return txn, nil
}

func (s *transactionQueryService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.list(ctx, "all", domain.TransactionFilter{}, domain.OrderDateDescAmountDesc)
}

func (s *transactionQueryService) ListSuspicious(ctx context.Context) ([]domain.Transaction, error) {
	suspicious := true
	return s.list(ctx, "suspicious", domain.TransactionFilter{Suspicious: &suspicious}, domain.OrderDateDescAmountDesc)
}

func (s *transactionQueryService) ListByCategory(ctx context.Context, category string) ([]domain.Transaction, error) {
	if strings.TrimSpace(category) == "" {
		return []domain.Transaction{}, nil
	}
	return s.list(ctx, "category", domain.TransactionFilter{Category: &category}, domain.OrderDateDesc)
}

func (s *transactionQueryService) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	if from.IsZero() || to.IsZero() {
		return nil, apperrors.Validationf("start date and end date are required")
	}
	from, to = domain.DateOf(from), domain.DateOf(to)
	return s.list(ctx, "date_range", domain.TransactionFilter{DateFrom: &from, DateTo: &to}, domain.OrderDateDesc)
}

func (s *transactionQueryService) ListByMinAmount(ctx context.Context, minAmount *decimal.Decimal) ([]domain.Transaction, error) {
	if minAmount == nil {
		return nil, apperrors.Validationf("minimum amount is required")
	}
	threshold := *minAmount
	return s.list(ctx, "min_amount", domain.TransactionFilter{MinAmount: &threshold}, domain.OrderAmountDesc)
}

func (s *transactionQueryService) ListHighValue(ctx context.Context) ([]domain.Transaction, error) {
	threshold := domain.HighValueThreshold
	return s.ListByMinAmount(ctx, &threshold)
}

func (s *transactionQueryService) SearchByDescription(ctx context.Context, term string) ([]domain.Transaction, error) {
	if strings.TrimSpace(term) == "" {
		return []domain.Transaction{}, nil
	}
	return s.list(ctx, "description", domain.TransactionFilter{DescriptionContains: &term}, domain.OrderDateDesc)
}

func (s *transactionQueryService) ListRecent(ctx context.Context, days int) ([]domain.Transaction, error) {
	if days <= 0 {
		return nil, apperrors.Validationf("days must be positive, got %d", days)
	}
	cutoff := domain.RecentCutoff(s.Now(), days)
	return s.list(ctx, "recent", domain.TransactionFilter{DateFrom: &cutoff}, domain.OrderDateDesc)
}

func (s *transactionQueryService) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	count, err := s.txnRepo.CountTransactions(ctx, domain.TransactionFilter{ID: &id})
	if err != nil {
		s.LogError(ctx, err, "Failed to check transaction existence", slog.Int64("transaction_id", id))
		return false, fmt.Errorf("failed to check transaction %d in service: %w", id, err)
	}
	return count > 0, nil
}

func (s *transactionQueryService) list(ctx context.Context, view string, filter domain.TransactionFilter, order domain.OrderSpec) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, filter, order)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("view", view))
		return nil, fmt.Errorf("failed to list %s transactions in service: %w", view, err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	s.LogDebug(ctx, "Listed transactions", slog.String("view", view), slog.Int("count", len(txns)))
	return txns, nil
}
