package services

import (
	"context"
	"time"

	"github.com/SscSPs/transaction_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionQuerySvc defines the non-mutating retrieval operations.
type TransactionQuerySvc interface {
	// GetTransactionByID returns nil without error when id is 0 or unknown.
	GetTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error)

	// ListTransactions returns every record, date desc then amount desc.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ListSuspicious returns flagged records, date desc then amount desc.
	ListSuspicious(ctx context.Context) ([]domain.Transaction, error)

	// ListByCategory returns exact category matches, date desc. Blank input yields an empty slice.
	ListByCategory(ctx context.Context, category string) ([]domain.Transaction, error)

	// ListByDateRange returns records dated within [from, to], date desc.
	// A zero bound is a validation error.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)

	// ListByMinAmount returns records with amount >= minAmount, amount desc.
	// A nil minimum is a validation error.
	ListByMinAmount(ctx context.Context, minAmount *decimal.Decimal) ([]domain.Transaction, error)

	// ListHighValue is ListByMinAmount(2000.00).
	ListHighValue(ctx context.Context) ([]domain.Transaction, error)

	// SearchByDescription does a case-insensitive literal substring match, date desc.
	// Blank input yields an empty slice.
	SearchByDescription(ctx context.Context, term string) ([]domain.Transaction, error)

	// ListRecent returns records dated on or after today minus days, date desc.
	// days <= 0 is a validation error.
	ListRecent(ctx context.Context, days int) ([]domain.Transaction, error)

	// Exists reports whether a record with id is stored. 0 is never stored.
	Exists(ctx context.Context, id int64) (bool, error)
}

// TransactionStatsSvc defines the aggregate operations.
type TransactionStatsSvc interface {
	TotalCount(ctx context.Context) (int64, error)
	SuspiciousCount(ctx context.Context) (int64, error)

	// SumTotal is zero, never an error, when there are no records.
	SumTotal(ctx context.Context) (decimal.Decimal, error)

	// Average is zero, never an error, when there are no records.
	Average(ctx context.Context) (decimal.Decimal, error)

	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)
	SumByCategory(ctx context.Context) ([]domain.CategoryTotal, error)

	// GetStats bundles TotalCount, SuspiciousCount, SumTotal and Average.
	GetStats(ctx context.Context) (*domain.TransactionStats, error)

	// GetCategoryBreakdown merges count, total and average per category, descending by count.
	GetCategoryBreakdown(ctx context.Context) ([]domain.CategorySummary, error)
}

// TransactionWriterSvc defines the validated mutations.
type TransactionWriterSvc interface {
	// CreateTransaction rejects nil or invalid input before touching storage.
	CreateTransaction(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)

	// UpdateTransaction fully replaces the stored record with txn.ID.
	UpdateTransaction(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)

	// DeleteTransaction reports false, not an error, when id is unknown.
	DeleteTransaction(ctx context.Context, id int64) (bool, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionQuerySvc
	TransactionStatsSvc
	TransactionWriterSvc
}
