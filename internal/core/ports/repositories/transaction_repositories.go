package repositories

import (
	"context"

	"github.com/SscSPs/transaction_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction records
type TransactionReader interface {
	// FindTransactionByID returns apperrors.ErrNotFound when no record has the id.
	FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error)

	// ListTransactions returns the records matching filter, sorted by order.
	// An empty filter lists every record.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, order domain.OrderSpec) ([]domain.Transaction, error)
}

// TransactionAggregator defines aggregate operations over transaction records.
// Sums and averages are zero when no rows match.
type TransactionAggregator interface {
	CountTransactions(ctx context.Context, filter domain.TransactionFilter) (int64, error)
	SumAmount(ctx context.Context, filter domain.TransactionFilter) (decimal.Decimal, error)
	AverageAmount(ctx context.Context, filter domain.TransactionFilter) (decimal.Decimal, error)

	// CountGrouped returns one row per group key value, descending by count.
	CountGrouped(ctx context.Context, key domain.GroupKey) ([]domain.CategoryCount, error)

	// SumGrouped returns one row per group key value, descending by total.
	SumGrouped(ctx context.Context, key domain.GroupKey) ([]domain.CategoryTotal, error)
}

// TransactionWriter defines write operations for transaction records
type TransactionWriter interface {
	// SaveTransaction inserts a new record and returns the id assigned by storage.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error)

	// UpdateTransaction replaces every mutable field of the record with txn.ID.
	// CreatedAt is preserved. Returns apperrors.ErrNotFound when the id does not exist.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// DeleteTransaction hard-deletes a record and reports whether it existed.
	DeleteTransaction(ctx context.Context, id int64) (bool, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
// Implementations must make a write visible to subsequent reads by the same caller.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionAggregator
	TransactionWriter
}
