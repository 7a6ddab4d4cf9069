// Package memory provides an in-process TransactionRepositoryFacade used by tests
// and by the "memory" storage driver.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/transaction_service/internal/apperrors"
	"github.com/SscSPs/transaction_service/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_service/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// TransactionRepository keeps records in insertion order behind a RWMutex.
type TransactionRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   []domain.Transaction
}

// NewTransactionRepository creates an empty store whose first id is 1.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{nextID: 1}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

// Close implements io.Closer.
func (r *TransactionRepository) Close() error { return nil }

func (r *TransactionRepository) indexOf(id int64) int {
	for i := range r.rows {
		if r.rows[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, apperrors.ErrNotFound
	}
	txn := r.rows[i]
	return &txn, nil
}

func (r *TransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, order domain.OrderSpec) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := r.matching(filter)
	r.mu.RUnlock()

	order.Sort(out)
	return out, nil
}

// matching copies the rows that pass filter. Callers hold at least a read lock.
func (r *TransactionRepository) matching(filter domain.TransactionFilter) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(r.rows))
	for _, txn := range r.rows {
		if filter.Matches(txn) {
			out = append(out, txn)
		}
	}
	return out
}

func (r *TransactionRepository) CountTransactions(ctx context.Context, filter domain.TransactionFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(filter))), nil
}

func (r *TransactionRepository) SumAmount(ctx context.Context, filter domain.TransactionFilter) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum := decimal.Zero
	for _, txn := range r.matching(filter) {
		sum = sum.Add(txn.Amount)
	}
	return sum, nil
}

func (r *TransactionRepository) AverageAmount(ctx context.Context, filter domain.TransactionFilter) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.matching(filter)
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	sum := decimal.Zero
	for _, txn := range rows {
		sum = sum.Add(txn.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(rows)))), nil
}

func (r *TransactionRepository) CountGrouped(ctx context.Context, key domain.GroupKey) ([]domain.CategoryCount, error) {
	if err := checkGroupKey(ctx, key); err != nil {
		return nil, err
	}
	r.mu.RLock()
	counts := make(map[string]int64)
	for _, txn := range r.rows {
		counts[txn.Category]++
	}
	r.mu.RUnlock()

	out := make([]domain.CategoryCount, 0, len(counts))
	for category, count := range counts {
		out = append(out, domain.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (r *TransactionRepository) SumGrouped(ctx context.Context, key domain.GroupKey) ([]domain.CategoryTotal, error) {
	if err := checkGroupKey(ctx, key); err != nil {
		return nil, err
	}
	r.mu.RLock()
	totals := make(map[string]decimal.Decimal)
	for _, txn := range r.rows {
		totals[txn.Category] = totals[txn.Category].Add(txn.Amount)
	}
	r.mu.RUnlock()

	out := make([]domain.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, domain.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func checkGroupKey(ctx context.Context, key domain.GroupKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key != domain.GroupByCategory {
		return apperrors.Validationf("unsupported group key %q", key)
	}
	return nil
}

func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	txn.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, txn)
	return txn.ID, nil
}

func (r *TransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(txn.ID)
	if i < 0 {
		return nil, fmt.Errorf("transaction %d: %w", txn.ID, apperrors.ErrNotFound)
	}
	txn.CreatedAt = r.rows[i].CreatedAt
	r.rows[i] = txn
	updated := txn
	return &updated, nil
}

func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return true, nil
}
