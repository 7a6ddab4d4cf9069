package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/transaction_service/internal/apperrors"
	"github.com/SscSPs/transaction_service/internal/core/domain"
	"github.com/SscSPs/transaction_service/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(day int, amount, desc, category string) domain.Transaction {
	return domain.NewTransaction(time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		decimal.RequireFromString(amount), desc, category)
}

func TestTransactionRepository_SaveAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()

	id1, err := repo.SaveTransaction(ctx, txn(1, "10.00", "a", "food"))
	require.NoError(t, err)
	id2, err := repo.SaveTransaction(ctx, txn(2, "20.00", "b", "food"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)

	found, err := repo.FindTransactionByID(ctx, id2)
	require.NoError(t, err)
	assert.Equal(t, "b", found.Description)
}

func TestTransactionRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()
	id, err := repo.SaveTransaction(ctx, txn(1, "10.00", "original", "food"))
	require.NoError(t, err)

	found, err := repo.FindTransactionByID(ctx, id)
	require.NoError(t, err)
	found.Description = "mutated"

	again, err := repo.FindTransactionByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Description)
}

func TestTransactionRepository_UpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	original := txn(1, "10.00", "a", "food")
	original.CreatedAt = created
	id, err := repo.SaveTransaction(ctx, original)
	require.NoError(t, err)

	replacement := txn(5, "99.99", "b", "online")
	replacement.ID = id
	replacement.CreatedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	updated, err := repo.UpdateTransaction(ctx, replacement)
	require.NoError(t, err)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, "online", updated.Category)

	missing := txn(1, "1.00", "x", "y")
	missing.ID = 42
	_, err = repo.UpdateTransaction(ctx, missing)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransactionRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()
	id, err := repo.SaveTransaction(ctx, txn(1, "10.00", "a", "food"))
	require.NoError(t, err)

	deleted, err := repo.DeleteTransaction(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteTransaction(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.FindTransactionByID(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransactionRepository_Aggregates(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()

	sum, err := repo.SumAmount(ctx, domain.TransactionFilter{})
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
	avg, err := repo.AverageAmount(ctx, domain.TransactionFilter{})
	require.NoError(t, err)
	assert.True(t, avg.IsZero())

	for _, tx := range []domain.Transaction{
		txn(1, "10.00", "a", "food"),
		txn(2, "20.00", "b", "food"),
		txn(3, "500.00", "c", "housing"),
		txn(4, "5.00", "d", "transport"),
	} {
		_, err := repo.SaveTransaction(ctx, tx)
		require.NoError(t, err)
	}

	counts, err := repo.CountGrouped(ctx, domain.GroupByCategory)
	require.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, domain.CategoryCount{Category: "food", Count: 2}, counts[0])
	assert.Equal(t, "housing", counts[1].Category, "ties break by category name")

	totals, err := repo.SumGrouped(ctx, domain.GroupByCategory)
	require.NoError(t, err)
	require.Len(t, totals, 3)
	assert.Equal(t, "housing", totals[0].Category)
	assert.True(t, decimal.RequireFromString("30.00").Equal(totals[1].Total))

	_, err = repo.CountGrouped(ctx, domain.GroupKey("description"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTransactionRepository_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.SaveTransaction(ctx, txn(1, "1.00", "x", "other"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := repo.CountTransactions(ctx, domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(50), count)
}
