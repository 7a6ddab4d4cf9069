package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/transaction_service/internal/apperrors"
	"github.com/SscSPs/transaction_service/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_service/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_service/internal/core/services"
	"github.com/SscSPs/transaction_service/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEnd_RecentWindowAndGroceryTotals(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()
	svc := services.NewServiceContainer(portsrepo.RepositoryProvider{TransactionRepo: repo}, nil, fixedClock)

	hundred := decimal.RequireFromString("100.00")
	var ids []int64
	for _, daysAgo := range []int{0, 10, 40} {
		input := domain.NewTransaction(fixedNow.AddDate(0, 0, -daysAgo), hundred, "shop", domain.CategoryGroceries)
		created, err := svc.Writer.CreateTransaction(ctx, &input)
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		ids = append(ids, created.ID)
	}

	fetched, err := svc.Query.GetTransactionByID(ctx, ids[0])
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, ids[0], fetched.ID)

	recent, err := svc.Query.ListRecent(ctx, 30)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[0], recent[0].ID, "today first")
	assert.Equal(t, ids[1], recent[1].ID)

	counts, err := svc.Stats.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryCount{{Category: domain.CategoryGroceries, Count: 3}}, counts)

	sum, err := svc.Stats.SumTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, "300.00", sum.StringFixed(2))
}

func TestEndToEnd_RecentWindowBoundary(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()
	svc := services.NewServiceContainer(portsrepo.RepositoryProvider{TransactionRepo: repo}, nil, fixedClock)

	for _, daysAgo := range []int{30, 31} {
		input := domain.NewTransaction(fixedNow.AddDate(0, 0, -daysAgo), decimal.NewFromInt(1), "edge", domain.CategoryOther)
		_, err := svc.Writer.CreateTransaction(ctx, &input)
		require.NoError(t, err)
	}

	recent, err := svc.Query.ListRecent(ctx, 30)
	require.NoError(t, err)
	require.Len(t, recent, 1, "exactly 30 days ago is inside the window")
	assert.True(t, recent[0].IsRecent(fixedNow))
}

func TestEndToEnd_HighValueSuspicious(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()
	svc := services.NewServiceContainer(portsrepo.RepositoryProvider{TransactionRepo: repo}, nil, fixedClock)

	input := domain.NewTransaction(fixedNow, decimal.RequireFromString("2500.00"), "wire out", domain.CategoryTransfer,
		domain.WithSuspicious(true))
	created, err := svc.Writer.CreateTransaction(ctx, &input)
	require.NoError(t, err)

	highValue, err := svc.Query.ListHighValue(ctx)
	require.NoError(t, err)
	require.Len(t, highValue, 1)
	assert.Equal(t, created.ID, highValue[0].ID)

	suspicious, err := svc.Query.ListSuspicious(ctx)
	require.NoError(t, err)
	require.Len(t, suspicious, 1)
	assert.Equal(t, created.ID, suspicious[0].ID)

	count, err := svc.Stats.SuspiciousCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEndToEnd_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()
	publisher := &recordingPublisher{}
	svc := services.NewServiceContainer(portsrepo.RepositoryProvider{TransactionRepo: repo}, publisher, fixedClock)

	input := domain.NewTransaction(fixedNow, decimal.NewFromInt(10), "coffee", domain.CategoryFood)
	created, err := svc.Writer.CreateTransaction(ctx, &input)
	require.NoError(t, err)

	deleted, err := svc.Writer.DeleteTransaction(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Writer.DeleteTransaction(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	exists, err := svc.Query.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Len(t, publisher.types(), 2, "created and one deleted")
}

func TestEndToEnd_EmptyAggregatesAreZero(t *testing.T) {
	ctx := context.Background()
	svc := services.NewServiceContainer(portsrepo.RepositoryProvider{TransactionRepo: memory.NewTransactionRepository()}, nil, fixedClock)

	sum, err := svc.Stats.SumTotal(ctx)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())

	avg, err := svc.Stats.Average(ctx)
	require.NoError(t, err)
	assert.True(t, avg.IsZero())

	stats, err := svc.Stats.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalCount)

	breakdown, err := svc.Stats.GetCategoryBreakdown(ctx)
	require.NoError(t, err)
	assert.Empty(t, breakdown)
}

func TestEndToEnd_SearchAndUpdate(t *testing.T) {
	ctx := context.Background()
	svc := services.NewServiceContainer(portsrepo.RepositoryProvider{TransactionRepo: memory.NewTransactionRepository()}, nil, fixedClock)

	input := domain.NewTransaction(fixedNow, decimal.NewFromInt(42), "this is a Test case", domain.CategoryOnline)
	created, err := svc.Writer.CreateTransaction(ctx, &input)
	require.NoError(t, err)

	found, err := svc.Query.SearchByDescription(ctx, "TEST")
	require.NoError(t, err)
	require.Len(t, found, 1)

	replacement := domain.NewTransaction(fixedNow.AddDate(0, 0, -1), decimal.NewFromInt(43), "renamed", domain.CategoryOther)
	replacement.ID = created.ID
	updated, err := svc.Writer.UpdateTransaction(ctx, &replacement)
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "renamed", updated.Description)

	found, err = svc.Query.SearchByDescription(ctx, "test")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestEndToEnd_SubCentAmountsNeverReachStorage(t *testing.T) {
	ctx := context.Background()
	svc := services.NewServiceContainer(portsrepo.RepositoryProvider{TransactionRepo: memory.NewTransactionRepository()}, nil, fixedClock)

	for _, amount := range []string{"0.005", "0.005", "0.005", "0.004", "1999.995"} {
		input := domain.NewTransaction(fixedNow, decimal.RequireFromString(amount), "split fee", domain.CategoryOther)
		created, err := svc.Writer.CreateTransaction(ctx, &input)
		assert.ErrorIs(t, err, apperrors.ErrValidation, amount)
		assert.Nil(t, created)
	}

	count, err := svc.Stats.TotalCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	input := domain.NewTransaction(fixedNow, decimal.RequireFromString("2000.00"), "deposit", domain.CategoryTransfer)
	created, err := svc.Writer.CreateTransaction(ctx, &input)
	require.NoError(t, err)
	assert.True(t, created.IsHighValue())

	sum, err := svc.Stats.SumTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2000.00", sum.StringFixed(2))
}
