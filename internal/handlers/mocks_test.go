package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/transaction_service/internal/core/domain"
	portssvc "github.com/SscSPs/transaction_service/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionQueryService ---
type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) list(args mock.Arguments) ([]domain.Transaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockQueryService) GetTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockQueryService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return m.list(m.Called(ctx))
}
func (m *MockQueryService) ListSuspicious(ctx context.Context) ([]domain.Transaction, error) {
	return m.list(m.Called(ctx))
}
func (m *MockQueryService) ListByCategory(ctx context.Context, category string) ([]domain.Transaction, error) {
	return m.list(m.Called(ctx, category))
}
func (m *MockQueryService) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	return m.list(m.Called(ctx, from, to))
}
func (m *MockQueryService) ListByMinAmount(ctx context.Context, minAmount *decimal.Decimal) ([]domain.Transaction, error) {
	return m.list(m.Called(ctx, minAmount))
}
func (m *MockQueryService) ListHighValue(ctx context.Context) ([]domain.Transaction, error) {
	return m.list(m.Called(ctx))
}
func (m *MockQueryService) SearchByDescription(ctx context.Context, term string) ([]domain.Transaction, error) {
	return m.list(m.Called(ctx, term))
}
func (m *MockQueryService) ListRecent(ctx context.Context, days int) ([]domain.Transaction, error) {
	return m.list(m.Called(ctx, days))
}
func (m *MockQueryService) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.TransactionQuerySvc = (*MockQueryService)(nil)

// --- Mock TransactionWriteService ---
type MockWriterService struct {
	mock.Mock
}

func (m *MockWriterService) CreateTransaction(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockWriterService) UpdateTransaction(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockWriterService) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.TransactionWriterSvc = (*MockWriterService)(nil)

// --- Mock TransactionStatsService ---
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) TotalCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockStatsService) SuspiciousCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockStatsService) SumTotal(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockStatsService) Average(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockStatsService) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryCount), args.Error(1)
}
func (m *MockStatsService) SumByCategory(ctx context.Context) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}
func (m *MockStatsService) GetStats(ctx context.Context) (*domain.TransactionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionStats), args.Error(1)
}
func (m *MockStatsService) GetCategoryBreakdown(ctx context.Context) ([]domain.CategorySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategorySummary), args.Error(1)
}

var _ portssvc.TransactionStatsSvc = (*MockStatsService)(nil)
