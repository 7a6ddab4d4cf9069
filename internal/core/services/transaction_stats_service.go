package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/transaction_service/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_service/internal/core/ports/services"
	"github.com/SscSPs/transaction_service/internal/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type transactionStatsService struct {
	BaseService
	txnRepo portsrepo.TransactionAggregator
}

// NewTransactionStatsService creates the aggregation service over a repository.
func NewTransactionStatsService(repo portsrepo.TransactionAggregator) portssvc.TransactionStatsSvc {
	return &transactionStatsService{
		BaseService: newBaseService(nil),
		txnRepo:     repo,
	}
}

var _ portssvc.TransactionStatsSvc = (*transactionStatsService)(nil)

func (s *transactionStatsService) TotalCount(ctx context.Context) (int64, error) {
	count, err := s.txnRepo.CountTransactions(ctx, domain.TransactionFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to count transactions")
		return 0, fmt.Errorf("failed to count transactions in service: %w", err)
	}
	return count, nil
}

func (s *transactionStatsService) SuspiciousCount(ctx context.Context) (int64, error) {
	suspicious := true
	count, err := s.txnRepo.CountTransactions(ctx, domain.TransactionFilter{Suspicious: &suspicious})
	if err != nil {
		s.LogError(ctx, err, "Failed to count suspicious transactions")
		return 0, fmt.Errorf("failed to count suspicious transactions in service: %w", err)
	}
	return count, nil
}

func (s *transactionStatsService) SumTotal(ctx context.Context) (decimal.Decimal, error) {
	sum, err := s.txnRepo.SumAmount(ctx, domain.TransactionFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to sum transaction amounts")
		return decimal.Zero, fmt.Errorf("failed to sum transactions in service: %w", err)
	}
	return utils.RoundAmount(sum), nil
}

func (s *transactionStatsService) Average(ctx context.Context) (decimal.Decimal, error) {
	avg, err := s.txnRepo.AverageAmount(ctx, domain.TransactionFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to average transaction amounts")
		return decimal.Zero, fmt.Errorf("failed to average transactions in service: %w", err)
	}
	return utils.RoundAmount(avg), nil
}

func (s *transactionStatsService) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	rows, err := s.txnRepo.CountGrouped(ctx, domain.GroupByCategory)
	if err != nil {
		s.LogError(ctx, err, "Failed to count transactions by category")
		return nil, fmt.Errorf("failed to count by category in service: %w", err)
	}
	if rows == nil {
		return []domain.CategoryCount{}, nil
	}
	return rows, nil
}

func (s *transactionStatsService) SumByCategory(ctx context.Context) ([]domain.CategoryTotal, error) {
	rows, err := s.txnRepo.SumGrouped(ctx, domain.GroupByCategory)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum transactions by category")
		return nil, fmt.Errorf("failed to sum by category in service: %w", err)
	}
	if rows == nil {
		return []domain.CategoryTotal{}, nil
	}
	for i := range rows {
		rows[i].Total = utils.RoundAmount(rows[i].Total)
	}
	return rows, nil
}

// GetStats runs the four scalar aggregates concurrently; each is an independent
// read against storage.
func (s *transactionStatsService) GetStats(ctx context.Context) (*domain.TransactionStats, error) {
	var stats domain.TransactionStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalCount, err = s.TotalCount(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.SuspiciousCount, err = s.SuspiciousCount(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalAmount, err = s.SumTotal(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.AverageAmount, err = s.Average(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *transactionStatsService) GetCategoryBreakdown(ctx context.Context) ([]domain.CategorySummary, error) {
	var (
		counts []domain.CategoryCount
		totals []domain.CategoryTotal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = s.CountByCategory(gctx)
		return err
	})
	g.Go(func() (err error) {
		totals, err = s.SumByCategory(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalByCategory := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		totalByCategory[t.Category] = t.Total
	}

	breakdown := make([]domain.CategorySummary, 0, len(counts))
	for _, c := range counts {
		total := totalByCategory[c.Category]
		avg := decimal.Zero
		if c.Count > 0 {
			avg = utils.RoundAmount(total.Div(decimal.NewFromInt(c.Count)))
		}
		breakdown = append(breakdown, domain.CategorySummary{
			Category:      c.Category,
			Count:         c.Count,
			TotalAmount:   total,
			AverageAmount: avg,
		})
	}
	return breakdown, nil
}
