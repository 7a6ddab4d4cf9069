package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/transaction_service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var today = time.Date(2024, 3, 31, 15, 4, 5, 0, time.UTC)

func validTxn() domain.Transaction {
	return domain.NewTransaction(today, decimal.RequireFromString("100.00"), "Weekly shop", domain.CategoryGroceries)
}

func TestTransaction_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Transaction)
		want   bool
	}{
		{name: "valid transaction", mutate: func(*domain.Transaction) {}, want: true},
		{name: "missing date", mutate: func(tx *domain.Transaction) { tx.TransactionDate = time.Time{} }, want: false},
		{name: "zero amount", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.Zero }, want: false},
		{name: "negative amount", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.RequireFromString("-0.01") }, want: false},
		{name: "smallest positive amount", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.RequireFromString("0.01") }, want: true},
		{name: "sub-cent amount", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.RequireFromString("0.004") }, want: false},
		{name: "three fractional digits", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.RequireFromString("1999.995") }, want: false},
		{name: "trailing zero digits", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.RequireFromString("125.500") }, want: true},
		{name: "blank description", mutate: func(tx *domain.Transaction) { tx.Description = "   " }, want: false},
		{name: "empty category", mutate: func(tx *domain.Transaction) { tx.Category = "" }, want: false},
		{name: "tab-only category", mutate: func(tx *domain.Transaction) { tx.Category = "\t" }, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTxn()
			tt.mutate(&tx)
			assert.Equal(t, tt.want, tx.IsValid())
		})
	}
}

func TestTransaction_IsHighValue(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{amount: "1999.99", want: false},
		{amount: "2000.00", want: true},
		{amount: "2000", want: true},
		{amount: "2000.01", want: true},
		{amount: "0.01", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			tx := validTxn()
			tx.Amount = decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.want, tx.IsHighValue())
		})
	}
}

// The window is inclusive at exactly 30 days before today, so it spans 31 calendar days.
func TestTransaction_IsRecent(t *testing.T) {
	tests := []struct {
		name    string
		daysAgo int
		want    bool
	}{
		{name: "today", daysAgo: 0, want: true},
		{name: "ten days ago", daysAgo: 10, want: true},
		{name: "29 days ago", daysAgo: 29, want: true},
		{name: "exactly 30 days ago is included", daysAgo: 30, want: true},
		{name: "31 days ago is excluded", daysAgo: 31, want: false},
		{name: "future date", daysAgo: -1, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTxn()
			tx.TransactionDate = domain.DateOf(today.AddDate(0, 0, -tt.daysAgo))
			assert.Equal(t, tt.want, tx.IsRecent(today))
		})
	}

	t.Run("unset date is never recent", func(t *testing.T) {
		tx := validTxn()
		tx.TransactionDate = time.Time{}
		assert.False(t, tx.IsRecent(today))
	})
}

func TestTransaction_SameEntity(t *testing.T) {
	a := validTxn()
	b := validTxn()
	assert.False(t, a.SameEntity(b), "unpersisted records have no identity")

	a.ID, b.ID = 7, 7
	b.Description = "completely different"
	assert.True(t, a.SameEntity(b))

	b.ID = 8
	assert.False(t, a.SameEntity(b))
}

func TestTransaction_ApplyCreateDefaults(t *testing.T) {
	tx := validTxn()
	tx.ApplyCreateDefaults(today)
	assert.Equal(t, today, tx.CreatedAt)
	assert.False(t, tx.Suspicious)

	preset := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	tx = domain.NewTransaction(today, decimal.NewFromInt(5), "x", "other",
		domain.WithCreatedAt(preset), domain.WithSuspicious(true))
	tx.ApplyCreateDefaults(today)
	assert.Equal(t, preset, tx.CreatedAt, "existing timestamp is kept")
	assert.True(t, tx.Suspicious)
}

func TestNewTransaction_NormalizesDate(t *testing.T) {
	tx := validTxn()
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), tx.TransactionDate)
}

func TestHasCentPrecision(t *testing.T) {
	assert.True(t, domain.HasCentPrecision(decimal.RequireFromString("2000")))
	assert.True(t, domain.HasCentPrecision(decimal.RequireFromString("0.01")))
	assert.True(t, domain.HasCentPrecision(decimal.RequireFromString("12.3400")))
	assert.False(t, domain.HasCentPrecision(decimal.RequireFromString("0.005")))
	assert.False(t, domain.HasCentPrecision(decimal.RequireFromString("-1.001")))
}
