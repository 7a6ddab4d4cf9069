package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/transaction_service/internal/core/domain"
	"github.com/SscSPs/transaction_service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToDomainTransaction_NormalizesDates(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	m := models.Transaction{
		ID:              4,
		TransactionDate: time.Date(2024, 5, 6, 13, 0, 0, 0, time.UTC),
		Amount:          decimal.RequireFromString("10.50"),
		Description:     "Coffee",
		Category:        domain.CategoryFood,
		IsSuspicious:    true,
		CreatedAt:       time.Date(2024, 5, 6, 15, 0, 0, 0, loc),
	}

	d := ToDomainTransaction(m)

	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), d.TransactionDate)
	assert.Equal(t, time.UTC, d.CreatedAt.Location())
	assert.True(t, d.Suspicious)

	back := ToModelTransaction(d)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), back.TransactionDate)
	assert.True(t, m.CreatedAt.Equal(back.CreatedAt))
	assert.Equal(t, m.Amount, back.Amount)
	assert.Equal(t, m.IsSuspicious, back.IsSuspicious)
}
