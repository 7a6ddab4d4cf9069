package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Known categories. The engine does not enforce a closed set; these are the values
// the ingestion pipeline produces.
const (
	CategoryGroceries  = "groceries"
	CategoryHousing    = "housing"
	CategoryTransport  = "transport"
	CategoryFood       = "food"
	CategoryTransfer   = "transfer"
	CategoryOnline     = "online"
	CategorySuspicious = "suspicious"
	CategoryOther      = "other"
)

// HighValueThreshold is the inclusive lower bound for high-value transactions.
var HighValueThreshold = decimal.RequireFromString("2000.00")

// RecentWindowDays is the look-back used by IsRecent.
const RecentWindowDays = 30

// Transaction is a single financial record.
type Transaction struct {
	ID              int64           `json:"id"`              // Assigned by storage; 0 until persisted
	TransactionDate time.Time       `json:"transactionDate"` // Calendar date, midnight UTC
	Amount          decimal.Decimal `json:"amount"`          // 2 fractional digits, must be > 0
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Suspicious      bool            `json:"suspicious"` // Flagged for manual review
	CreatedAt       time.Time       `json:"createdAt"`  // Set once at first persistence
}

// TransactionOption overrides a default when constructing a Transaction.
type TransactionOption func(*Transaction)

// WithSuspicious sets the suspicious flag.
func WithSuspicious(suspicious bool) TransactionOption {
	return func(t *Transaction) {
		t.Suspicious = suspicious
	}
}

// WithCreatedAt presets the creation timestamp.
func WithCreatedAt(createdAt time.Time) TransactionOption {
	return func(t *Transaction) {
		t.CreatedAt = createdAt
	}
}

// NewTransaction builds an unpersisted Transaction. It never fails; use IsValid to check it.
func NewTransaction(date time.Time, amount decimal.Decimal, description, category string, opts ...TransactionOption) Transaction {
	t := Transaction{
		TransactionDate: DateOf(date),
		Amount:          amount,
		Description:     description,
		Category:        category,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// AmountScale is the number of fractional digits an amount may carry.
const AmountScale = 2

// IsValid reports whether the record may be persisted.
func (t Transaction) IsValid() bool {
	return !t.TransactionDate.IsZero() &&
		t.Amount.GreaterThan(decimal.Zero) &&
		HasCentPrecision(t.Amount) &&
		strings.TrimSpace(t.Description) != "" &&
		strings.TrimSpace(t.Category) != ""
}

// HasCentPrecision reports whether d needs no more than two fractional digits.
// Trailing zeros are allowed, so 125.500 passes.
func HasCentPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Round(AmountScale))
}

// IsHighValue reports whether amount >= 2000.00.
func (t Transaction) IsHighValue() bool {
	return t.Amount.GreaterThanOrEqual(HighValueThreshold)
}

// IsRecent reports whether the transaction date is on or after today minus 30 days.
func (t Transaction) IsRecent(today time.Time) bool {
	if t.TransactionDate.IsZero() {
		return false
	}
	return !DateOf(t.TransactionDate).Before(RecentCutoff(today, RecentWindowDays))
}

// SameEntity compares persisted records by identity only.
func (t Transaction) SameEntity(other Transaction) bool {
	return t.ID != 0 && t.ID == other.ID
}

// ApplyCreateDefaults stamps CreatedAt when it has not been set.
func (t *Transaction) ApplyCreateDefaults(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now.UTC()
	}
	t.TransactionDate = DateOf(t.TransactionDate)
}

// DateOf truncates a timestamp to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RecentCutoff returns the first calendar date included in a window of the given days.
func RecentCutoff(today time.Time, days int) time.Time {
	return DateOf(today).AddDate(0, 0, -days)
}
