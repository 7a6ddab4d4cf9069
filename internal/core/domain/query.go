package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionFilter restricts which records a query or aggregate considers.
// Nil fields do not filter.
type TransactionFilter struct {
	ID                  *int64
	Suspicious          *bool
	Category            *string // Exact, case-sensitive match
	DateFrom            *time.Time
	DateTo              *time.Time
	MinAmount           *decimal.Decimal
	DescriptionContains *string // Case-insensitive literal substring
}

// IsEmpty reports whether the filter matches every record.
func (f TransactionFilter) IsEmpty() bool {
	return f.ID == nil && f.Suspicious == nil && f.Category == nil && f.DateFrom == nil &&
		f.DateTo == nil && f.MinAmount == nil && f.DescriptionContains == nil
}

// Matches evaluates the filter against a single record.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.ID != nil && t.ID != *f.ID {
		return false
	}
	if f.Suspicious != nil && t.Suspicious != *f.Suspicious {
		return false
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	date := DateOf(t.TransactionDate)
	if f.DateFrom != nil && date.Before(DateOf(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && date.After(DateOf(*f.DateTo)) {
		return false
	}
	if f.MinAmount != nil && t.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.DescriptionContains != nil &&
		!strings.Contains(strings.ToLower(t.Description), strings.ToLower(*f.DescriptionContains)) {
		return false
	}
	return true
}

// OrderField names a sortable column.
type OrderField string

const (
	OrderByDate      OrderField = "transaction_date"
	OrderByAmount    OrderField = "amount"
	OrderByID        OrderField = "id"
	OrderByCreatedAt OrderField = "created_at"
)

// OrderTerm is one sort key.
type OrderTerm struct {
	Field      OrderField
	Descending bool
}

// OrderSpec is an ordered list of sort keys; earlier terms take precedence.
type OrderSpec []OrderTerm

var (
	// OrderDateDescAmountDesc is used for full and suspicious listings.
	OrderDateDescAmountDesc = OrderSpec{{Field: OrderByDate, Descending: true}, {Field: OrderByAmount, Descending: true}}
	// OrderDateDesc is used by the filtered listings.
	OrderDateDesc = OrderSpec{{Field: OrderByDate, Descending: true}}
	// OrderAmountDesc is used by the amount threshold listings.
	OrderAmountDesc = OrderSpec{{Field: OrderByAmount, Descending: true}}
)

// Less compares two records term by term. Records equal on every term fall back to
// the caller's (stable) order.
func (o OrderSpec) Less(a, b Transaction) bool {
	for _, term := range o {
		c := compareField(term.Field, a, b)
		if c == 0 {
			continue
		}
		if term.Descending {
			return c > 0
		}
		return c < 0
	}
	return false
}

// Sort orders records in place, keeping insertion order for ties.
func (o OrderSpec) Sort(txns []Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return o.Less(txns[i], txns[j])
	})
}

func compareField(field OrderField, a, b Transaction) int {
	switch field {
	case OrderByDate:
		return a.TransactionDate.Compare(b.TransactionDate)
	case OrderByAmount:
		return a.Amount.Cmp(b.Amount)
	case OrderByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case OrderByID:
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
	}
	return 0
}

// GroupKey names the column used by grouped aggregates.
type GroupKey string

// GroupByCategory groups records by their category label.
const GroupByCategory GroupKey = "category"

// CategoryCount is one row of a grouped count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// CategoryTotal is one row of a grouped sum.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// CategorySummary merges count, total and average for a single category.
type CategorySummary struct {
	Category      string          `json:"category"`
	Count         int64           `json:"count"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AverageAmount decimal.Decimal `json:"averageAmount"`
}

// TransactionStats bundles the scalar aggregates.
type TransactionStats struct {
	TotalCount      int64           `json:"totalCount"`
	SuspiciousCount int64           `json:"suspiciousCount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AverageAmount   decimal.Decimal `json:"averageAmount"`
}
