package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/transaction_service/internal/core/domain"
	"github.com/SscSPs/transaction_service/internal/utils"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// TransactionRequest is the body of create and update (full replace) calls.
type TransactionRequest struct {
	TransactionDate string           `json:"transactionDate" binding:"required,datetime=2006-01-02" example:"2024-01-15"`
	Amount          *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number" example:"125.50"`
	Description     string           `json:"description" binding:"required,notblank" example:"Weekly groceries"`
	Category        string           `json:"category" binding:"required,notblank,max=100" example:"groceries"`
	Suspicious      *bool            `json:"suspicious,omitempty" example:"false"`
}

// ToDomain converts the request to an unpersisted domain record. id is 0 on create.
func (r TransactionRequest) ToDomain(id int64) (*domain.Transaction, error) {
	date, err := time.Parse(DateLayout, r.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("invalid transactionDate %q: %w", r.TransactionDate, err)
	}
	amount := decimal.Zero
	if r.Amount != nil {
		amount = *r.Amount
	}
	suspicious := r.Suspicious != nil && *r.Suspicious

	txn := domain.NewTransaction(date, amount, r.Description, r.Category, domain.WithSuspicious(suspicious))
	txn.ID = id
	return &txn, nil
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID              int64       `json:"id" example:"42"`
	TransactionDate string      `json:"transactionDate" example:"2024-01-15"`
	Amount          json.Number `json:"amount" swaggertype:"number" example:"125.50"`
	Description     string      `json:"description" example:"Weekly groceries"`
	Category        string      `json:"category" example:"groceries"`
	Suspicious      bool        `json:"suspicious" example:"false"`
	HighValue       bool        `json:"highValue" example:"false"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Money renders an amount as a JSON number with two fractional digits.
func Money(d decimal.Decimal) json.Number {
	return json.Number(utils.FormatAmount(d))
}

// ToTransactionResponse converts a domain Transaction to its response DTO
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		TransactionDate: t.TransactionDate.Format(DateLayout),
		Amount:          Money(t.Amount),
		Description:     t.Description,
		Category:        t.Category,
		Suspicious:      t.Suspicious,
		HighValue:       t.IsHighValue(),
		CreatedAt:       t.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice, never returning nil so that JSON renders [].
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(t)
	}
	return res
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error" example:"Transaction not found with ID: 7"`
	Timestamp int64  `json:"timestamp" example:"1705312800000"` // Unix milliseconds
}

// NewErrorResponse stamps msg with the current time.
func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Error: msg, Timestamp: time.Now().UnixMilli()}
}

// StatsResponse bundles the scalar aggregates.
type StatsResponse struct {
	TotalCount      int64       `json:"totalCount" example:"120"`
	SuspiciousCount int64       `json:"suspiciousCount" example:"4"`
	TotalAmount     json.Number `json:"totalAmount" swaggertype:"number" example:"15234.10"`
	AverageAmount   json.Number `json:"averageAmount" swaggertype:"number" example:"126.95"`
}

// ToStatsResponse converts domain stats to the response DTO
func ToStatsResponse(s domain.TransactionStats) StatsResponse {
	return StatsResponse{
		TotalCount:      s.TotalCount,
		SuspiciousCount: s.SuspiciousCount,
		TotalAmount:     Money(s.TotalAmount),
		AverageAmount:   Money(s.AverageAmount),
	}
}

// CategoryCountResponse is one grouped count row.
type CategoryCountResponse struct {
	Category string `json:"category" example:"groceries"`
	Count    int64  `json:"count" example:"31"`
}

// CategoryTotalResponse is one grouped sum row.
type CategoryTotalResponse struct {
	Category string      `json:"category" example:"housing"`
	Total    json.Number `json:"total" swaggertype:"number" example:"7200.00"`
}

// CategorySummaryResponse merges the grouped count, total and average of a category.
type CategorySummaryResponse struct {
	Category      string      `json:"category" example:"groceries"`
	Count         int64       `json:"count" example:"31"`
	TotalAmount   json.Number `json:"totalAmount" swaggertype:"number" example:"2480.00"`
	AverageAmount json.Number `json:"averageAmount" swaggertype:"number" example:"80.00"`
}

func ToCategoryCountResponses(rows []domain.CategoryCount) []CategoryCountResponse {
	res := make([]CategoryCountResponse, len(rows))
	for i, r := range rows {
		res[i] = CategoryCountResponse{Category: r.Category, Count: r.Count}
	}
	return res
}

func ToCategoryTotalResponses(rows []domain.CategoryTotal) []CategoryTotalResponse {
	res := make([]CategoryTotalResponse, len(rows))
	for i, r := range rows {
		res[i] = CategoryTotalResponse{Category: r.Category, Total: Money(r.Total)}
	}
	return res
}

func ToCategorySummaryResponses(rows []domain.CategorySummary) []CategorySummaryResponse {
	res := make([]CategorySummaryResponse, len(rows))
	for i, r := range rows {
		res[i] = CategorySummaryResponse{
			Category:      r.Category,
			Count:         r.Count,
			TotalAmount:   Money(r.TotalAmount),
			AverageAmount: Money(r.AverageAmount),
		}
	}
	return res
}
