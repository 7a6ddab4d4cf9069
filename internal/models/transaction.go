package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persisted row shape of the fact_transactions table.
type Transaction struct {
	ID              int64           `json:"id"`              // SERIAL / INTEGER PRIMARY KEY
	TransactionDate time.Time       `json:"transactionDate"` // DATE NOT NULL
	Amount          decimal.Decimal `json:"amount"`          // NUMERIC(12,2) NOT NULL (cents in SQLite)
	Description     string          `json:"description"`     // TEXT NOT NULL
	Category        string          `json:"category"`        // VARCHAR(100) NOT NULL
	IsSuspicious    bool            `json:"isSuspicious"`    // BOOLEAN NOT NULL DEFAULT FALSE
	CreatedAt       time.Time       `json:"createdAt"`       // TIMESTAMP NOT NULL
}
